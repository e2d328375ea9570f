package detect

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/finsift-dev/finsift/internal/feature"
)

// DefaultZScoreThreshold flags roughly the far tail of each column.
const DefaultZScoreThreshold = 3.5

// ZScoreScorer is the built-in reference Scorer: a row is flagged when any
// column's value deviates from the column mean by more than Threshold
// standard deviations. It stands in for heavier detectors when none is
// wired.
type ZScoreScorer struct {
	Threshold float64
}

// FitPredict computes per-column statistics over m and flags outlier rows.
func (s ZScoreScorer) FitPredict(m *feature.Matrix) []bool {
	threshold := s.Threshold
	if threshold <= 0 {
		threshold = DefaultZScoreThreshold
	}

	n := len(m.Rows)
	labels := make([]bool, n)
	if n == 0 || len(m.Columns) == 0 {
		return labels
	}

	col := make([]float64, n)
	for j := range m.Columns {
		for i, row := range m.Rows {
			col[i] = row[j]
		}
		mean := stat.Mean(col, nil)
		sd := stat.StdDev(col, nil)
		if sd == 0 || math.IsNaN(sd) {
			continue
		}
		for i, v := range col {
			if math.Abs(v-mean)/sd > threshold {
				labels[i] = true
			}
		}
	}
	return labels
}
