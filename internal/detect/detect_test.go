package detect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finsift-dev/finsift/internal/feature"
)

func TestCombineLabels(t *testing.T) {
	a := []bool{true, false, false}
	b := []bool{false, false, true}
	assert.Equal(t, []bool{true, false, true}, CombineLabels(a, b))
	assert.Equal(t, a, CombineLabels(a))
	assert.Nil(t, CombineLabels())
}

func TestZScoreScorer_FlagsOutlier(t *testing.T) {
	m := &feature.Matrix{Columns: []string{"Amount"}}
	for i := 0; i < 19; i++ {
		m.Rows = append(m.Rows, []float64{10})
	}
	m.Rows = append(m.Rows, []float64{10000})

	labels := ZScoreScorer{}.FitPredict(m)
	require.Len(t, labels, 20)
	assert.True(t, labels[19])
	for i := 0; i < 19; i++ {
		assert.False(t, labels[i], "row %d", i)
	}
}

func TestZScoreScorer_ConstantColumnNeverFlags(t *testing.T) {
	m := &feature.Matrix{
		Columns: []string{"Amount"},
		Rows:    [][]float64{{5}, {5}, {5}},
	}
	labels := ZScoreScorer{Threshold: 1}.FitPredict(m)
	assert.Equal(t, []bool{false, false, false}, labels)
}

func TestZScoreScorer_EmptyMatrix(t *testing.T) {
	labels := ZScoreScorer{}.FitPredict(&feature.Matrix{Columns: []string{"Amount"}})
	assert.Empty(t, labels)
}
