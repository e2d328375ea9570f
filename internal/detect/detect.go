// Package detect defines the contracts for the anomaly-scoring and
// supervised-training collaborators. The pipeline only needs a well-formed
// numeric matrix and, optionally, a label column; the model classes behind
// these interfaces are interchangeable black boxes.
package detect

import "github.com/finsift-dev/finsift/internal/feature"

// Scorer fits an unsupervised detector on a matrix and flags anomalous rows.
type Scorer interface {
	FitPredict(m *feature.Matrix) []bool
}

// Classifier is the supervised collaborator contract: fit on a labeled
// matrix, then predict labels (and probabilities) for new rows.
type Classifier interface {
	Fit(m *feature.Matrix, labels []bool) error
	Predict(m *feature.Matrix) ([]bool, error)
	PredictProba(m *feature.Matrix) ([]float64, error)
}

// CombineLabels ORs detector flags into one anomaly label per row: a row is
// anomalous when any detector flagged it.
func CombineLabels(flags ...[]bool) []bool {
	if len(flags) == 0 {
		return nil
	}
	out := make([]bool, len(flags[0]))
	for _, f := range flags {
		for i, v := range f {
			if v {
				out[i] = true
			}
		}
	}
	return out
}
