// Package encode prepares the feature matrix for modeling: the continuous
// subset is standardized to zero mean and unit variance, everything else
// (IDs and binary flags) is one-hot encoded with the first category dropped,
// and the two blocks are concatenated numeric-first.
package encode

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"gonum.org/v1/gonum/stat"

	"github.com/finsift-dev/finsift/internal/feature"
)

// ErrNotFitted is returned by Transform before Fit.
var ErrNotFitted = errors.New("encoder is not fitted")

// NumericColumns is the continuous subset that gets standardized. Every
// other input column is treated as categorical.
var NumericColumns = []string{
	"Amount", "Origin_Balance", "Dest_Balance",
	"Origin_LoanCount", "Origin_TotalPrincipal", "Origin_AvgInterestRate",
	"Dest_LoanCount", "Dest_TotalPrincipal", "Dest_AvgInterestRate",
	"Origin_LoanStatus_Active", "Origin_LoanStatus_Overdue", "Origin_LoanStatus_Paid Off",
	"Dest_LoanStatus_Active", "Dest_LoanStatus_Overdue", "Dest_LoanStatus_Paid Off",
	"Amount_to_OriginBalance", "Amount_to_DestBalance", "Amount_to_AvgTransaction",
	"Age_Difference", "Origin_LoanLeverage", "Dest_LoanLeverage",
}

// Encoder standardizes numeric columns and one-hot encodes categorical ones.
// Fit captures the batch statistics and category sets; Transform reuses
// them, so a fitted Encoder gives consistent encodings at inference time.
type Encoder struct {
	numericIdx []int
	catIdx     []int
	catNames   []string

	mean       []float64
	scale      []float64
	categories [][]float64 // sorted distinct values per categorical column

	fitted bool
}

// New returns an unfitted Encoder.
func New() *Encoder {
	return &Encoder{}
}

// Fit learns column statistics and category sets from m. Every numeric
// column must be present; a missing one is a structural error.
func (e *Encoder) Fit(m *feature.Matrix) error {
	numeric := make(map[string]bool, len(NumericColumns))
	e.numericIdx = e.numericIdx[:0]
	for _, name := range NumericColumns {
		idx := m.Col(name)
		if idx < 0 {
			return fmt.Errorf("fitting encoder: missing numeric column %q", name)
		}
		numeric[name] = true
		e.numericIdx = append(e.numericIdx, idx)
	}

	e.catIdx = e.catIdx[:0]
	e.catNames = e.catNames[:0]
	for i, name := range m.Columns {
		if !numeric[name] {
			e.catIdx = append(e.catIdx, i)
			e.catNames = append(e.catNames, name)
		}
	}

	e.mean = make([]float64, len(e.numericIdx))
	e.scale = make([]float64, len(e.numericIdx))
	col := make([]float64, len(m.Rows))
	for i, idx := range e.numericIdx {
		for r, row := range m.Rows {
			col[r] = row[idx]
		}
		e.mean[i] = stat.Mean(col, nil)
		sd := stat.StdDev(col, nil)
		if sd == 0 {
			sd = 1 // constant column passes through centered
		}
		e.scale[i] = sd
	}

	e.categories = make([][]float64, len(e.catIdx))
	for i, idx := range e.catIdx {
		seen := make(map[float64]bool)
		for _, row := range m.Rows {
			seen[row[idx]] = true
		}
		values := make([]float64, 0, len(seen))
		for v := range seen {
			values = append(values, v)
		}
		sort.Float64s(values)
		e.categories[i] = values
	}

	e.fitted = true
	return nil
}

// Transform encodes m with the fitted statistics: standardized numerics
// first, then drop-first 0/1 indicators. A category unseen at fit time
// encodes as an all-zero indicator block.
func (e *Encoder) Transform(m *feature.Matrix) (*feature.Matrix, error) {
	if !e.fitted {
		return nil, ErrNotFitted
	}

	columns := e.OutputColumns()
	rows := make([][]float64, len(m.Rows))
	for r, row := range m.Rows {
		out := make([]float64, 0, len(columns))
		for i, idx := range e.numericIdx {
			out = append(out, (row[idx]-e.mean[i])/e.scale[i])
		}
		for i, idx := range e.catIdx {
			for _, category := range e.categories[i][1:] {
				if row[idx] == category {
					out = append(out, 1)
				} else {
					out = append(out, 0)
				}
			}
		}
		rows[r] = out
	}
	return &feature.Matrix{Columns: columns, Rows: rows}, nil
}

// FitTransform fits on m and transforms it.
func (e *Encoder) FitTransform(m *feature.Matrix) (*feature.Matrix, error) {
	if err := e.Fit(m); err != nil {
		return nil, err
	}
	return e.Transform(m)
}

// OutputColumns names the encoded columns: the numeric subset, then one
// "<column>=<value>" indicator per retained category.
func (e *Encoder) OutputColumns() []string {
	columns := make([]string, 0, len(NumericColumns))
	columns = append(columns, NumericColumns...)
	for i, name := range e.catNames {
		for _, category := range e.categories[i][1:] {
			columns = append(columns, name+"="+strconv.FormatFloat(category, 'g', -1, 64))
		}
	}
	return columns
}
