package encode

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"

	"github.com/finsift-dev/finsift/internal/feature"
)

// testMatrix builds a full-width matrix with a varying Amount, a constant
// Origin_Balance and a three-valued TransactionTypeID categorical.
func testMatrix() *feature.Matrix {
	m := &feature.Matrix{Columns: feature.Columns}
	amounts := []float64{10, 20, 30, 40}
	types := []float64{1, 2, 3, 1}
	for i := range amounts {
		row := make([]float64, len(feature.Columns))
		row[m.Col("Amount")] = amounts[i]
		row[m.Col("Origin_Balance")] = 500
		row[m.Col("TransactionTypeID")] = types[i]
		m.Rows = append(m.Rows, row)
	}
	return m
}

func TestTransform_BeforeFit(t *testing.T) {
	_, err := New().Transform(testMatrix())
	require.ErrorIs(t, err, ErrNotFitted)
}

func TestFit_MissingNumericColumn(t *testing.T) {
	m := &feature.Matrix{Columns: []string{"Amount"}, Rows: [][]float64{{1}}}
	err := New().Fit(m)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Origin_Balance")
}

func TestFitTransform_StandardizesNumerics(t *testing.T) {
	out, err := New().FitTransform(testMatrix())
	require.NoError(t, err)
	require.Len(t, out.Rows, 4)

	amount := out.Column("Amount")
	require.NotNil(t, amount)
	assert.InDelta(t, 0, stat.Mean(amount, nil), 1e-9)
	assert.InDelta(t, 1, stat.StdDev(amount, nil), 1e-9)
}

func TestFitTransform_ConstantColumnStaysFinite(t *testing.T) {
	out, err := New().FitTransform(testMatrix())
	require.NoError(t, err)

	for _, v := range out.Column("Origin_Balance") {
		assert.False(t, math.IsNaN(v))
		assert.Zero(t, v) // centered, unscaled
	}
}

func TestFitTransform_DropFirstIndicators(t *testing.T) {
	out, err := New().FitTransform(testMatrix())
	require.NoError(t, err)

	// TransactionTypeID has categories {1,2,3}; drop-first keeps =2 and =3.
	assert.Equal(t, -1, out.Col("TransactionTypeID=1"))
	two := out.Column("TransactionTypeID=2")
	three := out.Column("TransactionTypeID=3")
	require.NotNil(t, two)
	require.NotNil(t, three)
	assert.Equal(t, []float64{0, 1, 0, 0}, two)
	assert.Equal(t, []float64{0, 0, 1, 0}, three)

	for _, name := range out.Columns {
		if strings.Contains(name, "=") {
			for _, v := range out.Column(name) {
				assert.Contains(t, []float64{0, 1}, v)
			}
		}
	}
}

func TestOutputColumns_NumericFirst(t *testing.T) {
	e := New()
	require.NoError(t, e.Fit(testMatrix()))
	columns := e.OutputColumns()
	require.GreaterOrEqual(t, len(columns), len(NumericColumns))
	assert.Equal(t, NumericColumns, columns[:len(NumericColumns)])
}

func TestTransform_UnseenCategoryAllZero(t *testing.T) {
	e := New()
	require.NoError(t, e.Fit(testMatrix()))

	m := testMatrix()
	m.Rows = m.Rows[:1]
	m.Rows[0][m.Col("TransactionTypeID")] = 4 // never seen at fit time

	out, err := e.Transform(m)
	require.NoError(t, err)
	assert.Zero(t, out.Rows[0][out.Col("TransactionTypeID=2")])
	assert.Zero(t, out.Rows[0][out.Col("TransactionTypeID=3")])
}
