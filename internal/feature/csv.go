package feature

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// WriteMatrix renders a Matrix as CSV with its column header.
func WriteMatrix(w io.Writer, m *Matrix) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(m.Columns); err != nil {
		return fmt.Errorf("writing matrix header: %w", err)
	}
	record := make([]string, len(m.Columns))
	for i, row := range m.Rows {
		for j, v := range row {
			record[j] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing matrix row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}
