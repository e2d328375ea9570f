package clean

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/finsift-dev/finsift/internal/dataset"
	"github.com/finsift-dev/finsift/internal/model"
)

// Branches cleans the raw branches table.
func Branches(t *dataset.Table, log zerolog.Logger) ([]model.Branch, Stats, error) {
	if err := t.Require("BranchID", "AddressID", "BranchName"); err != nil {
		return nil, Stats{}, err
	}
	var (
		colID      = t.Col("BranchID")
		colAddress = t.Col("AddressID")
		colName    = t.Col("BranchName")
	)

	st := newStats("branches", t.Len())
	rows := make([]model.Branch, 0, t.Len())
	for i := range t.Rows {
		id, okID := parseID(t.Cell(i, colID))
		addr, okAddr := parseID(t.Cell(i, colAddress))
		if !okID || !okAddr {
			st.drop(DropCritical)
			continue
		}
		rows = append(rows, model.Branch{
			BranchID:   id,
			AddressID:  addr,
			BranchName: normalizeText(orUnknown(t.Cell(i, colName))),
		})
	}

	rows = finish(rows, rules[model.Branch]{
		fingerprint: func(b model.Branch) string {
			return fmt.Sprintf("%d|%d|%s", b.BranchID, b.AddressID, b.BranchName)
		},
		key: func(b model.Branch) int64 { return b.BranchID },
	}, time.Time{}, &st)

	st.Log(log)
	return rows, st, nil
}
