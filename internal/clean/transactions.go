package clean

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/finsift-dev/finsift/internal/dataset"
	"github.com/finsift-dev/finsift/internal/model"
)

// Transactions cleans the raw transactions table. Amount cells accept plain
// numbers, thousands separators ("1,234.56") and the "k" shorthand ("2.5k").
// Origin and destination account IDs are kept even when they reference
// accounts that no longer exist; the enricher resolves those as nulls.
func Transactions(t *dataset.Table, now time.Time, log zerolog.Logger) ([]model.Transaction, Stats, error) {
	if err := t.Require("TransactionID", "AccountOriginID", "AccountDestinationID", "TransactionTypeID", "Amount", "TransactionDate", "BranchID", "Description"); err != nil {
		return nil, Stats{}, err
	}
	var (
		colID     = t.Col("TransactionID")
		colOrigin = t.Col("AccountOriginID")
		colDest   = t.Col("AccountDestinationID")
		colType   = t.Col("TransactionTypeID")
		colAmount = t.Col("Amount")
		colDate   = t.Col("TransactionDate")
		colBranch = t.Col("BranchID")
		colDesc   = t.Col("Description")
	)

	st := newStats("transactions", t.Len())
	rows := make([]model.Transaction, 0, t.Len())
	for i := range t.Rows {
		id, okID := parseID(t.Cell(i, colID))
		origin, okOrigin := parseID(t.Cell(i, colOrigin))
		dest, okDest := parseID(t.Cell(i, colDest))
		amount, okAmount := parseAmount(t.Cell(i, colAmount))
		if !okID || !okOrigin || !okDest || !okAmount {
			st.drop(DropCritical)
			continue
		}

		typ, ok := parseID(t.Cell(i, colType))
		if !ok || !ValidTransactionTypes[typ] {
			st.drop(DropBadCategory)
			continue
		}

		date, ok := parseDate(t.Cell(i, colDate))
		if !ok {
			st.drop(DropBadDate)
			continue
		}

		// BranchID is not critical: unresolved branches merge as nulls.
		branch, ok := parseID(t.Cell(i, colBranch))
		if !ok {
			branch = 0
		}

		rows = append(rows, model.Transaction{
			TransactionID:        id,
			AccountOriginID:      origin,
			AccountDestinationID: dest,
			TransactionTypeID:    typ,
			Amount:               amount,
			TransactionDate:      date,
			BranchID:             branch,
			Description:          orUnknown(t.Cell(i, colDesc)),
		})
	}

	rows = finish(rows, rules[model.Transaction]{
		fingerprint: func(x model.Transaction) string {
			return fmt.Sprintf("%d|%d|%d|%d|%s|%d|%d|%s", x.TransactionID, x.AccountOriginID, x.AccountDestinationID, x.TransactionTypeID, x.Amount.String(), x.TransactionDate.Unix(), x.BranchID, x.Description)
		},
		key:  func(x model.Transaction) int64 { return x.TransactionID },
		date: func(x model.Transaction) time.Time { return x.TransactionDate },
	}, now, &st)

	st.Log(log)
	return rows, st, nil
}
