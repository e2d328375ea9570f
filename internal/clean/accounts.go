package clean

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/finsift-dev/finsift/internal/dataset"
	"github.com/finsift-dev/finsift/internal/model"
)

// OpeningDateSentinel fills account opening dates that are missing or do not
// parse. Accounts keep such rows instead of dropping them, an intentional
// asymmetry against the other tables.
var OpeningDateSentinel = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// Accounts cleans the raw accounts table.
func Accounts(t *dataset.Table, now time.Time, log zerolog.Logger) ([]model.Account, Stats, error) {
	if err := t.Require("AccountID", "CustomerID", "AccountTypeID", "AccountStatusID", "Balance", "OpeningDate"); err != nil {
		return nil, Stats{}, err
	}
	var (
		colID      = t.Col("AccountID")
		colCust    = t.Col("CustomerID")
		colType    = t.Col("AccountTypeID")
		colStatus  = t.Col("AccountStatusID")
		colBalance = t.Col("Balance")
		colOpened  = t.Col("OpeningDate")
	)

	st := newStats("accounts", t.Len())
	rows := make([]model.Account, 0, t.Len())
	for i := range t.Rows {
		id, okID := parseID(t.Cell(i, colID))
		cust, okCust := parseID(t.Cell(i, colCust))
		typ, okType := parseID(t.Cell(i, colType))
		status, okStatus := parseID(t.Cell(i, colStatus))
		balance, okBalance := parseDecimal(t.Cell(i, colBalance))
		if !okID || !okCust || !okType || !okStatus || !okBalance {
			st.drop(DropCritical)
			continue
		}
		if !ValidAccountTypes[typ] || !ValidAccountStatuses[status] {
			st.drop(DropBadCategory)
			continue
		}

		opened, ok := parseDate(t.Cell(i, colOpened))
		if !ok {
			opened = OpeningDateSentinel
		}

		rows = append(rows, model.Account{
			AccountID:       id,
			CustomerID:      cust,
			AccountTypeID:   typ,
			AccountStatusID: status,
			Balance:         balance,
			OpeningDate:     opened,
		})
	}

	rows = finish(rows, rules[model.Account]{
		fingerprint: func(a model.Account) string {
			return fmt.Sprintf("%d|%d|%d|%d|%s|%d", a.AccountID, a.CustomerID, a.AccountTypeID, a.AccountStatusID, a.Balance.String(), a.OpeningDate.Unix())
		},
		key:  func(a model.Account) int64 { return a.AccountID },
		date: func(a model.Account) time.Time { return a.OpeningDate },
	}, now, &st)

	st.Log(log)
	return rows, st, nil
}
