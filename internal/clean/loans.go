package clean

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/finsift-dev/finsift/internal/dataset"
	"github.com/finsift-dev/finsift/internal/model"
)

// Loans cleans the raw loans table. Both dates are critical; only StartDate
// is checked against the processing time (no ordering between StartDate and
// EstimatedEndDate is enforced).
func Loans(t *dataset.Table, now time.Time, log zerolog.Logger) ([]model.Loan, Stats, error) {
	if err := t.Require("LoanID", "AccountID", "LoanStatusID", "PrincipalAmount", "InterestRate", "StartDate", "EstimatedEndDate"); err != nil {
		return nil, Stats{}, err
	}
	var (
		colID        = t.Col("LoanID")
		colAccount   = t.Col("AccountID")
		colStatus    = t.Col("LoanStatusID")
		colPrincipal = t.Col("PrincipalAmount")
		colRate      = t.Col("InterestRate")
		colStart     = t.Col("StartDate")
		colEnd       = t.Col("EstimatedEndDate")
	)

	st := newStats("loans", t.Len())
	rows := make([]model.Loan, 0, t.Len())
	for i := range t.Rows {
		id, okID := parseID(t.Cell(i, colID))
		account, okAccount := parseID(t.Cell(i, colAccount))
		status, okStatus := parseID(t.Cell(i, colStatus))
		principal, okPrincipal := parseDecimal(t.Cell(i, colPrincipal))
		rate, okRate := parseFloat(t.Cell(i, colRate))
		if !okID || !okAccount || !okStatus || !okPrincipal || !okRate {
			st.drop(DropCritical)
			continue
		}
		if !ValidLoanStatuses[status] {
			st.drop(DropBadCategory)
			continue
		}

		start, okStart := parseDate(t.Cell(i, colStart))
		end, okEnd := parseDate(t.Cell(i, colEnd))
		if !okStart || !okEnd {
			st.drop(DropBadDate)
			continue
		}

		rows = append(rows, model.Loan{
			LoanID:           id,
			AccountID:        account,
			LoanStatusID:     status,
			PrincipalAmount:  principal,
			InterestRate:     rate,
			StartDate:        start,
			EstimatedEndDate: end,
		})
	}

	rows = finish(rows, rules[model.Loan]{
		fingerprint: func(l model.Loan) string {
			return fmt.Sprintf("%d|%d|%d|%s|%g|%d|%d", l.LoanID, l.AccountID, l.LoanStatusID, l.PrincipalAmount.String(), l.InterestRate, l.StartDate.Unix(), l.EstimatedEndDate.Unix())
		},
		key:  func(l model.Loan) int64 { return l.LoanID },
		date: func(l model.Loan) time.Time { return l.StartDate },
	}, now, &st)

	st.Log(log)
	return rows, st, nil
}
