package enrich

import (
	"github.com/shopspring/decimal"

	"github.com/finsift-dev/finsift/internal/model"
)

// PivotStatuses are the loan status names emitted as wide count columns in
// the enriched and feature tables.
var PivotStatuses = []string{"Active", "Overdue", "Paid Off"}

// LoanSummary aggregates one account's loans into per-account metrics plus a
// per-status-name count pivot. StatusCounts is zero-filled only for statuses
// actually seen on some loan; an account with loans but none of a given
// status reads as 0 through StatusCount.
type LoanSummary struct {
	Count           int
	TotalPrincipal  decimal.Decimal
	AvgInterestRate float64
	MaxInterestRate float64
	MinInterestRate float64
	StatusCounts    map[string]int
}

// StatusCount returns the number of loans with the given status name.
func (s *LoanSummary) StatusCount(status string) int {
	return s.StatusCounts[status]
}

// AggregateLoans groups loans by AccountID. Accounts without loans are
// absent from the result; the enricher leaves their loan context nil.
func AggregateLoans(loans []model.Loan, statuses model.Lookup) map[int64]*LoanSummary {
	byAccount := make(map[int64]*LoanSummary)
	rateSums := make(map[int64]float64)

	for _, l := range loans {
		s, ok := byAccount[l.AccountID]
		if !ok {
			s = &LoanSummary{
				TotalPrincipal:  decimal.Zero,
				MaxInterestRate: l.InterestRate,
				MinInterestRate: l.InterestRate,
				StatusCounts:    make(map[string]int),
			}
			byAccount[l.AccountID] = s
		}

		s.Count++
		s.TotalPrincipal = s.TotalPrincipal.Add(l.PrincipalAmount)
		rateSums[l.AccountID] += l.InterestRate
		if l.InterestRate > s.MaxInterestRate {
			s.MaxInterestRate = l.InterestRate
		}
		if l.InterestRate < s.MinInterestRate {
			s.MinInterestRate = l.InterestRate
		}
		if name := statuses.Name(l.LoanStatusID); name != "" {
			s.StatusCounts[name]++
		}
	}

	for id, s := range byAccount {
		s.AvgInterestRate = rateSums[id] / float64(s.Count)
	}
	return byAccount
}
