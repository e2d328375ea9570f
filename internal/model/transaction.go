package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents a cleaned row from transactions.csv. The origin and
// destination account IDs may reference accounts that do not exist; the
// enricher tolerates dangling references and leaves that context empty.
type Transaction struct {
	TransactionID        int64
	AccountOriginID      int64
	AccountDestinationID int64
	TransactionTypeID    int64 // 1..4
	Amount               decimal.Decimal
	TransactionDate      time.Time
	BranchID             int64 // 0 = unknown branch
	Description          string
}

// Loan represents a cleaned row from loans.csv.
type Loan struct {
	LoanID           int64
	AccountID        int64
	LoanStatusID     int64 // 1..3
	PrincipalAmount  decimal.Decimal
	InterestRate     float64 // stored as a percentage, e.g. 12.5 = 12.5%
	StartDate        time.Time
	EstimatedEndDate time.Time
}
