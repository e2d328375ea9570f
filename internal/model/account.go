package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account represents a cleaned row from accounts.csv.
type Account struct {
	AccountID       int64
	CustomerID      int64
	AccountTypeID   int64 // 1..5, see clean.ValidAccountTypes
	AccountStatusID int64 // 1..3
	Balance         decimal.Decimal
	OpeningDate     time.Time
}
