// Package feature derives behavioral and risk features from enriched
// transactions. Derivation is a two-phase operation: a batch statistic pass
// (the mean transaction amount), then a per-row mapping. Because of the
// batch-relative Amount_to_AvgTransaction ratio, recomputing a single row in
// isolation yields different values than computing it inside its batch.
package feature

import (
	"math"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/finsift-dev/finsift/internal/enrich"
	"github.com/finsift-dev/finsift/internal/model"
)

// Thresholds parameterize the composite risk flags. Interest rates are
// percentage numbers, so a HighInterestRate of 10 means 10%.
type Thresholds struct {
	HighInterestRate  float64 `yaml:"high_interest_rate"`
	LeverageLimit     float64 `yaml:"leverage_limit"`
	LargeTransfer     float64 `yaml:"large_transfer"`
	VeryLargeTransfer float64 `yaml:"very_large_transfer"`
}

// DefaultThresholds returns the standard risk thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{
		HighInterestRate:  10,
		LeverageLimit:     2,
		LargeTransfer:     0.5,
		VeryLargeTransfer: 0.9,
	}
}

// BatchStats carries the whole-batch statistics the per-row mapping needs.
type BatchStats struct {
	MeanAmount float64
}

// NewBatchStats computes batch statistics over the enriched rows.
func NewBatchStats(rows []enrich.Row) BatchStats {
	if len(rows) == 0 {
		return BatchStats{}
	}
	amounts := make([]float64, len(rows))
	for i, r := range rows {
		amounts[i] = r.Transaction.Amount.InexactFloat64()
	}
	return BatchStats{MeanAmount: stat.Mean(amounts, nil)}
}

// Compute derives the full feature matrix for a batch of enriched rows and
// projects it to the fixed Columns list, with every remaining gap filled
// with 0.
func Compute(rows []enrich.Row, th Thresholds, now time.Time) *Matrix {
	stats := NewBatchStats(rows)
	out := make([][]float64, len(rows))
	for i, r := range rows {
		f := ComputeRow(r, stats, th, now)
		out[i] = f.vector()
	}
	return &Matrix{Columns: Columns, Rows: out}
}

// RowFeatures holds every derived feature for one transaction before the
// projection to the modeling columns. Gaps are NaN until vector() fills
// them.
type RowFeatures struct {
	TransactionTypeID float64
	Amount            float64

	OriginAccountTypeID   float64
	OriginAccountStatusID float64
	OriginBalance         float64
	DestAccountTypeID     float64
	DestAccountStatusID   float64
	DestBalance           float64
	OriginCustomerTypeID  float64
	DestCustomerTypeID    float64

	OriginLoanCount       float64
	OriginTotalPrincipal  float64
	OriginAvgInterestRate float64
	DestLoanCount         float64
	DestTotalPrincipal    float64
	DestAvgInterestRate   float64
	OriginLoanStatus      map[string]float64
	DestLoanStatus        map[string]float64

	AmountToOriginBalance  float64
	AmountToDestBalance    float64
	AmountToAvgTransaction float64

	OriginAccountInactive float64
	DestAccountInactive   float64
	OriginIsChecking      float64
	DestIsChecking        float64
	OriginIsSavings       float64
	DestIsSavings         float64

	OriginAge     float64
	DestAge       float64
	AgeDifference float64

	OriginIsIndividual float64
	DestIsIndividual   float64
	OriginIsBusiness   float64
	DestIsBusiness     float64

	OriginLoanLeverage float64
	DestLoanLeverage   float64
	OriginHasLoans     float64
	DestHasLoans       float64
	OriginHighInterest float64
	DestHighInterest   float64

	TransactionHour    float64
	TransactionWeekday float64
	TransactionMonth   float64
	TransactionQuarter float64
	IsWeekend          float64
	IsBusinessHours    float64
	IsNightTime        float64

	LargeTransferFlag     float64
	VeryLargeTransferFlag float64
	UnusualTimingFlag     float64
	HighRiskFlag          float64
	CrossTypeTransfer     float64
}

// ComputeRow maps one enriched row to its features using precomputed batch
// statistics.
func ComputeRow(r enrich.Row, stats BatchStats, th Thresholds, now time.Time) RowFeatures {
	tx := r.Transaction
	f := RowFeatures{
		TransactionTypeID: float64(tx.TransactionTypeID),
		Amount:            tx.Amount.InexactFloat64(),
	}

	// Role-scoped context.
	f.OriginAccountTypeID, f.OriginAccountStatusID, f.OriginBalance, f.OriginCustomerTypeID = roleAccount(r.Origin)
	f.DestAccountTypeID, f.DestAccountStatusID, f.DestBalance, f.DestCustomerTypeID = roleAccount(r.Dest)

	f.OriginLoanCount, f.OriginTotalPrincipal, f.OriginAvgInterestRate, f.OriginLoanStatus = roleLoans(r.Origin)
	f.DestLoanCount, f.DestTotalPrincipal, f.DestAvgInterestRate, f.DestLoanStatus = roleLoans(r.Dest)

	// Amount ratios. A zero denominator yields a gap, not infinity; gaps
	// become 0 in the final fill.
	f.AmountToOriginBalance = nanDiv(f.Amount, f.OriginBalance)
	f.AmountToDestBalance = nanDiv(f.Amount, f.DestBalance)
	f.AmountToAvgTransaction = nanDiv(f.Amount, stats.MeanAmount)

	// Account status and type flags.
	f.OriginAccountInactive = b2f(r.Origin.AccountStatus == "Inactive" || r.Origin.AccountStatus == "Closed")
	f.DestAccountInactive = b2f(r.Dest.AccountStatus == "Inactive" || r.Dest.AccountStatus == "Closed")
	f.OriginIsChecking = b2f(r.Origin.AccountType == "Checking")
	f.DestIsChecking = b2f(r.Dest.AccountType == "Checking")
	f.OriginIsSavings = b2f(r.Origin.AccountType == "Savings")
	f.DestIsSavings = b2f(r.Dest.AccountType == "Savings")

	// Demographics. Age is whole years by 365-day division, not
	// calendar-aware.
	f.OriginAge = age(r.Origin.Customer, now)
	f.DestAge = age(r.Dest.Customer, now)
	f.AgeDifference = f.OriginAge - f.DestAge
	f.OriginIsIndividual = b2f(r.Origin.CustomerType == "Individual")
	f.DestIsIndividual = b2f(r.Dest.CustomerType == "Individual")
	f.OriginIsBusiness = b2f(r.Origin.CustomerType == "Small Business")
	f.DestIsBusiness = b2f(r.Dest.CustomerType == "Small Business")

	// Loan risk.
	f.OriginLoanLeverage = nanDiv(f.OriginTotalPrincipal, f.OriginBalance)
	f.DestLoanLeverage = nanDiv(f.DestTotalPrincipal, f.DestBalance)
	f.OriginHasLoans = b2f(f.OriginLoanCount > 0)
	f.DestHasLoans = b2f(f.DestLoanCount > 0)
	f.OriginHighInterest = b2f(f.OriginAvgInterestRate > th.HighInterestRate)
	f.DestHighInterest = b2f(f.DestAvgInterestRate > th.HighInterestRate)

	// Temporal. Weekday follows the 0=Monday convention.
	ts := tx.TransactionDate
	f.TransactionHour = float64(ts.Hour())
	f.TransactionWeekday = float64((int(ts.Weekday()) + 6) % 7)
	f.TransactionMonth = float64(int(ts.Month()))
	f.TransactionQuarter = float64((int(ts.Month())-1)/3 + 1)
	f.IsWeekend = b2f(f.TransactionWeekday >= 5)
	f.IsBusinessHours = b2f(f.TransactionHour >= 9 && f.TransactionHour <= 17)
	f.IsNightTime = b2f(f.TransactionHour >= 22 || f.TransactionHour <= 6)

	// Composite risk flags. NaN comparisons are false, so missing context
	// never raises a flag on its own.
	f.LargeTransferFlag = b2f(f.AmountToOriginBalance > th.LargeTransfer)
	f.VeryLargeTransferFlag = b2f(f.AmountToOriginBalance > th.VeryLargeTransfer)
	f.UnusualTimingFlag = b2f(f.IsNightTime == 1 || f.IsWeekend == 1)
	f.HighRiskFlag = b2f(f.OriginAccountInactive == 1 || f.DestAccountInactive == 1 ||
		f.OriginLoanLeverage > th.LeverageLimit || f.DestLoanLeverage > th.LeverageLimit)
	f.CrossTypeTransfer = b2f(r.Origin.CustomerType != r.Dest.CustomerType)

	return f
}

// vector projects the features to the Columns order, replacing every
// remaining NaN with 0.
func (f *RowFeatures) vector() []float64 {
	v := []float64{
		f.TransactionTypeID, f.Amount,
		f.OriginAccountTypeID, f.OriginAccountStatusID, f.OriginBalance,
		f.DestAccountTypeID, f.DestAccountStatusID, f.DestBalance,
		f.OriginCustomerTypeID, f.DestCustomerTypeID,
		f.OriginLoanCount, f.OriginTotalPrincipal, f.OriginAvgInterestRate,
		f.DestLoanCount, f.DestTotalPrincipal, f.DestAvgInterestRate,
		f.OriginLoanStatus["Active"], f.OriginLoanStatus["Overdue"], f.OriginLoanStatus["Paid Off"],
		f.DestLoanStatus["Active"], f.DestLoanStatus["Overdue"], f.DestLoanStatus["Paid Off"],
		f.AmountToOriginBalance, f.AmountToDestBalance, f.AmountToAvgTransaction,
		f.OriginAccountInactive, f.DestAccountInactive, f.AgeDifference,
		f.OriginLoanLeverage, f.DestLoanLeverage,
		f.TransactionHour, f.TransactionWeekday, f.TransactionMonth, f.TransactionQuarter,
		f.IsWeekend, f.IsBusinessHours, f.IsNightTime,
		f.LargeTransferFlag, f.VeryLargeTransferFlag, f.UnusualTimingFlag, f.HighRiskFlag, f.CrossTypeTransfer,
	}
	for i, x := range v {
		if math.IsNaN(x) {
			v[i] = 0
		}
	}
	return v
}

func roleAccount(ctx enrich.RoleContext) (typeID, statusID, balance, customerTypeID float64) {
	typeID, statusID, balance, customerTypeID = math.NaN(), math.NaN(), math.NaN(), math.NaN()
	if a := ctx.Account; a != nil {
		typeID = float64(a.AccountTypeID)
		statusID = float64(a.AccountStatusID)
		balance = a.Balance.InexactFloat64()
	}
	if c := ctx.Customer; c != nil {
		customerTypeID = float64(c.CustomerTypeID)
	}
	return
}

func roleLoans(ctx enrich.RoleContext) (count, totalPrincipal, avgRate float64, statusCounts map[string]float64) {
	l := ctx.Loans
	if l == nil {
		return math.NaN(), math.NaN(), math.NaN(), nil
	}
	statusCounts = make(map[string]float64, len(enrich.PivotStatuses))
	for _, status := range enrich.PivotStatuses {
		statusCounts[status] = float64(l.StatusCount(status))
	}
	return float64(l.Count), l.TotalPrincipal.InexactFloat64(), l.AvgInterestRate, statusCounts
}

// age returns whole years as (now - date of birth) / 365 days, or NaN when
// the customer context is missing.
func age(c *model.Customer, now time.Time) float64 {
	if c == nil || c.DateOfBirth.IsZero() {
		return math.NaN()
	}
	days := int64(now.Sub(c.DateOfBirth).Hours() / 24)
	return float64(days / 365)
}

// nanDiv divides a by b, treating a zero or NaN denominator as a gap.
func nanDiv(a, b float64) float64 {
	if b == 0 || math.IsNaN(a) || math.IsNaN(b) {
		return math.NaN()
	}
	return a / b
}

func b2f(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
