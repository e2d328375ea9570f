package feature

import (
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finsift-dev/finsift/internal/enrich"
	"github.com/finsift-dev/finsift/internal/model"
)

var featNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func row(amount string, ts time.Time) enrich.Row {
	return enrich.Row{
		Transaction: model.Transaction{
			TransactionID:     1,
			TransactionTypeID: 1,
			Amount:            dec(amount),
			TransactionDate:   ts,
		},
	}
}

func withAccount(r enrich.Row, role string, balance string, status string) enrich.Row {
	ctx := enrich.RoleContext{
		Account: &model.Account{
			AccountID: 100, AccountTypeID: 1, AccountStatusID: 1,
			Balance: dec(balance),
		},
		AccountType:   "Checking",
		AccountStatus: status,
	}
	if role == "origin" {
		r.Origin = ctx
	} else {
		r.Dest = ctx
	}
	return r
}

func ts(hour int) time.Time {
	// 2024-01-10 is a Wednesday.
	return time.Date(2024, 1, 10, hour, 30, 0, 0, time.UTC)
}

func TestCompute_AllColumnsPresent(t *testing.T) {
	m := Compute([]enrich.Row{row("100", ts(10))}, DefaultThresholds(), featNow)
	require.Len(t, m.Rows, 1)
	assert.Equal(t, Columns, m.Columns)
	assert.Len(t, m.Rows[0], len(Columns))
}

func TestCompute_NoNaNInOutput(t *testing.T) {
	// A fully dangling row exercises every null path.
	m := Compute([]enrich.Row{row("100", ts(10))}, DefaultThresholds(), featNow)
	for j, v := range m.Rows[0] {
		assert.False(t, math.IsNaN(v), "column %s is NaN", m.Columns[j])
		assert.False(t, math.IsInf(v, 0), "column %s is Inf", m.Columns[j])
	}
}

func TestRatios_ZeroBalanceYieldsZero(t *testing.T) {
	r := withAccount(row("100", ts(10)), "origin", "0", "Active")
	m := Compute([]enrich.Row{r}, DefaultThresholds(), featNow)
	assert.Zero(t, m.Rows[0][m.Col("Amount_to_OriginBalance")])
	assert.Zero(t, m.Rows[0][m.Col("Origin_LoanLeverage")])
}

func TestRatios_Computed(t *testing.T) {
	r := withAccount(row("100", ts(10)), "origin", "1000", "Active")
	r = withAccount(r, "dest", "200", "Active")
	m := Compute([]enrich.Row{r}, DefaultThresholds(), featNow)
	assert.InDelta(t, 0.1, m.Rows[0][m.Col("Amount_to_OriginBalance")], 1e-9)
	assert.InDelta(t, 0.5, m.Rows[0][m.Col("Amount_to_DestBalance")], 1e-9)
}

func TestAmountToAvgTransaction_IsBatchRelative(t *testing.T) {
	rows := []enrich.Row{row("50", ts(10)), row("150", ts(11))}
	m := Compute(rows, DefaultThresholds(), featNow)
	// Batch mean is 100.
	assert.InDelta(t, 0.5, m.Rows[0][m.Col("Amount_to_AvgTransaction")], 1e-9)
	assert.InDelta(t, 1.5, m.Rows[1][m.Col("Amount_to_AvgTransaction")], 1e-9)

	// The same row alone in a batch gets a different value.
	alone := Compute(rows[:1], DefaultThresholds(), featNow)
	assert.InDelta(t, 1.0, alone.Rows[0][m.Col("Amount_to_AvgTransaction")], 1e-9)
}

func TestAccountInactiveFlag(t *testing.T) {
	for status, want := range map[string]float64{
		"Inactive": 1,
		"Closed":   1,
		"Active":   0,
	} {
		r := withAccount(row("10", ts(10)), "origin", "100", status)
		m := Compute([]enrich.Row{r}, DefaultThresholds(), featNow)
		assert.Equal(t, want, m.Rows[0][m.Col("Origin_AccountInactive")], "status %s", status)
	}
}

func TestHighRiskFlag_AnyOf(t *testing.T) {
	// Origin inactive alone is enough.
	r := withAccount(row("10", ts(10)), "origin", "100", "Inactive")
	r = withAccount(r, "dest", "100", "Active")
	m := Compute([]enrich.Row{r}, DefaultThresholds(), featNow)
	assert.Equal(t, 1.0, m.Rows[0][m.Col("HighRiskFlag")])

	// Leverage above the limit alone is enough.
	r = withAccount(row("10", ts(10)), "origin", "100", "Active")
	r.Origin.Loans = &enrich.LoanSummary{Count: 1, TotalPrincipal: dec("1000"), AvgInterestRate: 5}
	m = Compute([]enrich.Row{r}, DefaultThresholds(), featNow)
	assert.Equal(t, 1.0, m.Rows[0][m.Col("HighRiskFlag")])

	// Nothing set: no flag.
	r = withAccount(row("10", ts(10)), "origin", "100", "Active")
	m = Compute([]enrich.Row{r}, DefaultThresholds(), featNow)
	assert.Equal(t, 0.0, m.Rows[0][m.Col("HighRiskFlag")])
}

func TestTransferFlags(t *testing.T) {
	r := withAccount(row("95", ts(10)), "origin", "100", "Active")
	m := Compute([]enrich.Row{r}, DefaultThresholds(), featNow)
	assert.Equal(t, 1.0, m.Rows[0][m.Col("LargeTransferFlag")])
	assert.Equal(t, 1.0, m.Rows[0][m.Col("VeryLargeTransferFlag")])

	r = withAccount(row("60", ts(10)), "origin", "100", "Active")
	m = Compute([]enrich.Row{r}, DefaultThresholds(), featNow)
	assert.Equal(t, 1.0, m.Rows[0][m.Col("LargeTransferFlag")])
	assert.Equal(t, 0.0, m.Rows[0][m.Col("VeryLargeTransferFlag")])
}

func TestTemporalFeatures(t *testing.T) {
	// Wednesday 10:30.
	m := Compute([]enrich.Row{row("10", ts(10))}, DefaultThresholds(), featNow)
	get := func(name string) float64 { return m.Rows[0][m.Col(name)] }

	assert.Equal(t, 10.0, get("TransactionHour"))
	assert.Equal(t, 2.0, get("TransactionWeekday")) // 0=Monday
	assert.Equal(t, 1.0, get("TransactionMonth"))
	assert.Equal(t, 1.0, get("TransactionQuarter"))
	assert.Equal(t, 0.0, get("IsWeekend"))
	assert.Equal(t, 1.0, get("IsBusinessHours"))
	assert.Equal(t, 0.0, get("IsNightTime"))
	assert.Equal(t, 0.0, get("UnusualTimingFlag"))
}

func TestTemporalFeatures_NightAndWeekend(t *testing.T) {
	// Saturday 23:30.
	saturday := time.Date(2024, 1, 13, 23, 30, 0, 0, time.UTC)
	m := Compute([]enrich.Row{row("10", saturday)}, DefaultThresholds(), featNow)
	get := func(name string) float64 { return m.Rows[0][m.Col(name)] }

	assert.Equal(t, 5.0, get("TransactionWeekday"))
	assert.Equal(t, 1.0, get("IsWeekend"))
	assert.Equal(t, 1.0, get("IsNightTime"))
	assert.Equal(t, 0.0, get("IsBusinessHours"))
	assert.Equal(t, 1.0, get("UnusualTimingFlag"))
}

func TestAgeAndCustomerTypeFeatures(t *testing.T) {
	r := row("10", ts(10))
	r.Origin = enrich.RoleContext{
		Account:      &model.Account{AccountID: 1, Balance: dec("100")},
		Customer:     &model.Customer{CustomerID: 10, DateOfBirth: time.Date(1990, 6, 1, 0, 0, 0, 0, time.UTC)},
		CustomerType: "Individual",
	}
	r.Dest = enrich.RoleContext{
		Account:      &model.Account{AccountID: 2, Balance: dec("100")},
		Customer:     &model.Customer{CustomerID: 20, DateOfBirth: time.Date(1980, 6, 1, 0, 0, 0, 0, time.UTC)},
		CustomerType: "Small Business",
	}

	f := ComputeRow(r, BatchStats{MeanAmount: 10}, DefaultThresholds(), featNow)
	assert.InDelta(t, 35, f.OriginAge, 1) // 365-day years, not calendar years
	assert.InDelta(t, 45, f.DestAge, 1)
	assert.InDelta(t, -10, f.AgeDifference, 0.5)
	assert.Equal(t, 1.0, f.OriginIsIndividual)
	assert.Equal(t, 0.0, f.OriginIsBusiness)
	assert.Equal(t, 1.0, f.DestIsBusiness)
	assert.Equal(t, 1.0, f.CrossTypeTransfer)
}

func TestLoanFeatures(t *testing.T) {
	r := withAccount(row("10", ts(10)), "origin", "1000", "Active")
	r.Origin.Loans = &enrich.LoanSummary{
		Count:           2,
		TotalPrincipal:  dec("15000"),
		AvgInterestRate: 11,
		StatusCounts:    map[string]int{"Active": 1, "Overdue": 1},
	}
	f := ComputeRow(r, BatchStats{MeanAmount: 10}, DefaultThresholds(), featNow)
	assert.Equal(t, 2.0, f.OriginLoanCount)
	assert.Equal(t, 15000.0, f.OriginTotalPrincipal)
	assert.InDelta(t, 15, f.OriginLoanLeverage, 1e-9)
	assert.Equal(t, 1.0, f.OriginHasLoans)
	assert.Equal(t, 1.0, f.OriginHighInterest)
	assert.Equal(t, 1.0, f.OriginLoanStatus["Active"])
	assert.Equal(t, 0.0, f.OriginLoanStatus["Paid Off"])

	// No loan context at all: counts project to 0.
	bare := withAccount(row("10", ts(10)), "origin", "1000", "Active")
	m := Compute([]enrich.Row{bare}, DefaultThresholds(), featNow)
	assert.Zero(t, m.Rows[0][m.Col("Origin_LoanCount")])
	assert.Zero(t, m.Rows[0][m.Col("Origin_LoanStatus_Active")])
}

func TestAccountTypeFlags(t *testing.T) {
	r := withAccount(row("10", ts(10)), "origin", "100", "Active")
	f := ComputeRow(r, BatchStats{MeanAmount: 10}, DefaultThresholds(), featNow)
	assert.Equal(t, 1.0, f.OriginIsChecking)
	assert.Equal(t, 0.0, f.OriginIsSavings)
	assert.Equal(t, 0.0, f.DestIsChecking)
}
