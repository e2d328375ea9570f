package enrich

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finsift-dev/finsift/internal/model"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func testTables() *Tables {
	return &Tables{
		Transactions: []model.Transaction{
			{TransactionID: 1, AccountOriginID: 100, AccountDestinationID: 200, TransactionTypeID: 1, Amount: dec("50"), TransactionDate: date(2024, 1, 10), BranchID: 1},
			{TransactionID: 2, AccountOriginID: 100, AccountDestinationID: 999, TransactionTypeID: 2, Amount: dec("75"), TransactionDate: date(2024, 1, 11), BranchID: 7},
		},
		Accounts: []model.Account{
			{AccountID: 100, CustomerID: 10, AccountTypeID: 1, AccountStatusID: 1, Balance: dec("1000"), OpeningDate: date(2020, 1, 1)},
			{AccountID: 200, CustomerID: 20, AccountTypeID: 2, AccountStatusID: 2, Balance: dec("5000"), OpeningDate: date(2019, 1, 1)},
		},
		Customers: []model.Customer{
			{CustomerID: 10, AddressID: 1, CustomerTypeID: 1, FirstName: "Jo", LastName: "Doe", DateOfBirth: date(1990, 4, 1)},
			{CustomerID: 20, AddressID: 2, CustomerTypeID: 2, FirstName: "Acme", LastName: "Inc", DateOfBirth: date(1980, 4, 1)},
		},
		Addresses: []model.Address{
			{AddressID: 1, Street: "12 Main St", City: "Springfield", Country: "United States"},
			{AddressID: 2, Street: "9 King Rd", City: "Shelbyville", Country: "United States"},
			{AddressID: 3, Street: "1 Branch Way", City: "Springfield", Country: "United States"},
		},
		Branches: []model.Branch{
			{BranchID: 1, AddressID: 3, BranchName: "Downtown"},
		},
		Loans: []model.Loan{
			{LoanID: 1, AccountID: 100, LoanStatusID: 1, PrincipalAmount: dec("10000"), InterestRate: 12, StartDate: date(2023, 1, 1), EstimatedEndDate: date(2028, 1, 1)},
			{LoanID: 2, AccountID: 100, LoanStatusID: 2, PrincipalAmount: dec("5000"), InterestRate: 8, StartDate: date(2022, 1, 1), EstimatedEndDate: date(2027, 1, 1)},
		},
		TransactionTypes: model.Lookup{1: "Deposit", 2: "Withdrawal", 3: "Transfer", 4: "Payment"},
		AccountTypes:     model.Lookup{1: "Checking", 2: "Savings"},
		AccountStatuses:  model.Lookup{1: "Active", 2: "Inactive", 3: "Closed"},
		CustomerTypes:    model.Lookup{1: "Individual", 2: "Small Business"},
		LoanStatuses:     model.Lookup{1: "Active", 2: "Overdue", 3: "Paid Off"},
	}
}

func TestBuild_RowCountPreserved(t *testing.T) {
	tables := testTables()
	rows := Build(tables)
	assert.Len(t, rows, len(tables.Transactions))

	// Row count holds even when every reference dangles.
	tables.Accounts = nil
	tables.Branches = nil
	tables.Loans = nil
	rows = Build(tables)
	assert.Len(t, rows, len(tables.Transactions))
}

func TestBuild_RoleContexts(t *testing.T) {
	rows := Build(testTables())
	require.Len(t, rows, 2)

	r := rows[0]
	assert.Equal(t, "Deposit", r.TransactionType)

	require.NotNil(t, r.Origin.Account)
	assert.Equal(t, int64(100), r.Origin.Account.AccountID)
	assert.Equal(t, "Checking", r.Origin.AccountType)
	assert.Equal(t, "Active", r.Origin.AccountStatus)
	require.NotNil(t, r.Origin.Customer)
	assert.Equal(t, "Individual", r.Origin.CustomerType)
	require.NotNil(t, r.Origin.Address)
	assert.Equal(t, "Springfield", r.Origin.Address.City)

	require.NotNil(t, r.Dest.Account)
	assert.Equal(t, "Savings", r.Dest.AccountType)
	assert.Equal(t, "Inactive", r.Dest.AccountStatus)
	assert.Equal(t, "Small Business", r.Dest.CustomerType)
}

func TestBuild_DanglingReferencesAreNil(t *testing.T) {
	rows := Build(testTables())
	r := rows[1]

	// Destination account 999 does not exist.
	assert.Nil(t, r.Dest.Account)
	assert.Empty(t, r.Dest.AccountType)
	assert.Empty(t, r.Dest.AccountStatus)
	assert.Nil(t, r.Dest.Customer)
	assert.Nil(t, r.Dest.Loans)

	// Branch 7 does not exist.
	assert.Nil(t, r.Branch.Branch)
	assert.Nil(t, r.Branch.Address)
}

func TestBuild_BranchContext(t *testing.T) {
	rows := Build(testTables())
	r := rows[0]
	require.NotNil(t, r.Branch.Branch)
	assert.Equal(t, "Downtown", r.Branch.Branch.BranchName)
	require.NotNil(t, r.Branch.Address)
	assert.Equal(t, "1 Branch Way", r.Branch.Address.Street)
}

func TestAggregateLoans(t *testing.T) {
	tables := testTables()
	byAccount := AggregateLoans(tables.Loans, tables.LoanStatuses)
	require.Contains(t, byAccount, int64(100))

	s := byAccount[100]
	assert.Equal(t, 2, s.Count)
	assert.Equal(t, "15000", s.TotalPrincipal.String())
	assert.InDelta(t, 10, s.AvgInterestRate, 1e-9)
	assert.InDelta(t, 12, s.MaxInterestRate, 1e-9)
	assert.InDelta(t, 8, s.MinInterestRate, 1e-9)

	assert.Equal(t, 1, s.StatusCount("Active"))
	assert.Equal(t, 1, s.StatusCount("Overdue"))
	// An account with loans but none of a status reads 0.
	assert.Equal(t, 0, s.StatusCount("Paid Off"))
}

func TestWrite_PrefixedColumnsAndNulls(t *testing.T) {
	rows := Build(testTables())

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, rows))

	out := buf.String()
	assert.Contains(t, out, "Origin_Balance")
	assert.Contains(t, out, "Dest_Balance")
	assert.Contains(t, out, "Branch_Country")
	assert.Contains(t, out, "Origin_LoanStatus_Paid Off")

	header := Header()
	for _, r := range rows {
		assert.Len(t, cells(r), len(header))
	}
}
