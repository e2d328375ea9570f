// Package enrich joins the six cleaned entity tables and five lookup tables
// into one denormalized, transaction-centric view. All joins are left-outer:
// the output always has exactly one row per input transaction, and a
// transaction referencing a missing account, customer, branch or loan record
// keeps nil context there instead of being dropped. Null-handling is the
// feature engine's job, not this package's.
package enrich

import "github.com/finsift-dev/finsift/internal/model"

// Tables bundles the cleaned inputs of one run.
type Tables struct {
	Transactions []model.Transaction
	Accounts     []model.Account
	Customers    []model.Customer
	Addresses    []model.Address
	Branches     []model.Branch
	Loans        []model.Loan

	TransactionTypes model.Lookup
	AccountTypes     model.Lookup
	AccountStatuses  model.Lookup
	CustomerTypes    model.Lookup
	LoanStatuses     model.Lookup
}

// RoleContext is the account-side context joined for one role of a
// transaction (origin or destination). Pointer fields are nil when the
// corresponding foreign key dangles.
type RoleContext struct {
	Account       *model.Account
	AccountType   string // "" when unknown
	AccountStatus string
	Customer      *model.Customer
	CustomerType  string
	Address       *model.Address
	Loans         *LoanSummary
}

// BranchContext is the branch joined onto a transaction, with the branch's
// own address.
type BranchContext struct {
	Branch  *model.Branch
	Address *model.Address
}

// Row is one enriched transaction.
type Row struct {
	Transaction     model.Transaction
	TransactionType string
	Origin          RoleContext
	Dest            RoleContext
	Branch          BranchContext
}

// view holds the key-indexed sides of the joins, built once per run.
type view struct {
	accounts  map[int64]*model.Account
	customers map[int64]*model.Customer
	addresses map[int64]*model.Address
	branches  map[int64]*model.Branch
	loans     map[int64]*LoanSummary
	tables    *Tables
}

// Build produces the enriched view. len(result) == len(t.Transactions) holds
// regardless of referential-integrity gaps.
func Build(t *Tables) []Row {
	v := &view{
		accounts:  indexBy(t.Accounts, func(a *model.Account) int64 { return a.AccountID }),
		customers: indexBy(t.Customers, func(c *model.Customer) int64 { return c.CustomerID }),
		addresses: indexBy(t.Addresses, func(a *model.Address) int64 { return a.AddressID }),
		branches:  indexBy(t.Branches, func(b *model.Branch) int64 { return b.BranchID }),
		loans:     AggregateLoans(t.Loans, t.LoanStatuses),
		tables:    t,
	}

	rows := make([]Row, len(t.Transactions))
	for i, tx := range t.Transactions {
		rows[i] = Row{
			Transaction:     tx,
			TransactionType: t.TransactionTypes.Name(tx.TransactionTypeID),
			Origin:          v.roleContext(tx.AccountOriginID),
			Dest:            v.roleContext(tx.AccountDestinationID),
			Branch:          v.branchContext(tx.BranchID),
		}
	}
	return rows
}

// roleContext resolves one role's full account context. The same routine
// serves both roles; the caller supplies the role's account id.
func (v *view) roleContext(accountID int64) RoleContext {
	ctx := RoleContext{Loans: v.loans[accountID]}

	account, ok := v.accounts[accountID]
	if !ok {
		return ctx
	}
	ctx.Account = account
	ctx.AccountType = v.tables.AccountTypes.Name(account.AccountTypeID)
	ctx.AccountStatus = v.tables.AccountStatuses.Name(account.AccountStatusID)

	customer, ok := v.customers[account.CustomerID]
	if !ok {
		return ctx
	}
	ctx.Customer = customer
	ctx.CustomerType = v.tables.CustomerTypes.Name(customer.CustomerTypeID)
	ctx.Address = v.addresses[customer.AddressID]
	return ctx
}

func (v *view) branchContext(branchID int64) BranchContext {
	branch, ok := v.branches[branchID]
	if !ok {
		return BranchContext{}
	}
	return BranchContext{Branch: branch, Address: v.addresses[branch.AddressID]}
}

func indexBy[T any](rows []T, key func(*T) int64) map[int64]*T {
	m := make(map[int64]*T, len(rows))
	for i := range rows {
		if _, seen := m[key(&rows[i])]; seen {
			continue // first occurrence wins
		}
		m[key(&rows[i])] = &rows[i]
	}
	return m
}
