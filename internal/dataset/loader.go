// Package dataset loads the raw CSV tables of a data directory. A missing
// file or a missing expected column is a structural error and aborts the run;
// everything inside the cells is passed through untouched for the cleaners.
package dataset

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrMissingFile reports a required table file absent from the data directory.
var ErrMissingFile = errors.New("missing required data file")

// Dataset holds the eleven raw tables of one pipeline run.
type Dataset struct {
	Transactions     *Table
	TransactionTypes *Table
	Accounts         *Table
	AccountTypes     *Table
	AccountStatuses  *Table
	Customers        *Table
	CustomerTypes    *Table
	Addresses        *Table
	Branches         *Table
	Loans            *Table
	LoanStatuses     *Table
}

// tableSpec names one required file and the columns it must carry.
type tableSpec struct {
	file    string
	columns []string
	assign  func(*Dataset, *Table)
}

var tableSpecs = []tableSpec{
	{
		file:    "transactions",
		columns: []string{"TransactionID", "AccountOriginID", "AccountDestinationID", "TransactionTypeID", "Amount", "TransactionDate", "BranchID", "Description"},
		assign:  func(d *Dataset, t *Table) { d.Transactions = t },
	},
	{
		file:    "transaction_types",
		columns: []string{"TransactionTypeID", "TypeName"},
		assign:  func(d *Dataset, t *Table) { d.TransactionTypes = t },
	},
	{
		file:    "accounts",
		columns: []string{"AccountID", "CustomerID", "AccountTypeID", "AccountStatusID", "Balance", "OpeningDate"},
		assign:  func(d *Dataset, t *Table) { d.Accounts = t },
	},
	{
		file:    "account_types",
		columns: []string{"AccountTypeID", "TypeName"},
		assign:  func(d *Dataset, t *Table) { d.AccountTypes = t },
	},
	{
		file:    "account_statuses",
		columns: []string{"AccountStatusID", "StatusName"},
		assign:  func(d *Dataset, t *Table) { d.AccountStatuses = t },
	},
	{
		file:    "customers",
		columns: []string{"CustomerID", "AddressID", "CustomerTypeID", "FirstName", "LastName", "DateOfBirth"},
		assign:  func(d *Dataset, t *Table) { d.Customers = t },
	},
	{
		file:    "customer_types",
		columns: []string{"CustomerTypeID", "TypeName"},
		assign:  func(d *Dataset, t *Table) { d.CustomerTypes = t },
	},
	{
		file:    "addresses",
		columns: []string{"AddressID", "Street", "City", "Country"},
		assign:  func(d *Dataset, t *Table) { d.Addresses = t },
	},
	{
		file:    "branches",
		columns: []string{"BranchID", "AddressID", "BranchName"},
		assign:  func(d *Dataset, t *Table) { d.Branches = t },
	},
	{
		file:    "loans",
		columns: []string{"LoanID", "AccountID", "LoanStatusID", "PrincipalAmount", "InterestRate", "StartDate", "EstimatedEndDate"},
		assign:  func(d *Dataset, t *Table) { d.Loans = t },
	},
	{
		file:    "loan_statuses",
		columns: []string{"LoanStatusID", "StatusName"},
		assign:  func(d *Dataset, t *Table) { d.LoanStatuses = t },
	},
}

// Load reads all required tables from dir and validates their schemas.
func Load(dir string) (*Dataset, error) {
	var ds Dataset
	for _, spec := range tableSpecs {
		path := filepath.Join(dir, spec.file+".csv")
		f, err := os.Open(path)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, fmt.Errorf("%w: %s.csv", ErrMissingFile, spec.file)
			}
			return nil, fmt.Errorf("opening %s: %w", path, err)
		}

		t, err := ReadTable(spec.file, f)
		f.Close()
		if err != nil {
			return nil, err
		}
		if err := t.Require(spec.columns...); err != nil {
			return nil, err
		}
		spec.assign(&ds, t)
	}
	return &ds, nil
}
