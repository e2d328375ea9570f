package clean

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/finsift-dev/finsift/internal/model"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04:05"
)

func writeAll(w io.Writer, header []string, n int, row func(int) []string) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i := 0; i < n; i++ {
		if err := cw.Write(row(i)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

func itoa(n int64) string { return strconv.FormatInt(n, 10) }

func ftoa(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) }

// WriteAccounts writes a cleaned accounts table.
func WriteAccounts(w io.Writer, rows []model.Account) error {
	header := []string{"AccountID", "CustomerID", "AccountTypeID", "AccountStatusID", "Balance", "OpeningDate"}
	return writeAll(w, header, len(rows), func(i int) []string {
		a := rows[i]
		return []string{itoa(a.AccountID), itoa(a.CustomerID), itoa(a.AccountTypeID), itoa(a.AccountStatusID), a.Balance.String(), a.OpeningDate.Format(dateLayout)}
	})
}

// WriteAddresses writes a cleaned addresses table.
func WriteAddresses(w io.Writer, rows []model.Address) error {
	header := []string{"AddressID", "Street", "City", "Country"}
	return writeAll(w, header, len(rows), func(i int) []string {
		a := rows[i]
		return []string{itoa(a.AddressID), a.Street, a.City, a.Country}
	})
}

// WriteBranches writes a cleaned branches table.
func WriteBranches(w io.Writer, rows []model.Branch) error {
	header := []string{"BranchID", "AddressID", "BranchName"}
	return writeAll(w, header, len(rows), func(i int) []string {
		b := rows[i]
		return []string{itoa(b.BranchID), itoa(b.AddressID), b.BranchName}
	})
}

// WriteCustomers writes a cleaned customers table.
func WriteCustomers(w io.Writer, rows []model.Customer) error {
	header := []string{"CustomerID", "AddressID", "CustomerTypeID", "FirstName", "LastName", "DateOfBirth"}
	return writeAll(w, header, len(rows), func(i int) []string {
		c := rows[i]
		return []string{itoa(c.CustomerID), itoa(c.AddressID), itoa(c.CustomerTypeID), c.FirstName, c.LastName, c.DateOfBirth.Format(dateLayout)}
	})
}

// WriteLoans writes a cleaned loans table.
func WriteLoans(w io.Writer, rows []model.Loan) error {
	header := []string{"LoanID", "AccountID", "LoanStatusID", "PrincipalAmount", "InterestRate", "StartDate", "EstimatedEndDate"}
	return writeAll(w, header, len(rows), func(i int) []string {
		l := rows[i]
		return []string{itoa(l.LoanID), itoa(l.AccountID), itoa(l.LoanStatusID), l.PrincipalAmount.String(), ftoa(l.InterestRate), l.StartDate.Format(dateLayout), l.EstimatedEndDate.Format(dateLayout)}
	})
}

// WriteTransactions writes a cleaned transactions table.
func WriteTransactions(w io.Writer, rows []model.Transaction) error {
	header := []string{"TransactionID", "AccountOriginID", "AccountDestinationID", "TransactionTypeID", "Amount", "TransactionDate", "BranchID", "Description"}
	return writeAll(w, header, len(rows), func(i int) []string {
		x := rows[i]
		return []string{itoa(x.TransactionID), itoa(x.AccountOriginID), itoa(x.AccountDestinationID), itoa(x.TransactionTypeID), x.Amount.String(), x.TransactionDate.Format(dateTimeLayout), itoa(x.BranchID), x.Description}
	})
}
