package enrich

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04:05"
)

// rolePrefixes namespace the joined context columns so both roles of the
// same lookup can coexist in one row.
var rolePrefixes = []string{"Origin_", "Dest_"}

var roleColumns = []string{
	"AccountID", "CustomerID", "AccountTypeID", "AccountType",
	"AccountStatusID", "AccountStatus", "Balance", "OpeningDate",
	"CustomerTypeID", "CustomerType", "FirstName", "LastName", "DateOfBirth",
	"Street", "City", "Country",
	"LoanCount", "TotalPrincipal", "AvgInterestRate", "MaxInterestRate", "MinInterestRate",
}

// Header returns the column names of the enriched artifact, with every
// joined column role- or source-prefixed.
func Header() []string {
	h := []string{
		"TransactionID", "TransactionTypeID", "TransactionTypeName",
		"Amount", "TransactionDate", "Description",
		"BranchID", "Branch_BranchName", "Branch_Street", "Branch_City", "Branch_Country",
	}
	for _, prefix := range rolePrefixes {
		for _, c := range roleColumns {
			h = append(h, prefix+c)
		}
		for _, status := range PivotStatuses {
			h = append(h, prefix+"LoanStatus_"+status)
		}
	}
	return h
}

// Write renders the enriched table as CSV. Missing context renders as empty
// cells, preserving the null-vs-zero distinction for downstream readers.
func Write(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(Header()); err != nil {
		return fmt.Errorf("writing enriched header: %w", err)
	}
	for i, r := range rows {
		if err := cw.Write(cells(r)); err != nil {
			return fmt.Errorf("writing enriched row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

func cells(r Row) []string {
	tx := r.Transaction
	out := []string{
		strconv.FormatInt(tx.TransactionID, 10),
		strconv.FormatInt(tx.TransactionTypeID, 10),
		r.TransactionType,
		tx.Amount.String(),
		tx.TransactionDate.Format(dateTimeLayout),
		tx.Description,
		strconv.FormatInt(tx.BranchID, 10),
	}
	out = append(out, branchCells(r.Branch)...)
	out = append(out, roleCells(r.Origin)...)
	out = append(out, roleCells(r.Dest)...)
	return out
}

func branchCells(b BranchContext) []string {
	cells := make([]string, 4)
	if b.Branch != nil {
		cells[0] = b.Branch.BranchName
	}
	if b.Address != nil {
		cells[1] = b.Address.Street
		cells[2] = b.Address.City
		cells[3] = b.Address.Country
	}
	return cells
}

func roleCells(ctx RoleContext) []string {
	cells := make([]string, 0, len(roleColumns)+len(PivotStatuses))

	if a := ctx.Account; a != nil {
		cells = append(cells,
			strconv.FormatInt(a.AccountID, 10),
			strconv.FormatInt(a.CustomerID, 10),
			strconv.FormatInt(a.AccountTypeID, 10),
			ctx.AccountType,
			strconv.FormatInt(a.AccountStatusID, 10),
			ctx.AccountStatus,
			a.Balance.String(),
			a.OpeningDate.Format(dateLayout),
		)
	} else {
		cells = append(cells, "", "", "", "", "", "", "", "")
	}

	if c := ctx.Customer; c != nil {
		cells = append(cells,
			strconv.FormatInt(c.CustomerTypeID, 10),
			ctx.CustomerType,
			c.FirstName,
			c.LastName,
			c.DateOfBirth.Format(dateLayout),
		)
	} else {
		cells = append(cells, "", "", "", "", "")
	}

	if addr := ctx.Address; addr != nil {
		cells = append(cells, addr.Street, addr.City, addr.Country)
	} else {
		cells = append(cells, "", "", "")
	}

	if l := ctx.Loans; l != nil {
		cells = append(cells,
			strconv.Itoa(l.Count),
			l.TotalPrincipal.String(),
			strconv.FormatFloat(l.AvgInterestRate, 'g', -1, 64),
			strconv.FormatFloat(l.MaxInterestRate, 'g', -1, 64),
			strconv.FormatFloat(l.MinInterestRate, 'g', -1, 64),
		)
		for _, status := range PivotStatuses {
			cells = append(cells, strconv.Itoa(l.StatusCount(status)))
		}
	} else {
		for i := 0; i < 5+len(PivotStatuses); i++ {
			cells = append(cells, "")
		}
	}
	return cells
}
