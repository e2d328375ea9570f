package clean

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/finsift-dev/finsift/internal/dataset"
	"github.com/finsift-dev/finsift/internal/model"
)

// DateOfBirthSentinel fills customer dates of birth that are missing or do
// not parse.
var DateOfBirthSentinel = time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC)

// Customers cleans the raw customers table. A missing AddressID becomes 0
// (no address on file) rather than dropping the row.
func Customers(t *dataset.Table, now time.Time, log zerolog.Logger) ([]model.Customer, Stats, error) {
	if err := t.Require("CustomerID", "AddressID", "CustomerTypeID", "FirstName", "LastName", "DateOfBirth"); err != nil {
		return nil, Stats{}, err
	}
	var (
		colID      = t.Col("CustomerID")
		colAddress = t.Col("AddressID")
		colType    = t.Col("CustomerTypeID")
		colFirst   = t.Col("FirstName")
		colLast    = t.Col("LastName")
		colDOB     = t.Col("DateOfBirth")
	)

	st := newStats("customers", t.Len())
	rows := make([]model.Customer, 0, t.Len())
	for i := range t.Rows {
		id, okID := parseID(t.Cell(i, colID))
		typ, okType := parseID(t.Cell(i, colType))
		if !okID || !okType {
			st.drop(DropCritical)
			continue
		}
		if !ValidCustomerTypes[typ] {
			st.drop(DropBadCategory)
			continue
		}

		// AddressID is not critical here: absent means no address on file.
		addr, ok := parseID(t.Cell(i, colAddress))
		if !ok {
			addr = 0
		}

		dob, ok := parseDate(t.Cell(i, colDOB))
		if !ok {
			dob = DateOfBirthSentinel
		}

		rows = append(rows, model.Customer{
			CustomerID:     id,
			AddressID:      addr,
			CustomerTypeID: typ,
			FirstName:      orUnknown(t.Cell(i, colFirst)),
			LastName:       orUnknown(t.Cell(i, colLast)),
			DateOfBirth:    dob,
		})
	}

	rows = finish(rows, rules[model.Customer]{
		fingerprint: func(c model.Customer) string {
			return fmt.Sprintf("%d|%d|%d|%s|%s|%d", c.CustomerID, c.AddressID, c.CustomerTypeID, c.FirstName, c.LastName, c.DateOfBirth.Unix())
		},
		key:  func(c model.Customer) int64 { return c.CustomerID },
		date: func(c model.Customer) time.Time { return c.DateOfBirth },
	}, now, &st)

	st.Log(log)
	return rows, st, nil
}
