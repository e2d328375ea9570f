package model

import "time"

// Customer represents a cleaned row from customers.csv.
type Customer struct {
	CustomerID     int64
	AddressID      int64 // 0 = no address on file
	CustomerTypeID int64 // 1..3
	FirstName      string
	LastName       string
	DateOfBirth    time.Time
}

// Address represents a cleaned row from addresses.csv. Country is
// canonicalized against the configured country list.
type Address struct {
	AddressID int64
	Street    string
	City      string
	Country   string
}

// Branch represents a cleaned row from branches.csv.
type Branch struct {
	BranchID   int64
	AddressID  int64
	BranchName string
}
