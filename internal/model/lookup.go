package model

// Lookup is an id-to-name mapping parsed from one of the lookup tables
// (transaction_types, account_types, account_statuses, customer_types,
// loan_statuses). Lookup tables carry no cleaning logic of their own.
type Lookup map[int64]string

// Name returns the display name for id, or "" when the id is unknown.
func (l Lookup) Name(id int64) string {
	return l[id]
}
