// Package clean normalizes the six raw entity tables. Each cleaner applies
// the same policy with table-specific configuration: coerce IDs, amounts and
// dates best-effort, drop rows missing a critical column, fill sentinel text,
// deduplicate (exact rows first, then primary keys keeping the first seen),
// filter invalid categorical codes, canonicalize free text, drop future
// dates, and sort ascending by primary key. Malformed cells never raise;
// only structural problems (a table missing an expected column) are errors.
package clean

import (
	"sort"
	"time"
)

// Valid categorical-code domains. Rows whose code falls outside its domain
// are removed.
var (
	ValidAccountTypes     = idSet(1, 2, 3, 4, 5)
	ValidAccountStatuses  = idSet(1, 2, 3)
	ValidCustomerTypes    = idSet(1, 2, 3)
	ValidLoanStatuses     = idSet(1, 2, 3)
	ValidTransactionTypes = idSet(1, 2, 3, 4)
)

func idSet(ids ...int64) map[int64]bool {
	m := make(map[int64]bool, len(ids))
	for _, id := range ids {
		m[id] = true
	}
	return m
}

// rules configures the shared finishing steps for one entity table.
type rules[T any] struct {
	// fingerprint renders a row for exact-duplicate detection.
	fingerprint func(T) string
	// key extracts the primary key.
	key func(T) int64
	// date extracts the table's temporal-validity date; nil disables the
	// future-date filter.
	date func(T) time.Time
}

// finish applies the order-sensitive tail of the cleaning policy: exact
// dedup, key dedup (first occurrence wins, so source order matters up to
// here), future-date drop, and ascending key sort.
func finish[T any](rows []T, r rules[T], now time.Time, st *Stats) []T {
	rows = dedupExact(rows, r.fingerprint, st)
	rows = dedupByKey(rows, r.key, st)
	if r.date != nil {
		rows = dropFuture(rows, r.date, now, st)
	}
	sort.SliceStable(rows, func(i, j int) bool { return r.key(rows[i]) < r.key(rows[j]) })
	st.Out = len(rows)
	return rows
}

func dedupExact[T any](rows []T, fingerprint func(T) string, st *Stats) []T {
	seen := make(map[string]bool, len(rows))
	out := rows[:0]
	for _, row := range rows {
		fp := fingerprint(row)
		if seen[fp] {
			st.drop(DropDuplicate)
			continue
		}
		seen[fp] = true
		out = append(out, row)
	}
	return out
}

func dedupByKey[T any](rows []T, key func(T) int64, st *Stats) []T {
	seen := make(map[int64]bool, len(rows))
	out := rows[:0]
	for _, row := range rows {
		k := key(row)
		if seen[k] {
			st.drop(DropDuplicateKey)
			continue
		}
		seen[k] = true
		out = append(out, row)
	}
	return out
}

func dropFuture[T any](rows []T, date func(T) time.Time, now time.Time, st *Stats) []T {
	out := rows[:0]
	for _, row := range rows {
		if date(row).After(now) {
			st.drop(DropFutureDate)
			continue
		}
		out = append(out, row)
	}
	return out
}
