package clean

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// dateFormats are tried in order when coercing date cells. Raw exports mix
// formats within a single column.
var dateFormats = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"02 Jan 2006",
	"Jan 2, 2006",
}

// parseID coerces an ID or categorical-code cell to an integer. Values like
// "3.0" that survive a numeric export round-trip are accepted; anything else
// is missing.
func parseID(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != float64(int64(f)) {
		return 0, false
	}
	return int64(f), true
}

// parseFloat coerces a numeric cell, best effort.
func parseFloat(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f, err == nil
}

// parseDecimal coerces a money cell, best effort.
func parseDecimal(s string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}

// parseAmount coerces a transaction amount cell. Two non-standard encodings
// are supported on top of plain numbers: embedded thousands separators
// ("1,234.56") and the "k" shorthand for thousands ("2.5k" -> 2500).
func parseAmount(s string) (decimal.Decimal, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, ",", "")
	if rest, ok := strings.CutSuffix(s, "k"); ok {
		d, ok := parseDecimal(rest)
		if !ok {
			return decimal.Decimal{}, false
		}
		return d.Mul(decimal.NewFromInt(1000)), true
	}
	return parseDecimal(s)
}

// parseDate coerces a date cell, trying each known layout.
func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
