package clean

import "github.com/rs/zerolog"

// Drop reasons tracked per table.
const (
	DropCritical     = "missing_critical"
	DropBadDate      = "bad_date"
	DropDuplicate    = "duplicate_row"
	DropDuplicateKey = "duplicate_key"
	DropBadCategory  = "invalid_category"
	DropFutureDate   = "future_date"
)

// Stats counts what one cleaner did to one table, per drop reason, so a run
// can report exactly which rows it removed and why.
type Stats struct {
	Table   string
	In      int
	Out     int
	Dropped map[string]int
}

func newStats(table string, in int) Stats {
	return Stats{Table: table, In: in, Dropped: make(map[string]int)}
}

func (s *Stats) drop(reason string) {
	s.Dropped[reason]++
}

// TotalDropped returns the number of rows removed across all reasons.
func (s *Stats) TotalDropped() int {
	n := 0
	for _, c := range s.Dropped {
		n += c
	}
	return n
}

// Log emits one structured summary line for the cleaned table.
func (s *Stats) Log(log zerolog.Logger) {
	ev := log.Info().Str("table", s.Table).Int("rows_in", s.In).Int("rows_out", s.Out)
	for reason, count := range s.Dropped {
		ev = ev.Int("dropped_"+reason, count)
	}
	ev.Msg("table cleaned")
}
