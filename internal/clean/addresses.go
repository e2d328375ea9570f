package clean

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/finsift-dev/finsift/internal/dataset"
	"github.com/finsift-dev/finsift/internal/model"
)

// countryMatchWarnRatio is the similarity below which a country correction is
// logged. The correction is still applied; canonicalization is best-effort,
// never a rejection.
const countryMatchWarnRatio = 0.5

// Addresses cleans the raw addresses table. Country values are replaced with
// the closest entry of the canonical country list.
func Addresses(t *dataset.Table, countries *CanonicalMatcher, log zerolog.Logger) ([]model.Address, Stats, error) {
	if err := t.Require("AddressID", "Street", "City", "Country"); err != nil {
		return nil, Stats{}, err
	}
	var (
		colID      = t.Col("AddressID")
		colStreet  = t.Col("Street")
		colCity    = t.Col("City")
		colCountry = t.Col("Country")
	)

	st := newStats("addresses", t.Len())
	rows := make([]model.Address, 0, t.Len())
	for i := range t.Rows {
		id, ok := parseID(t.Cell(i, colID))
		if !ok {
			st.drop(DropCritical)
			continue
		}

		country, ratio := countries.Match(orUnknown(t.Cell(i, colCountry)))
		if ratio < countryMatchWarnRatio {
			log.Debug().Str("raw", t.Cell(i, colCountry)).Str("matched", country).Float64("ratio", ratio).Msg("weak country match")
		}

		rows = append(rows, model.Address{
			AddressID: id,
			Street:    normalizeText(orUnknown(t.Cell(i, colStreet))),
			City:      normalizeText(orUnknown(t.Cell(i, colCity))),
			Country:   normalizeText(country),
		})
	}

	rows = finish(rows, rules[model.Address]{
		fingerprint: func(a model.Address) string {
			return fmt.Sprintf("%d|%s|%s|%s", a.AddressID, a.Street, a.City, a.Country)
		},
		key: func(a model.Address) int64 { return a.AddressID },
	}, time.Time{}, &st)

	st.Log(log)
	return rows, st, nil
}
