package clean

import (
	"strings"

	"github.com/texttheater/golang-levenshtein/levenshtein"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Unknown is the sentinel fill for missing non-critical text fields.
const Unknown = "Unknown"

var titleCaser = cases.Title(language.English)

// normalizeText trims surrounding whitespace and title-cases a free-text
// field.
func normalizeText(s string) string {
	return titleCaser.String(strings.TrimSpace(s))
}

// orUnknown substitutes the Unknown sentinel for empty text.
func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return Unknown
	}
	return s
}

// CanonicalMatcher corrects free-text values against a small fixed canonical
// set using edit-distance similarity. Matching is a best-effort correction,
// not validation: it always returns some canonical value, even for wildly
// dissimilar input.
type CanonicalMatcher struct {
	candidates []string
}

// NewCanonicalMatcher builds a matcher over the given canonical values.
func NewCanonicalMatcher(candidates []string) *CanonicalMatcher {
	return &CanonicalMatcher{candidates: candidates}
}

// Match returns the canonical value most similar to s, with its similarity
// ratio in [0,1]. An empty candidate list returns s unchanged with ratio 0.
func (m *CanonicalMatcher) Match(s string) (string, float64) {
	if len(m.candidates) == 0 {
		return s, 0
	}
	source := []rune(strings.ToLower(strings.TrimSpace(s)))

	best, bestRatio := m.candidates[0], -1.0
	for _, c := range m.candidates {
		ratio := levenshtein.RatioForStrings(source, []rune(strings.ToLower(c)), levenshtein.DefaultOptions)
		if ratio > bestRatio {
			best, bestRatio = c, ratio
		}
	}
	return best, bestRatio
}
