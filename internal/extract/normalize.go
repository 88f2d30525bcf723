package extract

import (
	"strings"

	"github.com/shopspring/decimal"
)

// normalizeAmount turns a captured amount like "1 234,56" into "1234.56".
// The captured text may include stray whitespace from the scan; thousand
// separators (spaces) are removed and a comma decimal separator becomes a
// dot. Returns ok=false when the cleaned text is not a finite non-negative
// number, in which case the caller proceeds as if the pattern had not
// matched.
func normalizeAmount(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "\u00a0", "")
	s = strings.ReplaceAll(s, "\t", "")
	s = strings.ReplaceAll(s, "\n", "")
	s = strings.ReplaceAll(s, ",", ".")
	// OCR output often leaves a dangling separator after the last digit.
	s = strings.TrimSuffix(s, ".")
	if s == "" {
		return "", false
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return "", false
	}
	return s, true
}
