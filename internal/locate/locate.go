package locate

import (
	"strings"

	"github.com/npetit/facturescan/internal/entity"
)

// Find maps an extracted field value back to its approximate position
// among the recognized tokens and returns the best candidate's bounding
// box, or nil when nothing matches.
//
// The value is normalized, split into words, and the first word is the
// lookup key. A token is a candidate when its normalized text contains the
// first search word or is itself contained in the normalized value.
// Candidates are ranked by the size of the intersection between their word
// set and the search value's word set; on equal scores the first token
// encountered wins. Tokens sharing words can therefore shadow each other —
// the first-encountered tie-break is kept as observed behavior, not a
// correctness guarantee.
func (ix *Index) Find(value string) *entity.Box {
	if ix == nil || value == "" {
		return nil
	}

	norm := normalize(value)
	searchWords := strings.Fields(norm)
	if len(searchWords) == 0 {
		return nil
	}
	first := searchWords[0]

	searchSet := make(map[string]struct{}, len(searchWords))
	for _, w := range searchWords {
		searchSet[w] = struct{}{}
	}

	var best *indexedToken
	bestScore := 0
	for i := range ix.tokens {
		cand := &ix.tokens[i]
		if !strings.Contains(cand.norm, first) && !strings.Contains(norm, cand.norm) {
			continue
		}
		score := 0
		for w := range cand.words {
			if _, ok := searchSet[w]; ok {
				score++
			}
		}
		if score > bestScore {
			bestScore = score
			best = cand
		}
	}

	if best == nil {
		return nil
	}
	return &entity.Box{
		Left:   best.token.Left,
		Top:    best.token.Top,
		Width:  best.token.Width,
		Height: best.token.Height,
	}
}
