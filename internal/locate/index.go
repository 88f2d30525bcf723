package locate

import (
	"regexp"
	"strings"

	"github.com/npetit/facturescan/internal/entity"
)

// rePunct strips everything that is not a letter, digit, underscore or
// whitespace. Accented characters are part of the word, not punctuation.
var rePunct = regexp.MustCompile(`[^\p{L}\p{N}_\s]`)

// normalize lowercases and strips punctuation for approximate matching.
func normalize(s string) string {
	return strings.TrimSpace(rePunct.ReplaceAllString(strings.ToLower(s), ""))
}

// indexedToken is a token with its normalized text and word set
// precomputed at index build time.
type indexedToken struct {
	token entity.Token
	norm  string
	words map[string]struct{}
}

// Index is a read-only view over one document's OCR tokens, built once per
// document and discarded with it. Tokens with confidence <= 0 are noise
// and are excluded before indexing.
type Index struct {
	tokens []indexedToken
}

// NewIndex builds the token index. A nil or empty token list yields an
// index on which every lookup misses.
func NewIndex(tokens []entity.Token) *Index {
	ix := &Index{}
	for _, t := range tokens {
		if t.Confidence <= 0 {
			continue
		}
		norm := normalize(t.Text)
		if norm == "" {
			continue
		}
		words := make(map[string]struct{})
		for _, w := range strings.Fields(norm) {
			words[w] = struct{}{}
		}
		ix.tokens = append(ix.tokens, indexedToken{token: t, norm: norm, words: words})
	}
	return ix
}

// Len reports how many tokens survived the confidence filter.
func (ix *Index) Len() int { return len(ix.tokens) }
