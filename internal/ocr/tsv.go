package ocr

import (
	"strconv"
	"strings"

	"github.com/npetit/facturescan/internal/entity"
)

// Tesseract TSV columns:
// level page_num block_num par_num line_num word_num left top width height conf text
const (
	tsvColLeft   = 6
	tsvColTop    = 7
	tsvColWidth  = 8
	tsvColHeight = 9
	tsvColConf   = 10
	tsvColText   = 11
	tsvColumns   = 12
)

// ParseTSV converts tesseract TSV output into word tokens and the mean
// word confidence in 0..1. Structural rows (conf -1) and zero-confidence
// noise are dropped, matching what the locator index expects.
func ParseTSV(data []byte) ([]entity.Token, float32) {
	lines := strings.Split(string(data), "\n")

	var tokens []entity.Token
	var sum, n float64
	for i, ln := range lines {
		if i == 0 || ln == "" { // header
			continue
		}
		cols := strings.Split(ln, "\t")
		if len(cols) < tsvColumns {
			continue
		}
		conf, err := strconv.ParseFloat(cols[tsvColConf], 64)
		if err != nil || conf <= 0 {
			continue
		}
		text := strings.TrimSpace(strings.Join(cols[tsvColText:], "\t"))
		if text == "" {
			continue
		}
		left, err1 := strconv.Atoi(cols[tsvColLeft])
		top, err2 := strconv.Atoi(cols[tsvColTop])
		width, err3 := strconv.Atoi(cols[tsvColWidth])
		height, err4 := strconv.Atoi(cols[tsvColHeight])
		if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
			continue
		}
		tokens = append(tokens, entity.Token{
			Text:       text,
			Left:       left,
			Top:        top,
			Width:      width,
			Height:     height,
			Confidence: conf,
		})
		sum += conf
		n++
	}

	if n == 0 {
		return tokens, 0
	}
	return tokens, float32(sum / n / 100.0)
}
