package ocr

import (
	"strings"
	"testing"
)

const tsvHeader = "level\tpage_num\tblock_num\tpar_num\tline_num\tword_num\tleft\ttop\twidth\theight\tconf\ttext"

func TestParseTSV(t *testing.T) {
	data := strings.Join([]string{
		tsvHeader,
		"1\t1\t0\t0\t0\t0\t0\t0\t1000\t1400\t-1\t",
		"5\t1\t1\t1\t1\t1\t10\t20\t50\t14\t90\tFacture",
		"5\t1\t1\t1\t1\t2\t70\t20\t60\t14\t80\t120,00",
		"5\t1\t1\t1\t1\t3\t140\t20\t30\t14\t0\t.",
		"",
	}, "\n")

	tokens, conf := ParseTSV([]byte(data))

	if len(tokens) != 2 {
		t.Fatalf("len(tokens) = %d, want 2", len(tokens))
	}
	if tokens[0].Text != "Facture" || tokens[0].Left != 10 || tokens[0].Top != 20 {
		t.Errorf("tokens[0] = %+v", tokens[0])
	}
	if tokens[1].Text != "120,00" || tokens[1].Confidence != 80 {
		t.Errorf("tokens[1] = %+v", tokens[1])
	}
	if conf != 0.85 {
		t.Errorf("mean confidence = %v, want 0.85", conf)
	}
}

func TestParseTSVSkipsMalformedRows(t *testing.T) {
	data := strings.Join([]string{
		tsvHeader,
		"too\tfew\tcolumns",
		"5\t1\t1\t1\t1\t1\tx\t20\t50\t14\t90\tFacture",
		"5\t1\t1\t1\t1\t2\t70\t20\t60\t14\tabc\tword",
		"5\t1\t1\t1\t1\t3\t70\t20\t60\t14\t75\t ",
	}, "\n")

	tokens, conf := ParseTSV([]byte(data))

	if len(tokens) != 0 {
		t.Errorf("len(tokens) = %d, want 0", len(tokens))
	}
	if conf != 0 {
		t.Errorf("confidence = %v, want 0", conf)
	}
}

func TestParseTSVEmpty(t *testing.T) {
	tokens, conf := ParseTSV(nil)
	if len(tokens) != 0 || conf != 0 {
		t.Errorf("got %d tokens, conf %v", len(tokens), conf)
	}
}
