package ocr

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// fakeRunner serves canned tesseract output keyed by psm, and TSV output
// for any invocation whose last argument is "tsv".
type fakeRunner struct {
	textByPSM map[string]string
	tsv       string
	err       error
	calls     [][]string
}

func (f *fakeRunner) Run(_ context.Context, _ string, args ...string) ([]byte, []byte, error) {
	f.calls = append(f.calls, args)
	if f.err != nil {
		return nil, []byte("boom"), f.err
	}
	if args[len(args)-1] == "tsv" {
		return []byte(f.tsv), nil, nil
	}
	psm := ""
	for i, a := range args {
		if a == "--psm" && i+1 < len(args) {
			psm = args[i+1]
		}
	}
	return []byte(f.textByPSM[psm]), nil, nil
}

func TestExtractPicksLongestText(t *testing.T) {
	runner := &fakeRunner{
		textByPSM: map[string]string{
			"6":  "Total",
			"3":  "Facture : F-1\nTotal TTC : 120,00",
			"11": "Fa",
		},
		tsv: strings.Join([]string{
			tsvHeader,
			"5\t1\t1\t1\t1\t1\t10\t20\t50\t14\t90\tFacture",
		}, "\n"),
	}
	e := NewExtractor(Config{Attempts: []Attempt{
		{Lang: "fra+eng", PSM: 6},
		{Lang: "fra+eng", PSM: 3},
		{Lang: "fra+eng", PSM: 11},
	}}, nil)
	e.runner = runner

	res, err := e.Extract(context.Background(), "scan.png")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if res.PSM != 3 {
		t.Errorf("PSM = %d, want 3", res.PSM)
	}
	if !strings.Contains(res.Text, "120,00") {
		t.Errorf("Text = %q", res.Text)
	}
	if len(res.Tokens) != 1 || res.Tokens[0].Text != "Facture" {
		t.Errorf("Tokens = %+v", res.Tokens)
	}
	if res.Confidence != 0.9 {
		t.Errorf("Confidence = %v, want 0.9", res.Confidence)
	}
	// 3 text passes plus one TSV pass with the winning configuration.
	if len(runner.calls) != 4 {
		t.Fatalf("runner calls = %d, want 4", len(runner.calls))
	}
	last := runner.calls[3]
	if last[len(last)-1] != "tsv" {
		t.Errorf("last call args = %v, want trailing tsv", last)
	}
}

func TestExtractAllAttemptsFail(t *testing.T) {
	e := NewExtractor(Config{}, nil)
	e.runner = &fakeRunner{err: errors.New("exit status 1")}

	_, err := e.Extract(context.Background(), "scan.png")
	if err == nil {
		t.Fatal("Extract returned nil error, want failure")
	}
}

func TestArgs(t *testing.T) {
	e := NewExtractor(Config{TessdataDir: "/opt/tessdata"}, nil)

	args := e.args("scan.png", Attempt{Lang: "fra+eng", PSM: 6})

	want := []string{"scan.png", "stdout", "-l", "fra+eng", "--psm", "6", "--tessdata-dir", "/opt/tessdata"}
	if len(args) != len(want) {
		t.Fatalf("args = %v, want %v", args, want)
	}
	for i := range want {
		if args[i] != want[i] {
			t.Fatalf("args[%d] = %q, want %q", i, args[i], want[i])
		}
	}
}
