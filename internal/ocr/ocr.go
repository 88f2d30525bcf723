package ocr

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/npetit/facturescan/internal/entity"
)

type Config struct {
	Tesseract   string // binary name or absolute path; if empty -> "tesseract"
	TessdataDir string

	// Attempts are tried in order and the longest recognized text wins.
	// Invoice scans vary a lot in layout; psm 6 (uniform block) works for
	// most, psm 3 (automatic) and 11 (sparse) catch the rest, and an
	// English-only pass is the fallback for scans the French model
	// misreads.
	Attempts []Attempt
}

// Attempt is one tesseract configuration to try.
type Attempt struct {
	Lang string
	PSM  int
}

// DefaultAttempts mirrors the configurations proven on French invoices.
func DefaultAttempts() []Attempt {
	return []Attempt{
		{Lang: "fra+eng", PSM: 6},
		{Lang: "fra+eng", PSM: 3},
		{Lang: "fra+eng", PSM: 11},
		{Lang: "eng", PSM: 6},
	}
}

// Result carries the recognized text plus the token-level detail of the
// winning configuration.
type Result struct {
	Text       string
	Tokens     []entity.Token
	Language   string
	PSM        int
	Confidence float32 // mean word confidence, 0..1
	Duration   time.Duration
	Warnings   []string
}

type Extractor struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

func NewExtractor(cfg Config, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if len(cfg.Attempts) == 0 {
		cfg.Attempts = DefaultAttempts()
	}
	return &Extractor{cfg: cfg, runner: execRunner{}, logger: logger}
}

// Extract OCRs one image: each configured attempt runs in order and the
// one producing the longest text wins, then a TSV pass with the winning
// configuration yields the word tokens and their bounding boxes.
func (e *Extractor) Extract(ctx context.Context, path string) (Result, error) {
	start := time.Now()
	e.logger.Debug("starting ocr extraction", "path", path, "attempts", len(e.cfg.Attempts))

	var res Result
	var lastErr error
	for _, att := range e.cfg.Attempts {
		text, err := e.imageToText(ctx, path, att)
		if err != nil {
			lastErr = err
			res.Warnings = append(res.Warnings, fmt.Sprintf("ocr %s psm %d: %v", att.Lang, att.PSM, err))
			continue
		}
		if len(strings.TrimSpace(text)) > len(strings.TrimSpace(res.Text)) {
			res.Text = text
			res.Language = att.Lang
			res.PSM = att.PSM
		}
	}
	if res.Text == "" && lastErr != nil {
		res.Duration = time.Since(start)
		return res, fmt.Errorf("tesseract: all attempts failed: %w", lastErr)
	}

	tokens, conf, err := e.imageToTokens(ctx, path, Attempt{Lang: res.Language, PSM: res.PSM})
	if err != nil {
		// Token detail is best effort; the text alone is still usable.
		res.Warnings = append(res.Warnings, fmt.Sprintf("ocr tsv: %v", err))
	} else {
		res.Tokens = tokens
		res.Confidence = conf
	}

	res.Duration = time.Since(start)
	e.logger.Debug("ocr extraction done",
		"path", path,
		"lang", res.Language,
		"psm", res.PSM,
		"tokens", len(res.Tokens),
		"confidence", res.Confidence,
		"duration_ms", res.Duration.Milliseconds(),
	)
	return res, nil
}

func (e *Extractor) args(path string, att Attempt) []string {
	args := []string{path, "stdout"}
	if att.Lang != "" {
		args = append(args, "-l", att.Lang)
	}
	if att.PSM > 0 {
		args = append(args, "--psm", strconv.Itoa(att.PSM))
	}
	if e.cfg.TessdataDir != "" {
		args = append(args, "--tessdata-dir", e.cfg.TessdataDir)
	}
	return args
}

func (e *Extractor) imageToText(ctx context.Context, path string, att Attempt) (string, error) {
	out, errb, err := e.runner.Run(ctx, e.cfg.Tesseract, e.args(path, att)...)
	if err != nil {
		return "", fmt.Errorf("tesseract: %w: %s", err, truncate(string(errb), 512))
	}
	return string(out), nil
}

// imageToTokens runs tesseract in TSV mode and parses word-level boxes.
func (e *Extractor) imageToTokens(ctx context.Context, path string, att Attempt) ([]entity.Token, float32, error) {
	args := append(e.args(path, att), "tsv")
	out, errb, err := e.runner.Run(ctx, e.cfg.Tesseract, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("tesseract TSV: %w: %s", err, truncate(string(errb), 512))
	}
	tokens, conf := ParseTSV(out)
	return tokens, conf, nil
}
