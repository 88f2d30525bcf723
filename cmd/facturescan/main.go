package main

import (
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/npetit/facturescan/internal/ocr"
	"github.com/npetit/facturescan/internal/pipeline"
)

// facturescan runs OCR and field extraction on a single invoice scan and
// prints the structured record to stdout.
func main() {
	var (
		lang       = flag.String("lang", "fra+eng", "tesseract language(s)")
		psm        = flag.Int("psm", 6, "tesseract page segmentation mode")
		allPSMs    = flag.Bool("retry", true, "retry with fallback segmentation modes")
		preprocess = flag.Bool("preprocess", false, "grayscale/contrast/sharpen before OCR")
		verbose    = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()
	if flag.NArg() != 1 {
		os.Stderr.WriteString("usage: facturescan [flags] <image>\n")
		flag.PrintDefaults()
		os.Exit(2)
	}
	path := flag.Arg(0)

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	attempts := []ocr.Attempt{{Lang: *lang, PSM: *psm}}
	if *allPSMs {
		attempts = ocr.DefaultAttempts()
		attempts[0] = ocr.Attempt{Lang: *lang, PSM: *psm}
	}
	ocrx := ocr.NewExtractor(ocr.Config{Attempts: attempts}, logger)

	if *preprocess {
		prepped, cleanup, err := ocr.Preprocess(path)
		if err != nil {
			logger.Warn("preprocess failed, using original image", "error", err)
		} else {
			defer cleanup()
			path = prepped
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	res, err := ocrx.Extract(ctx, path)
	if err != nil {
		logger.Error("ocr failed", "path", path, "error", err)
		os.Exit(1)
	}

	inv, decision := pipeline.New(logger).Extract(res.Text, res.Tokens)

	out := map[string]any{
		"invoice": inv,
		"ocr": map[string]any{
			"language":   res.Language,
			"psm":        res.PSM,
			"confidence": res.Confidence,
		},
	}
	if decision != nil {
		out["reconciliation"] = decision
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		logger.Error("encoding output", "error", err)
		os.Exit(1)
	}
}
