package ocr

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

// Preprocess writes an OCR-friendly copy of the scan: grayscale with
// boosted contrast and a sharpening pass to firm up thin strokes.
// Returns (outPath, cleanup, err); call cleanup() to remove the temp file.
func Preprocess(path string) (string, func(), error) {
	src, err := imaging.Open(path)
	if err != nil {
		return "", nil, fmt.Errorf("open image: %w", err)
	}

	img := imaging.Grayscale(src)
	img = imaging.AdjustContrast(img, 30)
	img = imaging.Sharpen(img, 1.5)

	tmpDir, err := os.MkdirTemp("", "facturescan-*")
	if err != nil {
		return "", nil, err
	}
	cleanup := func() { _ = os.RemoveAll(tmpDir) }

	out := filepath.Join(tmpDir, "preprocessed.png")
	if err := imaging.Save(img, out); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("save preprocessed image: %w", err)
	}
	return out, cleanup, nil
}
