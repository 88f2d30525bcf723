package annotate

import (
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/npetit/facturescan/constants"
	"github.com/npetit/facturescan/internal/entity"
)

func whiteImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	return img
}

func isWhite(c color.Color) bool {
	r, g, b, _ := c.RGBA()
	return r == 0xffff && g == 0xffff && b == 0xffff
}

func TestRenderDrawsBoxes(t *testing.T) {
	src := whiteImage(200, 200)
	boxes := map[constants.FieldKind]*entity.Box{
		constants.FieldGrossAmount: {Left: 50, Top: 100, Width: 80, Height: 20},
	}

	out := Render(src, boxes)

	if out.Bounds() != src.Bounds() {
		t.Fatalf("bounds = %v, want %v", out.Bounds(), src.Bounds())
	}
	// The stroke runs along the box edge.
	if isWhite(out.At(50, 100)) {
		t.Error("pixel on box edge still white, expected a stroke")
	}
	// Far corner stays untouched.
	if !isWhite(out.At(195, 195)) {
		t.Error("pixel outside all boxes was painted")
	}
}

func TestRenderWithoutBoxes(t *testing.T) {
	src := whiteImage(50, 50)

	out := Render(src, nil)

	if out.Bounds() != src.Bounds() {
		t.Fatalf("bounds = %v, want %v", out.Bounds(), src.Bounds())
	}
	for _, p := range []image.Point{{0, 0}, {25, 25}, {49, 49}} {
		if !isWhite(out.At(p.X, p.Y)) {
			t.Errorf("pixel %v changed on empty box map", p)
		}
	}
}
