// Package annotate draws labeled rectangles around the extracted fields
// on the scanned invoice, for visual verification of the extraction.
package annotate

import (
	"image"

	"github.com/fogleman/gg"

	"github.com/npetit/facturescan/constants"
	"github.com/npetit/facturescan/internal/entity"
)

type rgb struct{ r, g, b float64 }

// fieldColors assigns one color per field kind so the overlay stays
// readable when boxes sit close together.
var fieldColors = map[constants.FieldKind]rgb{
	constants.FieldSupplier:      {0, 0.8, 0},       // green
	constants.FieldDate:          {0.9, 0, 0},       // red
	constants.FieldInvoiceNumber: {0, 0, 0.9},       // blue
	constants.FieldNetAmount:     {1, 0.65, 0},      // orange
	constants.FieldGrossAmount:   {0.9, 0, 0.9},     // magenta
	constants.FieldTax:           {0, 0.75, 0.75},   // cyan
	constants.FieldAddress:       {0.5, 0, 0.5},     // purple
}

const (
	strokeWidth = 3
	labelPadX   = 5
	labelPadY   = 4
)

// Render returns a copy of the scan with one rectangle and label chip per
// located field. Fields without a box are skipped; an empty box map
// returns the image visually unchanged.
func Render(src image.Image, boxes map[constants.FieldKind]*entity.Box) image.Image {
	dc := gg.NewContextForImage(src)

	for _, kind := range constants.FieldOrder {
		box := boxes[kind]
		if box == nil {
			continue
		}
		c := fieldColors[kind]
		label := constants.FieldLabels[kind]

		x := float64(box.Left)
		y := float64(box.Top)
		w := float64(box.Width)
		h := float64(box.Height)

		dc.SetRGB(c.r, c.g, c.b)
		dc.SetLineWidth(strokeWidth)
		dc.DrawRectangle(x, y, w, h)
		dc.Stroke()

		// Label chip above the box, clamped inside the image.
		tw, th := dc.MeasureString(label)
		chipH := th + 2*labelPadY
		chipY := y - chipH - 2
		if chipY < 0 {
			chipY = y + h + 2
		}
		dc.DrawRectangle(x, chipY, tw+2*labelPadX, chipH)
		dc.Fill()

		dc.SetRGB(1, 1, 1)
		dc.DrawString(label, x+labelPadX, chipY+chipH-labelPadY)
	}

	return dc.Image()
}
