package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/npetit/facturescan/constants"
)

// Token is a single OCR-recognized text fragment with its position on the
// scanned page. Confidence is the recognizer's word confidence in 0..100.
type Token struct {
	Text       string  `json:"text"`
	Left       int     `json:"left"`
	Top        int     `json:"top"`
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	Confidence float64 `json:"conf"`
}

// Box is the best-guess location of a field's textual evidence on the scan.
type Box struct {
	Left   int `json:"left"`
	Top    int `json:"top"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// TaxKind discriminates the two tax representations.
type TaxKind string

const (
	TaxPercentage TaxKind = "percentage"
	TaxAmount     TaxKind = "amount"
)

// TaxValue holds the invoice tax either as a percentage of the net amount
// or as an absolute monetary amount, never both. Value is formatted with
// two decimal digits.
type TaxValue struct {
	Kind  TaxKind `json:"kind"`
	Value string  `json:"value"`
}

// IsPercentage reports whether the tax is stored as a rate.
func (t *TaxValue) IsPercentage() bool {
	return t != nil && t.Kind == TaxPercentage
}

// Invoice is the structured record produced by one extraction pass.
// Monetary fields are decimal strings with '.' as separator; an empty
// string means the field could not be determined.
type Invoice struct {
	ID            uuid.UUID                         `json:"id,omitempty"`
	Supplier      string                            `json:"supplier"`
	Date          string                            `json:"date"`
	InvoiceNumber string                            `json:"invoice_number"`
	NetAmount     string                            `json:"net_amount"`
	GrossAmount   string                            `json:"gross_amount"`
	Tax           *TaxValue                         `json:"tax,omitempty"`
	Currency      string                            `json:"currency"`
	Address       string                            `json:"address"`
	FullText      string                            `json:"full_text"`
	FieldBoxes    map[constants.FieldKind]*Box      `json:"field_boxes"`
	SourceFile    string                            `json:"source_file,omitempty"`
	AnnotatedFile string                            `json:"annotated_file,omitempty"`
	CreatedAt     time.Time                         `json:"created_at,omitempty"`
}

// NewInvoice returns an empty record with defaults applied.
func NewInvoice(fullText string) *Invoice {
	return &Invoice{
		Currency:   constants.DefaultCurrency,
		FullText:   fullText,
		FieldBoxes: make(map[constants.FieldKind]*Box),
	}
}
