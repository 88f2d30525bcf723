package constants

// FieldKind identifies one extractable invoice field.
type FieldKind string

// Stable values (store these exact strings in DB and JSON).
const (
	FieldSupplier      FieldKind = "supplier"
	FieldDate          FieldKind = "date"
	FieldInvoiceNumber FieldKind = "invoice_number"
	FieldNetAmount     FieldKind = "net_amount"
	FieldGrossAmount   FieldKind = "gross_amount"
	FieldTax           FieldKind = "tax"
	FieldAddress       FieldKind = "address"
)

// FieldOrder is the canonical iteration order for per-field output
// (box lookup, annotation, export columns).
var FieldOrder = []FieldKind{
	FieldSupplier,
	FieldDate,
	FieldInvoiceNumber,
	FieldNetAmount,
	FieldGrossAmount,
	FieldTax,
	FieldAddress,
}

// FieldLabels maps field kinds to the labels drawn on annotated scans.
var FieldLabels = map[FieldKind]string{
	FieldSupplier:      "Fournisseur",
	FieldDate:          "Date",
	FieldInvoiceNumber: "N° Facture",
	FieldNetAmount:     "Montant HT",
	FieldGrossAmount:   "Montant TTC",
	FieldTax:           "TVA",
	FieldAddress:       "Adresse",
}

// DefaultCurrency is assumed when no currency symbol is captured.
const DefaultCurrency = "EUR"
