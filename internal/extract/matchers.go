package extract

import "regexp"

// Pattern tables per field kind. Rules are tried in declared order against
// the full text; the first rule whose match also normalizes successfully
// wins for that field and no further rules are tried.
//
// The label vocabulary is the French invoice one: HT (hors taxes, net),
// TTC (toutes taxes comprises, gross), TVA (value-added tax).

var invoiceNumberRules = []*regexp.Regexp{
	regexp.MustCompile(`(?i)facture\s*[n°N]?\s*:?\s*([A-Z0-9\-]+)`),
	regexp.MustCompile(`(?i)invoice\s*[n°N]?\s*:?\s*([A-Z0-9\-]+)`),
	regexp.MustCompile(`(?i)n°\s*:?\s*([A-Z0-9\-]+)`),
	regexp.MustCompile(`(?i)num[ée]ro\s*:?\s*([A-Z0-9\-]+)`),
}

// Date shapes, tried in order: numeric D/M/Y, French month name, ISO-like
// Y/M/D. The matched substring is stored verbatim; no calendar
// normalization is attempted.
var dateRules = []*regexp.Regexp{
	regexp.MustCompile(`(\d{1,2}[/\-.]\d{1,2}[/\-.]\d{2,4})`),
	regexp.MustCompile(`(?i)(\d{1,2}\s+(?:janvier|février|mars|avril|mai|juin|juillet|août|septembre|octobre|novembre|décembre)\s+\d{4})`),
	regexp.MustCompile(`(\d{4}[/\-.]\d{1,2}[/\-.]\d{1,2})`),
}

// Gross amount: group 1 is the amount, group 2 an optional currency symbol
// which, when present, overrides the record's default currency.
var grossRules = []*regexp.Regexp{
	regexp.MustCompile(`(?i)total\s+ttc\s*:?\s*([\d\s,.]+)\s*([€$£]?)`),
	regexp.MustCompile(`(?i)ttc\s*:?\s*([\d\s,.]+)\s*([€$£]?)`),
	regexp.MustCompile(`(?i)total\s*:?\s*([\d\s,.]+)\s*([€$£]?)`),
	regexp.MustCompile(`(?i)montant\s+ttc\s*:?\s*([\d\s,.]+)\s*([€$£]?)`),
}

var netRules = []*regexp.Regexp{
	regexp.MustCompile(`(?i)total\s+ht\s*:?\s*([\d\s,.]+)`),
	regexp.MustCompile(`(?i)ht\s*:?\s*([\d\s,.]+)`),
	regexp.MustCompile(`(?i)montant\s+ht\s*:?\s*([\d\s,.]+)`),
}

// Tax percentage rules: a number immediately followed by %, in the label
// and ordering variants seen on French invoices. A match is accepted only
// when the value lies in 0..30 (plausible VAT rates).
var taxPercentRules = []*regexp.Regexp{
	regexp.MustCompile(`(?i)tva\s*:?\s*([\d\s,.]+)\s*%`),
	regexp.MustCompile(`(?i)taxe\s*:?\s*([\d\s,.]+)\s*%`),
	regexp.MustCompile(`(?i)t\.v\.a\.\s*:?\s*([\d\s,.]+)\s*%`),
	regexp.MustCompile(`(?i)t\.v\.a\s*:?\s*([\d\s,.]+)\s*%`),
	regexp.MustCompile(`(?i)tva\s+([\d\s,.]+)\s*%`),
	regexp.MustCompile(`(?i)([\d\s,.]+)\s*%\s*tva`),
	regexp.MustCompile(`(?i)taux\s+tva\s*:?\s*([\d\s,.]+)\s*%`),
}

// Tax amount rules: a number followed by a currency symbol.
var taxAmountRules = []*regexp.Regexp{
	regexp.MustCompile(`(?i)tva\s*:?\s*([\d\s,.]+)\s*([€$£])`),
	regexp.MustCompile(`(?i)taxe\s*:?\s*([\d\s,.]+)\s*([€$£])`),
	regexp.MustCompile(`(?i)t\.v\.a\.\s*:?\s*([\d\s,.]+)\s*([€$£])`),
	regexp.MustCompile(`(?i)montant\s+tva\s*:?\s*([\d\s,.]+)\s*([€$£])?`),
	regexp.MustCompile(`(?i)tva\s+([\d\s,.]+)\s*([€$£])`),
}

// Generic tax fallback: a labeled bare number with no unit. The captured
// value is disambiguated by magnitude: <= 30 reads as a percentage,
// anything larger as a monetary amount. Real VAT rates sit well below 30
// in all supported jurisdictions; the cutoff is kept as-is for
// compatibility with previously extracted records.
var taxGenericRules = []*regexp.Regexp{
	regexp.MustCompile(`(?i)tva\s*:?\s*([\d\s,.]+)`),
	regexp.MustCompile(`(?i)taxe\s*:?\s*([\d\s,.]+)`),
}

const taxPercentCutoff = 30

// Supplier line screening.
var (
	reLeadingDigit = regexp.MustCompile(`^\d`)
	reDateShaped   = regexp.MustCompile(`^\d{1,2}[/\-.]`)
)

// Address lines: a street-number run followed by a word run.
var reStreetLine = regexp.MustCompile(`(?i)\d+\s+[a-zéèêàù]+`)
