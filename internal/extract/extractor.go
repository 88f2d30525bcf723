package extract

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"

	"github.com/npetit/facturescan/constants"
	"github.com/npetit/facturescan/internal/entity"
)

const (
	supplierScanLines = 10
	addressMaxLines   = 3
)

// Result is the outcome of one extraction pass over raw OCR text: the
// partially-filled record plus, per populated field, the evidence text to
// look up in the token index. The address field carries no evidence; its
// lines are scattered across the document and are not located on the scan.
type Result struct {
	Invoice  *entity.Invoice
	Evidence map[constants.FieldKind]string
}

// builder accumulates fields during a pass and yields the record once at
// the end. A field is written at most once; there is no cross-pattern
// scoring that could overwrite an earlier match.
type builder struct {
	inv      *entity.Invoice
	evidence map[constants.FieldKind]string
}

func (b *builder) set(kind constants.FieldKind, evidence string) {
	if evidence != "" {
		b.evidence[kind] = evidence
	}
}

// Fields extracts all supported invoice fields from raw OCR text. A field
// whose patterns find nothing is left unset; a captured value that fails
// numeric normalization counts as no match for that rule. Fields never
// returns an error: absence is the universal "could not determine" signal.
func Fields(text string) *Result {
	b := &builder{
		inv:      entity.NewInvoice(text),
		evidence: make(map[constants.FieldKind]string),
	}

	if num, ok := firstMatch(invoiceNumberRules, text); ok {
		b.inv.InvoiceNumber = num
		b.set(constants.FieldInvoiceNumber, num)
	}

	if date, ok := firstMatch(dateRules, text); ok {
		b.inv.Date = date
		b.set(constants.FieldDate, date)
	}

	if amount, currency, ok := firstAmountMatch(grossRules, text); ok {
		b.inv.GrossAmount = amount
		if currency != "" {
			b.inv.Currency = currency
		}
		b.set(constants.FieldGrossAmount, amount)
	}

	if amount, _, ok := firstAmountMatch(netRules, text); ok {
		b.inv.NetAmount = amount
		b.set(constants.FieldNetAmount, amount)
	}

	if tax, evidence, ok := extractTax(text); ok {
		b.inv.Tax = tax
		b.set(constants.FieldTax, evidence)
	}

	lines := strings.Split(text, "\n")

	if supplier, ok := supplierLine(lines); ok {
		b.inv.Supplier = supplier
		b.set(constants.FieldSupplier, supplier)
	}

	if address := addressLines(lines); address != "" {
		b.inv.Address = address
	}

	return &Result{Invoice: b.inv, Evidence: b.evidence}
}

// firstMatch runs verbatim-value rules (invoice number, date) and returns
// the first capture.
func firstMatch(rules []*regexp.Regexp, text string) (string, bool) {
	for _, re := range rules {
		if m := re.FindStringSubmatch(text); m != nil {
			return m[1], true
		}
	}
	return "", false
}

// firstAmountMatch runs monetary rules: the first rule whose capture
// normalizes to a valid amount wins. The second capture group, when the
// rule declares one and it matched, is a currency symbol.
func firstAmountMatch(rules []*regexp.Regexp, text string) (amount, currency string, ok bool) {
	for _, re := range rules {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		norm, valid := normalizeAmount(m[1])
		if !valid {
			continue
		}
		if len(m) > 2 {
			currency = m[2]
		}
		return norm, currency, true
	}
	return "", "", false
}

// extractTax tries the three tax pattern families in sequence: labeled
// percentages first, then labeled amounts, then the generic bare-number
// fallback disambiguated by magnitude.
func extractTax(text string) (*entity.TaxValue, string, bool) {
	cutoff := decimal.NewFromInt(taxPercentCutoff)

	for _, re := range taxPercentRules {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		norm, ok := normalizeAmount(m[1])
		if !ok {
			continue
		}
		v, _ := decimal.NewFromString(norm)
		if v.GreaterThan(cutoff) {
			continue
		}
		return &entity.TaxValue{Kind: entity.TaxPercentage, Value: v.StringFixed(2)}, norm, true
	}

	for _, re := range taxAmountRules {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		norm, ok := normalizeAmount(m[1])
		if !ok {
			continue
		}
		v, _ := decimal.NewFromString(norm)
		return &entity.TaxValue{Kind: entity.TaxAmount, Value: v.StringFixed(2)}, norm, true
	}

	for _, re := range taxGenericRules {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		norm, ok := normalizeAmount(m[1])
		if !ok {
			continue
		}
		v, _ := decimal.NewFromString(norm)
		kind := entity.TaxAmount
		if v.LessThanOrEqual(cutoff) {
			kind = entity.TaxPercentage
		}
		return &entity.TaxValue{Kind: kind, Value: v.StringFixed(2)}, norm, true
	}

	return nil, "", false
}

// supplierLine picks the supplier from the first lines of the document:
// the first line with more than 3 non-whitespace characters that does not
// start with a digit and is not date-shaped. Only one line is ever taken.
func supplierLine(lines []string) (string, bool) {
	n := len(lines)
	if n > supplierScanLines {
		n = supplierScanLines
	}
	for _, line := range lines[:n] {
		clean := strings.TrimSpace(line)
		if nonSpaceLen(clean) <= 3 {
			continue
		}
		if reLeadingDigit.MatchString(clean) || reDateShaped.MatchString(clean) {
			continue
		}
		return clean, true
	}
	return "", false
}

// addressLines collects, in document order, lines that look like street
// addresses (digit run followed by a word run) and joins the first few.
func addressLines(lines []string) string {
	var collected []string
	for _, line := range lines {
		if reStreetLine.MatchString(line) {
			collected = append(collected, strings.TrimSpace(line))
			if len(collected) == addressMaxLines {
				break
			}
		}
	}
	return strings.Join(collected, " ")
}

func nonSpaceLen(s string) int {
	n := 0
	for _, r := range s {
		if !unicode.IsSpace(r) {
			n++
		}
	}
	return n
}
