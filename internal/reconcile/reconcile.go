// Package reconcile cross-validates the monetary fields of an extracted
// invoice using invoice arithmetic: gross = net + tax, with the tax known
// either as an absolute amount or as a percentage of the net.
package reconcile

import (
	"github.com/shopspring/decimal"

	"github.com/npetit/facturescan/constants"
	"github.com/npetit/facturescan/internal/entity"
)

// Rule identifies which derivation fired during a reconciliation pass.
type Rule string

const (
	RuleGrossFromNetAndRate   Rule = "gross_from_net_and_rate"
	RuleGrossFromNetAndTax    Rule = "gross_from_net_and_tax"
	RuleGrossCorrectedByRate  Rule = "gross_corrected_by_rate"
	RuleGrossCorrectedByTax   Rule = "gross_corrected_by_tax"
	RuleRateFromNetAndGross   Rule = "rate_from_net_and_gross"
	RuleNetFromGrossAndRate   Rule = "net_from_gross_and_rate"
	RuleNetFromGrossAndTax    Rule = "net_from_gross_and_tax"
)

// Decision reports what a reconciliation pass changed, for the caller to
// log or surface. Old is empty when a missing field was derived rather
// than an inconsistent one corrected.
type Decision struct {
	Rule  Rule                `json:"rule"`
	Field constants.FieldKind `json:"field"`
	Old   string              `json:"old,omitempty"`
	New   string              `json:"new"`
}

// relativeTolerance is the fraction of the stored value beyond which a
// recomputed amount is considered to disagree and triggers an overwrite.
var relativeTolerance = decimal.NewFromFloat(0.01)

var one = decimal.NewFromInt(1)
var hundred = decimal.NewFromInt(100)

// Reconcile derives a missing monetary field, or corrects an inconsistent
// one, from the other known quantities. At most one derivation happens per
// call; the rules are tried in a fixed priority order and the first
// applicable one fires. With fewer than two known quantities the record is
// returned untouched and the decision is nil.
//
// Reconcile touches only NetAmount, GrossAmount and Tax; it performs no
// I/O and never fails: an unparsable stored value simply counts as absent.
func Reconcile(inv *entity.Invoice) *Decision {
	net, hasNet := parse(inv.NetAmount)
	gross, hasGross := parse(inv.GrossAmount)

	var rate, taxAmt decimal.Decimal
	hasRate, hasTaxAmt := false, false
	if inv.Tax != nil {
		if v, ok := parse(inv.Tax.Value); ok {
			if inv.Tax.Kind == entity.TaxPercentage {
				rate, hasRate = v, true
			} else {
				taxAmt, hasTaxAmt = v, true
			}
		}
	}

	switch {
	case hasNet && hasRate && !hasGross:
		derived := net.Mul(one.Add(rate.Div(hundred)))
		inv.GrossAmount = derived.StringFixed(2)
		return &Decision{Rule: RuleGrossFromNetAndRate, Field: constants.FieldGrossAmount, New: inv.GrossAmount}

	case hasNet && hasTaxAmt && !hasGross:
		derived := net.Add(taxAmt)
		inv.GrossAmount = derived.StringFixed(2)
		return &Decision{Rule: RuleGrossFromNetAndTax, Field: constants.FieldGrossAmount, New: inv.GrossAmount}

	case hasNet && hasRate && hasGross:
		derived := net.Mul(one.Add(rate.Div(hundred)))
		return correctGross(inv, gross, derived, RuleGrossCorrectedByRate)

	case hasNet && hasTaxAmt && hasGross:
		derived := net.Add(taxAmt)
		return correctGross(inv, gross, derived, RuleGrossCorrectedByTax)

	case hasNet && hasGross && inv.Tax == nil:
		// Division by zero: a zero net means the rate cannot be derived.
		if net.IsZero() {
			return nil
		}
		derivedRate := gross.Sub(net).Div(net).Mul(hundred)
		inv.Tax = &entity.TaxValue{Kind: entity.TaxPercentage, Value: derivedRate.StringFixed(2)}
		return &Decision{Rule: RuleRateFromNetAndGross, Field: constants.FieldTax, New: inv.Tax.Value}

	case hasGross && hasRate && !hasNet:
		derived := gross.Div(one.Add(rate.Div(hundred)))
		inv.NetAmount = derived.StringFixed(2)
		return &Decision{Rule: RuleNetFromGrossAndRate, Field: constants.FieldNetAmount, New: inv.NetAmount}

	case hasGross && hasTaxAmt && !hasNet:
		derived := gross.Sub(taxAmt)
		inv.NetAmount = derived.StringFixed(2)
		return &Decision{Rule: RuleNetFromGrossAndTax, Field: constants.FieldNetAmount, New: inv.NetAmount}
	}

	return nil
}

// correctGross overwrites the stored gross amount when the recomputed one
// disagrees by more than the relative tolerance of the stored value; a
// disagreement that large means the stored value is OCR noise.
func correctGross(inv *entity.Invoice, stored, derived decimal.Decimal, rule Rule) *Decision {
	tolerance := stored.Mul(relativeTolerance).Abs()
	if derived.Sub(stored).Abs().LessThanOrEqual(tolerance) {
		return nil
	}
	old := inv.GrossAmount
	inv.GrossAmount = derived.StringFixed(2)
	return &Decision{Rule: rule, Field: constants.FieldGrossAmount, Old: old, New: inv.GrossAmount}
}

func parse(s string) (decimal.Decimal, bool) {
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}
