package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/npetit/facturescan/constants"
	"github.com/npetit/facturescan/internal/entity"
)

func invoice(net, gross string, tax *entity.TaxValue) *entity.Invoice {
	inv := entity.NewInvoice("")
	inv.NetAmount = net
	inv.GrossAmount = gross
	inv.Tax = tax
	return inv
}

func pct(v string) *entity.TaxValue {
	return &entity.TaxValue{Kind: entity.TaxPercentage, Value: v}
}

func amt(v string) *entity.TaxValue {
	return &entity.TaxValue{Kind: entity.TaxAmount, Value: v}
}

func TestDeriveGrossFromNetAndRate(t *testing.T) {
	inv := invoice("100.00", "", pct("20.00"))

	d := Reconcile(inv)

	require.NotNil(t, d)
	assert.Equal(t, RuleGrossFromNetAndRate, d.Rule)
	assert.Equal(t, constants.FieldGrossAmount, d.Field)
	assert.Empty(t, d.Old)
	assert.Equal(t, "120.00", d.New)
	assert.Equal(t, "120.00", inv.GrossAmount)
}

func TestDeriveGrossFromNetAndTaxAmount(t *testing.T) {
	inv := invoice("100.00", "", amt("19.60"))

	d := Reconcile(inv)

	require.NotNil(t, d)
	assert.Equal(t, RuleGrossFromNetAndTax, d.Rule)
	assert.Equal(t, "119.60", inv.GrossAmount)
}

func TestGrossWithinToleranceKept(t *testing.T) {
	// Derived 120.00 vs stored 120.50: off by 0.50, tolerance is 1.205.
	inv := invoice("100.00", "120.50", pct("20.00"))

	d := Reconcile(inv)

	assert.Nil(t, d)
	assert.Equal(t, "120.50", inv.GrossAmount)
}

func TestGrossBeyondToleranceOverwritten(t *testing.T) {
	// Derived 120.00 vs stored 121.50: off by 1.50, tolerance is 1.215.
	inv := invoice("100.00", "121.50", pct("20.00"))

	d := Reconcile(inv)

	require.NotNil(t, d)
	assert.Equal(t, RuleGrossCorrectedByRate, d.Rule)
	assert.Equal(t, "121.50", d.Old)
	assert.Equal(t, "120.00", d.New)
	assert.Equal(t, "120.00", inv.GrossAmount)
}

func TestGrossCorrectedByTaxAmount(t *testing.T) {
	inv := invoice("100.00", "150.00", amt("20.00"))

	d := Reconcile(inv)

	require.NotNil(t, d)
	assert.Equal(t, RuleGrossCorrectedByTax, d.Rule)
	assert.Equal(t, "120.00", inv.GrossAmount)
}

func TestDeriveRateFromNetAndGross(t *testing.T) {
	inv := invoice("100.00", "120.00", nil)

	d := Reconcile(inv)

	require.NotNil(t, d)
	assert.Equal(t, RuleRateFromNetAndGross, d.Rule)
	assert.Equal(t, constants.FieldTax, d.Field)
	require.NotNil(t, inv.Tax)
	assert.True(t, inv.Tax.IsPercentage())
	assert.Equal(t, "20.00", inv.Tax.Value)
}

func TestZeroNetDerivesNoRate(t *testing.T) {
	inv := invoice("0", "120.00", nil)

	d := Reconcile(inv)

	assert.Nil(t, d)
	assert.Nil(t, inv.Tax)
}

func TestDeriveNetFromGrossAndRate(t *testing.T) {
	inv := invoice("", "120.00", pct("20.00"))

	d := Reconcile(inv)

	require.NotNil(t, d)
	assert.Equal(t, RuleNetFromGrossAndRate, d.Rule)
	assert.Equal(t, constants.FieldNetAmount, d.Field)
	assert.Equal(t, "100.00", inv.NetAmount)
}

func TestDeriveNetFromGrossAndTaxAmount(t *testing.T) {
	inv := invoice("", "120.00", amt("20.00"))

	d := Reconcile(inv)

	require.NotNil(t, d)
	assert.Equal(t, RuleNetFromGrossAndTax, d.Rule)
	assert.Equal(t, "100.00", inv.NetAmount)
}

func TestTooFewKnownsUntouched(t *testing.T) {
	for name, inv := range map[string]*entity.Invoice{
		"all empty":     invoice("", "", nil),
		"net only":      invoice("100.00", "", nil),
		"gross only":    invoice("", "120.00", nil),
		"rate only":     invoice("", "", pct("20.00")),
		"unparsable":    invoice("1O0,00", "120.00", nil),
		"empty tax val": invoice("", "120.00", pct("")),
	} {
		t.Run(name, func(t *testing.T) {
			before := *inv
			assert.Nil(t, Reconcile(inv))
			assert.Equal(t, before.NetAmount, inv.NetAmount)
			assert.Equal(t, before.GrossAmount, inv.GrossAmount)
		})
	}
}

func TestReconcileIsIdempotent(t *testing.T) {
	inv := invoice("100.00", "", pct("20.00"))

	first := Reconcile(inv)
	second := Reconcile(inv)

	require.NotNil(t, first)
	assert.Nil(t, second)
	assert.Equal(t, "120.00", inv.GrossAmount)
}

func TestTaxStaysSingleKind(t *testing.T) {
	inv := invoice("100.00", "120.00", amt("20.00"))

	Reconcile(inv)

	require.NotNil(t, inv.Tax)
	assert.Equal(t, entity.TaxAmount, inv.Tax.Kind)
	assert.Equal(t, "20.00", inv.Tax.Value)
}
