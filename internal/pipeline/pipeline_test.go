package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/npetit/facturescan/constants"
	"github.com/npetit/facturescan/internal/entity"
	"github.com/npetit/facturescan/internal/reconcile"
)

func word(text string, left, top int) entity.Token {
	return entity.Token{Text: text, Left: left, Top: top, Width: 50, Height: 14, Confidence: 88}
}

func TestExtractFullDocument(t *testing.T) {
	text := "Acme SARL\nFacture : F-2024-042\nDate : 12/01/2024\nTotal HT : 100,00\nTVA : 20 %\nTotal TTC : 120,00 €"
	tokens := []entity.Token{
		word("Acme", 10, 20),
		word("SARL", 70, 20),
		word("F-2024-042", 120, 60),
		word("12/01/2024", 120, 100),
		word("100,00", 200, 300),
		word("20%", 200, 340),
		word("120,00", 200, 380),
	}

	inv, decision := New(nil).Extract(text, tokens)

	require.NotNil(t, inv)
	assert.Equal(t, "Acme SARL", inv.Supplier)
	assert.Equal(t, "F-2024-042", inv.InvoiceNumber)
	assert.Equal(t, "12/01/2024", inv.Date)
	assert.Equal(t, "100.00", inv.NetAmount)
	assert.Equal(t, "120.00", inv.GrossAmount)
	require.NotNil(t, inv.Tax)
	assert.Equal(t, "20.00", inv.Tax.Value)

	// Amounts are consistent, so no reconciliation fires.
	assert.Nil(t, decision)

	// Extracted values resolve to token positions.
	require.Contains(t, inv.FieldBoxes, constants.FieldInvoiceNumber)
	assert.Equal(t, 60, inv.FieldBoxes[constants.FieldInvoiceNumber].Top)
	require.Contains(t, inv.FieldBoxes, constants.FieldDate)
	assert.Equal(t, 100, inv.FieldBoxes[constants.FieldDate].Top)
	require.Contains(t, inv.FieldBoxes, constants.FieldNetAmount)
	assert.Equal(t, 300, inv.FieldBoxes[constants.FieldNetAmount].Top)
}

func TestExtractReconcilesMissingGross(t *testing.T) {
	text := "Acme SARL\nTotal HT : 100,00\nTVA : 20 %"

	inv, decision := New(nil).Extract(text, nil)

	require.NotNil(t, decision)
	assert.Equal(t, reconcile.RuleGrossFromNetAndRate, decision.Rule)
	assert.Equal(t, "120.00", inv.GrossAmount)
	// The gross was derived, not read off the scan: no box for it.
	assert.NotContains(t, inv.FieldBoxes, constants.FieldGrossAmount)
}

func TestExtractWithoutTokensLocatesNothing(t *testing.T) {
	text := "Acme SARL\nTotal TTC : 120,00"

	inv, _ := New(nil).Extract(text, nil)

	assert.Equal(t, "120.00", inv.GrossAmount)
	assert.Empty(t, inv.FieldBoxes)
}

func TestExtractEmptyTextYieldsEmptyRecord(t *testing.T) {
	inv, decision := New(nil).Extract("", nil)

	require.NotNil(t, inv)
	assert.Nil(t, decision)
	assert.Empty(t, inv.Supplier)
	assert.Empty(t, inv.GrossAmount)
	assert.Equal(t, constants.DefaultCurrency, inv.Currency)
}
