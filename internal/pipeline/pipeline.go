// Package pipeline wires field extraction, token location and arithmetic
// reconciliation into the single entry point for one document.
package pipeline

import (
	"log/slog"

	"github.com/npetit/facturescan/constants"
	"github.com/npetit/facturescan/internal/entity"
	"github.com/npetit/facturescan/internal/extract"
	"github.com/npetit/facturescan/internal/locate"
	"github.com/npetit/facturescan/internal/reconcile"
)

type Pipeline struct {
	logger *slog.Logger
}

func New(logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{logger: logger}
}

// Extract turns raw OCR text, plus an optional token list, into a
// structured invoice record. Extraction is synchronous and pure: the same
// inputs always produce the same record, and malformed text never fails —
// undeterminable fields are simply left unset.
//
// The returned decision reports the reconciliation derivation that fired,
// if any; callers that want it logged get it here, the stages themselves
// stay side-effect free.
func (p *Pipeline) Extract(text string, tokens []entity.Token) (*entity.Invoice, *reconcile.Decision) {
	res := extract.Fields(text)
	inv := res.Invoice

	if len(tokens) > 0 {
		ix := locate.NewIndex(tokens)
		for _, kind := range constants.FieldOrder {
			evidence, ok := res.Evidence[kind]
			if !ok {
				continue
			}
			if box := ix.Find(evidence); box != nil {
				inv.FieldBoxes[kind] = box
			}
		}
	}

	decision := reconcile.Reconcile(inv)
	if decision != nil {
		p.logger.Debug("reconciliation applied",
			"rule", decision.Rule,
			"field", decision.Field,
			"old", decision.Old,
			"new", decision.New,
		)
	}

	return inv, decision
}
