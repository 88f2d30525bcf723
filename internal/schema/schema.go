// Package schema validates serialized invoice records before they are
// persisted, catching extraction bugs at the boundary instead of in the
// database.
package schema

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// BuildInvoiceJSONSchema returns a JSON-Schema (draft 2020-12 subset) as a
// generic map describing one extracted invoice record.
func BuildInvoiceJSONSchema() map[string]any {
	amount := map[string]any{
		// Empty string means "could not determine"; a present value is a
		// non-negative decimal with '.' as separator.
		"type":    "string",
		"pattern": `^$|^(\d+(\.\d+)?|\.\d+)$`,
	}
	box := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"left":   map[string]any{"type": "integer", "minimum": 0},
			"top":    map[string]any{"type": "integer", "minimum": 0},
			"width":  map[string]any{"type": "integer", "minimum": 0},
			"height": map[string]any{"type": "integer", "minimum": 0},
		},
		"required": []string{"left", "top", "width", "height"},
	}

	props := map[string]any{
		"id":             map[string]any{"type": "string"},
		"supplier":       map[string]any{"type": "string"},
		"date":           map[string]any{"type": "string"},
		"invoice_number": map[string]any{"type": "string"},
		"net_amount":     amount,
		"gross_amount":   amount,
		"tax": map[string]any{
			"type":                 "object",
			"additionalProperties": false,
			"properties": map[string]any{
				"kind":  map[string]any{"type": "string", "enum": []string{"percentage", "amount"}},
				"value": map[string]any{"type": "string", "pattern": `^\d+\.\d{2}$`},
			},
			"required": []string{"kind", "value"},
		},
		// A captured symbol like "€" may replace the 3-letter default.
		"currency":       map[string]any{"type": "string", "minLength": 1, "maxLength": 3},
		"address":        map[string]any{"type": "string"},
		"full_text":      map[string]any{"type": "string"},
		"field_boxes":    map[string]any{"type": "object", "additionalProperties": box},
		"source_file":    map[string]any{"type": "string"},
		"annotated_file": map[string]any{"type": "string"},
		"created_at":     map[string]any{"type": "string"},
	}

	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties":           props,
		"required":             []string{"currency", "full_text"},
	}
}

// ValidateInvoiceJSON validates a serialized record against the invoice
// schema.
func ValidateInvoiceJSON(data []byte) error {
	return ValidateJSONAgainstSchema(BuildInvoiceJSONSchema(), data)
}

// ValidateJSONAgainstSchema validates "data" against "schemaMap".
func ValidateJSONAgainstSchema(schemaMap map[string]any, data []byte) error {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}
