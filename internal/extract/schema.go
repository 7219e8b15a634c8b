package extract

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// RecordJSONSchema returns a JSON-Schema (draft 2020-12 subset) describing
// the serialized Record. The key names are the persisted/transmitted
// contract; downstream tools validate against this same shape.
func RecordJSONSchema() map[string]any {
	lineItem := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"description": map[string]any{"type": "string", "minLength": 1},
			"quantity":    map[string]any{"type": "integer", "minimum": 0},
			"unit_price":  map[string]any{"type": "number", "minimum": 0},
			"total":       map[string]any{"type": "number", "minimum": 0},
		},
		"required": []string{"description", "quantity", "unit_price", "total"},
	}

	billTo := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"name":  map[string]any{"type": "string"},
			"email": map[string]any{"type": "string"},
		},
	}

	formatInfo := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"name":       map[string]any{"type": "string"},
			"confidence": map[string]any{"type": "number", "minimum": 0},
			"indicators": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			"supported":  map[string]any{"type": "boolean"},
		},
		"required": []string{"name", "confidence", "indicators", "supported"},
	}

	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"receipt_number":        map[string]any{"type": "string", "pattern": `^\d+$`},
			"date":                  map[string]any{"type": "string"},
			"bill_to":               billTo,
			"items":                 map[string]any{"type": "array", "items": lineItem},
			"total_amount":          map[string]any{"type": "number"},
			"payment_method":        map[string]any{"type": "string"},
			"extraction_confidence": map[string]any{"type": "integer", "minimum": 0, "maximum": 100},
			"validation_warnings":   map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			"format":                formatInfo,
		},
		"required": []string{"bill_to", "items", "extraction_confidence", "validation_warnings"},
	}
}

// ValidateRecordJSON validates serialized record bytes against
// RecordJSONSchema.
func ValidateRecordJSON(data []byte) error {
	b, err := json.Marshal(RecordJSONSchema())
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("record.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("record.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal record: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("record does not match schema: %w", err)
	}
	return nil
}
