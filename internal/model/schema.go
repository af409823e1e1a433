package model

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// JobStatusSchema returns a JSON-Schema (draft 2020-12 subset) as a generic
// map describing the JobStatus envelope. We validate server responses
// against it before decoding, so shape drift fails loudly instead of
// producing half-empty results.
func JobStatusSchema() map[string]any {
	confidenceValue := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"value":      map[string]any{},
			"confidence": map[string]any{"type": "number", "minimum": 0.0, "maximum": 1.0},
		},
	}

	address := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"name":     confidenceValue,
			"address":  confidenceValue,
			"city":     confidenceValue,
			"state":    confidenceValue,
			"zip_code": confidenceValue,
			"country":  confidenceValue,
			"phone":    confidenceValue,
			"email":    confidenceValue,
		},
	}

	result := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"job_id":             map[string]any{"type": "string"},
			"status":             map[string]any{"type": "string", "minLength": 1},
			"overall_confidence": map[string]any{"type": "number", "minimum": 0.0, "maximum": 1.0},
			"invoice": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"invoice_number": confidenceValue,
					"invoice_date":   confidenceValue,
					"currency":       confidenceValue,
					"total_amount":   confidenceValue,
					"exporter":       address,
					"consignee":      address,
					"ship_to":        address,
					"ior":            address,
					"line_items":     map[string]any{"type": []any{"array", "null"}},
				},
			},
			"packing_list": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"boxes":        map[string]any{"type": []any{"array", "null"}},
					"destinations": map[string]any{"type": []any{"array", "null"}},
				},
			},
			"warnings": map[string]any{"type": []any{"array", "null"}, "items": map[string]any{"type": "string"}},
			"errors":   map[string]any{"type": []any{"array", "null"}, "items": map[string]any{"type": "string"}},
		},
		"required": []string{"status"},
	}

	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"job_id":                 map[string]any{"type": "string"},
			"status":                 map[string]any{"type": "string", "minLength": 1},
			"progress":               map[string]any{"type": "integer", "minimum": 0, "maximum": 100},
			"message":                map[string]any{"type": "string"},
			"result":                 map[string]any{"oneOf": []any{result, map[string]any{"type": "null"}}},
			"multi_address_download": map[string]any{"type": []any{"string", "null"}},
			"simplified_download":    map[string]any{"type": []any{"string", "null"}},
		},
		"required": []string{"job_id", "status"},
	}
}

// ValidateJobStatusJSON validates raw response bytes against the envelope
// schema.
func ValidateJobStatusJSON(data []byte) error {
	return validateAgainstSchema(JobStatusSchema(), data)
}

// validateAgainstSchema validates "data" against "schemaMap".
func validateAgainstSchema(schemaMap map[string]any, data []byte) error {
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
