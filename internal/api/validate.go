package api

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Schema is a named JSON Schema definition for a response payload.
type Schema struct {
	Name       string
	Definition map[string]any
}

// schemaCache caches compiled JSON schemas by name.
var schemaCache sync.Map // map[string]*jsonschema.Schema

// validateResponse validates raw JSON against the given Schema.
// Returns nil if no schema is provided or validation passes.
// Returns *InvalidResponseError on failure.
func validateResponse(schema *Schema, raw json.RawMessage) error {
	if schema == nil {
		return nil
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return &InvalidResponseError{
			Content: raw,
			Err:     fmt.Errorf("invalid JSON: %w", err),
		}
	}

	compiled, err := getCompiledSchema(schema)
	if err != nil {
		return &InvalidResponseError{
			Content: raw,
			Err:     fmt.Errorf("compile schema %q: %w", schema.Name, err),
		}
	}

	if err := compiled.Validate(parsed); err != nil {
		return &InvalidResponseError{
			Content: raw,
			Err:     fmt.Errorf("schema %q validation failed: %w", schema.Name, err),
		}
	}

	return nil
}

// getCompiledSchema returns a cached compiled schema or compiles and caches it.
func getCompiledSchema(schema *Schema) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(schema.Name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	// The jsonschema library expects a parsed JSON value (any), not raw bytes.
	defBytes, err := json.Marshal(schema.Definition)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	var defParsed any
	if err := json.Unmarshal(defBytes, &defParsed); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	schemaURL := fmt.Sprintf("schema://%s.json", schema.Name)
	if err := c.AddResource(schemaURL, defParsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}

	compiled, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	schemaCache.Store(schema.Name, compiled)
	return compiled, nil
}

var roleMatchSchema = map[string]any{
	"type":     "object",
	"required": []any{"role"},
	"properties": map[string]any{
		"role":              map[string]any{"type": "string"},
		"match_score":       map[string]any{"type": "number"},
		"justification":     map[string]any{"type": "string"},
		"missing_skills":    map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
		"recommended_certs": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
	},
}

// PredictResultSchema describes the response of predict/.
var PredictResultSchema = &Schema{
	Name: "predict-result",
	Definition: map[string]any{
		"type":     "object",
		"required": []any{"prediction", "predictions"},
		"properties": map[string]any{
			"prediction":     map[string]any{"type": "string"},
			"top_prediction": map[string]any{"type": "string"},
			"predictions":    map[string]any{"type": "array", "items": roleMatchSchema},
			"history_id":     map[string]any{"type": "integer"},
		},
	},
}

// InsightsSchema describes the response of insights/. The personalized
// section is either the full analysis, only an error, or empty.
var InsightsSchema = &Schema{
	Name: "insights",
	Definition: map[string]any{
		"type":     "object",
		"required": []any{"role_distribution", "degree_trends"},
		"properties": map[string]any{
			"role_distribution": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":     "object",
					"required": []any{"name", "value"},
					"properties": map[string]any{
						"name":  map[string]any{"type": "string"},
						"value": map[string]any{"type": "number"},
					},
				},
			},
			"degree_trends": map[string]any{"type": "array"},
			"personalized": map[string]any{
				"type": []any{"object", "null"},
				"properties": map[string]any{
					"error": map[string]any{"type": "string"},
					"market_overview": map[string]any{
						"type": "array",
						"items": map[string]any{
							"type":     "object",
							"required": []any{"year", "demand"},
						},
					},
					"comparison": map[string]any{
						"type": "array",
						"items": map[string]any{
							"type":     "object",
							"required": []any{"name", "salary", "demand"},
						},
					},
					"skill_gap": map[string]any{
						"type": "array",
						"items": map[string]any{
							"type":     "object",
							"required": []any{"subject", "A", "B"},
						},
					},
					"future_outlook": map[string]any{
						"type":     "object",
						"required": []any{"verdict"},
					},
				},
			},
		},
	},
}
