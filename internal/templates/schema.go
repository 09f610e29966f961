package templates

// catalogSchema validates the embedded template catalog at load time. A
// catalog that fails validation is a packaging bug, caught before any
// generation happens.
var catalogSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"templates": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id": map[string]any{
						"type":      "string",
						"minLength": 1,
					},
					"category": map[string]any{
						"type":      "string",
						"minLength": 1,
					},
					"operation": map[string]any{
						"type": "string",
						"enum": []any{"addition", "subtraction", "multiplication", "division"},
					},
					"text": map[string]any{
						"type":      "string",
						"minLength": 1,
					},
					"ranges": map[string]any{
						"type": "object",
						"propertyNames": map[string]any{
							"enum": []any{"easy", "medium", "hard", "expert"},
						},
						"additionalProperties": map[string]any{
							"type": "object",
							"additionalProperties": map[string]any{
								"type": "object",
								"properties": map[string]any{
									"min":      map[string]any{"type": "number"},
									"max":      map[string]any{"type": "number"},
									"decimals": map[string]any{"type": "boolean"},
								},
								"required": []any{"min", "max"},
							},
						},
					},
					"concepts": map[string]any{
						"type":  "array",
						"items": map[string]any{"type": "string"},
					},
					"prerequisites": map[string]any{
						"type":  "array",
						"items": map[string]any{"type": "string"},
					},
					"hints": map[string]any{
						"type":  "array",
						"items": map[string]any{"type": "string"},
					},
					"explanation": map[string]any{"type": "string"},
					"ageConfigs": map[string]any{
						"type": "object",
						"propertyNames": map[string]any{
							"enum": []any{"kids", "teens", "adults", "seniors"},
						},
						"additionalProperties": map[string]any{
							"type": "object",
							"properties": map[string]any{
								"theme":            map[string]any{"type": "string"},
								"maxCognitiveLoad": map[string]any{"type": "number", "minimum": 0, "maximum": 1},
								"encouragement":    map[string]any{"type": "string"},
							},
							"required": []any{"theme", "maxCognitiveLoad", "encouragement"},
						},
					},
				},
				"required": []any{"id", "category", "operation", "text", "ranges", "concepts", "explanation", "ageConfigs"},
			},
		},
	},
	"required": []any{"templates"},
}
