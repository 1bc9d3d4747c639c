package llm

// BuildCareerJSONSchema returns a JSON-Schema (draft 2020-12 subset) as a
// generic map. We pass it to the provider as an output constraint and also
// use it locally to validate the response before trusting it.
func BuildCareerJSONSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"careers":               stringListProp(),
			"strengths":             stringListProp(),
			"areas_for_improvement": stringListProp(),
		},
		"required": []string{"careers", "strengths", "areas_for_improvement"},
	}
}

func stringListProp() map[string]any {
	return map[string]any{
		"type":     "array",
		"minItems": 1,
		"items":    map[string]any{"type": "string", "minLength": 1},
	}
}
