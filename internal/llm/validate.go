package llm

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/joseph-ayodele/study-tracker/internal/entity"
)

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

// ParseCareerAnalysis extracts and validates a structured career analysis
// from a completion. The response must contain a JSON object matching
// BuildCareerJSONSchema; anything else is an error and the caller falls back
// to its fixed placeholder triple.
func ParseCareerAnalysis(completion string) (entity.CareerAnalysis, error) {
	raw, ok := ExtractJSONObject(completion)
	if !ok {
		return entity.CareerAnalysis{}, fmt.Errorf("no JSON object in completion")
	}
	data := []byte(raw)
	if err := ValidateJSONAgainstSchema(BuildCareerJSONSchema(), data); err != nil {
		return entity.CareerAnalysis{}, err
	}
	var out entity.CareerAnalysis
	if err := json.Unmarshal(data, &out); err != nil {
		return entity.CareerAnalysis{}, fmt.Errorf("unmarshal analysis: %w", err)
	}
	return out, nil
}
