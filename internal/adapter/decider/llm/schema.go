package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// decisionSchema constrains the action reply shape, not the tool vocabulary:
// an unknown tool name is a game-rules concern and gets penalized by the
// execution rules, while a structurally broken reply is rejected here so the
// caller degrades it to wait with the validation message.
const decisionSchemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["tool"],
  "properties": {
    "tool": {"type": "string", "minLength": 1},
    "args": {
      "type": "object",
      "properties": {
        "destination": {"type": "string"},
        "target_id": {"type": "string"}
      },
      "additionalProperties": false
    },
    "rationale": {"type": "string"}
  },
  "additionalProperties": false
}`

var decisionSchema = jsonschema.MustCompileString("decision.json", decisionSchemaJSON)

func validateDecision(raw string) error {
	trimmed := strings.TrimSpace(raw)
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(trimmed), "```"))

	decoder := json.NewDecoder(strings.NewReader(trimmed))
	decoder.UseNumber()
	var parsed interface{}
	if err := decoder.Decode(&parsed); err != nil {
		return fmt.Errorf("decision reply is not JSON: %w", err)
	}
	if err := decisionSchema.Validate(parsed); err != nil {
		return fmt.Errorf("decision reply rejected: %w", err)
	}
	return nil
}
