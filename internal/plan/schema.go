package plan

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// planSchemaJSON is the content plan contract. Validation runs before
// unmarshaling so malformed plans fail with a schema path instead of a
// decoding error deep in the pipeline.
const planSchemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "array",
  "items": {
    "type": "object",
    "properties": {
      "template_slide": {
        "type": "integer",
        "minimum": 0
      },
      "type": {
        "type": "string"
      },
      "replacements": {
        "type": "object",
        "propertyNames": {"minLength": 1},
        "additionalProperties": {"type": "string"}
      }
    },
    "additionalProperties": false
  }
}`

var planSchema = jsonschema.MustCompileString("plan.schema.json", planSchemaJSON)

// Validate checks content plan JSON against the plan schema.
func Validate(data []byte) error {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("content plan is not valid JSON: %w", err)
	}
	if err := planSchema.Validate(doc); err != nil {
		return fmt.Errorf("content plan failed validation: %w", err)
	}
	return nil
}
