package quiz

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// moduleSchemaJSON is the structural gate for imported module JSON. It is
// deliberately loose: it pins the container shape and field types but
// leaves field-level requirements to Normalize, which can repair rather
// than reject. Numeric review fields are "number", not "integer", because
// older exports carry fractional or out-of-range values that the codec
// clamps. Timestamps may be RFC 3339 strings or epoch milliseconds.
const moduleSchemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["name", "chapters"],
  "properties": {
    "schemaVersion": { "type": "string" },
    "name": { "type": "string", "minLength": 1 },
    "description": { "type": "string" },
    "chapters": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["questions"],
        "properties": {
          "id": { "type": "string" },
          "name": { "type": "string" },
          "description": { "type": "string" },
          "questions": {
            "type": "array",
            "items": {
              "type": "object",
              "properties": {
                "questionId": { "type": "string" },
                "questionText": { "type": "string" },
                "options": {
                  "type": "array",
                  "items": {
                    "type": "object",
                    "properties": {
                      "optionId": { "type": "string" },
                      "optionText": { "type": "string" }
                    }
                  }
                },
                "correctOptionIds": { "type": "array", "items": { "type": "string" } },
                "explanationText": { "type": "string" },
                "type": { "type": "string" },
                "status": { "type": "string" },
                "timesAnsweredCorrectly": { "type": "number" },
                "timesAnsweredIncorrectly": { "type": "number" },
                "lastSelectedOptionId": { "type": ["string", "null"] },
                "historyOfIncorrectSelections": { "type": "array", "items": { "type": "string" } },
                "lastAttemptedAt": { "type": ["string", "number", "null"] },
                "srsLevel": { "type": "number" },
                "nextReviewAt": { "type": ["string", "number", "null"] },
                "shownIncorrectOptionIds": { "type": "array", "items": { "type": "string" } }
              }
            }
          }
        }
      }
    }
  }
}`

var (
	moduleSchemaOnce sync.Once
	moduleSchema     *jsonschema.Schema
	moduleSchemaErr  error
)

// compiledModuleSchema compiles the module schema once per process.
func compiledModuleSchema() (*jsonschema.Schema, error) {
	moduleSchemaOnce.Do(func() {
		var parsed any
		if err := json.Unmarshal([]byte(moduleSchemaJSON), &parsed); err != nil {
			moduleSchemaErr = fmt.Errorf("parse module schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		const url = "schema://quiz-module.json"
		if err := c.AddResource(url, parsed); err != nil {
			moduleSchemaErr = fmt.Errorf("add schema resource: %w", err)
			return
		}
		moduleSchema, moduleSchemaErr = c.Compile(url)
	})
	return moduleSchema, moduleSchemaErr
}

// checkSchema validates raw module JSON against the structural gate.
// A violation wraps ErrSchema so callers can match it with errors.Is.
func checkSchema(raw []byte) error {
	schema, err := compiledModuleSchema()
	if err != nil {
		return err
	}
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if err := schema.Validate(parsed); err != nil {
		return fmt.Errorf("%w: %v", ErrSchema, err)
	}
	return nil
}
