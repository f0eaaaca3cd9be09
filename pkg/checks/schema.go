// This file implements the json_schema check: validation of the parsed body
// against a JSON Schema (draft 2020-12) declared inline in the suite file.
package checks

import (
	"fmt"
	"log/slog"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"harnesscheck/pkg/response"
)

const schemaResource = "check-schema.json"

// compileSchema compiles an inline schema document. Unknown types, invalid
// patterns and other meta-schema violations are reported here.
func compileSchema(doc map[string]any) (*jsonschema.Schema, error) {
	c := jsonschema.NewCompiler()
	if err := c.AddResource(schemaResource, doc); err != nil {
		return nil, fmt.Errorf("invalid schema: %w", err)
	}
	schema, err := c.Compile(schemaResource)
	if err != nil {
		return nil, fmt.Errorf("invalid schema: %w", err)
	}
	return schema, nil
}

// Schema passes when the parsed body satisfies schema. Validation errors are
// logged at debug level.
func Schema(schema *jsonschema.Schema) Check {
	return Named("matches schema", func(rec *response.Record) bool {
		if err := schema.Validate(rec.Fields()); err != nil {
			slog.Debug("JSON schema validation failed", "error", err)
			return false
		}
		return true
	})
}
