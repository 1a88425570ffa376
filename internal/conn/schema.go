package conn

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

const conditionSchema = `{
	"type": "object",
	"required": ["field", "operator"],
	"properties": {
		"field": {"type": "string"},
		"operator": {"type": "string"},
		"str_data": {"type": "string"},
		"int_data": {"type": "integer"},
		"float_data": {"type": "number"},
		"not": {"type": "boolean"},
		"case_insensitive": {"type": "boolean"}
	},
	"additionalProperties": false
}`

var getCollisionsSchema = mustSchema(`{
	"type": "object",
	"required": ["action"],
	"properties": {
		"action": {"type": "string"},
		"__req_id__": {"type": "integer"},
		"conditions": {"type": ["array", "null"], "items": ` + conditionSchema + `}
	}
}`)

var getCollisionSchema = mustSchema(`{
	"type": "object",
	"required": ["action", "id"],
	"properties": {
		"action": {"type": "string"},
		"__req_id__": {"type": "integer"},
		"id": {"type": "integer", "minimum": 1}
	}
}`)

func mustSchema(s string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(s))
	if err != nil {
		panic(err)
	}
	return schema
}

// validateShape checks a raw request against schema before it is decoded.
func validateShape(schema *gojsonschema.Schema, raw []byte) error {
	result, err := schema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return fmt.Errorf("Invalid request: %w", err)
	}
	if !result.Valid() {
		errs := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			errs = append(errs, desc.String())
		}
		return fmt.Errorf("Invalid request: %s", strings.Join(errs, "; "))
	}
	return nil
}
