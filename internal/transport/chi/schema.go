package chi

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/kailas-cloud/catalog/internal/domain"
)

// createItemSchema describes the POST /items body. Unknown properties are ignored.
const createItemSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["name", "category", "price"],
  "properties": {
    "id":         {"type": ["string", "null"]},
    "name":       {"type": "string", "minLength": 1},
    "category":   {"type": "string", "minLength": 1},
    "price":      {"type": "number", "minimum": 0},
    "rating":     {"type": ["number", "null"], "minimum": 0, "maximum": 5},
    "tags":       {"type": ["array", "null"], "items": {"type": "string"}},
    "stock":      {"type": ["integer", "null"], "minimum": 0},
    "vendor":     {"type": ["string", "null"]},
    "attributes": {"type": ["object", "null"], "additionalProperties": {"type": "string"}}
  }
}`

const bodyParam = "body"

var itemSchema = mustSchema(createItemSchema)

func mustSchema(src string) *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
	if err != nil {
		panic(fmt.Sprintf("compile schema: %v", err))
	}
	return s
}

// validateCreateBody checks body against the item schema and reports the
// first violation as a validation error naming the offending field.
func validateCreateBody(body []byte) error {
	res, err := itemSchema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return domain.NewValidationError(bodyParam, "must be a JSON object")
	}
	if res.Valid() {
		return nil
	}

	first := res.Errors()[0]
	return domain.NewValidationError(schemaErrorParam(first), first.Description())
}

func schemaErrorParam(e gojsonschema.ResultError) string {
	if e.Type() == "required" {
		if p, ok := e.Details()["property"].(string); ok {
			return p
		}
	}
	field := e.Field()
	if field == "" || field == gojsonschema.STRING_CONTEXT_ROOT {
		return bodyParam
	}
	// tags.0 -> tags
	field, _, _ = strings.Cut(field, ".")
	return field
}
