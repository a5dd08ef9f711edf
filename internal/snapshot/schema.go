package snapshot

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

const schemaURL = "nest://schema/state.json"

// stateSchema describes the structural shape of a persisted or exported state.
// Referential rules are checked separately by domain.AppState.Validate.
const stateSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["boards", "columns", "cards", "currentBoardId"],
  "properties": {
    "boards": {
      "type": "object",
      "additionalProperties": { "$ref": "#/$defs/board" }
    },
    "columns": {
      "type": "object",
      "additionalProperties": { "$ref": "#/$defs/column" }
    },
    "cards": {
      "type": "object",
      "additionalProperties": { "$ref": "#/$defs/card" }
    },
    "currentBoardId": { "type": "string", "minLength": 1 },
    "history": { "anyOf": [{ "$ref": "#/$defs/ids" }, { "type": "null" }] },
    "exportedAt": { "type": "string" }
  },
  "$defs": {
    "ids": {
      "type": "array",
      "items": { "type": "string", "minLength": 1 }
    },
    "board": {
      "type": "object",
      "required": ["id", "title", "columnIds"],
      "properties": {
        "id": { "type": "string", "minLength": 1 },
        "title": { "type": "string" },
        "parentCardId": { "type": "string" },
        "columnIds": { "$ref": "#/$defs/ids" }
      }
    },
    "column": {
      "type": "object",
      "required": ["id", "title", "boardId", "cardIds"],
      "properties": {
        "id": { "type": "string", "minLength": 1 },
        "title": { "type": "string" },
        "boardId": { "type": "string", "minLength": 1 },
        "cardIds": { "$ref": "#/$defs/ids" }
      }
    },
    "card": {
      "type": "object",
      "required": ["id", "title", "columnId", "boardId"],
      "properties": {
        "id": { "type": "string", "minLength": 1 },
        "title": { "type": "string" },
        "columnId": { "type": "string", "minLength": 1 },
        "boardId": { "type": "string", "minLength": 1 },
        "order": { "type": "integer" }
      }
    }
  }
}`

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

func schema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		if err := compiler.AddResource(schemaURL, strings.NewReader(stateSchema)); err != nil {
			compileErr = fmt.Errorf("add state schema: %w", err)
			return
		}
		compiled, compileErr = compiler.Compile(schemaURL)
	})
	return compiled, compileErr
}

// schemaErrors flattens a jsonschema validation error into one error per leaf cause.
func schemaErrors(err error) []error {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return []error{err}
	}
	var out []error
	collectSchemaErrors(&out, ve)
	return out
}

func collectSchemaErrors(out *[]error, err *jsonschema.ValidationError) {
	if len(err.Causes) == 0 {
		*out = append(*out, &FieldError{Path: pointerToPath(err.InstanceLocation), Message: err.Message})
		return
	}
	for _, cause := range err.Causes {
		collectSchemaErrors(out, cause)
	}
}

// pointerToPath turns a JSON pointer like /columns/col-1/cardIds/0 into
// columns.col-1.cardIds[0].
func pointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(strings.TrimPrefix(ptr, "#"), "/")
	if ptr == "" {
		return ""
	}

	var path strings.Builder
	for _, part := range strings.Split(ptr, "/") {
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		if idx, err := strconv.Atoi(part); err == nil {
			fmt.Fprintf(&path, "[%d]", idx)
			continue
		}
		if path.Len() > 0 {
			path.WriteByte('.')
		}
		path.WriteString(part)
	}
	return path.String()
}
