package sanitize

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// recordSchema describes the minimum shape of a category record: a JSON
// object whose id and slug, when present, are strings.
const recordSchema = `{
  "type": "object",
  "properties": {
    "id": {"type": "string"},
    "slug": {"type": "string"}
  }
}`

// RecordSchema validates decoded category records.
type RecordSchema struct {
	schema *jsonschema.Schema
}

// ValidationIssue is a single schema violation.
type ValidationIssue struct {
	Location string
	Message  string
}

// NewRecordSchema compiles the record schema.
func NewRecordSchema() (*RecordSchema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource("record.json", strings.NewReader(recordSchema)); err != nil {
		return nil, fmt.Errorf("sanitize: add record schema: %w", err)
	}
	schema, err := compiler.Compile("record.json")
	if err != nil {
		return nil, fmt.Errorf("sanitize: compile record schema: %w", err)
	}
	return &RecordSchema{schema: schema}, nil
}

// Validate checks raw record bytes against the schema.
func (s *RecordSchema) Validate(data []byte) error {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	var value any
	if err := decoder.Decode(&value); err != nil {
		return fmt.Errorf("parse record: %w", err)
	}
	if err := expectEnd(decoder); err != nil {
		return fmt.Errorf("parse record: %w", err)
	}

	err := s.schema.Validate(value)
	if err == nil {
		return nil
	}
	var validationErr *jsonschema.ValidationError
	if !errors.As(err, &validationErr) {
		return err
	}

	issues := collectValidationIssues(validationErr)
	parts := make([]string, 0, len(issues))
	for _, issue := range issues {
		location := issue.Location
		if location == "" {
			location = "/"
		}
		parts = append(parts, location+": "+issue.Message)
	}
	return fmt.Errorf("invalid record: %s", strings.Join(parts, "; "))
}

func collectValidationIssues(err *jsonschema.ValidationError) []ValidationIssue {
	if err == nil {
		return nil
	}
	issues := []ValidationIssue{}
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if node == nil {
			return
		}
		if len(node.Causes) == 0 {
			issues = append(issues, ValidationIssue{
				Location: strings.TrimSpace(node.InstanceLocation),
				Message:  strings.TrimSpace(node.Message),
			})
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(err)
	return issues
}
