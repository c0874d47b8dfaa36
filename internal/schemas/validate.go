// Package schemas provides JSON Schema validation for the output document.
package schemas

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// UserListSchema is the JSON Schema every written output document must satisfy.
//
//go:embed user_list.schema.json
var UserListSchema string

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

// SchemaLoadError represents errors loading or parsing the schema itself
type SchemaLoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Path, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// ValidateUserList validates a serialized output document against UserListSchema.
func ValidateUserList(data []byte) error {
	return ValidateJSONString(UserListSchema, string(data))
}

// ValidateUserListFile validates an output document on disk against UserListSchema.
func ValidateUserListFile(jsonPath string) error {
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("failed to read JSON file %s: %w", jsonPath, err)
	}
	return ValidateUserList(data)
}

// ValidateJSON validates a JSON file against a JSON Schema file. Both files
// are read up front so a missing file is reported by name.
func ValidateJSON(schemaPath, jsonPath string) error {
	schema, err := readFile(schemaPath, "schema file")
	if err != nil {
		return err
	}
	doc, err := readFile(jsonPath, "JSON file")
	if err != nil {
		return err
	}
	return validateStrings(schemaPath, schema, doc)
}

// ValidateJSONString validates JSON string content against schema string content
func ValidateJSONString(schemaContent, jsonContent string) error {
	return validateStrings("(string schema)", schemaContent, jsonContent)
}

func readFile(path, kind string) (string, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%s not found: %s", kind, path)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %s %s: %w", kind, path, err)
	}
	return string(data), nil
}

// validateStrings runs the validation; schemaName only labels load errors.
func validateStrings(schemaName, schemaContent, jsonContent string) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schemaContent),
		gojsonschema.NewStringLoader(jsonContent),
	)
	if err != nil {
		return &SchemaLoadError{
			Path:    schemaName,
			Message: "schema validation failed during load",
			Cause:   err,
		}
	}

	return resultError(result)
}

func resultError(result *gojsonschema.Result) error {
	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}

	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}

	return validationErr
}
