package manifest

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/getmockd/mockroute/pkg/value"
)

//go:embed manifest.schema.json
var schemaSource []byte

const schemaURL = "manifest.schema.json"

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

// Schema returns the JSON Schema (draft 2020-12) for manifest documents.
func Schema() []byte {
	return bytes.Clone(schemaSource)
}

// SchemaError is one schema violation.
type SchemaError struct {
	// Path is a JSON pointer into the document, e.g. "/users~1{id}/code".
	Path    string
	Message string
}

func (e SchemaError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
	return e.Message
}

// SchemaResult collects the violations found in one document.
type SchemaResult struct {
	Errors []SchemaError
}

// IsValid returns true if there are no violations.
func (r *SchemaResult) IsValid() bool {
	return len(r.Errors) == 0
}

// Error returns every violation, one per line.
func (r *SchemaResult) Error() string {
	if r.IsValid() {
		return ""
	}
	msgs := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		msgs = append(msgs, e.Error())
	}
	return strings.Join(msgs, "\n")
}

// AddError records a violation.
func (r *SchemaResult) AddError(path, message string) {
	r.Errors = append(r.Errors, SchemaError{Path: path, Message: message})
}

// CheckSchema validates a decoded manifest document against Schema.
func CheckSchema(doc value.Value) *SchemaResult {
	result := &SchemaResult{}

	schema, err := manifestSchema()
	if err != nil {
		result.AddError("", fmt.Sprintf("schema compilation error: %v", err))
		return result
	}

	if err := schema.Validate(doc.ToAny()); err != nil {
		var verr *jsonschema.ValidationError
		if errors.As(err, &verr) {
			collectSchemaErrors(verr, result)
		} else {
			result.AddError("", err.Error())
		}
	}
	return result
}

// ValidateDocument is CheckSchema returning an error that wraps
// ErrManifestSchema.
func ValidateDocument(doc value.Value) error {
	result := CheckSchema(doc)
	if result.IsValid() {
		return nil
	}
	return fmt.Errorf("%w:\n%s", ErrManifestSchema, result.Error())
}

func manifestSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		if err := compiler.AddResource(schemaURL, bytes.NewReader(schemaSource)); err != nil {
			schemaErr = fmt.Errorf("failed to add schema resource: %w", err)
			return
		}
		compiledSchema, schemaErr = compiler.Compile(schemaURL)
	})
	return compiledSchema, schemaErr
}

// collectSchemaErrors flattens the cause tree down to its leaves.
func collectSchemaErrors(err *jsonschema.ValidationError, result *SchemaResult) {
	if len(err.Causes) == 0 {
		result.AddError(err.InstanceLocation, err.Message)
		return
	}
	for _, cause := range err.Causes {
		collectSchemaErrors(cause, result)
	}
}
