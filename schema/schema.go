// Package schema is a small declarative schema engine for request values.
// Schemas describe the expected shape of path parameters, query strings,
// and JSON bodies, and coerce raw string inputs into normalized Go values
// ("42" becomes int64(42), a UUID is canonicalized, and so on).
//
// Schemas are built once with the fluent constructors and are read-only
// afterwards:
//
//	params := schema.Object(
//	    schema.Field("id", schema.UUID()).Required(),
//	)
//	query := schema.Object(
//	    schema.Field("limit", schema.Int().Min(1).Max(100)).Default(int64(50)),
//	)
package schema

import (
	"context"
	"fmt"
)

// Schema parses an input value, returning its normalized form. A rejection
// is reported as an Issues error; any other error is an engine failure.
type Schema interface {
	Parse(ctx context.Context, input any) (any, error)
}

// Issue describes a single constraint violation.
type Issue struct {
	Path    string `json:"path,omitempty"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// Issues is the error returned when a schema rejects its input.
type Issues []Issue

// Error summarizes the violations.
func (is Issues) Error() string {
	if len(is) == 1 {
		return fmt.Sprintf("schema: %s: %s", is[0].Path, is[0].Message)
	}
	return fmt.Sprintf("schema: %d violations", len(is))
}

// fail builds a single-issue rejection.
func fail(code, format string, args ...any) error {
	return Issues{{Message: fmt.Sprintf(format, args...), Code: code}}
}
