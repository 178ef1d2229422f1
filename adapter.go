package ward

import (
	"context"
	"errors"
	"fmt"

	"github.com/wardhttp/ward/schema"
)

// Adapter is the uniform interface over a schema-validation engine. The
// schema value is opaque to the builder; each adapter defines what it
// accepts. A rejection is reported through the Outcome; the error return
// is reserved for engine malfunction (wrong schema type, marshal failure)
// and flows into the generic error path.
type Adapter interface {
	Validate(ctx context.Context, sch, input any) (Outcome, error)
}

// Outcome is the result of validating one input against one schema.
// On success Data holds the engine's normalized output, which replaces
// the raw input for everything downstream.
type Outcome struct {
	OK     bool
	Data   any
	Issues []Issue
}

// Issue is a single structured validation failure. Issue content is
// engine-specific and passed through to the response untouched.
type Issue struct {
	Path    string `json:"path,omitempty"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// Accept returns a successful Outcome carrying the normalized data.
func Accept(data any) Outcome {
	return Outcome{OK: true, Data: data}
}

// Reject returns a failed Outcome carrying the issue list.
func Reject(issues ...Issue) Outcome {
	return Outcome{Issues: issues}
}

// DefaultAdapter interprets schemas from the bundled schema subpackage.
// It is the engine bound to every builder that does not configure its own
// with WithAdapter.
type DefaultAdapter struct{}

// Validate implements Adapter.
func (DefaultAdapter) Validate(ctx context.Context, sch, input any) (Outcome, error) {
	s, ok := sch.(schema.Schema)
	if !ok {
		return Outcome{}, fmt.Errorf("ward: schema %T is not a schema.Schema", sch)
	}

	data, err := s.Parse(ctx, input)
	var rejected schema.Issues
	if errors.As(err, &rejected) {
		issues := make([]Issue, len(rejected))
		for i, is := range rejected {
			issues[i] = Issue{Path: is.Path, Message: is.Message, Code: is.Code}
		}
		return Reject(issues...), nil
	}
	if err != nil {
		return Outcome{}, err
	}
	return Accept(data), nil
}
