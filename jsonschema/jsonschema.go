// Package jsonschema adapts the santhosh-tekuri JSON Schema engine to the
// ward Adapter contract. The schema is a compiled *jsonschema.Schema; use
// Compile, MustCompile, or CompileYAML to build one from source:
//
//	users := jsonschema.MustCompile(`{
//	    "type": "object",
//	    "properties": {"name": {"type": "string", "minLength": 1}},
//	    "required": ["name"]
//	}`)
//
//	b := ward.New(ward.WithAdapter(jsonschema.Adapter{})).Body(users)
//
// JSON Schema validates without transforming, so the normalized output is
// the input unchanged (widened to map[string]any for string-map slots).
package jsonschema

import (
	"context"
	"errors"
	"fmt"
	"strings"

	santhosh "github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"

	"github.com/wardhttp/ward"
)

// Adapter validates inputs against compiled JSON Schema documents.
type Adapter struct{}

// Validate implements ward.Adapter.
func (Adapter) Validate(_ context.Context, sch, input any) (ward.Outcome, error) {
	compiled, ok := sch.(*santhosh.Schema)
	if !ok {
		return ward.Outcome{}, fmt.Errorf("jsonschema: schema %T is not a *jsonschema.Schema", sch)
	}

	instance := widen(input)
	err := compiled.Validate(instance)
	var verr *santhosh.ValidationError
	if errors.As(err, &verr) {
		return ward.Reject(flatten(verr)...), nil
	}
	if err != nil {
		return ward.Outcome{}, err
	}
	return ward.Accept(instance), nil
}

// Compile compiles a JSON Schema document from its JSON source.
func Compile(source string) (*santhosh.Schema, error) {
	doc, err := santhosh.UnmarshalJSON(strings.NewReader(source))
	if err != nil {
		return nil, fmt.Errorf("jsonschema: decode schema: %w", err)
	}
	return compileDoc(doc)
}

// MustCompile is like Compile but panics on error. For schemas defined as
// program literals.
func MustCompile(source string) *santhosh.Schema {
	compiled, err := Compile(source)
	if err != nil {
		panic(err)
	}
	return compiled
}

// CompileYAML compiles a JSON Schema document written in YAML.
func CompileYAML(source []byte) (*santhosh.Schema, error) {
	var doc any
	if err := yaml.Unmarshal(source, &doc); err != nil {
		return nil, fmt.Errorf("jsonschema: decode YAML schema: %w", err)
	}
	return compileDoc(doc)
}

func compileDoc(doc any) (*santhosh.Schema, error) {
	c := santhosh.NewCompiler()
	if err := c.AddResource("schema.json", doc); err != nil {
		return nil, fmt.Errorf("jsonschema: add schema resource: %w", err)
	}
	compiled, err := c.Compile("schema.json")
	if err != nil {
		return nil, fmt.Errorf("jsonschema: compile schema: %w", err)
	}
	return compiled, nil
}

var printer = message.NewPrinter(language.English)

// flatten walks the cause tree and reports one issue per leaf failure.
func flatten(verr *santhosh.ValidationError) []ward.Issue {
	if len(verr.Causes) == 0 {
		return []ward.Issue{{
			Path:    strings.Join(verr.InstanceLocation, "/"),
			Message: verr.ErrorKind.LocalizedString(printer),
			Code:    strings.Join(verr.ErrorKind.KeywordPath(), "/"),
		}}
	}

	var issues []ward.Issue
	for _, cause := range verr.Causes {
		issues = append(issues, flatten(cause)...)
	}
	return issues
}

// widen converts string-map slots (params, query) to the decoded-JSON
// shape the engine expects.
func widen(input any) any {
	if m, ok := input.(map[string]string); ok {
		obj := make(map[string]any, len(m))
		for k, v := range m {
			obj[k] = v
		}
		return obj
	}
	return input
}
