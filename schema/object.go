package schema

import (
	"context"
	"errors"
	"fmt"
)

// ObjectField binds a named field to its schema. Build with Field.
type ObjectField struct {
	name     string
	schema   Schema
	required bool
	def      any
	hasDef   bool
}

// Field declares an optional object field validated by s.
func Field(name string, s Schema) *ObjectField {
	return &ObjectField{name: name, schema: s}
}

// Required marks the field as mandatory.
func (f *ObjectField) Required() *ObjectField {
	f.required = true
	return f
}

// Default sets the normalized value used when the field is absent. The
// default bypasses the field schema; supply it in normalized form.
func (f *ObjectField) Default(v any) *ObjectField {
	f.def, f.hasDef = v, true
	return f
}

// ObjectType validates string-keyed objects field by field. Unknown keys
// are dropped from the normalized output.
type ObjectType struct {
	fields []*ObjectField
}

// Object returns a schema over the given fields.
func Object(fields ...*ObjectField) *ObjectType {
	return &ObjectType{fields: fields}
}

// Parse implements Schema. All field violations are collected before
// rejecting, so one response reports every failing field.
func (s *ObjectType) Parse(ctx context.Context, input any) (any, error) {
	obj, err := asObject(input)
	if err != nil {
		return nil, err
	}

	out := make(map[string]any, len(s.fields))
	var issues Issues

	for _, f := range s.fields {
		raw, ok := obj[f.name]
		if !ok {
			if f.hasDef {
				out[f.name] = f.def
			} else if f.required {
				issues = append(issues, Issue{Path: f.name, Message: "is required", Code: "required"})
			}
			continue
		}

		val, err := f.schema.Parse(ctx, raw)
		var sub Issues
		if errors.As(err, &sub) {
			for _, is := range sub {
				is.Path = joinPath(f.name, is.Path)
				issues = append(issues, is)
			}
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("schema: field %q: %w", f.name, err)
		}
		out[f.name] = val
	}

	if len(issues) > 0 {
		return nil, issues
	}
	return out, nil
}

// asObject widens the supported input shapes to map[string]any.
func asObject(input any) (map[string]any, error) {
	switch v := input.(type) {
	case map[string]any:
		return v, nil
	case map[string]string:
		obj := make(map[string]any, len(v))
		for k, val := range v {
			obj[k] = val
		}
		return obj, nil
	case nil:
		return map[string]any{}, nil
	default:
		return nil, fail("type", "must be an object, got %T", input)
	}
}

func joinPath(parent, child string) string {
	if child == "" {
		return parent
	}
	return parent + "." + child
}
