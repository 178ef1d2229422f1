// Package playground adapts go-playground/validator to the ward Adapter
// contract. The schema is a struct prototype: the input is decoded into a
// fresh instance of the prototype's type via a JSON round trip, then
// tag-validated. On success the populated struct pointer is the normalized
// output, so business handlers receive typed data instead of raw maps.
//
//	type CreateUser struct {
//	    Name  string `json:"name" validate:"required"`
//	    Email string `json:"email" validate:"required,email"`
//	}
//
//	b := ward.New(ward.WithAdapter(playground.New())).Body(CreateUser{})
//
// The JSON round trip does not coerce strings to numbers, so this adapter
// suits JSON bodies better than query or path slots.
package playground

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"

	"github.com/wardhttp/ward"
)

// Adapter validates inputs against struct prototypes using validator/v10
// struct tags.
type Adapter struct {
	v *validator.Validate
}

// New returns an Adapter with a fresh validator instance.
func New() *Adapter {
	return &Adapter{v: validator.New(validator.WithRequiredStructEnabled())}
}

// NewWith wraps an existing validator instance, keeping any custom rules
// the caller has registered on it.
func NewWith(v *validator.Validate) *Adapter {
	return &Adapter{v: v}
}

// Validate implements ward.Adapter. The schema must be a struct value or
// pointer to one; anything else is an engine error.
func (a *Adapter) Validate(ctx context.Context, sch, input any) (ward.Outcome, error) {
	t := reflect.TypeOf(sch)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return ward.Outcome{}, fmt.Errorf("playground: schema %T is not a struct prototype", sch)
	}

	target := reflect.New(t).Interface()

	raw, err := json.Marshal(input)
	if err != nil {
		return ward.Outcome{}, fmt.Errorf("playground: encode input: %w", err)
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return ward.Reject(ward.Issue{Message: err.Error(), Code: "decode"}), nil
	}

	err = a.v.StructCtx(ctx, target)
	if err == nil {
		return ward.Accept(target), nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		issues := make([]ward.Issue, len(verrs))
		for i, fe := range verrs {
			issues[i] = ward.Issue{
				Path:    fe.Field(),
				Message: fmt.Sprintf("failed on the %q rule", fe.Tag()),
				Code:    fe.Tag(),
			}
		}
		return ward.Reject(issues...), nil
	}
	return ward.Outcome{}, err
}
