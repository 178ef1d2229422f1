package schema

import (
	"context"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// StringType validates string values.
type StringType struct {
	minLen  int
	maxLen  int
	pattern *regexp.Regexp
	enum    []string
}

// String returns a schema that accepts any string.
func String() *StringType {
	return &StringType{minLen: -1, maxLen: -1}
}

// Min sets the minimum length.
func (s *StringType) Min(n int) *StringType {
	s.minLen = n
	return s
}

// Max sets the maximum length.
func (s *StringType) Max(n int) *StringType {
	s.maxLen = n
	return s
}

// Pattern requires the value to match re. Panics on an invalid expression,
// mirroring regexp.MustCompile — patterns are programmer input.
func (s *StringType) Pattern(re string) *StringType {
	s.pattern = regexp.MustCompile(re)
	return s
}

// Enum restricts the value to the given set.
func (s *StringType) Enum(values ...string) *StringType {
	s.enum = values
	return s
}

// Parse implements Schema.
func (s *StringType) Parse(_ context.Context, input any) (any, error) {
	str, ok := input.(string)
	if !ok {
		return nil, fail("type", "must be a string, got %T", input)
	}
	if s.minLen >= 0 && len(str) < s.minLen {
		return nil, fail("min", "must be at least %d characters", s.minLen)
	}
	if s.maxLen >= 0 && len(str) > s.maxLen {
		return nil, fail("max", "must be at most %d characters", s.maxLen)
	}
	if s.pattern != nil && !s.pattern.MatchString(str) {
		return nil, fail("pattern", "must match pattern %s", s.pattern)
	}
	if len(s.enum) > 0 {
		found := false
		for _, v := range s.enum {
			if v == str {
				found = true
				break
			}
		}
		if !found {
			return nil, fail("enum", "must be one of [%s]", strings.Join(s.enum, ", "))
		}
	}
	return str, nil
}

// IntType validates integer values, coercing numeric strings and JSON
// numbers to int64.
type IntType struct {
	min, max int64
	hasMin   bool
	hasMax   bool
}

// Int returns a schema that accepts integers.
func Int() *IntType {
	return &IntType{}
}

// Min sets the minimum value.
func (s *IntType) Min(n int64) *IntType {
	s.min, s.hasMin = n, true
	return s
}

// Max sets the maximum value.
func (s *IntType) Max(n int64) *IntType {
	s.max, s.hasMax = n, true
	return s
}

// Parse implements Schema. The normalized output is always int64.
func (s *IntType) Parse(_ context.Context, input any) (any, error) {
	var n int64
	switch v := input.(type) {
	case int:
		n = int64(v)
	case int64:
		n = v
	case float64:
		if v != math.Trunc(v) {
			return nil, fail("type", "must be an integer, got %v", v)
		}
		n = int64(v)
	case string:
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fail("type", "must be an integer, got %q", v)
		}
		n = parsed
	default:
		return nil, fail("type", "must be an integer, got %T", input)
	}
	if s.hasMin && n < s.min {
		return nil, fail("min", "must be at least %d", s.min)
	}
	if s.hasMax && n > s.max {
		return nil, fail("max", "must be at most %d", s.max)
	}
	return n, nil
}

// FloatType validates floating-point values, coercing numeric strings.
type FloatType struct {
	min, max float64
	hasMin   bool
	hasMax   bool
}

// Float returns a schema that accepts numbers.
func Float() *FloatType {
	return &FloatType{}
}

// Min sets the minimum value.
func (s *FloatType) Min(n float64) *FloatType {
	s.min, s.hasMin = n, true
	return s
}

// Max sets the maximum value.
func (s *FloatType) Max(n float64) *FloatType {
	s.max, s.hasMax = n, true
	return s
}

// Parse implements Schema. The normalized output is always float64.
func (s *FloatType) Parse(_ context.Context, input any) (any, error) {
	var n float64
	switch v := input.(type) {
	case int:
		n = float64(v)
	case int64:
		n = float64(v)
	case float64:
		n = v
	case string:
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fail("type", "must be a number, got %q", v)
		}
		n = parsed
	default:
		return nil, fail("type", "must be a number, got %T", input)
	}
	if s.hasMin && n < s.min {
		return nil, fail("min", "must be at least %v", s.min)
	}
	if s.hasMax && n > s.max {
		return nil, fail("max", "must be at most %v", s.max)
	}
	return n, nil
}

// BoolType validates booleans, coercing the strconv.ParseBool string forms.
type BoolType struct{}

// Bool returns a schema that accepts booleans.
func Bool() *BoolType {
	return &BoolType{}
}

// Parse implements Schema.
func (s *BoolType) Parse(_ context.Context, input any) (any, error) {
	switch v := input.(type) {
	case bool:
		return v, nil
	case string:
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fail("type", "must be a boolean, got %q", v)
		}
		return b, nil
	default:
		return nil, fail("type", "must be a boolean, got %T", input)
	}
}

// UUIDType validates RFC 4122 UUID strings.
type UUIDType struct{}

// UUID returns a schema that accepts UUID strings. The normalized output is
// the canonical lowercase form.
func UUID() *UUIDType {
	return &UUIDType{}
}

// Parse implements Schema.
func (s *UUIDType) Parse(_ context.Context, input any) (any, error) {
	str, ok := input.(string)
	if !ok {
		return nil, fail("type", "must be a UUID string, got %T", input)
	}
	id, err := uuid.Parse(str)
	if err != nil {
		return nil, fail("uuid", "must be a valid UUID")
	}
	return id.String(), nil
}
