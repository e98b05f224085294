package router

import (
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"
)

// Value is one bound route parameter: a single decoded string for a param
// segment, or an ordered sequence of decoded strings for a catch-all.
type Value struct {
	parts []string
	many  bool
}

// paramValue wraps a single decoded parameter value.
func paramValue(s string) Value {
	return Value{parts: []string{s}}
}

// catchAllValue wraps the decoded remainder bound by a catch-all.
// An empty remainder is a valid binding.
func catchAllValue(parts []string) Value {
	if parts == nil {
		parts = []string{}
	}
	return Value{parts: parts, many: true}
}

// String returns the single parameter value. For a catch-all it returns the
// parts joined with "/".
func (v Value) String() string {
	if !v.many {
		if len(v.parts) == 0 {
			return ""
		}
		return v.parts[0]
	}
	return strings.Join(v.parts, "/")
}

// Parts returns the ordered sequence of values. For a single parameter it
// has exactly one element.
func (v Value) Parts() []string {
	out := make([]string, len(v.parts))
	copy(out, v.parts)
	return out
}

// IsCatchAll reports whether this value was bound by a catch-all segment.
func (v Value) IsCatchAll() bool {
	return v.many
}

// Params maps parameter names to bound values. A Params map is rebuilt on
// every successful match and never mutated afterwards.
type Params map[string]Value

// Get returns the single value bound to name, or "" if absent.
func (p Params) Get(name string) string {
	v, ok := p[name]
	if !ok {
		return ""
	}
	return v.String()
}

// GetAll returns the ordered values bound to name. Catch-all parameters may
// yield an empty (but non-nil) slice; absent names yield nil.
func (p Params) GetAll(name string) []string {
	v, ok := p[name]
	if !ok {
		return nil
	}
	return v.Parts()
}

// Has reports whether name was bound by the match.
func (p Params) Has(name string) bool {
	_, ok := p[name]
	return ok
}

// ParseQuery parses a search string into a key/value view with repeated
// keys preserved. A leading "?" is accepted and ignored. A malformed
// query yields whatever pairs could still be parsed.
func ParseQuery(search string) url.Values {
	values, err := url.ParseQuery(strings.TrimPrefix(search, "?"))
	if err != nil && values == nil {
		return url.Values{}
	}
	return values
}

// Bind populates a struct with values from the params map.
// The target must be a pointer to a struct with `param` tags:
//
//	type ShowParams struct {
//	    ID   int      `param:"id"`
//	    Rest []string `param:"rest"`
//	}
func Bind(params Params, target any) error {
	if target == nil {
		return nil
	}

	v := reflect.ValueOf(target)
	if v.Kind() != reflect.Ptr {
		return fmt.Errorf("target must be a pointer, got %s", v.Kind())
	}

	v = v.Elem()
	if v.Kind() != reflect.Struct {
		return fmt.Errorf("target must be a pointer to struct, got pointer to %s", v.Kind())
	}

	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		paramName := field.Tag.Get("param")
		if paramName == "" {
			continue
		}

		value, ok := params[paramName]
		if !ok {
			continue
		}

		fieldValue := v.Field(i)
		if !fieldValue.CanSet() {
			continue
		}

		if err := setField(fieldValue, value); err != nil {
			return fmt.Errorf("binding param %q: %w", paramName, err)
		}
	}

	return nil
}

// setField sets a struct field from a bound value.
func setField(field reflect.Value, value Value) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(value.String())

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(value.String(), 10, 64)
		if err != nil {
			return fmt.Errorf("invalid integer: %s", value.String())
		}
		field.SetInt(n)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(value.String(), 10, 64)
		if err != nil {
			return fmt.Errorf("invalid unsigned integer: %s", value.String())
		}
		field.SetUint(n)

	case reflect.Bool:
		b, err := strconv.ParseBool(value.String())
		if err != nil {
			return fmt.Errorf("invalid boolean: %s", value.String())
		}
		field.SetBool(b)

	case reflect.Slice:
		if field.Type().Elem().Kind() == reflect.String {
			field.Set(reflect.ValueOf(value.Parts()))
		} else {
			return fmt.Errorf("unsupported slice element type: %s", field.Type().Elem().Kind())
		}

	default:
		return fmt.Errorf("unsupported type: %s", field.Kind())
	}

	return nil
}
