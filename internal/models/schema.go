package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their wire name so errors match the request body.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// FieldError describes one offending field of a request body.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError is returned when a body does not satisfy its schema.
// It lists every offending field.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + ": " + f.Message
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// object is a decoded JSON object whose fields are read one at a time.
// Type problems are collected instead of aborting on the first one.
type object struct {
	fields map[string]json.RawMessage
	errs   []FieldError
	failed map[string]bool
}

func decodeObject(data []byte) (*object, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, &ValidationError{Fields: []FieldError{{Field: "body", Message: "field required"}}}
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil || fields == nil {
		return nil, &ValidationError{Fields: []FieldError{{Field: "body", Message: "must be a JSON object"}}}
	}
	return &object{fields: fields, failed: make(map[string]bool)}, nil
}

func (o *object) fail(field, format string, args ...any) {
	o.errs = append(o.errs, FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
	o.failed[field] = true
}

// raw returns the field's JSON value, or nil when it is absent or null.
func (o *object) raw(field string) json.RawMessage {
	v, ok := o.fields[field]
	if !ok {
		return nil
	}
	v = bytes.TrimSpace(v)
	if bytes.Equal(v, []byte("null")) {
		return nil
	}
	return v
}

// String reads a text field. Absent and null both yield "".
func (o *object) String(field string) string {
	v := o.raw(field)
	if v == nil {
		return ""
	}
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		o.fail(field, "must be a string")
		return ""
	}
	return s
}

// OptionalString reads a text field that may be absent.
func (o *object) OptionalString(field string) *string {
	v := o.raw(field)
	if v == nil {
		return nil
	}
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		o.fail(field, "must be a string")
		return nil
	}
	return &s
}

// Bool reads a boolean field, falling back to def when absent or null.
func (o *object) Bool(field string, def bool) bool {
	v := o.raw(field)
	if v == nil {
		return def
	}
	var b bool
	if err := json.Unmarshal(v, &b); err != nil {
		o.fail(field, "must be a boolean")
		return def
	}
	return b
}

// Int reads an integer field, falling back to def when absent or null.
// Integral JSON numbers (3, 3.0) and strings holding a decimal integer ("3")
// are accepted; anything else is rejected.
func (o *object) Int(field string, def int) int {
	v := o.raw(field)
	if v == nil {
		return def
	}

	if v[0] == '"' {
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			o.fail(field, "must be an integer")
			return def
		}
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			o.fail(field, "must be an integer")
			return def
		}
		return n
	}

	dec := json.NewDecoder(bytes.NewReader(v))
	dec.UseNumber()
	var num json.Number
	if err := dec.Decode(&num); err != nil {
		o.fail(field, "must be an integer")
		return def
	}
	if n, err := num.Int64(); err == nil && n >= math.MinInt && n <= math.MaxInt {
		return int(n)
	}
	f, err := num.Float64()
	if err != nil || f != math.Trunc(f) || f < math.MinInt || f >= -math.MinInt {
		o.fail(field, "must be an integer")
		return def
	}
	return int(f)
}

// validate runs the struct tag rules on doc and merges their failures with
// the decode failures already collected. Fields that failed to decode are not
// reported twice.
func (o *object) validate(doc any) error {
	if err := validate.Struct(doc); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		for _, fe := range verrs {
			if o.failed[fe.Field()] {
				continue
			}
			o.fail(fe.Field(), "%s", ruleMessage(fe))
		}
	}

	if len(o.errs) > 0 {
		return &ValidationError{Fields: o.errs}
	}
	return nil
}

func ruleMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field required"
	case "email":
		return "value is not a valid email address"
	case "min":
		return "must be greater than or equal to " + fe.Param()
	default:
		return "failed on the '" + fe.Tag() + "' rule"
	}
}
