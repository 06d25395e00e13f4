// Package validation checks struct fields declared with `validate` tags and
// reports them by their human `label`.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// ErrInvalid matches every *Error.
var ErrInvalid = errors.New("validation failed")

// FieldError is one failed rule.
type FieldError struct {
	Field string
	Rule  string
}

// Error lists every field that failed validation.
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	missing := make([]string, 0, len(e.Fields))
	invalid := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		if f.Rule == "required" || f.Rule == "min" {
			missing = append(missing, f.Field)
			continue
		}
		invalid = append(invalid, fmt.Sprintf("%s (%s)", f.Field, f.Rule))
	}

	var parts []string
	if len(missing) > 0 {
		parts = append(parts, "missing required fields: "+strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		parts = append(parts, "invalid fields: "+strings.Join(invalid, ", "))
	}
	return strings.Join(parts, "; ")
}

// Is lets errors.Is(err, ErrInvalid) match any *Error.
func (e *Error) Is(target error) bool {
	return target == ErrInvalid
}

// Names returns the labels of the failed fields in declaration order.
func (e *Error) Names() []string {
	names := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		names = append(names, f.Field)
	}
	return names
}

var (
	once     sync.Once
	validate *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(field reflect.StructField) string {
			if label := field.Tag.Get("label"); label != "" {
				return label
			}
			if name := strings.Split(field.Tag.Get("mapstructure"), ",")[0]; name != "" && name != "-" {
				return name
			}
			return field.Name
		})
	})
	return validate
}

// Struct validates v and converts rule failures into *Error.
func Struct(v any) error {
	err := instance().Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	out := &Error{Fields: make([]FieldError, 0, len(fieldErrs))}
	for _, fe := range fieldErrs {
		out.Fields = append(out.Fields, FieldError{Field: fieldPath(fe), Rule: fe.Tag()})
	}
	return out
}

// Var validates a single value against tag, reporting failures under label.
func Var(label string, value any, tag string) error {
	err := instance().Var(value, tag)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	out := &Error{}
	for _, fe := range fieldErrs {
		out.Fields = append(out.Fields, FieldError{Field: label, Rule: fe.Tag()})
	}
	return out
}

// fieldPath drops the root struct name from the namespace so nested config
// fields read as "mail.host".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if idx := strings.Index(ns, "."); idx >= 0 {
		return ns[idx+1:]
	}
	return fe.Field()
}
