package validator

import (
	"context"

	"github.com/go-playground/validator/v10"
)

// Validator validates structs against their `validate` tags.
type Validator interface {
	// Struct validates s and returns ValidationErrors on failure.
	Struct(s any) error

	// StructCtx is Struct with a context passed to context-aware rules.
	StructCtx(ctx context.Context, s any) error

	// Var validates a single value against a tag expression.
	Var(field any, tag string) error

	// GetValidator returns the underlying go-playground instance.
	GetValidator() *validator.Validate
}

// ValidationErrors is returned when one or more fields fail.
// Errors are reported in field declaration order.
type ValidationErrors interface {
	error
	Errors() []FieldError
	HasErrors() bool
	// First returns the first failing field.
	First() FieldError
}

// FieldError describes one failing field.
type FieldError interface {
	// Field is the struct field name.
	Field() string
	// Key is the mapstructure key of the field, or Field when it has none.
	Key() string
	Tag() string
	Value() any
	// Message is the English translation of the failure.
	Message() string
}

// ValidationOption configures a validator.
type ValidationOption func(*validatorImpl)

// WithTagName sets the struct tag read for rules (default "validate").
func WithTagName(tagName string) ValidationOption {
	return func(v *validatorImpl) {
		v.validator.SetTagName(tagName)
	}
}

// WithKeyTag sets the struct tag used to report keys (default "mapstructure").
func WithKeyTag(tag string) ValidationOption {
	return func(v *validatorImpl) {
		v.keyTag = tag
	}
}
