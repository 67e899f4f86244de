package validator

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

type validationErrorsImpl struct {
	fieldErrors []FieldError
	message     string
}

func (ve *validationErrorsImpl) Error() string {
	return ve.message
}

func (ve *validationErrorsImpl) Errors() []FieldError {
	return ve.fieldErrors
}

func (ve *validationErrorsImpl) HasErrors() bool {
	return len(ve.fieldErrors) > 0
}

func (ve *validationErrorsImpl) First() FieldError {
	if len(ve.fieldErrors) == 0 {
		return nil
	}
	return ve.fieldErrors[0]
}

type fieldErrorImpl struct {
	fieldError validator.FieldError
	message    string
}

func (fe *fieldErrorImpl) Field() string {
	return fe.fieldError.StructField()
}

func (fe *fieldErrorImpl) Key() string {
	return fe.fieldError.Field()
}

func (fe *fieldErrorImpl) Tag() string {
	return fe.fieldError.Tag()
}

func (fe *fieldErrorImpl) Value() any {
	return fe.fieldError.Value()
}

func (fe *fieldErrorImpl) Message() string {
	return fe.message
}

// FirstError returns the first failing field of a validation error, or nil.
func FirstError(err error) FieldError {
	var ve ValidationErrors
	if errors.As(err, &ve) {
		return ve.First()
	}
	return nil
}

// HasFieldError reports whether err contains a failure for the given struct field.
func HasFieldError(err error, field string) bool {
	var ve ValidationErrors
	if !errors.As(err, &ve) {
		return false
	}
	for _, fe := range ve.Errors() {
		if fe.Field() == field {
			return true
		}
	}
	return false
}

// IsValidationError reports whether err came from tag validation.
func IsValidationError(err error) bool {
	var ve ValidationErrors
	return errors.As(err, &ve)
}
