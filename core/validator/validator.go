package validator

import (
	"context"
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// Validate is the shared validator instance.
var Validate = New()

type validatorImpl struct {
	validator *validator.Validate
	trans     ut.Translator
	keyTag    string
}

// New creates a validator with English translations registered.
func New(opts ...ValidationOption) Validator {
	v := &validatorImpl{
		validator: validator.New(validator.WithRequiredStructEnabled()),
		keyTag:    "mapstructure",
	}

	for _, opt := range opts {
		opt(v)
	}

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	v.trans, _ = uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(v.validator, v.trans)

	v.validator.RegisterTagNameFunc(v.keyName)

	return v
}

// keyName reports fields by their configuration key so messages read
// "url is required" rather than "URL is required".
func (v *validatorImpl) keyName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get(v.keyTag), ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return field.Name
	}
	return name
}

func (v *validatorImpl) Struct(s any) error {
	if s == nil {
		return errors.New("validation target cannot be nil")
	}
	return v.translate(v.validator.Struct(s))
}

func (v *validatorImpl) StructCtx(ctx context.Context, s any) error {
	if s == nil {
		return errors.New("validation target cannot be nil")
	}
	return v.translate(v.validator.StructCtx(ctx, s))
}

func (v *validatorImpl) Var(field any, tag string) error {
	return v.translate(v.validator.Var(field, tag))
}

func (v *validatorImpl) GetValidator() *validator.Validate {
	return v.validator
}

func (v *validatorImpl) translate(err error) error {
	if err == nil {
		return nil
	}

	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return err
	}

	fieldErrors := make([]FieldError, 0, len(ves))
	messages := make([]string, 0, len(ves))
	for _, fe := range ves {
		e := &fieldErrorImpl{fieldError: fe, message: fe.Translate(v.trans)}
		fieldErrors = append(fieldErrors, e)
		messages = append(messages, e.message)
	}

	return &validationErrorsImpl{
		fieldErrors: fieldErrors,
		message:     strings.Join(messages, "; "),
	}
}
