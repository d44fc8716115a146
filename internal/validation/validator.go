package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"cert-study/internal/domain"

	"github.com/go-playground/validator/v10"
)

// Validator wraps the go-playground validator and reports failures as domain.ValidationErrors.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a validator that names fields by their json tag and
// knows the "option_label" tag (one of A..E).
func NewValidator() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("option_label", func(fl validator.FieldLevel) bool {
		return domain.IsOptionLabel(fl.Field().String())
	})
	return &Validator{validate: v}
}

// ValidateStruct validates s using its struct tags.
func (v *Validator) ValidateStruct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	out := make(domain.ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, toValidationError(fe))
	}
	return out
}

func toValidationError(fe validator.FieldError) domain.ValidationError {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return domain.NewMissingFieldError(field)
	case "min":
		return domain.ValidationError{
			Field:   field,
			Code:    domain.CodeValidation,
			Message: fmt.Sprintf("%s must have at least %s entries", field, fe.Param()),
			Value:   fe.Value(),
		}
	case "gt", "gte":
		return domain.ValidationError{
			Field:   field,
			Code:    domain.CodeValidation,
			Message: fmt.Sprintf("%s must be greater than %s", field, fe.Param()),
			Value:   fe.Value(),
		}
	default:
		return domain.NewInvalidFormatError(field, fe.Value())
	}
}
