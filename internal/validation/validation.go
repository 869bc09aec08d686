// Package validation wraps a shared go-playground validator with the custom
// tags used by the domain packages.
package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator is implemented by enumerations that know their legal values.
type Validator interface {
	Valid() bool
}

var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// "known" accepts fields whose type reports itself valid.
	_ = v.RegisterValidation("known", func(fl validator.FieldLevel) bool {
		if e, ok := fl.Field().Interface().(Validator); ok {
			return e.Valid()
		}

		return false
	})

	return v
}

// Struct validates s and flattens validator errors into one readable error.
func Struct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}

	return errors.New(strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())

	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "known":
		return fmt.Sprintf("%s %q is not supported", field, fmt.Sprint(fe.Value()))
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte", "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "lt", "lte", "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	}

	return fmt.Sprintf("%s failed %s", field, fe.Tag())
}
