package services

import (
	"connectingbr/internal/domain"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// Inputs carry the same `binding` tags gin validates at the HTTP edge, so
// callers that bypass HTTP (seeding, tests) are held to the same rules.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	RegisterValidations(v)
	return v
}

// RegisterValidations installs the custom rules and JSON field naming on v.
// The HTTP layer calls it on gin's validator engine.
func RegisterValidations(v *validator.Validate) {
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	if err := v.RegisterValidation("strongpassword", strongPassword); err != nil {
		panic(fmt.Sprintf("register strongpassword rule: %v", err))
	}
}

// strongPassword requires a lower case letter, an upper case letter, a digit and one of @$!%*?&
func strongPassword(fl validator.FieldLevel) bool {
	var lower, upper, digit, special bool
	for _, r := range fl.Field().String() {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case strings.ContainsRune("@$!%*?&", r):
			special = true
		}
	}
	return lower && upper && digit && special
}

func validateInput(in any) error {
	if err := validate.Struct(in); err != nil {
		return ValidationErrorFrom(err)
	}
	return nil
}

// ValidationErrorFrom converts validator failures into a *domain.ValidationError
// describing the first offending field. Other errors are returned unchanged.
func ValidationErrorFrom(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}
	fe := fieldErrs[0]
	return &domain.ValidationError{Field: fe.Field(), Message: describe(fe)}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	case "eqfield":
		return fmt.Sprintf("must be equal to %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "strongpassword":
		return "must contain an upper case letter, a lower case letter, a number and a special character (@$!%*?&)"
	default:
		return fmt.Sprintf("failed the %q rule", fe.Tag())
	}
}
