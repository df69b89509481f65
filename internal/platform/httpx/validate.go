package httpx

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// NewValidator returns a validator that reports JSON field names.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}
		return name
	})
	return v
}

// Validate checks s and converts the first failure into a Validation error.
func Validate(v *validator.Validate, s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return Validation("invalid request")
	}
	fe := fieldErrs[0]
	switch fe.Tag() {
	case "required":
		return Validation(fmt.Sprintf("%s is required", fe.Field()))
	case "email":
		return Validation(fmt.Sprintf("%s must be a valid email address", fe.Field()))
	case "min":
		if fe.Kind() == reflect.String {
			return Validation(fmt.Sprintf("%s must be at least %s characters long", fe.Field(), fe.Param()))
		}
		return Validation(fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param()))
	case "max":
		return Validation(fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param()))
	case "oneof":
		return Validation(fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param()))
	default:
		return Validation(fmt.Sprintf("%s is invalid", fe.Field()))
	}
}
