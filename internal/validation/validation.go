// Package validation wraps go-playground/validator with json field names and
// a short, user facing error summary.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Struct validates v and condenses any field errors into a single error.
func Struct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrors validator.ValidationErrors
	if errors.As(err, &fieldErrors) {
		return formatValidationErrors(fieldErrors)
	}
	return fmt.Errorf("validation failed: %w", err)
}

func formatValidationErrors(errs validator.ValidationErrors) error {
	messages := make([]string, 0, len(errs))
	for _, err := range errs {
		messages = append(messages, formatSingleError(err))
	}
	if len(messages) > 1 {
		return fmt.Errorf("validation failed: %s (and %d more)", messages[0], len(messages)-1)
	}
	return fmt.Errorf("validation failed: %s", messages[0])
}

func formatSingleError(err validator.FieldError) string {
	field := fieldPath(err)
	switch err.Tag() {
	case "required":
		return fmt.Sprintf("'%s' is required", field)
	case "min", "max", "gte", "lte":
		return fmt.Sprintf("'%s' value out of allowed range", field)
	case "oneof":
		return fmt.Sprintf("'%s' must be one of [%s]", field, err.Param())
	case "hexadecimal":
		return fmt.Sprintf("'%s' must be hexadecimal", field)
	case "len":
		return fmt.Sprintf("'%s' must have length %s", field, err.Param())
	default:
		return fmt.Sprintf("'%s' is invalid", field)
	}
}

// fieldPath drops the root struct name from the namespace.
func fieldPath(err validator.FieldError) string {
	ns := err.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return err.Field()
}
