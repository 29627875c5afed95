package places

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// checkVar validates a single value against a validator tag and reports a
// ValidationError for operation/field on failure.
func checkVar(operation, field string, value any, tag, message string) error {
	err := validate.Var(value, tag)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &ValidationError{Operation: operation, Field: field, Message: err.Error()}
	}
	return &ValidationError{Operation: operation, Field: field, Message: message}
}

// requireAny fails unless params carries at least one of keys.
func requireAny(operation string, params *Params, keys ...string) error {
	if params.HasAny(keys...) {
		return nil
	}
	return &ValidationError{
		Operation: operation,
		Message:   "at least one of " + strings.Join(keys, ", ") + " must be set",
	}
}
