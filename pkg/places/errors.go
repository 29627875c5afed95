package places

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ConfigError is returned when a Client is constructed with bad arguments.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("places config error: %s: %s", e.Field, e.Message)
}

// ValidationError is returned when an operation's parameter contract is violated.
// It is always raised before any request is sent.
type ValidationError struct {
	Operation string
	Field     string
	Message   string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("places %s: %s", e.Operation, e.Message)
	}
	return fmt.Sprintf("places %s: invalid %s: %s", e.Operation, e.Field, e.Message)
}

// TransportError wraps a failure of the underlying transport (connection error, timeout).
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("places transport error: %s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ParseError is returned when a response body cannot be decoded in the configured format.
type ParseError struct {
	Format Format
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("places parse error: malformed %s response: %v", e.Format, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// configErrorFrom translates validator output for the client configuration.
func configErrorFrom(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &ConfigError{Field: "config", Message: err.Error()}
	}
	fe := verrs[0]
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return &ConfigError{Field: field, Message: "cannot be empty"}
	case "oneof":
		return &ConfigError{Field: field, Message: fmt.Sprintf("%q is not one of [%s]", fe.Value(), fe.Param())}
	default:
		return &ConfigError{Field: field, Message: fmt.Sprintf("failed %s validation", fe.Tag())}
	}
}
