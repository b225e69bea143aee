// Package errs defines the error taxonomy shared by the dashboard
// core: validation, configuration and computation failures. All three
// carry a human-readable message and are matchable with errors.As.
package errs

import (
	"errors"
	"fmt"
)

// ValidationError reports an input table that cannot be accepted.
// Recoverable; the message is safe to surface to the user.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// ConfigurationError reports a missing or invalid training option,
// e.g. a target column absent from the row set.
type ConfigurationError struct {
	Msg string
}

func (e *ConfigurationError) Error() string { return e.Msg }

// ComputationError reports a numeric failure during fit or predict.
type ComputationError struct {
	Msg string
	Err error
}

func (e *ComputationError) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *ComputationError) Unwrap() error { return e.Err }

// Validationf builds a ValidationError.
func Validationf(format string, args ...interface{}) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// Configurationf builds a ConfigurationError.
func Configurationf(format string, args ...interface{}) error {
	return &ConfigurationError{Msg: fmt.Sprintf(format, args...)}
}

// Computationf builds a ComputationError wrapping err (err may be nil).
func Computationf(err error, format string, args ...interface{}) error {
	return &ComputationError{Msg: fmt.Sprintf(format, args...), Err: err}
}

func IsValidation(err error) bool {
	var e *ValidationError
	return errors.As(err, &e)
}

func IsConfiguration(err error) bool {
	var e *ConfigurationError
	return errors.As(err, &e)
}

func IsComputation(err error) bool {
	var e *ComputationError
	return errors.As(err, &e)
}
