package services

import (
	"errors"
	"fmt"
)

// ErrMissingInput is returned when a pipeline stage is invoked before the
// data it depends on exists (e.g. rewrite before suggestions).
var ErrMissingInput = errors.New("required input is missing")

// ConfigurationError means the model client could not be set up or was used
// before initialization. It is fatal to the current request and not retried.
type ConfigurationError struct {
	Reason string
	Err    error
}

func (e *ConfigurationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("configuration error: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("configuration error: %s", e.Reason)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// ModelCallError wraps any failure of a single completion call: auth, quota,
// transport, or an empty payload. Callers decide whether to recover.
type ModelCallError struct {
	Op  string
	Err error
}

func (e *ModelCallError) Error() string {
	return fmt.Sprintf("model call failed (%s): %v", e.Op, e.Err)
}

func (e *ModelCallError) Unwrap() error {
	return e.Err
}
