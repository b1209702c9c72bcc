package scenario

import (
	"errors"
	"fmt"
)

// Load error codes.
const (
	ErrCodeRead            = "READ_FAILED"
	ErrCodeParse           = "PARSE_FAILED"
	ErrCodeSchema          = "SCHEMA_VIOLATION"
	ErrCodeInvalid         = "INVALID_SCENARIO"
	ErrCodeUnknownFunction = "UNKNOWN_FUNCTION"
)

// LoadError is returned when a scenario cannot be loaded or built.
type LoadError struct {
	Code    string
	Message string
	Path    string
	Err     error
}

func (e *LoadError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Code, e.Message)
	if e.Path != "" {
		msg = e.Path + ": " + msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// IsLoadError reports whether err is a *LoadError with the given code.
// Uses errors.As to handle wrapped errors.
func IsLoadError(err error, code string) bool {
	var le *LoadError
	if errors.As(err, &le) {
		return le.Code == code
	}
	return false
}
