package rx

import (
	"errors"
	"fmt"
)

// ContractError reports misuse of the runtime by an operator author.
//
// Contract errors are raised with panic: continuing after one would break
// the exactly-once guarantees every subscription depends on.
type ContractError struct {
	// Code identifies the violated contract.
	Code ContractErrorCode

	// Message is a human-readable description.
	Message string

	// Operator names the operator involved, when known.
	Operator string
}

// ContractErrorCode categorizes contract violations.
type ContractErrorCode string

const (
	// ErrCodeAlreadyConfigured indicates a cancellation token was configured twice.
	ErrCodeAlreadyConfigured ContractErrorCode = "ALREADY_CONFIGURED"

	// ErrCodeNilHandle indicates Run returned a nil sink or subscription.
	ErrCodeNilHandle ContractErrorCode = "NIL_HANDLE"
)

// Error implements the error interface.
func (e *ContractError) Error() string {
	if e.Operator != "" {
		return fmt.Sprintf("%s: %s (operator=%s)", e.Code, e.Message, e.Operator)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsContractError reports whether v (typically a recovered panic value) is
// a *ContractError with the given code.
func IsContractError(v any, code ContractErrorCode) bool {
	err, ok := v.(error)
	if !ok {
		return false
	}
	var ce *ContractError
	if errors.As(err, &ce) {
		return ce.Code == code
	}
	return false
}

// ErrSubjectDisposed is delivered as an error event to observers that
// subscribe to, or emit into, a disposed subject.
var ErrSubjectDisposed = errors.New("rx: subject disposed")
