package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
)

// ErrorCode names an error condition. Codes are stable and appear in
// --json output.
type ErrorCode string

const (
	// Contract violations: a caller passed something the API never accepts.
	ErrCodeContractViolation   ErrorCode = "CONTRACT_VIOLATION"
	ErrCodeInvalidRoot         ErrorCode = "INVALID_ROOT"
	ErrCodeInvalidCollaborator ErrorCode = "INVALID_COLLABORATOR"

	// Refused edits
	ErrCodeMissingKey     ErrorCode = "MISSING_KEY"
	ErrCodeCollisionNoop  ErrorCode = "COLLISION_NOOP"
	ErrCodeNotAContainer  ErrorCode = "NOT_A_CONTAINER"
	ErrCodeStaleSelection ErrorCode = "STALE_SELECTION"

	// Document I/O errors
	ErrCodeFetchFailure ErrorCode = "FETCH_FAILURE"
	ErrCodeDecodeFailed ErrorCode = "DECODE_FAILED"
	ErrCodeCyclicValue  ErrorCode = "CYCLIC_VALUE"
	ErrCodeQueryFailed  ErrorCode = "QUERY_FAILED"

	// Configuration errors
	ErrCodeConfigNotFound   ErrorCode = "CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid    ErrorCode = "CONFIG_INVALID"
	ErrCodeConfigValidation ErrorCode = "CONFIG_VALIDATION"

	// General errors
	ErrCodeInternal     ErrorCode = "INTERNAL_ERROR"
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
)

// GroveError is an error with a stable code, a message fit for the status
// line, and optional details for JSON output.
type GroveError struct {
	Code    ErrorCode      `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
	Cause   error          `json:"-"`
}

func (e *GroveError) Error() string {
	if e.Cause == nil {
		return string(e.Code) + ": " + e.Message
	}
	return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
}

func (e *GroveError) Unwrap() error { return e.Cause }

// WithDetail records key=value and returns e for chaining.
func (e *GroveError) WithDetail(key string, value any) *GroveError {
	if e.Details == nil {
		e.Details = map[string]any{}
	}
	e.Details[key] = value
	return e
}

// ToJSON renders e as indented JSON. The cause is not included.
func (e *GroveError) ToJSON() string {
	data, _ := json.MarshalIndent(e, "", "  ")
	return string(data)
}

// New returns an error with code and message.
func New(code ErrorCode, message string) *GroveError {
	return &GroveError{Code: code, Message: message}
}

// Wrap returns an error with code and message caused by err.
func Wrap(err error, code ErrorCode, message string) *GroveError {
	return &GroveError{Code: code, Message: message, Cause: err}
}

// Is reports whether any GroveError in err's chain carries code.
func Is(err error, code ErrorCode) bool {
	for err != nil {
		var ge *GroveError
		if !stderrors.As(err, &ge) {
			return false
		}
		if ge.Code == code {
			return true
		}
		err = ge.Cause
	}
	return false
}

// GetCode returns the code of the outermost GroveError in err's chain, or ""
// when there is none.
func GetCode(err error) ErrorCode {
	var ge *GroveError
	if stderrors.As(err, &ge) {
		return ge.Code
	}
	return ""
}

// IsContractViolation reports whether err signals a caller bug rather than a
// data problem. These are never recovered from.
func IsContractViolation(err error) bool {
	switch GetCode(err) {
	case ErrCodeContractViolation, ErrCodeInvalidRoot, ErrCodeInvalidCollaborator:
		return true
	}
	return false
}

// IsRefusedEdit reports whether err is a recoverable refusal of a single edit.
// The document is left in its last consistent state.
func IsRefusedEdit(err error) bool {
	switch GetCode(err) {
	case ErrCodeMissingKey, ErrCodeCollisionNoop, ErrCodeNotAContainer, ErrCodeStaleSelection:
		return true
	}
	return false
}

// UserMessage returns the message of the outermost GroveError in err's chain,
// without the code prefix or cause. Other errors return err.Error().
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var ge *GroveError
	if stderrors.As(err, &ge) {
		return ge.Message
	}
	return err.Error()
}
