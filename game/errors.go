package game

import "fmt"

// Code classifies a rule violation. Every violation is a local,
// synchronous validation failure; none are retried internally.
type Code string

const (
	CodeNotFound         Code = "NOT_FOUND"
	CodeInvalidAction    Code = "INVALID_ACTION"
	CodeNotYourTurn      Code = "NOT_YOUR_TURN"
	CodeDuplicateSecret  Code = "DUPLICATE_SECRET"
	CodeInvalidReference Code = "INVALID_REFERENCE"
)

// Error is the typed result of an illegal action. Matching with
// errors.Is compares codes only, so sentinel values below can be used
// as targets.
type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Code)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// Sentinels for errors.Is checks.
var (
	ErrNotFound         = &Error{Code: CodeNotFound}
	ErrInvalidAction    = &Error{Code: CodeInvalidAction}
	ErrNotYourTurn      = &Error{Code: CodeNotYourTurn}
	ErrDuplicateSecret  = &Error{Code: CodeDuplicateSecret}
	ErrInvalidReference = &Error{Code: CodeInvalidReference}
)

func errf(code Code, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}
