package llm

import (
	"errors"
	"fmt"
)

type ErrorType int

const (
	// ErrTransport covers network failures and non-2xx HTTP responses.
	ErrTransport ErrorType = iota
	// ErrModel means the endpoint responded and reported an explicit error.
	ErrModel
	// ErrEmptyResponse means the endpoint returned blank generated text.
	ErrEmptyResponse
)

func (t ErrorType) String() string {
	switch t {
	case ErrTransport:
		return "Transport"
	case ErrModel:
		return "Model"
	case ErrEmptyResponse:
		return "EmptyResponse"
	default:
		return "Unknown"
	}
}

type Error struct {
	Type    ErrorType
	Message string
	Cause   error
}

func NewError(errorType ErrorType, message string) *Error {
	return &Error{Type: errorType, Message: message}
}

func WrapError(err error, errorType ErrorType, message string) *Error {
	return &Error{Type: errorType, Message: message, Cause: err}
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s | cause: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// IsErrorType reports whether err is an llm.Error of the given type.
func IsErrorType(err error, errorType ErrorType) bool {
	var llmErr *Error
	if errors.As(err, &llmErr) {
		return llmErr.Type == errorType
	}
	return false
}
