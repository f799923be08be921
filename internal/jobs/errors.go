package jobs

import (
	"errors"
	"fmt"
)

type ErrorType int

const (
	// ErrAlreadyRunning means start was requested while a job is active.
	ErrAlreadyRunning ErrorType = iota
	// ErrUnknownJobType means an unrecognized job type was requested.
	ErrUnknownJobType
	// ErrLaunch covers failures spawning the child process or its log file.
	ErrLaunch
)

func (t ErrorType) String() string {
	switch t {
	case ErrAlreadyRunning:
		return "AlreadyRunning"
	case ErrUnknownJobType:
		return "UnknownJobType"
	case ErrLaunch:
		return "Launch"
	default:
		return "Unknown"
	}
}

type Error struct {
	Type    ErrorType
	Message string
	Cause   error
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

// IsErrorType reports whether err is a jobs.Error of the given type.
func IsErrorType(err error, errorType ErrorType) bool {
	var jobsErr *Error
	if errors.As(err, &jobsErr) {
		return jobsErr.Type == errorType
	}
	return false
}
