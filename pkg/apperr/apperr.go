package apperr

import (
	"errors"
	"fmt"
)

// Code classifies an error by the collaborator that produced it.
type Code string

const (
	CodeUnknown          Code = "UNKNOWN"
	CodeStoreUnavailable Code = "STORE_UNAVAILABLE"
	CodeGenerationFailed Code = "GENERATION_FAILED"
	CodeStartupFailure   Code = "STARTUP_FAILURE"
)

// Error pairs a code with a message and an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Cause }

func StoreUnavailable(message string, cause error) error {
	return &Error{Code: CodeStoreUnavailable, Message: message, Cause: cause}
}

func GenerationFailed(message string, cause error) error {
	return &Error{Code: CodeGenerationFailed, Message: message, Cause: cause}
}

func Startup(message string, cause error) error {
	return &Error{Code: CodeStartupFailure, Message: message, Cause: cause}
}

// CodeOf returns the code carried by err, or CodeUnknown.
func CodeOf(err error) Code {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeUnknown
}
