package common

import (
	"errors"
	"fmt"
)

// Error codes follow the HTTP convention used across the suite: 400 for
// validation failures, 403 for missing capabilities, 409 for state conflicts,
// 503 while the system is halted, 500 for integrity violations that should be
// structurally unreachable.
const (
	CodeValidation    = 400
	CodeAuthorization = 403
	CodeConflict      = 409
	CodeSystemHalt    = 503
	CodeIntegrity     = 500
)

var (
	ErrZeroAddress        = errors.New("ZeroAddress")
	ErrInvalidUserAddress = errors.New("InvalidUserAddress")
	ErrCannotBeZero       = errors.New("CannotBeZero")
	ErrSystemPaused       = errors.New("SystemPaused")
	ErrNotAuthorized      = errors.New("NotAuthorized")
)

type CustomError struct {
	Code    int
	Message string
	Err     error
}

func (e *CustomError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

func (e *CustomError) Unwrap() error {
	return e.Err
}

func NewCustomError(code int, message string, err error) *CustomError {
	return &CustomError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func ValidationError(message string, err error) *CustomError {
	return NewCustomError(CodeValidation, message, err)
}

func AuthorizationError(message string, err error) *CustomError {
	return NewCustomError(CodeAuthorization, message, err)
}

func ConflictError(message string, err error) *CustomError {
	return NewCustomError(CodeConflict, message, err)
}

func SystemHaltError(message string, err error) *CustomError {
	return NewCustomError(CodeSystemHalt, message, err)
}

func IntegrityError(message string, err error) *CustomError {
	return NewCustomError(CodeIntegrity, message, err)
}
