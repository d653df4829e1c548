package errors

import (
	"errors"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials or inactive account")
	ErrEmailAlreadyInUse  = errors.New("email already in use")
	ErrInvalidToken       = errors.New("invalid token")
	ErrUserNotFound       = errors.New("user not found")
	ErrForbidden          = errors.New("insufficient permissions")
)

// ValidationError carries field-scoped messages so handlers can return them
// to the client without re-inspecting the input.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "validation failed"
}

func NewValidationError(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}

func FieldError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

// AsValidation unwraps err into a *ValidationError if it is one.
func AsValidation(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}
