package dto

import (
	validation "github.com/go-ozzo/ozzo-validation"

	apperrors "github.com/sameershaik-coder/account-service/internal/errors"
)

// fieldErrors converts ozzo's per-field errors into the shared
// ValidationError type handlers know how to render.
func fieldErrors(err error) error {
	if err == nil {
		return nil
	}

	verrs, ok := err.(validation.Errors)
	if !ok {
		return err
	}

	fields := make(map[string]string, len(verrs))
	for field, ferr := range verrs {
		fields[field] = ferr.Error()
	}

	return apperrors.NewValidationError(fields)
}
