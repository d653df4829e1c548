package dto

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (l LoginInput) Validate() error {
	return fieldErrors(validation.ValidateStruct(&l,
		validation.Field(&l.Email, validation.Required, is.Email),
		validation.Field(&l.Password, validation.Required),
	))
}
