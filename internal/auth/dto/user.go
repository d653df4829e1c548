package dto

import (
	"time"

	"github.com/sameershaik-coder/account-service/internal/auth/domain"
)

// UserOutput is the public user representation. The password hash and the
// privilege flags are never serialized.
type UserOutput struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	DateJoined time.Time `json:"date_joined"`
	IsActive   bool      `json:"is_active"`
}

func NewUserOutput(u *domain.User) UserOutput {
	return UserOutput{
		ID:         u.ID,
		Email:      u.Email,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		DateJoined: u.DateJoined,
		IsActive:   u.IsActive,
	}
}

type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

type LoginResponse struct {
	Access  string     `json:"access"`
	Refresh string     `json:"refresh"`
	User    UserOutput `json:"user"`
}
