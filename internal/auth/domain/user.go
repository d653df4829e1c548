package domain

import "time"

type User struct {
	ID           string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	IsActive     bool
	IsStaff      bool
	IsSuperuser  bool
	DateJoined   time.Time
	UpdatedAt    time.Time
}

// IsAdmin reports whether the user may access admin-only endpoints.
func (u *User) IsAdmin() bool {
	return u.IsStaff || u.IsSuperuser
}

// RevokedToken is the only persisted token state. Refresh tokens are not
// stored at issuance; a row exists only once a token has been revoked.
type RevokedToken struct {
	JTI       string
	UserID    string
	ExpiresAt time.Time
	RevokedAt time.Time
}
