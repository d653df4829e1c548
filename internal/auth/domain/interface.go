package domain

import "context"

//go:generate mockgen -destination=../../mocks/mock_user_repository.go -package=mocks github.com/sameershaik-coder/account-service/internal/auth/domain UserRepository
//go:generate mockgen -destination=../../mocks/mock_token_blacklist.go -package=mocks github.com/sameershaik-coder/account-service/internal/auth/domain TokenBlacklist

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	Create(ctx context.Context, user *User) error
	Update(ctx context.Context, user *User) error
	List(ctx context.Context) ([]User, error)
}

// TokenBlacklist tracks revoked refresh tokens by JTI. Revoke must be
// idempotent: revoking the same JTI twice updates revoked_at and succeeds.
type TokenBlacklist interface {
	Revoke(ctx context.Context, token *RevokedToken) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}
