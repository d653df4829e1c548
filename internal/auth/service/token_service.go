package service

//go:generate mockgen -destination=../../mocks/mock_token_generator.go -package=mocks github.com/sameershaik-coder/account-service/internal/auth/service TokenGenerator

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/sameershaik-coder/account-service/internal/auth/domain"
	"github.com/sameershaik-coder/account-service/internal/auth/dto"
	apperrors "github.com/sameershaik-coder/account-service/internal/errors"
)

const refreshTokenType = "refresh"

type TokenGenerator interface {
	Issue(user *domain.User) (*dto.TokenPair, error)
	VerifyAccess(tokenString string) (*TokenClaims, error)
	Revoke(ctx context.Context, refreshToken string) error
	Refresh(ctx context.Context, refreshToken string) (*dto.TokenPair, error)
}

type TokenClaims struct {
	jwt.RegisteredClaims
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	IsStaff   bool   `json:"is_staff"`
	TokenType string `json:"typ,omitempty"`
}

// TokenService mints and validates HS256 token pairs. Access tokens are
// stateless; refresh tokens carry a JTI that is checked against (and written
// to) the blacklist on the refresh/logout path.
type TokenService struct {
	AccessTokenSecret  string
	RefreshTokenSecret string
	AccessTokenExpiry  time.Duration
	RefreshTokenExpiry time.Duration

	blacklist domain.TokenBlacklist
}

func NewTokenService(accessSecret, refreshSecret string, accessMinutes, refreshMinutes int,
	blacklist domain.TokenBlacklist) *TokenService {
	return &TokenService{
		AccessTokenSecret:  accessSecret,
		RefreshTokenSecret: refreshSecret,
		AccessTokenExpiry:  time.Duration(accessMinutes) * time.Minute,
		RefreshTokenExpiry: time.Duration(refreshMinutes) * time.Minute,
		blacklist:          blacklist,
	}
}

// Issue generates an access/refresh pair bound to the user. Nothing is
// persisted here; only revocations ever touch the store.
func (ts *TokenService) Issue(user *domain.User) (*dto.TokenPair, error) {
	now := time.Now()

	accessClaims := TokenClaims{
		UserID:  user.ID,
		Email:   user.Email,
		IsStaff: user.IsAdmin(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ts.AccessTokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	refreshClaims := TokenClaims{
		UserID:    user.ID,
		Email:     user.Email,
		IsStaff:   user.IsAdmin(),
		TokenType: refreshTokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(ts.RefreshTokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims).
		SignedString([]byte(ts.AccessTokenSecret))
	if err != nil {
		return nil, err
	}

	refreshToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).
		SignedString([]byte(ts.RefreshTokenSecret))
	if err != nil {
		return nil, err
	}

	return &dto.TokenPair{Access: accessToken, Refresh: refreshToken}, nil
}

// VerifyAccess parses and validates an access token by signature and expiry
// alone; no store lookup happens on this path.
func (ts *TokenService) VerifyAccess(tokenString string) (*TokenClaims, error) {
	claims, err := ts.parse(tokenString, ts.AccessTokenSecret)
	if err != nil {
		return nil, err
	}

	if claims.TokenType == refreshTokenType {
		return nil, apperrors.ErrInvalidToken
	}

	return claims, nil
}

// Revoke records the refresh token's JTI in the blacklist. Revoking an
// already-revoked token succeeds and refreshes revoked_at.
func (ts *TokenService) Revoke(ctx context.Context, refreshToken string) error {
	claims, err := ts.decodeRefresh(refreshToken)
	if err != nil {
		return err
	}

	return ts.blacklist.Revoke(ctx, &domain.RevokedToken{
		JTI:       claims.ID,
		UserID:    claims.UserID,
		ExpiresAt: claims.ExpiresAt.Time,
		RevokedAt: time.Now(),
	})
}

// Refresh validates the presented refresh token against signature, expiry
// and the blacklist, consumes it, and issues a fresh pair for the same user.
func (ts *TokenService) Refresh(ctx context.Context, refreshToken string) (*dto.TokenPair, error) {
	claims, err := ts.decodeRefresh(refreshToken)
	if err != nil {
		return nil, err
	}

	revoked, err := ts.blacklist.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("blacklist lookup failed: %w", err)
	}
	if revoked {
		return nil, apperrors.ErrInvalidToken
	}

	// Rotation: the presented token is spent regardless of what the client
	// does with the new pair.
	if err := ts.blacklist.Revoke(ctx, &domain.RevokedToken{
		JTI:       claims.ID,
		UserID:    claims.UserID,
		ExpiresAt: claims.ExpiresAt.Time,
		RevokedAt: time.Now(),
	}); err != nil {
		return nil, fmt.Errorf("failed to rotate refresh token: %w", err)
	}

	return ts.Issue(&domain.User{
		ID:      claims.UserID,
		Email:   claims.Email,
		IsStaff: claims.IsStaff,
	})
}

func (ts *TokenService) decodeRefresh(tokenString string) (*TokenClaims, error) {
	claims, err := ts.parse(tokenString, ts.RefreshTokenSecret)
	if err != nil {
		return nil, err
	}

	if claims.TokenType != refreshTokenType || claims.ID == "" {
		return nil, apperrors.ErrInvalidToken
	}

	return claims, nil
}

func (ts *TokenService) parse(tokenString, secret string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})

	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrInvalidToken, err)
	}

	if !token.Valid {
		return nil, apperrors.ErrInvalidToken
	}

	return claims, nil
}
