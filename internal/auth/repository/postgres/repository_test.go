package postgres_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sameershaik-coder/account-service/internal/auth/domain"
	repo "github.com/sameershaik-coder/account-service/internal/auth/repository/postgres"
	apperrors "github.com/sameershaik-coder/account-service/internal/errors"
)

var userColumns = []string{
	"id", "email", "password_hash", "first_name", "last_name",
	"is_active", "is_staff", "is_superuser", "date_joined", "updated_at",
}

func userRow(rows *pgxmock.Rows, u *domain.User) *pgxmock.Rows {
	return rows.AddRow(u.ID, u.Email, u.PasswordHash, u.FirstName, u.LastName,
		u.IsActive, u.IsStaff, u.IsSuperuser, u.DateJoined, u.UpdatedAt)
}

func sampleUser() *domain.User {
	now := time.Now()
	return &domain.User{
		ID:           "user-123",
		Email:        "test@example.com",
		PasswordHash: "hash",
		FirstName:    "Test",
		LastName:     "User",
		IsActive:     true,
		DateJoined:   now,
		UpdatedAt:    now,
	}
}

func TestGetByEmail(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewPostgresRepository(mock)
	expected := sampleUser()
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mock.ExpectQuery("FROM users WHERE email").
			WithArgs(expected.Email).
			WillReturnRows(userRow(pgxmock.NewRows(userColumns), expected))

		user, err := r.GetByEmail(ctx, expected.Email)
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, expected.ID, user.ID)
		assert.Equal(t, expected.Email, user.Email)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("FROM users WHERE email").
			WithArgs(expected.Email).
			WillReturnError(pgx.ErrNoRows)

		user, err := r.GetByEmail(ctx, expected.Email)
		require.NoError(t, err) // Should return nil user, nil error
		assert.Nil(t, user)
	})

	t.Run("database error", func(t *testing.T) {
		mock.ExpectQuery("FROM users WHERE email").
			WithArgs(expected.Email).
			WillReturnError(fmt.Errorf("db error"))

		_, err := r.GetByEmail(ctx, expected.Email)
		assert.Error(t, err)
	})
}

func TestGetByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewPostgresRepository(mock)
	expected := sampleUser()
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mock.ExpectQuery("FROM users WHERE id").
			WithArgs(expected.ID).
			WillReturnRows(userRow(pgxmock.NewRows(userColumns), expected))

		user, err := r.GetByID(ctx, expected.ID)
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, expected.Email, user.Email)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("FROM users WHERE id").
			WithArgs("missing-id").
			WillReturnError(pgx.ErrNoRows)

		user, err := r.GetByID(ctx, "missing-id")
		require.NoError(t, err)
		assert.Nil(t, user)
	})
}

func TestCreate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewPostgresRepository(mock)
	user := sampleUser()
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO users").
			WithArgs(user.ID, user.Email, user.PasswordHash, user.FirstName, user.LastName,
				user.IsActive, user.IsStaff, user.IsSuperuser, user.DateJoined, user.UpdatedAt).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		err := r.Create(ctx, user)
		assert.NoError(t, err)
	})

	t.Run("unique violation maps to ErrEmailAlreadyInUse", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO users").
			WithArgs(user.ID, user.Email, user.PasswordHash, user.FirstName, user.LastName,
				user.IsActive, user.IsStaff, user.IsSuperuser, user.DateJoined, user.UpdatedAt).
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

		err := r.Create(ctx, user)
		assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyInUse)
	})

	t.Run("other database errors pass through", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO users").
			WithArgs(user.ID, user.Email, user.PasswordHash, user.FirstName, user.LastName,
				user.IsActive, user.IsStaff, user.IsSuperuser, user.DateJoined, user.UpdatedAt).
			WillReturnError(fmt.Errorf("connection reset"))

		err := r.Create(ctx, user)
		require.Error(t, err)
		assert.NotErrorIs(t, err, apperrors.ErrEmailAlreadyInUse)
	})
}

func TestUpdate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewPostgresRepository(mock)
	user := sampleUser()
	ctx := context.Background()

	mock.ExpectExec("UPDATE users").
		WithArgs(user.ID, user.FirstName, user.LastName, user.IsActive, user.UpdatedAt).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err = r.Update(ctx, user)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestList(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewPostgresRepository(mock)
	ctx := context.Background()

	first := sampleUser()
	second := sampleUser()
	second.ID = "user-456"
	second.Email = "second@example.com"

	rows := pgxmock.NewRows(userColumns)
	userRow(rows, first)
	userRow(rows, second)

	mock.ExpectQuery("FROM users ORDER BY date_joined").WillReturnRows(rows)

	users, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, first.Email, users[0].Email)
	assert.Equal(t, second.Email, users[1].Email)
}

func TestRevoke(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewPostgresRepository(mock)
	ctx := context.Background()

	token := &domain.RevokedToken{
		JTI:       "jti-123",
		UserID:    "user-123",
		ExpiresAt: time.Now().Add(7 * 24 * time.Hour),
		RevokedAt: time.Now(),
	}

	t.Run("inserts the revocation record", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO revoked_tokens").
			WithArgs(token.JTI, token.UserID, token.ExpiresAt, token.RevokedAt).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		err := r.Revoke(ctx, token)
		assert.NoError(t, err)
	})

	t.Run("revoking the same JTI again succeeds", func(t *testing.T) {
		// ON CONFLICT upsert: the second write updates revoked_at.
		mock.ExpectExec("INSERT INTO revoked_tokens").
			WithArgs(token.JTI, token.UserID, token.ExpiresAt, token.RevokedAt).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		err := r.Revoke(ctx, token)
		assert.NoError(t, err)
	})
}

func TestIsRevoked(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewPostgresRepository(mock)
	ctx := context.Background()

	t.Run("revoked", func(t *testing.T) {
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs("jti-123").
			WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

		revoked, err := r.IsRevoked(ctx, "jti-123")
		require.NoError(t, err)
		assert.True(t, revoked)
	})

	t.Run("not revoked", func(t *testing.T) {
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs("jti-456").
			WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))

		revoked, err := r.IsRevoked(ctx, "jti-456")
		require.NoError(t, err)
		assert.False(t, revoked)
	})

	t.Run("database error", func(t *testing.T) {
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs("jti-789").
			WillReturnError(fmt.Errorf("db error"))

		_, err := r.IsRevoked(ctx, "jti-789")
		assert.Error(t, err)
	})
}
