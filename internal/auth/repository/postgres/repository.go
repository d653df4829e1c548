// Package postgres persists user records and the refresh-token revocation
// list. Expected schema:
//
//	users(id uuid pk, email text unique, password_hash text, first_name text,
//	      last_name text, is_active bool, is_staff bool, is_superuser bool,
//	      date_joined timestamptz, updated_at timestamptz)
//	revoked_tokens(jti uuid pk, user_id uuid, expires_at timestamptz,
//	      revoked_at timestamptz)
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/sameershaik-coder/account-service/internal/auth/domain"
	apperrors "github.com/sameershaik-coder/account-service/internal/errors"
)

// uniqueViolation is the SQLSTATE for a unique constraint conflict.
const uniqueViolation = "23505"

// PgxIface is the subset of pgxpool.Pool the repository uses; pgxmock
// implements it for tests.
type PgxIface interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type PostgresRepository struct {
	db PgxIface
}

func NewPostgresRepository(db PgxIface) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const userColumns = `id, email, password_hash, first_name, last_name,
	is_active, is_staff, is_superuser, date_joined, updated_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.FirstName, &user.LastName,
		&user.IsActive, &user.IsStaff, &user.IsSuperuser, &user.DateJoined, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// GetByEmail returns (nil, nil) when no user exists for the email.
func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE email = $1 LIMIT 1;`, userColumns)

	user, err := scanUser(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1 LIMIT 1;`, userColumns)

	user, err := scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user, nil
}

// Create inserts the user. The unique index on email is the authoritative
// duplicate check; a conflict surfaces as ErrEmailAlreadyInUse so callers
// losing a registration race still get the duplicate-email error.
func (r *PostgresRepository) Create(ctx context.Context, user *domain.User) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO users (id, email, password_hash, first_name, last_name,
            is_active, is_staff, is_superuser, date_joined, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
    `, user.ID, user.Email, user.PasswordHash, user.FirstName, user.LastName,
		user.IsActive, user.IsStaff, user.IsSuperuser, user.DateJoined, user.UpdatedAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return apperrors.ErrEmailAlreadyInUse
	}

	return err
}

func (r *PostgresRepository) Update(ctx context.Context, user *domain.User) error {
	_, err := r.db.Exec(ctx, `
        UPDATE users
        SET first_name = $2, last_name = $3, is_active = $4, updated_at = $5
        WHERE id = $1
    `, user.ID, user.FirstName, user.LastName, user.IsActive, user.UpdatedAt)

	return err
}

func (r *PostgresRepository) List(ctx context.Context) ([]domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users ORDER BY date_joined;`, userColumns)

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var user domain.User
		err := rows.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.FirstName, &user.LastName,
			&user.IsActive, &user.IsStaff, &user.IsSuperuser, &user.DateJoined, &user.UpdatedAt)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	return users, rows.Err()
}

// Revoke upserts the revocation record. Concurrent revokes of the same JTI
// are last-write-wins on revoked_at and never conflict.
func (r *PostgresRepository) Revoke(ctx context.Context, token *domain.RevokedToken) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO revoked_tokens (jti, user_id, expires_at, revoked_at)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (jti) DO UPDATE SET revoked_at = EXCLUDED.revoked_at
    `, token.JTI, token.UserID, token.ExpiresAt, token.RevokedAt)

	return err
}

func (r *PostgresRepository) IsRevoked(ctx context.Context, jti string) (bool, error) {
	var revoked bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM revoked_tokens WHERE jti = $1);`, jti).Scan(&revoked)
	if err != nil {
		return false, fmt.Errorf("failed to check revocation: %w", err)
	}

	return revoked, nil
}
