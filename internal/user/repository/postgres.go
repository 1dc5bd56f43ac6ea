package repository

import (
	"context"
	"database/sql"
	"errors"

	"paperbase/internal/db"
	"paperbase/internal/fault"
	"paperbase/internal/user/domain"
)

type PostgresRepository struct {
	q db.DBTX
}

// NewPostgresRepository returns a user repository that uses the given pool for persistence.
func NewPostgresRepository(pool *sql.DB) *PostgresRepository {
	return &PostgresRepository{q: pool}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *PostgresRepository) WithTx(tx *sql.Tx) *PostgresRepository {
	return &PostgresRepository{q: tx}
}

const userColumns = `id, email, name, password_hash, created_at, updated_at`

// GetByID returns the user for id, or nil if not found.
// It returns an error only for database failures, not for missing rows.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	row := r.q.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

// GetByEmail returns the user with the given email, or nil if not found.
// The email is normalized before lookup.
func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.q.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`,
		domain.NormalizeEmail(email))
	return scanUser(row)
}

// Create persists the user. The user must have ID set; it is not assigned by
// this method. A concurrent insert with the same email surfaces as a Conflict.
func (r *PostgresRepository) Create(ctx context.Context, u *domain.User) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO users (id, email, name, password_hash, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		u.ID, domain.NormalizeEmail(u.Email), u.Name, u.PasswordHash, u.CreatedAt, u.UpdatedAt)
	if db.IsUniqueViolation(err) {
		return fault.Conflict("user with this email already exists")
	}
	return err
}

// Update updates the existing user record. A concurrent email change colliding
// with another user surfaces as a Conflict.
func (r *PostgresRepository) Update(ctx context.Context, u *domain.User) error {
	_, err := r.q.ExecContext(ctx,
		`UPDATE users SET email = $2, name = $3, password_hash = $4, updated_at = $5 WHERE id = $1`,
		u.ID, domain.NormalizeEmail(u.Email), u.Name, u.PasswordHash, u.UpdatedAt)
	if db.IsUniqueViolation(err) {
		return fault.Conflict("user with this email already exists")
	}
	return err
}

// Delete removes the user record. Memberships must already be gone; the
// foreign key rejects a delete while any remain.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	_, err := r.q.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	return err
}

func scanUser(row *sql.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}
