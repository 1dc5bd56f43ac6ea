package repository

import (
	"context"
	"database/sql"
	"errors"

	"paperbase/internal/db"
	"paperbase/internal/fault"
	"paperbase/internal/membership/domain"
)

type PostgresRepository struct {
	q db.DBTX
}

// NewPostgresRepository returns a membership repository that uses the given pool for persistence.
func NewPostgresRepository(pool *sql.DB) *PostgresRepository {
	return &PostgresRepository{q: pool}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *PostgresRepository) WithTx(tx *sql.Tx) *PostgresRepository {
	return &PostgresRepository{q: tx}
}

const membershipColumns = `id, user_id, company_id, role, status, created_at`

// GetByID returns the membership for id, or nil if not found.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.Membership, error) {
	row := r.q.QueryRowContext(ctx, `SELECT `+membershipColumns+` FROM memberships WHERE id = $1`, id)
	return scanMembership(row)
}

// GetByUserAndCompany returns the membership binding the user to the company,
// or nil. The (user_id, company_id) pair is unique so at most one row exists.
func (r *PostgresRepository) GetByUserAndCompany(ctx context.Context, userID, companyID string) (*domain.Membership, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+membershipColumns+` FROM memberships WHERE user_id = $1 AND company_id = $2`,
		userID, companyID)
	return scanMembership(row)
}

// ListByUser returns all memberships held by the user.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Membership, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+membershipColumns+` FROM memberships WHERE user_id = $1 ORDER BY created_at`, userID)
	if err != nil {
		return nil, err
	}
	return collectMemberships(rows)
}

// ListByCompany returns all memberships in the company.
func (r *PostgresRepository) ListByCompany(ctx context.Context, companyID string) ([]*domain.Membership, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+membershipColumns+` FROM memberships WHERE company_id = $1 ORDER BY created_at`, companyID)
	if err != nil {
		return nil, err
	}
	return collectMemberships(rows)
}

// CountByUser returns how many memberships the user holds anywhere. Zero means
// the user record itself is eligible for deletion.
func (r *PostgresRepository) CountByUser(ctx context.Context, userID string) (int, error) {
	var n int
	err := r.q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM memberships WHERE user_id = $1`, userID).Scan(&n)
	return n, err
}

// CountByCompany returns how many memberships the company has.
func (r *PostgresRepository) CountByCompany(ctx context.Context, companyID string) (int, error) {
	var n int
	err := r.q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM memberships WHERE company_id = $1`, companyID).Scan(&n)
	return n, err
}

// Create persists the membership. A concurrent insert for the same
// (user, company) pair surfaces as a Conflict.
func (r *PostgresRepository) Create(ctx context.Context, m *domain.Membership) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO memberships (id, user_id, company_id, role, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		m.ID, m.UserID, m.CompanyID, m.Role, m.Status, m.CreatedAt)
	if db.IsUniqueViolation(err) {
		return fault.Conflict("user already has a membership in this company")
	}
	return err
}

// Update updates the membership's role and status.
func (r *PostgresRepository) Update(ctx context.Context, m *domain.Membership) error {
	_, err := r.q.ExecContext(ctx,
		`UPDATE memberships SET role = $2, status = $3 WHERE id = $1`,
		m.ID, m.Role, m.Status)
	return err
}

// Delete removes the membership record.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	_, err := r.q.ExecContext(ctx, `DELETE FROM memberships WHERE id = $1`, id)
	return err
}

func scanMembership(row *sql.Row) (*domain.Membership, error) {
	var m domain.Membership
	err := row.Scan(&m.ID, &m.UserID, &m.CompanyID, &m.Role, &m.Status, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func collectMemberships(rows *sql.Rows) ([]*domain.Membership, error) {
	defer rows.Close()
	var out []*domain.Membership
	for rows.Next() {
		var m domain.Membership
		if err := rows.Scan(&m.ID, &m.UserID, &m.CompanyID, &m.Role, &m.Status, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}
