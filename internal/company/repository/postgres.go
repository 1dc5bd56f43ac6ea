package repository

import (
	"context"
	"database/sql"
	"errors"

	"paperbase/internal/company/domain"
	"paperbase/internal/db"
	"paperbase/internal/fault"
)

type PostgresRepository struct {
	q db.DBTX
}

// NewPostgresRepository returns a company repository that uses the given pool for persistence.
func NewPostgresRepository(pool *sql.DB) *PostgresRepository {
	return &PostgresRepository{q: pool}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *PostgresRepository) WithTx(tx *sql.Tx) *PostgresRepository {
	return &PostgresRepository{q: tx}
}

const companyColumns = `id, name, slug, plan, is_active, logo_url, created_at`

// GetByID returns the company for id, or nil if not found.
// It returns an error only for database failures, not for missing rows.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.Company, error) {
	row := r.q.QueryRowContext(ctx, `SELECT `+companyColumns+` FROM companies WHERE id = $1`, id)
	return scanCompany(row)
}

// GetBySlug returns the company with the given slug, or nil if not found.
// The slug is normalized before lookup.
func (r *PostgresRepository) GetBySlug(ctx context.Context, slug string) (*domain.Company, error) {
	row := r.q.QueryRowContext(ctx, `SELECT `+companyColumns+` FROM companies WHERE slug = $1`,
		domain.NormalizeSlug(slug))
	return scanCompany(row)
}

// List returns all companies ordered by creation time, newest first.
func (r *PostgresRepository) List(ctx context.Context) ([]*domain.Company, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT `+companyColumns+` FROM companies ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*domain.Company
	for rows.Next() {
		var c domain.Company
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Plan, &c.IsActive, &c.LogoURL, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

// Create persists the company. A concurrent insert with the same slug
// surfaces as a Conflict.
func (r *PostgresRepository) Create(ctx context.Context, c *domain.Company) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO companies (id, name, slug, plan, is_active, logo_url, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		c.ID, c.Name, domain.NormalizeSlug(c.Slug), c.Plan, c.IsActive, c.LogoURL, c.CreatedAt)
	if db.IsUniqueViolation(err) {
		return fault.Conflict("company with this slug already exists")
	}
	return err
}

// Update updates the existing company record. A slug collision surfaces as a
// Conflict.
func (r *PostgresRepository) Update(ctx context.Context, c *domain.Company) error {
	_, err := r.q.ExecContext(ctx,
		`UPDATE companies SET name = $2, slug = $3, plan = $4, is_active = $5, logo_url = $6 WHERE id = $1`,
		c.ID, c.Name, domain.NormalizeSlug(c.Slug), c.Plan, c.IsActive, c.LogoURL)
	if db.IsUniqueViolation(err) {
		return fault.Conflict("company with this slug already exists")
	}
	return err
}

// Delete removes the company record. Memberships cascade at the schema level.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	_, err := r.q.ExecContext(ctx, `DELETE FROM companies WHERE id = $1`, id)
	return err
}

func scanCompany(row *sql.Row) (*domain.Company, error) {
	var c domain.Company
	err := row.Scan(&c.ID, &c.Name, &c.Slug, &c.Plan, &c.IsActive, &c.LogoURL, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}
