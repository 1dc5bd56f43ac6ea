package repository

import (
	"context"
	"database/sql"
	"errors"

	"paperbase/internal/db"
	"paperbase/internal/document/domain"
)

type PostgresRepository struct {
	q db.DBTX
}

// NewPostgresRepository returns a document repository that uses the given pool for persistence.
func NewPostgresRepository(pool *sql.DB) *PostgresRepository {
	return &PostgresRepository{q: pool}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *PostgresRepository) WithTx(tx *sql.Tx) *PostgresRepository {
	return &PostgresRepository{q: tx}
}

const documentColumns = `id, company_id, name, content_type, storage_path, size_bytes, created_at`

// GetByID returns the document for id, or nil if not found.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.Document, error) {
	row := r.q.QueryRowContext(ctx, `SELECT `+documentColumns+` FROM documents WHERE id = $1`, id)
	var d domain.Document
	err := row.Scan(&d.ID, &d.CompanyID, &d.Name, &d.ContentType, &d.StoragePath, &d.Size, &d.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &d, nil
}

// ListByCompany returns the company's documents, newest first.
func (r *PostgresRepository) ListByCompany(ctx context.Context, companyID string) ([]*domain.Document, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+documentColumns+` FROM documents WHERE company_id = $1 ORDER BY created_at DESC`,
		companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*domain.Document
	for rows.Next() {
		var d domain.Document
		if err := rows.Scan(&d.ID, &d.CompanyID, &d.Name, &d.ContentType, &d.StoragePath, &d.Size, &d.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &d)
	}
	return out, rows.Err()
}

// CountByCompany returns how many documents the company owns. A non-zero
// count blocks company deletion.
func (r *PostgresRepository) CountByCompany(ctx context.Context, companyID string) (int, error) {
	var n int
	err := r.q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM documents WHERE company_id = $1`, companyID).Scan(&n)
	return n, err
}

// Create persists the document metadata.
func (r *PostgresRepository) Create(ctx context.Context, d *domain.Document) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO documents (id, company_id, name, content_type, storage_path, size_bytes, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		d.ID, d.CompanyID, d.Name, d.ContentType, d.StoragePath, d.Size, d.CreatedAt)
	return err
}
