package repository

import (
	"context"

	"paperbase/internal/document/domain"
)

// Repository defines persistence for document metadata. The identity core
// reads counts for the tenant-deletion guard; the byte payloads live in the
// blob store.
type Repository interface {
	GetByID(ctx context.Context, id string) (*domain.Document, error)
	ListByCompany(ctx context.Context, companyID string) ([]*domain.Document, error)
	CountByCompany(ctx context.Context, companyID string) (int, error)
	Create(ctx context.Context, d *domain.Document) error
}
