package repository

import (
	"context"

	"paperbase/internal/company/domain"
)

// Repository defines persistence for companies.
type Repository interface {
	GetByID(ctx context.Context, id string) (*domain.Company, error)
	// GetBySlug looks a company up by case-normalized slug.
	GetBySlug(ctx context.Context, slug string) (*domain.Company, error)
	// List returns all companies, newest first.
	List(ctx context.Context) ([]*domain.Company, error)
	Create(ctx context.Context, c *domain.Company) error
	Update(ctx context.Context, c *domain.Company) error
	Delete(ctx context.Context, id string) error
}
