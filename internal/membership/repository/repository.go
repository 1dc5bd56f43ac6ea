package repository

import (
	"context"

	"paperbase/internal/membership/domain"
)

// Repository defines persistence for memberships.
type Repository interface {
	GetByID(ctx context.Context, id string) (*domain.Membership, error)
	// GetByUserAndCompany returns the unique membership for the pair, or nil.
	GetByUserAndCompany(ctx context.Context, userID, companyID string) (*domain.Membership, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Membership, error)
	ListByCompany(ctx context.Context, companyID string) ([]*domain.Membership, error)
	CountByUser(ctx context.Context, userID string) (int, error)
	CountByCompany(ctx context.Context, companyID string) (int, error)
	Create(ctx context.Context, m *domain.Membership) error
	Update(ctx context.Context, m *domain.Membership) error
	Delete(ctx context.Context, id string) error
}
