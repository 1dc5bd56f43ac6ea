// Package tenant bundles the identity repositories behind one transactional
// boundary so lifecycle operations can run their multi-table writes atomically.
package tenant

import (
	"context"
	"database/sql"

	companyrepo "paperbase/internal/company/repository"
	"paperbase/internal/db"
	documentrepo "paperbase/internal/document/repository"
	membershiprepo "paperbase/internal/membership/repository"
	userrepo "paperbase/internal/user/repository"
)

// Store exposes the identity repositories plus a transaction runner. Transact
// hands fn a Store whose repositories all share one transaction; every write
// inside fn commits or rolls back together.
type Store interface {
	Users() userrepo.Repository
	Companies() companyrepo.Repository
	Memberships() membershiprepo.Repository
	Documents() documentrepo.Repository
	Transact(ctx context.Context, fn func(Store) error) error
}

// SQLStore is the Postgres-backed Store.
type SQLStore struct {
	pool        *sql.DB
	users       *userrepo.PostgresRepository
	companies   *companyrepo.PostgresRepository
	memberships *membershiprepo.PostgresRepository
	documents   *documentrepo.PostgresRepository
}

// NewSQLStore returns a Store over the given connection pool.
func NewSQLStore(pool *sql.DB) *SQLStore {
	return &SQLStore{
		pool:        pool,
		users:       userrepo.NewPostgresRepository(pool),
		companies:   companyrepo.NewPostgresRepository(pool),
		memberships: membershiprepo.NewPostgresRepository(pool),
		documents:   documentrepo.NewPostgresRepository(pool),
	}
}

func (s *SQLStore) Users() userrepo.Repository             { return s.users }
func (s *SQLStore) Companies() companyrepo.Repository      { return s.companies }
func (s *SQLStore) Memberships() membershiprepo.Repository { return s.memberships }
func (s *SQLStore) Documents() documentrepo.Repository     { return s.documents }

// Transact runs fn against a store bound to a single transaction. Nested
// Transact calls are not supported.
func (s *SQLStore) Transact(ctx context.Context, fn func(Store) error) error {
	return db.WithinTx(ctx, s.pool, func(tx *sql.Tx) error {
		return fn(&SQLStore{
			pool:        s.pool,
			users:       s.users.WithTx(tx),
			companies:   s.companies.WithTx(tx),
			memberships: s.memberships.WithTx(tx),
			documents:   s.documents.WithTx(tx),
		})
	})
}
