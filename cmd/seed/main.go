// seed inserts a demo company and its administrator for local development.
// Idempotent: existing rows are left alone.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"

	companydomain "paperbase/internal/company/domain"
	"paperbase/internal/config"
	"paperbase/internal/db"
	membershipdomain "paperbase/internal/membership/domain"
	"paperbase/internal/security"
	"paperbase/internal/tenant"
	userdomain "paperbase/internal/user/domain"
)

const (
	demoCompanyName = "Demo Company"
	demoCompanySlug = "demo"
	demoAdminEmail  = "admin@demo.local"
	demoAdminName   = "Demo Admin"
	demoPassword    = "demo-password"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.DatabaseURL == "" {
		fmt.Fprintln(os.Stderr, "DATABASE_URL is not set")
		os.Exit(1)
	}
	pool, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	ctx := context.Background()
	store := tenant.NewSQLStore(pool)
	hasher := security.NewHasher(cfg.BcryptCost)

	err = store.Transact(ctx, func(st tenant.Store) error {
		company, err := st.Companies().GetBySlug(ctx, demoCompanySlug)
		if err != nil {
			return err
		}
		now := time.Now().UTC()
		if company == nil {
			company = &companydomain.Company{
				ID:        uuid.New().String(),
				Name:      demoCompanyName,
				Slug:      demoCompanySlug,
				Plan:      companydomain.PlanPro,
				IsActive:  true,
				CreatedAt: now,
			}
			if err := st.Companies().Create(ctx, company); err != nil {
				return err
			}
			log.Printf("created company %s (%s)", company.Name, company.ID)
		}

		admin, err := st.Users().GetByEmail(ctx, demoAdminEmail)
		if err != nil {
			return err
		}
		if admin == nil {
			hash, err := hasher.Hash([]byte(demoPassword))
			if err != nil {
				return err
			}
			admin = &userdomain.User{
				ID:           uuid.New().String(),
				Email:        demoAdminEmail,
				Name:         demoAdminName,
				PasswordHash: hash,
				CreatedAt:    now,
				UpdatedAt:    now,
			}
			if err := st.Users().Create(ctx, admin); err != nil {
				return err
			}
			log.Printf("created user %s (%s)", admin.Email, admin.ID)
		}

		membership, err := st.Memberships().GetByUserAndCompany(ctx, admin.ID, company.ID)
		if err != nil {
			return err
		}
		if membership == nil {
			m := &membershipdomain.Membership{
				ID:        uuid.New().String(),
				UserID:    admin.ID,
				CompanyID: company.ID,
				Role:      membershipdomain.RoleOwner,
				Status:    membershipdomain.StatusActive,
				CreatedAt: now,
			}
			if err := st.Memberships().Create(ctx, m); err != nil {
				return err
			}
			log.Printf("created %s membership for %s", m.Role, admin.Email)
		}
		return nil
	})
	if err != nil {
		log.Fatalf("seed: %v", err)
	}
	log.Printf("seed complete; sign in with %s / %s", demoAdminEmail, demoPassword)
}
