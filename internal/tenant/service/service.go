// Package service implements the tenant lifecycle operations: company
// create/update/delete, staff create/update/delete, and promotion by email.
// Every multi-write operation runs in a single store transaction so a failure
// never leaves an orphaned company, user, or membership behind.
package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	companydomain "paperbase/internal/company/domain"
	"paperbase/internal/fault"
	membershipdomain "paperbase/internal/membership/domain"
	"paperbase/internal/security"
	"paperbase/internal/tenant"
	userdomain "paperbase/internal/user/domain"
)

// Service orchestrates company and staff lifecycle against the identity store.
type Service struct {
	store  tenant.Store
	hasher *security.Hasher
}

// New returns a lifecycle Service.
func New(store tenant.Store, hasher *security.Hasher) *Service {
	return &Service{store: store, hasher: hasher}
}

// CreateCompanyInput carries the fields for a new tenant and its first
// administrative user.
type CreateCompanyInput struct {
	Name          string
	Slug          string
	Plan          string
	LogoURL       string
	OwnerName     string
	OwnerEmail    string
	OwnerPassword string
	// OwnerRole is the display-vocabulary role for the bootstrap membership.
	// Empty defaults to admin; anything below admin is rejected.
	OwnerRole string
}

// CreateCompany creates a company, its owner user, and an ACTIVE membership
// binding the two. Slug and owner email collisions fail with Conflict before
// any write; the three inserts share one transaction.
func (s *Service) CreateCompany(ctx context.Context, in CreateCompanyInput) (string, error) {
	company := &companydomain.Company{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(in.Name),
		Slug:      companydomain.NormalizeSlug(in.Slug),
		IsActive:  true,
		LogoURL:   strings.TrimSpace(in.LogoURL),
		CreatedAt: time.Now().UTC(),
	}
	plan, err := companydomain.ParsePlan(in.Plan)
	if err != nil {
		return "", err
	}
	company.Plan = plan
	if err := company.Validate(); err != nil {
		return "", err
	}

	ownerRole, err := parseElevatedRole(in.OwnerRole)
	if err != nil {
		return "", err
	}
	ownerEmail := userdomain.NormalizeEmail(in.OwnerEmail)
	ownerName := strings.TrimSpace(in.OwnerName)
	if ownerEmail == "" {
		return "", fault.Validation("ownerEmail", "is required")
	}
	if ownerName == "" {
		return "", fault.Validation("ownerName", "is required")
	}
	if in.OwnerPassword == "" {
		return "", fault.Validation("ownerPassword", "is required")
	}
	hash, err := s.hasher.Hash([]byte(in.OwnerPassword))
	if err != nil {
		return "", err
	}

	err = s.store.Transact(ctx, func(st tenant.Store) error {
		if existing, err := st.Companies().GetBySlug(ctx, company.Slug); err != nil {
			return err
		} else if existing != nil {
			return fault.Conflict("company with this slug already exists")
		}
		if existing, err := st.Users().GetByEmail(ctx, ownerEmail); err != nil {
			return err
		} else if existing != nil {
			return fault.Conflict("user with this email already exists")
		}
		if err := st.Companies().Create(ctx, company); err != nil {
			return err
		}
		now := time.Now().UTC()
		owner := &userdomain.User{
			ID:           uuid.New().String(),
			Email:        ownerEmail,
			Name:         ownerName,
			PasswordHash: hash,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := st.Users().Create(ctx, owner); err != nil {
			return err
		}
		return st.Memberships().Create(ctx, &membershipdomain.Membership{
			ID:        uuid.New().String(),
			UserID:    owner.ID,
			CompanyID: company.ID,
			Role:      ownerRole,
			Status:    membershipdomain.StatusActive,
			CreatedAt: now,
		})
	})
	if err != nil {
		return "", err
	}
	return company.ID, nil
}

// UpdateCompanyInput carries a full company update. Name, Slug, OwnerName, and
// OwnerEmail are required; OwnerPassword is applied only when non-empty.
type UpdateCompanyInput struct {
	CompanyID     string
	Name          string
	Slug          string
	Plan          string
	LogoURL       string
	OwnerName     string
	OwnerEmail    string
	OwnerPassword string
	OwnerRole     string
}

// UpdateCompany updates a company and its administrative owner. Slug
// uniqueness is re-checked only when the slug changed; owner email uniqueness
// excludes the owner. Role reassignment targets the owner's membership, never
// the user record.
func (s *Service) UpdateCompany(ctx context.Context, in UpdateCompanyInput) error {
	if in.CompanyID == "" {
		return fault.Validation("companyId", "is required")
	}
	name := strings.TrimSpace(in.Name)
	slug := companydomain.NormalizeSlug(in.Slug)
	ownerEmail := userdomain.NormalizeEmail(in.OwnerEmail)
	ownerName := strings.TrimSpace(in.OwnerName)
	if name == "" {
		return fault.Validation("name", "is required")
	}
	if slug == "" {
		return fault.Validation("slug", "is required")
	}
	if ownerEmail == "" {
		return fault.Validation("ownerEmail", "is required")
	}
	if ownerName == "" {
		return fault.Validation("ownerName", "is required")
	}
	plan, err := companydomain.ParsePlan(in.Plan)
	if err != nil {
		return err
	}
	ownerRole, err := parseElevatedRole(in.OwnerRole)
	if err != nil {
		return err
	}
	var hash string
	if in.OwnerPassword != "" {
		hash, err = s.hasher.Hash([]byte(in.OwnerPassword))
		if err != nil {
			return err
		}
	}

	return s.store.Transact(ctx, func(st tenant.Store) error {
		company, err := st.Companies().GetByID(ctx, in.CompanyID)
		if err != nil {
			return err
		}
		if company == nil {
			return fault.NotFound("company not found")
		}
		if slug != company.Slug {
			if existing, err := st.Companies().GetBySlug(ctx, slug); err != nil {
				return err
			} else if existing != nil && existing.ID != company.ID {
				return fault.Conflict("company with this slug already exists")
			}
		}
		company.Name = name
		company.Slug = slug
		company.Plan = plan
		if logo := strings.TrimSpace(in.LogoURL); logo != "" {
			company.LogoURL = logo
		}
		if err := company.Validate(); err != nil {
			return err
		}
		if err := st.Companies().Update(ctx, company); err != nil {
			return err
		}

		ownerMembership, err := findOwnerMembership(ctx, st, company.ID)
		if err != nil {
			return err
		}
		if ownerMembership == nil {
			return nil
		}
		owner, err := st.Users().GetByID(ctx, ownerMembership.UserID)
		if err != nil {
			return err
		}
		if owner == nil {
			return nil
		}
		if ownerEmail != owner.Email {
			if existing, err := st.Users().GetByEmail(ctx, ownerEmail); err != nil {
				return err
			} else if existing != nil && existing.ID != owner.ID {
				return fault.Conflict("user with this email already exists")
			}
		}
		owner.Email = ownerEmail
		owner.Name = ownerName
		if hash != "" {
			owner.PasswordHash = hash
		}
		owner.UpdatedAt = time.Now().UTC()
		if err := st.Users().Update(ctx, owner); err != nil {
			return err
		}
		if ownerMembership.Role != ownerRole {
			ownerMembership.Role = ownerRole
			if err := st.Memberships().Update(ctx, ownerMembership); err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteCompany removes a company and all of its memberships. A company that
// still owns documents cannot be deleted. Users survive; orphaned user cleanup
// is tied to staff removal, not tenant deletion.
func (s *Service) DeleteCompany(ctx context.Context, companyID string) error {
	if companyID == "" {
		return fault.Validation("companyId", "is required")
	}
	return s.store.Transact(ctx, func(st tenant.Store) error {
		company, err := st.Companies().GetByID(ctx, companyID)
		if err != nil {
			return err
		}
		if company == nil {
			return fault.NotFound("company not found")
		}
		docs, err := st.Documents().CountByCompany(ctx, companyID)
		if err != nil {
			return err
		}
		if docs > 0 {
			return fault.Conflict("cannot delete a company with existing documents")
		}
		// Memberships go with the company via ON DELETE CASCADE.
		return st.Companies().Delete(ctx, companyID)
	})
}

// OwnerSummary identifies the administrative owner shown in company listings.
type OwnerSummary struct {
	ID    string
	Name  string
	Email string
}

// CompanySummary is one row of the platform company listing.
type CompanySummary struct {
	ID            string
	Name          string
	Slug          string
	Plan          companydomain.Plan
	IsActive      bool
	LogoURL       string
	MemberCount   int
	DocumentCount int
	CreatedAt     time.Time
	Owner         *OwnerSummary
}

// ListCompanies returns all companies, newest first, with member and document
// counts and the owner summary.
func (s *Service) ListCompanies(ctx context.Context) ([]CompanySummary, error) {
	companies, err := s.store.Companies().List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]CompanySummary, 0, len(companies))
	for _, c := range companies {
		memberships, err := s.store.Memberships().ListByCompany(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		docs, err := s.store.Documents().CountByCompany(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		sum := CompanySummary{
			ID:            c.ID,
			Name:          c.Name,
			Slug:          c.Slug,
			Plan:          c.Plan,
			IsActive:      c.IsActive,
			LogoURL:       c.LogoURL,
			MemberCount:   len(memberships),
			DocumentCount: docs,
			CreatedAt:     c.CreatedAt,
		}
		for _, m := range memberships {
			if !m.Role.AtLeast(membershipdomain.RoleAdmin) {
				continue
			}
			owner, err := s.store.Users().GetByID(ctx, m.UserID)
			if err != nil {
				return nil, err
			}
			if owner != nil {
				sum.Owner = &OwnerSummary{ID: owner.ID, Name: owner.Name, Email: owner.Email}
			}
			break
		}
		out = append(out, sum)
	}
	return out, nil
}

// CreateStaffInput carries the fields for onboarding one staff user into the
// acting session's company.
type CreateStaffInput struct {
	CompanyID string
	Name      string
	Email     string
	Password  string
	// Role is display vocabulary ("staff", "manager", "admin", "super-admin").
	// Empty defaults to staff.
	Role string
}

// CreateStaff creates a user and an ACTIVE membership in one transaction.
// Email is unique across the whole identity space, not per tenant.
func (s *Service) CreateStaff(ctx context.Context, in CreateStaffInput) (string, error) {
	if in.CompanyID == "" {
		return "", fault.Validation("companyId", "is required")
	}
	name := strings.TrimSpace(in.Name)
	email := userdomain.NormalizeEmail(in.Email)
	if name == "" {
		return "", fault.Validation("name", "is required")
	}
	if email == "" {
		return "", fault.Validation("email", "is required")
	}
	if in.Password == "" {
		return "", fault.Validation("password", "is required")
	}
	role := membershipdomain.RoleMember
	if in.Role != "" {
		parsed, err := membershipdomain.ParseDisplayRole(in.Role)
		if err != nil {
			return "", err
		}
		role = parsed
	}
	hash, err := s.hasher.Hash([]byte(in.Password))
	if err != nil {
		return "", err
	}
	userID := uuid.New().String()
	err = s.store.Transact(ctx, func(st tenant.Store) error {
		if company, err := st.Companies().GetByID(ctx, in.CompanyID); err != nil {
			return err
		} else if company == nil {
			return fault.NotFound("company not found")
		}
		if existing, err := st.Users().GetByEmail(ctx, email); err != nil {
			return err
		} else if existing != nil {
			return fault.Conflict("user with this email already exists")
		}
		now := time.Now().UTC()
		user := &userdomain.User{
			ID:           userID,
			Email:        email,
			Name:         name,
			PasswordHash: hash,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := st.Users().Create(ctx, user); err != nil {
			return err
		}
		return st.Memberships().Create(ctx, &membershipdomain.Membership{
			ID:        uuid.New().String(),
			UserID:    userID,
			CompanyID: in.CompanyID,
			Role:      role,
			Status:    membershipdomain.StatusActive,
			CreatedAt: now,
		})
	})
	if err != nil {
		return "", err
	}
	return userID, nil
}

// UpdateStaffInput carries a staff update. Name and Email are required;
// Password and Role are applied only when non-empty.
type UpdateStaffInput struct {
	CompanyID string
	StaffID   string
	Name      string
	Email     string
	Password  string
	Role      string
}

// UpdateStaff updates a staff user and, when requested, their membership role.
// The staff user must hold a membership in the acting session's company.
func (s *Service) UpdateStaff(ctx context.Context, in UpdateStaffInput) error {
	if in.CompanyID == "" {
		return fault.Validation("companyId", "is required")
	}
	if in.StaffID == "" {
		return fault.Validation("staffId", "is required")
	}
	name := strings.TrimSpace(in.Name)
	email := userdomain.NormalizeEmail(in.Email)
	if name == "" {
		return fault.Validation("name", "is required")
	}
	if email == "" {
		return fault.Validation("email", "is required")
	}
	var role membershipdomain.Role
	if in.Role != "" {
		parsed, err := membershipdomain.ParseDisplayRole(in.Role)
		if err != nil {
			return err
		}
		role = parsed
	}
	var hash string
	if in.Password != "" {
		h, err := s.hasher.Hash([]byte(in.Password))
		if err != nil {
			return err
		}
		hash = h
	}

	return s.store.Transact(ctx, func(st tenant.Store) error {
		membership, err := st.Memberships().GetByUserAndCompany(ctx, in.StaffID, in.CompanyID)
		if err != nil {
			return err
		}
		if membership == nil {
			return fault.NotFound("staff member not found")
		}
		user, err := st.Users().GetByID(ctx, in.StaffID)
		if err != nil {
			return err
		}
		if user == nil {
			return fault.NotFound("staff member not found")
		}
		if email != user.Email {
			if existing, err := st.Users().GetByEmail(ctx, email); err != nil {
				return err
			} else if existing != nil && existing.ID != user.ID {
				return fault.Conflict("user with this email already exists")
			}
		}
		user.Name = name
		user.Email = email
		if hash != "" {
			user.PasswordHash = hash
		}
		user.UpdatedAt = time.Now().UTC()
		if err := st.Users().Update(ctx, user); err != nil {
			return err
		}
		if role != "" && role != membership.Role {
			membership.Role = role
			return st.Memberships().Update(ctx, membership)
		}
		return nil
	})
}

// DeleteStaff removes the staff member's membership in the given company.
// When that was the user's last membership anywhere, the user record goes
// with it; a user with memberships in other companies survives.
func (s *Service) DeleteStaff(ctx context.Context, companyID, staffID string) error {
	if companyID == "" {
		return fault.Validation("companyId", "is required")
	}
	if staffID == "" {
		return fault.Validation("staffId", "is required")
	}
	return s.store.Transact(ctx, func(st tenant.Store) error {
		membership, err := st.Memberships().GetByUserAndCompany(ctx, staffID, companyID)
		if err != nil {
			return err
		}
		if membership == nil {
			return fault.NotFound("staff member not found")
		}
		if err := st.Memberships().Delete(ctx, membership.ID); err != nil {
			return err
		}
		remaining, err := st.Memberships().CountByUser(ctx, staffID)
		if err != nil {
			return err
		}
		if remaining == 0 {
			return st.Users().Delete(ctx, staffID)
		}
		return nil
	})
}

// PromoteByEmail elevates an existing membership in the given company to
// admin or owner. It never creates a membership: an email without one
// in-scope is NotFound, even when the user exists elsewhere.
func (s *Service) PromoteByEmail(ctx context.Context, companyID, email, role string) error {
	if companyID == "" {
		return fault.Validation("companyId", "is required")
	}
	normalized := userdomain.NormalizeEmail(email)
	if normalized == "" {
		return fault.Validation("email", "is required")
	}
	target, err := parseElevatedRole(role)
	if err != nil {
		return err
	}
	return s.store.Transact(ctx, func(st tenant.Store) error {
		user, err := st.Users().GetByEmail(ctx, normalized)
		if err != nil {
			return err
		}
		if user == nil {
			return fault.NotFound("no staff member with this email")
		}
		membership, err := st.Memberships().GetByUserAndCompany(ctx, user.ID, companyID)
		if err != nil {
			return err
		}
		if membership == nil {
			return fault.NotFound("no staff member with this email")
		}
		if membership.Role == target {
			return nil
		}
		membership.Role = target
		return st.Memberships().Update(ctx, membership)
	})
}

// StaffMember is one row of the tenant staff listing.
type StaffMember struct {
	ID        string
	Name      string
	Email     string
	Role      membershipdomain.Role
	Status    membershipdomain.Status
	CreatedAt time.Time
}

// ListStaff returns the company's ACTIVE staff.
func (s *Service) ListStaff(ctx context.Context, companyID string) ([]StaffMember, error) {
	if companyID == "" {
		return nil, fault.Validation("companyId", "is required")
	}
	memberships, err := s.store.Memberships().ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := make([]StaffMember, 0, len(memberships))
	for _, m := range memberships {
		if m.Status != membershipdomain.StatusActive {
			continue
		}
		user, err := s.store.Users().GetByID(ctx, m.UserID)
		if err != nil {
			return nil, err
		}
		if user == nil {
			continue
		}
		out = append(out, StaffMember{
			ID:        user.ID,
			Name:      user.Name,
			Email:     user.Email,
			Role:      m.Role,
			Status:    m.Status,
			CreatedAt: user.CreatedAt,
		})
	}
	return out, nil
}

// findOwnerMembership returns the company's first admin-or-above membership.
func findOwnerMembership(ctx context.Context, st tenant.Store, companyID string) (*membershipdomain.Membership, error) {
	memberships, err := st.Memberships().ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	for _, m := range memberships {
		if m.Role.AtLeast(membershipdomain.RoleAdmin) {
			return m, nil
		}
	}
	return nil, nil
}

// parseElevatedRole parses a display-vocabulary role and requires it to be
// admin or owner. Empty defaults to admin.
func parseElevatedRole(s string) (membershipdomain.Role, error) {
	if strings.TrimSpace(s) == "" {
		return membershipdomain.RoleAdmin, nil
	}
	role, err := membershipdomain.ParseDisplayRole(s)
	if err != nil {
		return "", err
	}
	if !role.AtLeast(membershipdomain.RoleAdmin) {
		return "", fault.Validation("role", "must be admin or super-admin")
	}
	return role, nil
}
