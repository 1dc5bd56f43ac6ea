package service

import (
	"context"
	"time"

	"paperbase/internal/authz"
	"paperbase/internal/authz/engine"
	companydomain "paperbase/internal/company/domain"
	"paperbase/internal/fault"
	membershipdomain "paperbase/internal/membership/domain"
	"paperbase/internal/security"
	userdomain "paperbase/internal/user/domain"
)

// UserRepo is the minimal user repository needed by the auth service.
type UserRepo interface {
	GetByEmail(ctx context.Context, email string) (*userdomain.User, error)
}

// MembershipRepo is the minimal membership repository needed by the auth service.
type MembershipRepo interface {
	ListByUser(ctx context.Context, userID string) ([]*membershipdomain.Membership, error)
}

// CompanyRepo is the minimal company repository needed by the auth service.
type CompanyRepo interface {
	GetByID(ctx context.Context, id string) (*companydomain.Company, error)
}

// SignInResult carries everything the HTTP layer needs to set the session
// cookie and answer the caller.
type SignInResult struct {
	Token       string
	ExpiresAt   time.Time
	UserID      string
	CompanyID   string
	CompanySlug string
	Role        membershipdomain.Role
	Scope       security.Scope
}

// AuthService authenticates administrative users and issues session tokens.
// Sessions are stateless; sign-out is a cookie clear at the HTTP layer.
type AuthService struct {
	users       UserRepo
	memberships MembershipRepo
	companies   CompanyRepo
	hasher      *security.Hasher
	tokens      *security.TokenProvider
	authorizer  engine.Evaluator
}

// NewAuthService returns an AuthService with the given dependencies.
func NewAuthService(
	users UserRepo,
	memberships MembershipRepo,
	companies CompanyRepo,
	hasher *security.Hasher,
	tokens *security.TokenProvider,
	authorizer engine.Evaluator,
) *AuthService {
	return &AuthService{
		users:       users,
		memberships: memberships,
		companies:   companies,
		hasher:      hasher,
		tokens:      tokens,
		authorizer:  authorizer,
	}
}

// SignIn authenticates email/password and issues a session token with the
// requested scope. Tenant scope requires an ACTIVE admin or owner membership
// in an active company; platform scope requires an ACTIVE owner membership.
// Every failure surfaces as the same generic unauthorized error so callers
// cannot distinguish a wrong password from a missing account or an
// insufficient role.
func (s *AuthService) SignIn(ctx context.Context, email, password string, scope security.Scope) (*SignInResult, error) {
	email = userdomain.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, errInvalidCredentials()
	}
	if scope != security.ScopeTenant && scope != security.ScopePlatform {
		return nil, errInvalidCredentials()
	}
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil || !s.hasher.Verify(user.PasswordHash, []byte(password)) {
		return nil, errInvalidCredentials()
	}
	memberships, err := s.memberships.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	for _, m := range memberships {
		decision, err := s.authorizer.Authorize(ctx, authz.Input{
			Role:   m.Role,
			Status: m.Status,
			Scope:  scope,
			Action: authz.ActionSignIn,
		})
		if err != nil {
			// Stored roles outside the enum never grant a session.
			if fault.IsValidation(err) {
				continue
			}
			return nil, err
		}
		if !decision.Allow {
			continue
		}
		company, err := s.companies.GetByID(ctx, m.CompanyID)
		if err != nil {
			return nil, err
		}
		if company == nil {
			continue
		}
		if scope == security.ScopeTenant && !company.IsActive {
			continue
		}
		token, expiresAt, err := s.tokens.IssueSession(user.ID, company.ID, company.Slug, string(m.Role), scope)
		if err != nil {
			return nil, err
		}
		return &SignInResult{
			Token:       token,
			ExpiresAt:   expiresAt,
			UserID:      user.ID,
			CompanyID:   company.ID,
			CompanySlug: company.Slug,
			Role:        m.Role,
			Scope:       scope,
		}, nil
	}
	return nil, errInvalidCredentials()
}

func errInvalidCredentials() error {
	return fault.Unauthorized("invalid email or password")
}
