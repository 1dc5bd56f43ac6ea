// Package rbac guards HTTP operations. The guard resolves the caller's
// membership from the store and evaluates the access policy against that
// fresh state, so a membership suspended after token issuance loses its
// privileges immediately instead of riding out the session.
package rbac

import (
	"context"

	"paperbase/internal/authz"
	"paperbase/internal/authz/engine"
	"paperbase/internal/fault"
	"paperbase/internal/membership/domain"
	"paperbase/internal/server/middleware"
)

// CompanyMembershipGetter returns a user's membership in a company. The guard
// resolves the caller's role and status from the store rather than trusting
// the token alone.
type CompanyMembershipGetter interface {
	GetByUserAndCompany(ctx context.Context, userID, companyID string) (*domain.Membership, error)
}

// Guard authorizes one action per call: session claims identify the caller,
// the store supplies the current membership, and the access policy decides.
type Guard struct {
	memberships CompanyMembershipGetter
	authorizer  engine.Evaluator
}

// NewGuard returns a Guard over the given membership store and policy engine.
func NewGuard(memberships CompanyMembershipGetter, authorizer engine.Evaluator) *Guard {
	return &Guard{memberships: memberships, authorizer: authorizer}
}

// Authorize checks the caller against the access policy for action. The
// membership is re-read from the store; its current role and status feed the
// policy, not the claim values frozen at sign-in. Returns the session's
// (companyID, userID) on success.
func (g *Guard) Authorize(ctx context.Context, action authz.Action) (companyID, userID string, err error) {
	claims, ok := middleware.GetClaims(ctx)
	if !ok || claims.CompanyID == "" || claims.Subject == "" {
		return "", "", fault.Unauthorized("authentication required")
	}
	companyID, userID = claims.CompanyID, claims.Subject
	m, err := g.memberships.GetByUserAndCompany(ctx, userID, companyID)
	if err != nil {
		return "", "", err
	}
	if m == nil {
		return "", "", engine.Deny()
	}
	decision, err := g.authorizer.Authorize(ctx, authz.Input{
		Role:             m.Role,
		Status:           m.Status,
		Scope:            claims.Scope,
		Action:           action,
		TargetCompanyID:  companyID,
		SessionCompanyID: m.CompanyID,
	})
	if err != nil {
		// A stored role outside the enum never grants anything.
		if fault.IsValidation(err) {
			return "", "", engine.Deny()
		}
		return "", "", err
	}
	if !decision.Allow {
		return "", "", engine.Deny()
	}
	return companyID, userID, nil
}
