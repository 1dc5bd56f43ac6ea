package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"

	"paperbase/internal/authz/engine"
	membershipdomain "paperbase/internal/membership/domain"
	"paperbase/internal/platform/rbac"
	"paperbase/internal/security"
	"paperbase/internal/server/middleware"
)

type staffMemberships struct { // keyed userID:companyID
	byPair map[string]*membershipdomain.Membership
}

func (f *staffMemberships) GetByUserAndCompany(ctx context.Context, userID, companyID string) (*membershipdomain.Membership, error) {
	return f.byPair[userID+":"+companyID], nil
}

func newTestGuard(t *testing.T, pairs map[string]*membershipdomain.Membership) *rbac.Guard {
	t.Helper()
	authorizer, err := engine.NewOPAEvaluator()
	if err != nil {
		t.Fatalf("evaluator: %v", err)
	}
	return rbac.NewGuard(&staffMemberships{byPair: pairs}, authorizer)
}

func requestWithClaims(method, path string, claims *security.SessionClaims) *http.Request {
	req := httptest.NewRequest(method, path, nil)
	if claims != nil {
		req = req.WithContext(middleware.WithClaims(req.Context(), claims))
	}
	return req
}

func sessionClaims(userID, companyID string, scope security.Scope) *security.SessionClaims {
	return &security.SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: userID},
		CompanyID:        companyID,
		Role:             string(membershipdomain.RoleAdmin),
		Scope:            scope,
	}
}

// Authorization failures must short-circuit before the lifecycle service is
// touched; these handlers run with a nil service on purpose.
func TestStaffHandler_CreateRequiresSession(t *testing.T) {
	h := NewStaffHandler(nil, newTestGuard(t, nil))
	rec := httptest.NewRecorder()
	h.Create(rec, requestWithClaims(http.MethodPost, "/api/staff", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestStaffHandler_CreateRequiresAdminMembership(t *testing.T) {
	tests := []struct {
		name       string
		membership *membershipdomain.Membership
	}{
		{"no membership", nil},
		{"member role", &membershipdomain.Membership{
			UserID: "u1", CompanyID: "c1",
			Role: membershipdomain.RoleMember, Status: membershipdomain.StatusActive,
		}},
		{"suspended admin", &membershipdomain.Membership{
			UserID: "u1", CompanyID: "c1",
			Role: membershipdomain.RoleAdmin, Status: membershipdomain.StatusSuspended,
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pairs := map[string]*membershipdomain.Membership{}
			if tc.membership != nil {
				pairs["u1:c1"] = tc.membership
			}
			h := NewStaffHandler(nil, newTestGuard(t, pairs))
			rec := httptest.NewRecorder()
			h.Create(rec, requestWithClaims(http.MethodPost, "/api/staff",
				sessionClaims("u1", "c1", security.ScopeTenant)))
			if rec.Code != http.StatusForbidden {
				t.Errorf("status = %d, want 403", rec.Code)
			}
		})
	}
}

// A platform session whose backing owner membership was suspended after
// sign-in must lose company CRUD immediately; the token still carries the
// owner role, but the store is authoritative.
func TestCompanyHandler_DeleteDeniedAfterSuspension(t *testing.T) {
	pairs := map[string]*membershipdomain.Membership{
		"u1:c1": {
			UserID: "u1", CompanyID: "c1",
			Role: membershipdomain.RoleOwner, Status: membershipdomain.StatusSuspended,
		},
	}
	h := NewCompanyHandler(nil, newTestGuard(t, pairs), nil)
	claims := sessionClaims("u1", "c1", security.ScopePlatform)
	claims.Role = string(membershipdomain.RoleOwner)
	rec := httptest.NewRecorder()
	h.Delete(rec, requestWithClaims(http.MethodDelete, "/api/companies/c1", claims))
	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}
}

func TestCompanyHandler_RequiresPlatformScope(t *testing.T) {
	pairs := map[string]*membershipdomain.Membership{
		"u1:c1": {
			UserID: "u1", CompanyID: "c1",
			Role: membershipdomain.RoleOwner, Status: membershipdomain.StatusActive,
		},
	}
	h := NewCompanyHandler(nil, newTestGuard(t, pairs), nil)

	// A tenant-scoped owner session cannot touch company-level operations.
	claims := sessionClaims("u1", "c1", security.ScopeTenant)
	claims.Role = string(membershipdomain.RoleOwner)
	rec := httptest.NewRecorder()
	h.List(rec, requestWithClaims(http.MethodGet, "/api/companies", claims))
	if rec.Code != http.StatusForbidden {
		t.Errorf("tenant scope: status = %d, want 403", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.List(rec, requestWithClaims(http.MethodGet, "/api/companies", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("no session: status = %d, want 401", rec.Code)
	}
}

func TestDocumentHandler_UploadRequiresActiveMembership(t *testing.T) {
	pairs := map[string]*membershipdomain.Membership{
		"u1:c1": {
			UserID: "u1", CompanyID: "c1",
			Role: membershipdomain.RoleMember, Status: membershipdomain.StatusInactive,
		},
	}
	h := NewDocumentHandler(nil, nil, newTestGuard(t, pairs))
	rec := httptest.NewRecorder()
	h.Upload(rec, requestWithClaims(http.MethodPost, "/api/documents",
		sessionClaims("u1", "c1", security.ScopeTenant)))
	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}
}
