// Package authz decides whether a session may perform an action against a
// tenant. The decision is pure: same input, same answer, no store access.
// Mutations separately re-check membership status against the store before
// writing.
package authz

import (
	"paperbase/internal/membership/domain"
	"paperbase/internal/security"
)

// Action names an operation subject to authorization.
type Action string

const (
	ActionSignIn         Action = "sign_in"
	ActionStaffCreate    Action = "staff.create"
	ActionStaffUpdate    Action = "staff.update"
	ActionStaffDelete    Action = "staff.delete"
	ActionStaffPromote   Action = "staff.promote"
	ActionStaffList      Action = "staff.list"
	ActionCompanyCreate  Action = "company.create"
	ActionCompanyUpdate  Action = "company.update"
	ActionCompanyDelete  Action = "company.delete"
	ActionCompanyList    Action = "company.list"
	ActionDocumentUpload Action = "document.upload"
	ActionDocumentList   Action = "document.list"
)

// Input is the complete evidence for one authorization decision.
type Input struct {
	Role             domain.Role
	Status           domain.Status
	Scope            security.Scope
	Action           Action
	TargetCompanyID  string
	SessionCompanyID string
}

// Decision is the outcome of evaluating an Input.
type Decision struct {
	Allow bool
	// Reason is a short engine-internal tag. It is never surfaced verbatim to
	// clients; denials are reported generically to avoid leaking which check
	// failed.
	Reason string
}
