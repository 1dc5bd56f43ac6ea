package domain

import (
	"strings"
	"time"

	"paperbase/internal/fault"
)

// Membership links a user to a company with a role and a status. The
// (UserID, CompanyID) pair is unique: a user holds at most one membership
// per company.
type Membership struct {
	ID        string
	UserID    string
	CompanyID string
	Role      Role
	Status    Status
	CreatedAt time.Time
}

// Role is the ordered privilege level of a membership:
// member < manager < admin < owner.
type Role string

const (
	RoleMember  Role = "member"
	RoleManager Role = "manager"
	RoleAdmin   Role = "admin"
	RoleOwner   Role = "owner"
)

var roleRanks = map[Role]int{
	RoleMember:  1,
	RoleManager: 2,
	RoleAdmin:   3,
	RoleOwner:   4,
}

// Rank returns the role's position in the privilege order, 0 for unknown roles.
func (r Role) Rank() int { return roleRanks[r] }

// AtLeast reports whether r holds at least the privilege of other.
func (r Role) AtLeast(other Role) bool {
	return r.Rank() != 0 && r.Rank() >= other.Rank()
}

// ParseRole parses s as a canonical Role. Unknown strings are a validation
// error, never coerced to a default.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleMember:
		return RoleMember, nil
	case RoleManager:
		return RoleManager, nil
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleOwner:
		return RoleOwner, nil
	}
	return "", fault.Validationf("role", "unknown role %q", s)
}

// ParseDisplayRole maps the UI vocabulary onto the canonical Role set.
// "staff" means member and "super-admin" means owner; canonical names are
// accepted as-is. Unknown strings are a validation error.
func ParseDisplayRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "staff":
		return RoleMember, nil
	case "super-admin":
		return RoleOwner, nil
	}
	return ParseRole(s)
}

// DisplayName returns the UI vocabulary for the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleMember:
		return "staff"
	case RoleManager:
		return "manager"
	case RoleAdmin:
		return "admin"
	case RoleOwner:
		return "super-admin"
	}
	return string(r)
}

// Status is the lifecycle state of a membership.
type Status string

const (
	StatusActive    Status = "ACTIVE"
	StatusSuspended Status = "SUSPENDED"
	StatusInvited   Status = "INVITED"
	StatusInactive  Status = "INACTIVE"
)

// ParseStatus parses s as a Status. Unknown strings are a validation error.
func ParseStatus(s string) (Status, error) {
	switch Status(strings.ToUpper(strings.TrimSpace(s))) {
	case StatusActive:
		return StatusActive, nil
	case StatusSuspended:
		return StatusSuspended, nil
	case StatusInvited:
		return StatusInvited, nil
	case StatusInactive:
		return StatusInactive, nil
	}
	return "", fault.Validationf("status", "unknown status %q", s)
}

// Validate validates the membership for persistence.
func (m *Membership) Validate() error {
	if m.UserID == "" {
		return fault.Validation("userId", "is required")
	}
	if m.CompanyID == "" {
		return fault.Validation("companyId", "is required")
	}
	if _, err := ParseRole(string(m.Role)); err != nil {
		return err
	}
	if m.Status == "" {
		m.Status = StatusActive
	}
	if _, err := ParseStatus(string(m.Status)); err != nil {
		return err
	}
	return nil
}
