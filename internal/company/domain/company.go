package domain

import (
	"regexp"
	"strings"
	"time"

	"paperbase/internal/fault"
)

// Company represents a tenant. Each company owns its memberships and
// documents; users are shared across companies via memberships.
type Company struct {
	ID        string
	Name      string
	Slug      string
	Plan      Plan
	IsActive  bool
	LogoURL   string
	CreatedAt time.Time
}

// Plan is the subscription plan of a company.
type Plan string

const (
	PlanFree       Plan = "FREE"
	PlanPro        Plan = "PRO"
	PlanTeam       Plan = "TEAM"
	PlanEnterprise Plan = "ENTERPRISE"
)

// ParsePlan parses s as a Plan. Empty input defaults to FREE; anything else
// outside the enumerated set is a validation error.
func ParsePlan(s string) (Plan, error) {
	switch Plan(strings.ToUpper(strings.TrimSpace(s))) {
	case "":
		return PlanFree, nil
	case PlanFree:
		return PlanFree, nil
	case PlanPro:
		return PlanPro, nil
	case PlanTeam:
		return PlanTeam, nil
	case PlanEnterprise:
		return PlanEnterprise, nil
	}
	return "", fault.Validationf("plan", "unknown plan %q", s)
}

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// NormalizeSlug lowercases and trims a slug for storage and lookup.
func NormalizeSlug(slug string) string {
	return strings.ToLower(strings.TrimSpace(slug))
}

// Validate validates the company for persistence. Returns a fault.Validation
// describing the first validation failure.
func (c *Company) Validate() error {
	if c.Name == "" {
		return fault.Validation("name", "is required")
	}
	if c.Slug == "" {
		return fault.Validation("slug", "is required")
	}
	if !slugPattern.MatchString(c.Slug) {
		return fault.Validation("slug", "must be lowercase letters, digits, and dashes")
	}
	if c.Plan == "" {
		c.Plan = PlanFree
	}
	return nil
}
