package engine

import (
	"context"
	"fmt"

	"github.com/open-policy-agent/opa/v1/ast"
	"github.com/open-policy-agent/opa/v1/rego"

	"paperbase/internal/authz"
	"paperbase/internal/fault"
	"paperbase/internal/membership/domain"
)

const policyQuery = "data.paperbase.access.allow"

// Access policy. Roles ascend member < manager < admin < owner; any
// company-scoped action is denied across tenants regardless of role.
const accessRegoPolicy = `package paperbase.access

default allow = false

admin_roles := {"admin", "owner"}

same_company if {
	input.target_company_id == input.session_company_id
}

# Tenant sign-in requires an ACTIVE membership with an administrative role.
allow if {
	input.action == "sign_in"
	input.scope == "tenant"
	admin_roles[input.role]
	input.status == "ACTIVE"
}

# Platform sign-in is reserved for ACTIVE owners.
allow if {
	input.action == "sign_in"
	input.scope == "platform"
	input.role == "owner"
	input.status == "ACTIVE"
}

# Staff mutations stay inside the session's company and require an ACTIVE
# membership with admin or owner.
allow if {
	startswith(input.action, "staff.")
	input.scope == "tenant"
	same_company
	admin_roles[input.role]
	input.status == "ACTIVE"
}

# Any ACTIVE member may read the roster.
allow if {
	input.action == "staff.list"
	input.scope == "tenant"
	same_company
	input.role != ""
	input.status == "ACTIVE"
}

# Company-level operations belong to the platform operator scope, backed by a
# still-ACTIVE owner membership.
allow if {
	startswith(input.action, "company.")
	input.scope == "platform"
	input.role == "owner"
	input.status == "ACTIVE"
}

# Document operations stay inside the session's company; any ACTIVE role.
allow if {
	startswith(input.action, "document.")
	input.scope == "tenant"
	same_company
	input.role != ""
	input.status == "ACTIVE"
}
`

// OPAEvaluator evaluates the access policy using OPA Rego. The policy module
// is compiled once at construction; each Authorize call is a pure in-process
// evaluation.
type OPAEvaluator struct {
	query rego.PreparedEvalQuery
}

// NewOPAEvaluator compiles the access policy and returns an evaluator.
func NewOPAEvaluator() (*OPAEvaluator, error) {
	compiler, err := ast.CompileModules(map[string]string{"access.rego": accessRegoPolicy})
	if err != nil {
		return nil, fmt.Errorf("compile access policy: %w", err)
	}
	q, err := rego.New(
		rego.Query(policyQuery),
		rego.Compiler(compiler),
	).PrepareForEval(context.Background())
	if err != nil {
		return nil, fmt.Errorf("prepare access policy: %w", err)
	}
	return &OPAEvaluator{query: q}, nil
}

// Authorize evaluates the compiled policy for in. Unknown roles are rejected
// with a validation error before evaluation; they are never coerced.
func (e *OPAEvaluator) Authorize(ctx context.Context, in authz.Input) (authz.Decision, error) {
	if in.Role != "" {
		if _, err := domain.ParseRole(string(in.Role)); err != nil {
			return authz.Decision{}, err
		}
	}
	rs, err := e.query.Eval(ctx, rego.EvalInput(map[string]interface{}{
		"role":               string(in.Role),
		"status":             string(in.Status),
		"scope":              string(in.Scope),
		"action":             string(in.Action),
		"target_company_id":  in.TargetCompanyID,
		"session_company_id": in.SessionCompanyID,
	}))
	if err != nil {
		return authz.Decision{}, fmt.Errorf("eval access policy: %w", err)
	}
	if len(rs) == 0 || len(rs[0].Expressions) == 0 {
		return authz.Decision{}, fmt.Errorf("access policy query returned no result")
	}
	allow, ok := rs[0].Expressions[0].Value.(bool)
	if !ok {
		return authz.Decision{}, fmt.Errorf("access policy query returned non-boolean")
	}
	if !allow {
		return authz.Decision{Allow: false, Reason: "denied"}, nil
	}
	return authz.Decision{Allow: true, Reason: "allowed"}, nil
}

// Deny converts a deny decision into the generic Forbidden fault. The message
// never says which rule failed.
func Deny() error {
	return fault.Forbidden("access denied")
}
