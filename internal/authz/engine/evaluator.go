package engine

import (
	"context"

	"paperbase/internal/authz"
)

// Evaluator evaluates access-control decisions using OPA or other engines.
type Evaluator interface {
	// Authorize evaluates the access policy for one action. It returns a deny
	// decision rather than an error for policy outcomes; errors are reserved
	// for engine failures.
	Authorize(ctx context.Context, in authz.Input) (authz.Decision, error)
}
