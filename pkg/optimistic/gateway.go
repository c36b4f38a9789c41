package optimistic

import "context"

// Result is the normalized backend answer to a mutation. Flags and Counters
// are authoritative values and only count when OK is true; when they are
// empty the prediction stands.
type Result struct {
	OK       bool
	Flags    map[string]bool
	Counters map[string]int
	Message  string
	// Code is a machine-readable reason for a rejection, e.g. CodeConflict
	Code    string
	Payload interface{}
}

// CodeConflict marks a rejection because the server already holds a
// different state ("already liked")
const CodeConflict = "conflict"

// ParamDesired carries the target flag value ("true" or "false") of a toggle
// action to the gateway
const ParamDesired = "desired"

// Gateway performs a named mutation against the backend.
//
// Business failures ("already liked") come back as Result{OK: false}. Only
// transport faults (timeouts, refused connections) are returned as errors.
type Gateway interface {
	Execute(ctx context.Context, action Action, entityID string, params map[string]string) (Result, error)
}

// GatewayFunc adapts a function to the Gateway interface
type GatewayFunc func(ctx context.Context, action Action, entityID string, params map[string]string) (Result, error)

// Execute calls f
func (f GatewayFunc) Execute(ctx context.Context, action Action, entityID string, params map[string]string) (Result, error) {
	return f(ctx, action, entityID, params)
}
