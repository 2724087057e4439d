package authgate

import "context"

// Strategy is the active policy deciding how a request's caller identity is
// established. Implementations form a delegation chain: [BasicAuth] and
// [SessionAuth] stand alone, [ExpiringSessionAuth] wraps SessionAuth with a
// lifetime policy, and [PersistedSessionAuth] wraps ExpiringSessionAuth over
// a durable store.
//
// Identify returns (nil, nil) for an anonymous or unauthenticatable request:
// a missing, malformed, or stale credential is never an error. Errors are
// reserved for collaborator I/O failures.
type Strategy interface {
	RequireAuth(path string, excluded []string) bool
	Identify(ctx context.Context, req Request) (*User, error)
}

// NoAuth is the disabled baseline strategy: nothing requires authentication
// and every caller is anonymous.
type NoAuth struct{}

// NewNoAuth returns the disabled strategy.
func NewNoAuth() *NoAuth {
	return &NoAuth{}
}

// RequireAuth always reports false.
func (*NoAuth) RequireAuth(string, []string) bool {
	return false
}

// Identify always reports an anonymous caller.
func (*NoAuth) Identify(context.Context, Request) (*User, error) {
	return nil, nil
}
