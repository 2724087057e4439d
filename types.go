package authgate

import (
	"context"
	"net/http"
)

// User is the account record flowing through strategies and the engine. The
// password hash is an opaque PHC string and is never logged or compared as
// plaintext; ResetToken is empty unless a reset is pending.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	ResetToken   string
}

// UserDirectory is the contract callers implement to integrate authgate with
// their user database. Implementations must enforce email uniqueness
// atomically (a unique constraint, or an insert under a single lock):
// CreateUser during a concurrent duplicate registration must fail with
// [ErrAccountExists] on exactly one side. See directory/ for ready-made
// in-memory and Postgres implementations.
//
// Lookup misses return [ErrUserNotFound]. Backend I/O failures are returned
// untouched; the engine and strategies never retry.
type UserDirectory interface {
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	GetUserByID(ctx context.Context, userID string) (*User, error)
	GetUserByResetToken(ctx context.Context, token string) (*User, error)
	CreateUser(ctx context.Context, email, passwordHash string) (*User, error)

	// SetResetToken stores token on the user, overwriting any prior token.
	SetResetToken(ctx context.Context, userID, token string) error

	// UpdatePassword stores newHash and clears any pending reset token in
	// the same operation. The clear must be atomic with the update so a
	// consumed token can never authorize a second reset.
	UpdatePassword(ctx context.Context, userID, newHash string) error
}

// Request is the transport abstraction consumed by strategies: a header
// lookup, a cookie lookup by name, and the request path. The core never sees
// HTTP framing beyond this surface.
type Request interface {
	Header(name string) string
	Cookie(name string) (string, bool)
	Path() string
}

type httpRequest struct {
	r *http.Request
}

// WrapHTTP adapts a *net/http.Request to the [Request] contract.
func WrapHTTP(r *http.Request) Request {
	return httpRequest{r: r}
}

func (h httpRequest) Header(name string) string {
	if h.r == nil {
		return ""
	}
	return h.r.Header.Get(name)
}

func (h httpRequest) Cookie(name string) (string, bool) {
	if h.r == nil {
		return "", false
	}
	c, err := h.r.Cookie(name)
	if err != nil || c == nil {
		return "", false
	}
	return c.Value, true
}

func (h httpRequest) Path() string {
	if h.r == nil || h.r.URL == nil {
		return ""
	}
	return h.r.URL.Path
}
