package authgate

import (
	"context"
	"errors"
	"time"

	"github.com/MrEthical07/authgate/session"
)

// ExpiringSessionAuth wraps [SessionAuth] with a lifetime policy. Sessions
// older than Duration are treated as absent at lookup time; nothing sweeps
// the store in the background, expiry is applied lazily on read.
type ExpiringSessionAuth struct {
	*SessionAuth

	duration time.Duration
}

// NewExpiringSessionAuth creates an expiring session strategy over an
// in-process store. A zero or negative duration disables expiry entirely.
func NewExpiringSessionAuth(cookieName string, directory UserDirectory, duration time.Duration) *ExpiringSessionAuth {
	return &ExpiringSessionAuth{
		SessionAuth: NewSessionAuth(cookieName, directory),
		duration:    duration,
	}
}

func newExpiringSessionAuth(base *SessionAuth, duration time.Duration) *ExpiringSessionAuth {
	return &ExpiringSessionAuth{
		SessionAuth: base,
		duration:    duration,
	}
}

// Duration reports the configured session lifetime. Zero means unbounded.
func (e *ExpiringSessionAuth) Duration() time.Duration {
	return e.duration
}

// UserIDForSession resolves a session identifier to its owning user id,
// applying the lifetime policy. An expired session resolves to the empty
// string exactly like an unknown one; the stale record is left for the
// store's owner to reclaim.
func (e *ExpiringSessionAuth) UserIDForSession(ctx context.Context, sessionID string) (string, error) {
	if sessionID == "" {
		return "", nil
	}

	record, err := e.lookup(ctx, sessionID)
	if err != nil || record == nil {
		return "", err
	}

	return record.UserID, nil
}

// lookup fetches the session record and applies expiry, returning nil for
// both a miss and a stale record.
func (e *ExpiringSessionAuth) lookup(ctx context.Context, sessionID string) (*session.Record, error) {
	record, err := e.store.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, session.ErrCorruptRecord) {
			return nil, nil
		}
		return nil, err
	}
	if record == nil {
		return nil, nil
	}

	if record.ExpiredAt(e.now(), e.duration) {
		e.metrics.Inc(MetricSessionExpired)
		e.audit.emit(ctx, "session_expire", record.UserID, sessionID, false, nil, nil)
		return nil, nil
	}

	return record, nil
}

// Identify resolves the request's session cookie to a user under the
// lifetime policy.
func (e *ExpiringSessionAuth) Identify(ctx context.Context, req Request) (*User, error) {
	return e.identify(ctx, req, e.UserIDForSession)
}
