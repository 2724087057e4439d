package authgate

import (
	"context"
	"errors"
	"time"

	"github.com/MrEthical07/authgate/session"
)

// PersistedSessionAuth is [ExpiringSessionAuth] over a caller-supplied
// durable store, typically a [session.RedisStore]. Sessions survive process
// restarts and can be explicitly destroyed.
type PersistedSessionAuth struct {
	*ExpiringSessionAuth
}

// NewPersistedSessionAuth creates a persisted session strategy over store.
// The store must not be nil; a zero or negative duration disables expiry.
func NewPersistedSessionAuth(cookieName string, directory UserDirectory, store session.Store, duration time.Duration) *PersistedSessionAuth {
	return &PersistedSessionAuth{
		ExpiringSessionAuth: newExpiringSessionAuth(
			newSessionAuth(cookieName, store, directory),
			duration,
		),
	}
}

// DestroySession removes the session named by the request's cookie. It
// reports true whenever a stored record was actually deleted; a missing
// cookie or unknown id reports false without error. Expiry does not shield a
// record from destruction: an expired session no longer authenticates, but
// its record stays in the store until destroyed, so destroy works on raw
// existence. Destroying twice is therefore true at most once.
func (p *PersistedSessionAuth) DestroySession(ctx context.Context, req Request) (bool, error) {
	sessionID, ok := p.SessionCookie(req)
	if !ok || sessionID == "" {
		return false, nil
	}

	record, err := p.store.Get(ctx, sessionID)
	if err != nil && !errors.Is(err, session.ErrCorruptRecord) {
		return false, err
	}
	// A corrupt blob is still a stored record; reclaim it too.
	if record == nil && err == nil {
		return false, nil
	}

	if err := p.store.Delete(ctx, sessionID); err != nil {
		return false, err
	}

	var userID string
	if record != nil {
		userID = record.UserID
	}
	p.metrics.Inc(MetricSessionDestroyed)
	p.audit.emit(ctx, "session_destroy", userID, sessionID, true, nil, nil)
	return true, nil
}
