package authgate

import (
	"context"
	"errors"
	"time"

	"github.com/MrEthical07/authgate/internal"
	"github.com/MrEthical07/authgate/session"
)

// SessionAuth authenticates requests through a session cookie backed by a
// [session.Store]. The plain strategy applies no lifetime policy: a session
// lives until explicitly destroyed. Wrap it in [ExpiringSessionAuth] for
// time-bounded sessions.
type SessionAuth struct {
	cookieName string
	store      session.Store
	directory  UserDirectory
	now        func() time.Time

	metrics *Metrics
	audit   *auditHook
}

// NewSessionAuth creates a session strategy over an in-process store. The
// cookie name defaults to [DefaultSessionCookieName] when empty.
func NewSessionAuth(cookieName string, directory UserDirectory) *SessionAuth {
	return newSessionAuth(cookieName, session.NewMemoryStore(), directory)
}

func newSessionAuth(cookieName string, store session.Store, directory UserDirectory) *SessionAuth {
	if cookieName == "" {
		cookieName = DefaultSessionCookieName
	}
	return &SessionAuth{
		cookieName: cookieName,
		store:      store,
		directory:  directory,
		now:        time.Now,
	}
}

// RequireAuth applies the shared path exclusion policy.
func (s *SessionAuth) RequireAuth(path string, excluded []string) bool {
	return RequireAuth(path, excluded)
}

// CreateSession issues a fresh random session identifier for userID and
// records the mapping. An empty user id is rejected with [ErrUserIDRequired];
// no session is created for an unidentified caller.
func (s *SessionAuth) CreateSession(ctx context.Context, userID string) (string, error) {
	if userID == "" {
		return "", ErrUserIDRequired
	}

	sid, err := internal.NewSessionID()
	if err != nil {
		return "", err
	}

	sessionID := sid.String()
	record := session.Record{
		UserID:    userID,
		CreatedAt: s.now().Unix(),
	}
	if err := s.store.Put(ctx, sessionID, record); err != nil {
		return "", err
	}

	s.metrics.Inc(MetricSessionCreated)
	s.audit.emit(ctx, "session_create", userID, sessionID, true, nil, nil)
	return sessionID, nil
}

// UserIDForSession resolves a session identifier to its owning user id.
// Unknown identifiers resolve to the empty string without error; the plain
// strategy never expires a session.
func (s *SessionAuth) UserIDForSession(ctx context.Context, sessionID string) (string, error) {
	if sessionID == "" {
		return "", nil
	}

	record, err := s.store.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, session.ErrCorruptRecord) {
			// A corrupt stored session is invalid, not fatal.
			return "", nil
		}
		return "", err
	}
	if record == nil {
		return "", nil
	}

	return record.UserID, nil
}

// SessionCookie extracts the raw session cookie value from the request.
func (s *SessionAuth) SessionCookie(req Request) (string, bool) {
	if req == nil {
		return "", false
	}
	return req.Cookie(s.cookieName)
}

// Identify resolves the request's session cookie to a user. An absent
// cookie, unknown session id, or dangling user reference all yield an
// anonymous caller.
func (s *SessionAuth) Identify(ctx context.Context, req Request) (*User, error) {
	return s.identify(ctx, req, s.UserIDForSession)
}

// identify is shared by the delegation chain: each layer passes its own
// session resolution so that expiry policy composes without overriding.
func (s *SessionAuth) identify(ctx context.Context, req Request, resolve func(context.Context, string) (string, error)) (*User, error) {
	sessionID, ok := s.SessionCookie(req)
	if !ok || sessionID == "" {
		return nil, nil
	}

	userID, err := resolve(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if userID == "" {
		return nil, nil
	}

	user, err := s.directory.GetUserByID(ctx, userID)
	if errors.Is(err, ErrUserNotFound) {
		// Session outlived its user; invalid, not a crash.
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return user, nil
}
