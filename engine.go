package authgate

import (
	"time"

	internalaudit "github.com/MrEthical07/authgate/internal/audit"
	"github.com/MrEthical07/authgate/password"
	"github.com/MrEthical07/authgate/session"
)

// Engine wires the account lifecycle operations together with the configured
// strategies, metrics, and audit dispatcher. Engines are constructed through
// [Builder] and treated as immutable afterwards.
type Engine struct {
	config       Config
	directory    UserDirectory
	hasher       *password.Hasher
	sessionStore session.Store
	metrics      *Metrics
	audit        *internalaudit.Dispatcher
	hook         *auditHook
	now          func() time.Time
}

// Close flushes and stops the audit dispatcher. Safe on a nil engine.
func (e *Engine) Close() {
	if e == nil {
		return
	}
	if e.audit != nil {
		e.audit.Close()
	}
}

// Config returns a copy of the engine's configuration.
func (e *Engine) Config() Config {
	if e == nil {
		return Config{}
	}
	return e.config
}

// Hasher returns the engine's password hasher.
func (e *Engine) Hasher() *password.Hasher {
	if e == nil {
		return nil
	}
	return e.hasher
}

// AuditDropped reports how many audit events were dropped because the
// dispatcher buffer was full.
func (e *Engine) AuditDropped() uint64 {
	if e == nil || e.audit == nil {
		return 0
	}
	return e.audit.Dropped()
}

// MetricsSnapshot returns a point-in-time copy of the engine's counters.
func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	if e == nil || e.metrics == nil {
		return MetricsSnapshot{Counters: map[MetricID]uint64{}}
	}
	return e.metrics.Snapshot()
}

// NoAuthStrategy returns the disabled strategy.
func (e *Engine) NoAuthStrategy() *NoAuth {
	return NewNoAuth()
}

// BasicStrategy returns a Basic credentials strategy wired to the engine's
// directory, hasher, metrics, and audit pipeline.
func (e *Engine) BasicStrategy() *BasicAuth {
	s := NewBasicAuth(e.directory, e.hasher)
	s.metrics = e.metrics
	s.audit = e.hook
	return s
}

// SessionStrategy returns a plain session strategy over an in-process store,
// wired to the engine.
func (e *Engine) SessionStrategy() *SessionAuth {
	s := NewSessionAuth(e.config.Session.CookieName, e.directory)
	e.wireSession(s)
	return s
}

// ExpiringSessionStrategy returns a session strategy that applies the
// configured session duration lazily at lookup time.
func (e *Engine) ExpiringSessionStrategy() *ExpiringSessionAuth {
	s := NewExpiringSessionAuth(e.config.Session.CookieName, e.directory, e.config.Session.Duration)
	e.wireSession(s.SessionAuth)
	return s
}

// PersistedSessionStrategy returns an expiring session strategy over the
// engine's durable session store. The builder must have been given one via
// [Builder.WithSessionStore] or [Builder.WithRedis].
func (e *Engine) PersistedSessionStrategy() (*PersistedSessionAuth, error) {
	if e.sessionStore == nil {
		return nil, ErrEngineNotReady
	}
	s := NewPersistedSessionAuth(
		e.config.Session.CookieName,
		e.directory,
		e.sessionStore,
		e.config.Session.Duration,
	)
	e.wireSession(s.SessionAuth)
	return s, nil
}

func (e *Engine) wireSession(s *SessionAuth) {
	s.metrics = e.metrics
	s.audit = e.hook
	s.now = e.now
}
