package authgate

import (
	"errors"
	"os"
	"strconv"
	"time"
)

// DefaultSessionCookieName is used when SessionConfig.CookieName is empty.
const DefaultSessionCookieName = "_my_session_id"

// Config is the engine configuration. Instances are treated as immutable
// after [Builder.Build].
type Config struct {
	Session  SessionConfig
	Password PasswordConfig
	Audit    AuditConfig
	Metrics  MetricsConfig
}

// SessionConfig controls session-cookie extraction and lifetime policy.
type SessionConfig struct {
	// CookieName is the session cookie read by the session strategies.
	CookieName string

	// Duration bounds a session's lifetime measured from creation.
	// Zero means sessions never expire by time. Idle activity does not
	// extend the window.
	Duration time.Duration

	// RedisPrefix namespaces keys when the session store is Redis-backed.
	RedisPrefix string
}

// PasswordConfig mirrors password.Config at the engine surface.
type PasswordConfig struct {
	Memory      uint32 // in KB
	Time        uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

// AuditConfig controls the asynchronous audit dispatcher.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

// MetricsConfig controls the in-process metrics counters.
type MetricsConfig struct {
	Enabled bool
}

// DefaultConfig returns the configuration a plain [New] builder starts from.
func DefaultConfig() Config {
	return defaultConfig()
}

func defaultConfig() Config {
	return Config{
		Session: SessionConfig{
			CookieName: DefaultSessionCookieName,
			Duration:   0,
		},
		Password: PasswordConfig{
			Memory:      64 * 1024,
			Time:        3,
			Parallelism: 2,
			SaltLength:  16,
			KeyLength:   32,
		},
		Audit: AuditConfig{
			Enabled:    false,
			BufferSize: 256,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

// Validate reports configuration errors. Password parameter minimums are
// checked again by password.NewHasher; the checks here exist so Build fails
// before any dependency is constructed.
func (c Config) Validate() error {
	if c.Session.Duration < 0 {
		return errors.New("session duration must not be negative")
	}
	if c.Password.Memory == 0 || c.Password.Time == 0 || c.Password.Parallelism == 0 {
		return errors.New("password config must set memory, time, and parallelism")
	}
	return nil
}

// ConfigFromEnv returns the default configuration overlaid with the
// SESSION_NAME and SESSION_DURATION environment variables. SESSION_DURATION
// is in seconds; unset, empty, or unparseable values leave the duration at
// zero (no expiry).
func ConfigFromEnv() Config {
	cfg := defaultConfig()

	if name := os.Getenv("SESSION_NAME"); name != "" {
		cfg.Session.CookieName = name
	}

	if raw := os.Getenv("SESSION_DURATION"); raw != "" {
		if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
			cfg.Session.Duration = time.Duration(secs) * time.Second
		}
	}

	return cfg
}
