package authgate

import (
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MrEthical07/authgate/password"
	"github.com/MrEthical07/authgate/session"
)

// Builder assembles an [Engine]. Builders are single-use: a second Build
// fails.
type Builder struct {
	config Config

	directory    UserDirectory
	sessionStore session.Store
	redis        redis.UniversalClient
	auditSink    AuditSink

	built bool
}

// New returns a builder seeded with the default configuration.
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig replaces the builder's configuration wholesale.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cfg
	return b
}

// WithUserDirectory sets the user database the engine operates against.
// Required.
func (b *Builder) WithUserDirectory(dir UserDirectory) *Builder {
	b.directory = dir
	return b
}

// WithSessionStore sets the durable store backing persisted session
// strategies.
func (b *Builder) WithSessionStore(store session.Store) *Builder {
	b.sessionStore = store
	return b
}

// WithRedis is a convenience for WithSessionStore over a Redis client. The
// store is constructed at Build time so the configured key prefix applies
// regardless of option order.
func (b *Builder) WithRedis(client redis.UniversalClient) *Builder {
	b.redis = client
	return b
}

// WithAuditSink sets the audit destination and enables the dispatcher.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	b.config.Audit.Enabled = sink != nil
	return b
}

// WithSessionDuration sets the session lifetime. Zero disables expiry.
func (b *Builder) WithSessionDuration(d time.Duration) *Builder {
	b.config.Session.Duration = d
	return b
}

// WithMetricsEnabled toggles the in-process counters.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// Build validates the configuration, constructs the dependency graph, and
// returns a ready engine. The user directory is mandatory; a session store
// is only needed when a persisted strategy will be requested.
func (b *Builder) Build() (*Engine, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	if err := b.config.Validate(); err != nil {
		return nil, err
	}

	if b.directory == nil {
		return nil, ErrDirectoryRequired
	}

	hasher, err := password.NewHasher(password.Config{
		Memory:      b.config.Password.Memory,
		Time:        b.config.Password.Time,
		Parallelism: b.config.Password.Parallelism,
		SaltLength:  b.config.Password.SaltLength,
		KeyLength:   b.config.Password.KeyLength,
	})
	if err != nil {
		return nil, err
	}

	store := b.sessionStore
	if store == nil && b.redis != nil {
		store = session.NewRedisStore(b.redis, b.config.Session.RedisPrefix)
	}

	dispatcher := newAuditDispatcher(b.config.Audit, b.auditSink)

	engine := &Engine{
		config:       b.config,
		directory:    b.directory,
		hasher:       hasher,
		sessionStore: store,
		metrics:      NewMetrics(b.config.Metrics),
		audit:        dispatcher,
		hook:         &auditHook{dispatcher: dispatcher},
		now:          time.Now,
	}

	b.built = true

	return engine, nil
}
