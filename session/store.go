package session

import "context"

// Store maps session identifiers to session records.
//
// Get returns (nil, nil) for an unknown identifier: a miss is an expected
// outcome, not a failure. Errors are reserved for backend I/O problems and
// propagate to the caller untouched; no implementation retries.
type Store interface {
	Get(ctx context.Context, sessionID string) (*Record, error)
	Put(ctx context.Context, sessionID string, record Record) error
	Delete(ctx context.Context, sessionID string) error
}
