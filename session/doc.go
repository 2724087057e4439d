// Package session owns session persistence for authgate: the session record
// model, a versioned binary codec for durable backends, and the [Store]
// contract with in-memory and Redis-backed implementations.
//
// # Architecture boundaries
//
// This package stores and retrieves records. Expiration policy is NOT applied
// here: lookups return whatever is stored, and the strategy layer decides
// whether a record is still live. Records are never purged on expiry; deletion
// happens only through [Store.Delete].
//
// # What this package must NOT do
//
//   - Import authgate or any sibling package.
//   - Generate session identifiers (callers own id generation).
//   - Attach TTLs or evict records on its own.
package session
