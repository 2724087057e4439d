// Package authgate provides a pluggable authentication and session-lifecycle
// core for HTTP-facing services: capability-checked credential verification,
// session creation/lookup/expiration/destruction, and the policy that
// classifies each request as authenticated, anonymous, or rejected.
//
// The package is designed for concurrent server workloads: Engine methods and
// strategies are safe to call from multiple goroutines after initialization
// through [Builder.Build].
//
// # Architecture boundaries
//
// authgate is the public surface. It exposes [Engine], [Builder], [Config],
// the [Strategy] hierarchy (NoAuth, BasicAuth, SessionAuth,
// ExpiringSessionAuth, PersistedSessionAuth), and the collaborator contracts
// ([UserDirectory], [Request]). Session persistence lives in session/, user
// persistence adapters in directory/, password hashing in password/, and HTTP
// glue in middleware/. Audit dispatch lives under internal/ and is never
// exported beyond the root aliases.
//
// # What this package must NOT do
//
//   - Parse HTTP framing. The transport is consumed only through [Request].
//   - Retry, time out, or cancel collaborator calls. Context flows through;
//     the caller owns deadlines.
//   - Turn a missing or malformed credential into an error. Not-authenticated
//     is a nil identity, never a failure.
package authgate
