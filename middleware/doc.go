// Package middleware exposes HTTP middleware adapters built on top of
// authgate strategies.
//
// [Guard] wraps a handler with a strategy: excluded paths pass through
// untouched, everything else must identify a user or is rejected with 401.
// The identified user is injected into the request context and retrievable
// with [UserFromContext].
//
// # Architecture boundaries
//
// This package translates HTTP semantics into strategy calls. It does NOT
// implement authentication logic itself; all decisions are delegated to the
// strategy.
package middleware
