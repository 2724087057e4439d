// Package audit implements structured audit events and asynchronous dispatch
// for authgate. Events are emitted by the engine and strategies, buffered by
// a [Dispatcher], and delivered to a caller-provided [Sink].
//
// # What this package must NOT do
//
//   - Block the authentication hot path when the sink is slow (DropIfFull).
//   - Import authgate or any sibling package.
package audit
