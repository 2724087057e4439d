// Package directory provides ready-made authgate.UserDirectory
// implementations.
//
// Memory is a mutex-guarded map intended for tests and single-process
// deployments. Postgres persists accounts in a users table and relies on the
// database's unique index for atomic email uniqueness. Both map their
// backend's duplicate and not-found conditions to the authgate sentinel
// errors, so callers never see driver-specific failures for those cases.
package directory
