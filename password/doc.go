// Package password provides salted argon2id password hashing in PHC string
// format for authgate.
//
// # Design
//
// Hash draws a fresh random salt on every call, so hashing the same password
// twice yields different output. Verify recomputes with the parameters and
// salt embedded in the stored hash and compares in constant time.
//
// # Failure policy
//
// Verification never fails loudly: a malformed or corrupt stored hash is a
// verification failure (false), not an error. The only hard error surface is
// Hash itself (empty password, bad configuration, entropy exhaustion).
package password
