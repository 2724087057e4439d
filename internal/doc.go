// Package internal holds cross-cutting helpers shared by the authgate root
// package: random identifier generation for sessions and reset tokens.
package internal
