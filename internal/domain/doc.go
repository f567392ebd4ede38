// Package domain defines the core domain types and interfaces.
//
// This package contains concept-oriented files (errors.go, user.go, post.go, vote.go, etc.)
// with shared types and cross-cutting interfaces. The vote state machine and the
// ranking engine live here as pure logic; everything else is contracts implemented
// by the database, redis, and mailer packages.
package domain
