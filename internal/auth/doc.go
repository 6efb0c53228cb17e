// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Inkwell Contributors

// Package auth implements the authentication core for the Inkwell blog
// platform: registration, login, stateless access tokens, registry-tracked
// refresh tokens with single-use rotation, and one-time password-reset
// tickets.
//
// The package owns three contracts implemented elsewhere:
//
//   - UserRepository: the relational credential store (internal/auth/postgres)
//   - SessionRegistry: the expiring key-value store that tracks the single
//     live refresh token per user and pending reset tickets
//     (internal/auth/redis)
//   - PasswordHasher: an opaque one-way hash with a cost parameter
//
// Access tokens are validated purely by signature and expiry, with no
// registry round trip. Refresh tokens additionally must byte-match the
// registry entry for their subject, which is what makes logout and
// rotation effective while the signature is still valid.
package auth
