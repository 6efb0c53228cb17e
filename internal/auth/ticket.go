// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Inkwell Contributors

package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"time"

	"github.com/samber/oops"
)

// Reset ticket configuration.
const (
	TicketBytes  = 32               // 32 bytes = 64 hex chars
	TicketExpiry = 15 * time.Minute // registry TTL for pending tickets
)

// GenerateTicket creates a high-entropy random reset ticket and its
// digest. The plaintext ticket goes to the user out of band; only the
// digest is stored in the registry.
func GenerateTicket() (ticket, digest string, err error) {
	raw := make([]byte, TicketBytes)
	if _, err = rand.Read(raw); err != nil {
		return "", "", oops.Code("AUTH_TICKET_GENERATE_FAILED").Wrap(err)
	}

	ticket = hex.EncodeToString(raw)
	digest = HashTicket(ticket)
	return ticket, digest, nil
}

// HashTicket computes the hex-encoded SHA256 digest of a ticket.
func HashTicket(ticket string) string {
	h := sha256.Sum256([]byte(ticket))
	return hex.EncodeToString(h[:])
}

// VerifyTicket checks the plaintext ticket against a stored digest using a
// constant-time comparison.
func VerifyTicket(ticket, digest string) bool {
	if ticket == "" || digest == "" {
		return false
	}
	computed := HashTicket(ticket)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(digest)) == 1
}
