// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Inkwell Contributors

package auth_test

import (
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell/inkwell/internal/auth"
)

func TestGenerateTicket(t *testing.T) {
	ticket, digest, err := auth.GenerateTicket()
	require.NoError(t, err)

	assert.Len(t, ticket, auth.TicketBytes*2) // hex encoding doubles length
	assert.Len(t, digest, 64)                 // sha256 hex
	assert.Equal(t, auth.HashTicket(ticket), digest)

	ticket2, _, err := auth.GenerateTicket()
	require.NoError(t, err)
	assert.NotEqual(t, ticket, ticket2)
}

func TestVerifyTicket(t *testing.T) {
	ticket, digest, err := auth.GenerateTicket()
	require.NoError(t, err)

	assert.True(t, auth.VerifyTicket(ticket, digest))
	assert.False(t, auth.VerifyTicket("wrong", digest))
	assert.False(t, auth.VerifyTicket("", digest))
	assert.False(t, auth.VerifyTicket(ticket, ""))
}

func TestRegistryKeys(t *testing.T) {
	id := ulid.Make()
	assert.Equal(t, "refresh_token:"+id.String(), auth.RefreshKey(id))

	ticket := "abc123"
	assert.Equal(t, "password_reset:"+auth.HashTicket(ticket), auth.ResetKey(ticket))
}
