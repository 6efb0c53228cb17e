// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Inkwell Contributors

package auth

import "errors"

// ErrNotFound is returned by repositories when a requested entity does not
// exist. Services translate it into an operation-specific oops code.
var ErrNotFound = errors.New("not found")

// Error codes produced by the auth core. The HTTP layer maps these to
// status codes; everything not listed there collapses to a generic 500.
const (
	CodeEmailTaken         = "AUTH_EMAIL_TAKEN"
	CodeInvalidCredentials = "AUTH_INVALID_CREDENTIALS"
	CodeInvalidToken       = "AUTH_INVALID_TOKEN"
	CodeUserNotFound       = "AUTH_USER_NOT_FOUND"
	CodeTicketInvalid      = "AUTH_RESET_TICKET_INVALID"
	CodeValidation         = "VALIDATION_FAILED"
)
