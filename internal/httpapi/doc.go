// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Inkwell Contributors

// Package httpapi exposes the auth and blog services over HTTP. It owns
// the chi router, the JSON response envelope, the cookie token carrier,
// the request authenticator, and per-IP rate limiting backed by the
// session registry.
package httpapi
