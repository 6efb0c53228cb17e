// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Inkwell Contributors

package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/inkwell/inkwell/internal/auth"
)

// zeroULID is the absent-value sentinel for optional ULID parameters.
var zeroULID ulid.ULID

// decodeJSON parses the request body into v. Unknown fields are rejected
// so typos surface as 400s instead of silently dropped input.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return oops.Code(auth.CodeValidation).Errorf("invalid request body")
	}
	return nil
}

// pathULID parses a ULID route parameter.
func pathULID(r *http.Request, name string) (ulid.ULID, error) {
	raw := chi.URLParam(r, name)
	id, err := ulid.Parse(raw)
	if err != nil {
		return ulid.ULID{}, oops.Code(auth.CodeValidation).
			With("param", name).
			Errorf("%s must be a valid ID", name)
	}
	return id, nil
}

// queryULID parses an optional ULID query parameter. Absent is the zero
// ULID with no error.
func queryULID(r *http.Request, name string) (ulid.ULID, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return ulid.ULID{}, nil
	}
	id, err := ulid.Parse(raw)
	if err != nil {
		return ulid.ULID{}, oops.Code(auth.CodeValidation).
			With("param", name).
			Errorf("%s must be a valid ID", name)
	}
	return id, nil
}

// parseBodyULID parses a ULID carried in a request body field.
func parseBodyULID(field, raw string) (ulid.ULID, error) {
	id, err := ulid.Parse(raw)
	if err != nil {
		return ulid.ULID{}, oops.Code(auth.CodeValidation).
			With("field", field).
			Errorf("%s must be a valid ID", field)
	}
	return id, nil
}

// queryInt parses an optional integer query parameter. Absent or malformed
// is zero; the services clamp out-of-range values themselves.
func queryInt(r *http.Request, name string) int {
	n, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		return 0
	}
	return n
}

// queryBool parses an optional boolean query parameter. Nil when absent
// or malformed.
func queryBool(r *http.Request, name string) *bool {
	b, err := strconv.ParseBool(r.URL.Query().Get(name))
	if err != nil {
		return nil
	}
	return &b
}

// principalULID returns the authenticated principal's user ID. Requests
// only reach here through the authenticate middleware, so a missing or
// malformed principal is a broken token rather than a programming error.
func principalULID(r *http.Request) (ulid.ULID, error) {
	principal, ok := PrincipalFromContext(r.Context())
	if !ok {
		return ulid.ULID{}, oops.Code(auth.CodeInvalidToken).Errorf("unauthorized")
	}
	id, err := ulid.Parse(principal.ID)
	if err != nil {
		return ulid.ULID{}, oops.Code(auth.CodeInvalidToken).Errorf("unauthorized")
	}
	return id, nil
}
