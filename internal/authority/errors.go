// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package authority

import "errors"

// Sentinel errors used by the authentication middleware when parsing the
// "Authorization" HTTP header. Callers can match against them with [errors.Is].
var (
	// ErrEmptyAuthorizationHeader is returned by the auth middleware when the
	// incoming request does not include an "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidAuthorizationHeader is returned when the "Authorization"
	// header is present but cannot be split into at least two space-separated
	// parts (i.e. the token value is missing entirely).
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	// ErrUnknownSession is returned by the enroll endpoint when the request's
	// random_session_id does not belong to an open sync session.
	ErrUnknownSession = errors.New("unknown enrollment session")
)
