// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// EnrollKeysResponse acknowledges an EnrollKeysRequest. A transport-level
// success is the whole signal; the engine does not act on the body.
type EnrollKeysResponse struct {
	// EnrollSingleKeyResponses echoes one entry per enrolled key.
	EnrollSingleKeyResponses []EnrollSingleKeyResponse `json:"enroll_single_key_responses"`
}

// EnrollSingleKeyResponse acknowledges one enrolled key.
type EnrollSingleKeyResponse struct {
	// KeyName is the bundle the acknowledged key belongs to.
	KeyName KeyBundleName `json:"key_name,omitempty"`
}
