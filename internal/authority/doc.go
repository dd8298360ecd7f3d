// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package authority implements a development stand-in for the trust
// authority's key-enrollment API: POST /v1/keys/sync and
// POST /v1/keys/enroll behind JWT bearer authentication.
//
// Its policy is deliberately simple — any bundle that reports no key handles
// is told to create an active P-256 key, any bundle with handles gets its
// newest handle activated, and every response carries the same fixed client
// directive. Session state lives in memory and dies with the process.
//
// The real trust authority is an external service; this package exists so
// the agent can be run and tested end to end without one.
package authority
