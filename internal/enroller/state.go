// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package enroller

import "time"

// State of one enrollment attempt. An attempt only ever moves forward:
// NotStarted, WaitingForSyncKeysResponse, optionally WaitingForKeyCreation
// and WaitingForEnrollKeysResponse, then Finished.
type State int

const (
	StateNotStarted State = iota
	StateWaitingForSyncKeysResponse
	StateWaitingForKeyCreation
	StateWaitingForEnrollKeysResponse
	StateFinished
)

func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not_started"
	case StateWaitingForSyncKeysResponse:
		return "waiting_for_sync_keys_response"
	case StateWaitingForKeyCreation:
		return "waiting_for_key_creation"
	case StateWaitingForEnrollKeysResponse:
		return "waiting_for_enroll_keys_response"
	case StateFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// defaultPhaseTimeout bounds each waiting state when the caller does not
// override it.
const defaultPhaseTimeout = 10 * time.Second

// Timeouts bounds every waiting state of an attempt. A zero field falls
// back to the default; tests shrink them to milliseconds against blocking
// fakes.
type Timeouts struct {
	SyncKeysResponse   time.Duration
	KeyCreation        time.Duration
	EnrollKeysResponse time.Duration
}

func (t Timeouts) withDefaults() Timeouts {
	if t.SyncKeysResponse <= 0 {
		t.SyncKeysResponse = defaultPhaseTimeout
	}
	if t.KeyCreation <= 0 {
		t.KeyCreation = defaultPhaseTimeout
	}
	if t.EnrollKeysResponse <= 0 {
		t.EnrollKeysResponse = defaultPhaseTimeout
	}
	return t
}
