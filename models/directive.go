// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// PolicyReference names the server-side policy that produced a directive.
// It is echoed back verbatim in subsequent requests.
type PolicyReference struct {
	// Name of the policy.
	Name string `json:"name"`

	// Version of the policy.
	Version int64 `json:"version"`
}

// ClientDirective is the trust authority's scheduling instruction to the
// device: when to check in again and how to retry after failures.
//
// A directive is only trusted after Validate passes; the enrollment engine
// rejects a SyncKeysResponse whose directive is missing or invalid.
type ClientDirective struct {
	// CheckinDelayMillis is the time to wait before the next regular
	// enrollment attempt. Must be positive.
	CheckinDelayMillis int64 `json:"checkin_delay_millis"`

	// RetryAttempts is the number of immediate retries allowed after a
	// failed attempt before falling back to the check-in cadence.
	// Zero means retry without limit. Must not be negative.
	RetryAttempts int32 `json:"retry_attempts"`

	// RetryPeriodMillis is the time to wait between retries.
	// Must be positive.
	RetryPeriodMillis int64 `json:"retry_period_millis"`

	// PolicyReference identifies the policy this directive came from.
	PolicyReference *PolicyReference `json:"policy_reference,omitempty"`
}

// Valid reports whether every scheduling field is in range: the check-in
// delay and retry period must be positive and the retry attempts must not
// be negative.
func (d *ClientDirective) Valid() bool {
	if d == nil {
		return false
	}
	return d.CheckinDelayMillis > 0 && d.RetryAttempts >= 0 && d.RetryPeriodMillis > 0
}

// CheckinDelay returns the check-in delay as a duration.
func (d *ClientDirective) CheckinDelay() time.Duration {
	return time.Duration(d.CheckinDelayMillis) * time.Millisecond
}

// RetryPeriod returns the retry period as a duration.
func (d *ClientDirective) RetryPeriod() time.Duration {
	return time.Duration(d.RetryPeriodMillis) * time.Millisecond
}

// KeyDirective is the authority's policy metadata attached to one key
// bundle. The device stores it with the bundle after a successful
// enrollment and echoes its policy reference in later sync requests.
type KeyDirective struct {
	// PolicyReference identifies the policy governing the bundle's keys.
	PolicyReference *PolicyReference `json:"policy_reference,omitempty"`

	// EnrollTimeMillis is the authority-assigned enrollment timestamp in
	// milliseconds since the Unix epoch.
	EnrollTimeMillis int64 `json:"enroll_time_millis"`
}
