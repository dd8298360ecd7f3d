// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// InvocationReason records why an enrollment attempt was started. It is
// reported to the trust authority for server-side diagnostics and rate
// decisions.
type InvocationReason string

const (
	// InvocationReasonInitialization is the device's very first attempt.
	InvocationReasonInitialization InvocationReason = "initialization"

	// InvocationReasonPeriodic is a regular check-in driven by the
	// authority's client directive.
	InvocationReasonPeriodic InvocationReason = "periodic"

	// InvocationReasonFailureRecovery is a retry after a failed attempt.
	InvocationReasonFailureRecovery InvocationReason = "failure_recovery"

	// InvocationReasonManual is an attempt requested by an operator.
	InvocationReasonManual InvocationReason = "manual"

	// InvocationReasonServerInitiated is an attempt triggered by a push
	// from the trust authority.
	InvocationReasonServerInitiated InvocationReason = "server_initiated"
)

// Valid reports whether the reason is one of the recognized values.
func (r InvocationReason) Valid() bool {
	switch r {
	case InvocationReasonInitialization, InvocationReasonPeriodic,
		InvocationReasonFailureRecovery, InvocationReasonManual,
		InvocationReasonServerInitiated:
		return true
	default:
		return false
	}
}

// ClientMetadata describes one enrollment attempt to the trust authority.
type ClientMetadata struct {
	// RetryCount is how many attempts preceded this one in the current
	// retry sequence.
	RetryCount int64 `json:"retry_count"`

	// InvocationReason says what triggered the attempt.
	InvocationReason InvocationReason `json:"invocation_reason"`

	// SessionID carries the identifier of the triggering push message
	// when the attempt is server initiated.
	SessionID string `json:"session_id,omitempty"`
}

// ApplicationSpecificMetadata describes one software package on the device.
type ApplicationSpecificMetadata struct {
	// DeviceSoftwarePackage is the package identifier. One entry must
	// match the application name the agent enrolls under.
	DeviceSoftwarePackage string `json:"device_software_package"`

	// SoftwareVersion is the package's version string.
	SoftwareVersion string `json:"software_version"`
}

// ClientAppMetadata describes the device and its enrollment software. It is
// serialized as an opaque blob inside the sync request; the engine never
// inspects it beyond a consistency check on the software package list.
type ClientAppMetadata struct {
	// InstanceID uniquely identifies this device installation.
	InstanceID string `json:"instance_id"`

	// DeviceModel is the hardware model identifier.
	DeviceModel string `json:"device_model"`

	// ApplicationSpecificMetadata lists the device's enrollment-relevant
	// software packages.
	ApplicationSpecificMetadata []ApplicationSpecificMetadata `json:"application_specific_metadata"`
}

// HasSoftwarePackage reports whether the metadata lists the given device
// software package.
func (m ClientAppMetadata) HasSoftwarePackage(name string) bool {
	for _, entry := range m.ApplicationSpecificMetadata {
		if entry.DeviceSoftwarePackage == name {
			return true
		}
	}
	return false
}
