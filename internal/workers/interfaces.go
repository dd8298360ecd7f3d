// Package workers provides abstractions for managing and running
// background workers in the application.
// It defines the Worker interface, a Workers aggregate that allows running
// multiple workers in a unified way, and the enrollment scheduler that
// keeps the device checking in with the trust authority.
package workers

import (
	"context"

	"github.com/MKhiriev/go-key-enroll/models"
)

// Worker is the interface that must be implemented by any background worker.
// It defines a single Run method that starts the worker's execution.
//
// Implementations are expected to block for the duration of their work
// or spawn goroutines internally.
type Worker interface {
	Run()
}

// Enroller runs one enrollment attempt against the trust authority. The
// scheduler obtains a fresh instance per attempt through an
// [EnrollerFactory]; instances are single-use.
type Enroller interface {
	Enroll(ctx context.Context, clientMetadata models.ClientMetadata, appMetadata models.ClientAppMetadata, clientPolicy *models.PolicyReference) models.EnrollmentResult
}

// EnrollerFactory mints a fresh single-use [Enroller] for each attempt.
type EnrollerFactory func() Enroller
