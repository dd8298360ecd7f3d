// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package authority

import "github.com/MKhiriev/go-key-enroll/models"

// enrollmentPolicy is the dev stub's whole decision logic. It stands in for
// the policy engine of a real trust authority.
type enrollmentPolicy struct {
	directive models.ClientDirective
}

func newEnrollmentPolicy() enrollmentPolicy {
	return enrollmentPolicy{
		directive: models.ClientDirective{
			CheckinDelayMillis: 12 * 60 * 60 * 1000,
			RetryAttempts:      3,
			RetryPeriodMillis:  5 * 60 * 1000,
			PolicyReference:    &models.PolicyReference{Name: "dev-default", Version: 1},
		},
	}
}

// clientDirective returns the fixed directive handed to every device.
func (p enrollmentPolicy) clientDirective() *models.ClientDirective {
	directive := p.directive
	return &directive
}

// decide answers one bundle's sync sub-request. A bundle with no keys is
// told to create an active P-256 key; otherwise the newest reported handle
// is activated and the rest are left alone.
func (p enrollmentPolicy) decide(single models.SyncSingleKeyRequest) models.SyncSingleKeyResponse {
	if len(single.KeyHandles) == 0 {
		return models.SyncSingleKeyResponse{
			KeyCreation: models.KeyCreationActive,
			KeyType:     models.KeyTypeP256,
		}
	}

	actions := make([]models.KeyAction, len(single.KeyHandles))
	for i := range actions {
		actions[i] = models.KeyActionNone
	}
	actions[len(actions)-1] = models.KeyActionActivate

	return models.SyncSingleKeyResponse{
		KeyActions:  actions,
		KeyCreation: models.KeyCreationNone,
	}
}
