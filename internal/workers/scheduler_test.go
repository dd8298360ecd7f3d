// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-key-enroll/internal/config"
	"github.com/MKhiriev/go-key-enroll/internal/logger"
	"github.com/MKhiriev/go-key-enroll/internal/mock"
	"github.com/MKhiriev/go-key-enroll/models"
)

// fakeEnroller reports every Enroll call's metadata on a channel and returns
// a canned result.
type fakeEnroller struct {
	result models.EnrollmentResult
	calls  chan models.ClientMetadata
}

func (f *fakeEnroller) Enroll(_ context.Context, clientMetadata models.ClientMetadata, _ models.ClientAppMetadata, _ *models.PolicyReference) models.EnrollmentResult {
	f.calls <- clientMetadata
	return f.result
}

func fastDirective(retryAttempts int32) *models.ClientDirective {
	return &models.ClientDirective{
		CheckinDelayMillis: 10,
		RetryAttempts:      retryAttempts,
		RetryPeriodMillis:  10,
	}
}

func nextAttempt(t *testing.T, calls chan models.ClientMetadata) models.ClientMetadata {
	t.Helper()
	select {
	case metadata := <-calls:
		return metadata
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for an enrollment attempt")
		return models.ClientMetadata{}
	}
}

func newTestScheduler(t *testing.T, enroller *fakeEnroller, stored *models.ClientDirective) (*EnrollmentScheduler, *mock.MockStore) {
	t.Helper()
	ctrl := gomock.NewController(t)

	store := mock.NewMockStore(ctrl)
	store.EXPECT().GetClientDirective(gomock.Any()).Return(stored, nil)
	store.EXPECT().SetClientDirective(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	factory := func() Enroller { return enroller }
	scheduler := NewEnrollmentScheduler(factory, store, models.ClientAppMetadata{InstanceID: "instance-42"}, config.AgentWorkers{}, logger.Nop())

	return scheduler, store
}

func TestEnrollmentScheduler_SuccessFollowsCheckinCadence(t *testing.T) {
	enroller := &fakeEnroller{
		result: models.NewEnrollmentResult(models.ResultSuccessNoNewKeysNeeded, fastDirective(3)),
		calls:  make(chan models.ClientMetadata, 16),
	}
	scheduler, _ := newTestScheduler(t, enroller, nil)

	scheduler.Start(context.Background())
	defer scheduler.Stop()

	first := nextAttempt(t, enroller.calls)
	assert.Equal(t, models.InvocationReasonInitialization, first.InvocationReason)
	assert.Zero(t, first.RetryCount)

	second := nextAttempt(t, enroller.calls)
	assert.Equal(t, models.InvocationReasonPeriodic, second.InvocationReason)
	assert.Zero(t, second.RetryCount)
}

func TestEnrollmentScheduler_FailureRetriesWithinBudget(t *testing.T) {
	enroller := &fakeEnroller{
		result: models.NewEnrollmentResult(models.ResultErrorTimeoutWaitingForSyncResponse, fastDirective(2)),
		calls:  make(chan models.ClientMetadata, 16),
	}
	scheduler, _ := newTestScheduler(t, enroller, nil)

	scheduler.Start(context.Background())
	defer scheduler.Stop()

	first := nextAttempt(t, enroller.calls)
	require.Equal(t, models.InvocationReasonInitialization, first.InvocationReason)

	retry1 := nextAttempt(t, enroller.calls)
	assert.Equal(t, models.InvocationReasonFailureRecovery, retry1.InvocationReason)
	assert.Equal(t, int64(1), retry1.RetryCount)

	retry2 := nextAttempt(t, enroller.calls)
	assert.Equal(t, models.InvocationReasonFailureRecovery, retry2.InvocationReason)
	assert.Equal(t, int64(2), retry2.RetryCount)

	// Budget of two retries exhausted: back to the regular cadence with a
	// reset retry count.
	fallback := nextAttempt(t, enroller.calls)
	assert.Equal(t, models.InvocationReasonPeriodic, fallback.InvocationReason)
	assert.Zero(t, fallback.RetryCount)
}

func TestEnrollmentScheduler_StoredDirectiveMeansPeriodic(t *testing.T) {
	enroller := &fakeEnroller{
		result: models.NewEnrollmentResult(models.ResultSuccessNoNewKeysNeeded, fastDirective(3)),
		calls:  make(chan models.ClientMetadata, 16),
	}
	scheduler, _ := newTestScheduler(t, enroller, fastDirective(3))

	scheduler.Start(context.Background())
	defer scheduler.Stop()

	first := nextAttempt(t, enroller.calls)
	assert.Equal(t, models.InvocationReasonPeriodic, first.InvocationReason)
}

func TestEnrollmentScheduler_StopHaltsAttempts(t *testing.T) {
	enroller := &fakeEnroller{
		result: models.NewEnrollmentResult(models.ResultSuccessNoNewKeysNeeded, fastDirective(3)),
		calls:  make(chan models.ClientMetadata, 16),
	}
	scheduler, _ := newTestScheduler(t, enroller, nil)

	scheduler.Start(context.Background())
	nextAttempt(t, enroller.calls)
	scheduler.Stop()

	// Drain whatever was in flight when Stop was called, then verify the
	// loop is quiet.
	for {
		select {
		case <-enroller.calls:
			continue
		case <-time.After(100 * time.Millisecond):
			return
		}
	}
}
