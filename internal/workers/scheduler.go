// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-key-enroll/internal/config"
	"github.com/MKhiriev/go-key-enroll/internal/logger"
	"github.com/MKhiriev/go-key-enroll/internal/registry"
	"github.com/MKhiriev/go-key-enroll/models"
)

// Fallback cadence used before the authority has issued a client directive.
const (
	defaultCheckinInterval = time.Hour
	defaultRetryPeriod     = 5 * time.Minute
)

// EnrollmentScheduler keeps the device enrolled: it runs attempts on the
// cadence the trust authority dictates through its client directive. A
// successful attempt schedules the next regular check-in after the
// directive's check-in delay; a failed one retries after the retry period,
// up to the directive's retry budget, then falls back to the check-in
// cadence. Until the first directive arrives the configured fallback
// intervals apply.
//
// Each attempt gets a fresh enroller from the factory; enrollers are
// single-use by contract.
type EnrollmentScheduler struct {
	newEnroller EnrollerFactory
	store       registry.Store
	appMetadata models.ClientAppMetadata
	fallback    config.AgentWorkers
	logger      *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewEnrollmentScheduler creates an idle scheduler. It does nothing until
// Start (or Run) is called.
func NewEnrollmentScheduler(newEnroller EnrollerFactory, store registry.Store, appMetadata models.ClientAppMetadata, fallback config.AgentWorkers, log *logger.Logger) *EnrollmentScheduler {
	if fallback.CheckinInterval <= 0 {
		fallback.CheckinInterval = defaultCheckinInterval
	}
	if fallback.RetryPeriod <= 0 {
		fallback.RetryPeriod = defaultRetryPeriod
	}

	return &EnrollmentScheduler{
		newEnroller: newEnroller,
		store:       store,
		appMetadata: appMetadata,
		fallback:    fallback,
		logger:      log,
	}
}

// Run implements [Worker]. It starts the schedule and blocks until Stop is
// called.
func (s *EnrollmentScheduler) Run() {
	s.Start(context.Background())
	s.wg.Wait()
}

// Start stops any previously running schedule, then launches the attempt
// loop in a background goroutine. The goroutine exits when ctx is cancelled
// or Stop is called.
func (s *EnrollmentScheduler) Start(ctx context.Context) {
	s.Stop()

	s.mu.Lock()
	loopCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.wg.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.wg.Done()
		s.loop(loopCtx)
	}()
}

// Stop cancels the attempt loop and blocks until it has fully exited. Safe
// to call when the scheduler is not running (no-op in that case).
func (s *EnrollmentScheduler) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	s.cancel = nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	s.wg.Wait()
}

// loop runs attempts until ctx is cancelled. The first attempt starts
// immediately; every later one is scheduled from the previous attempt's
// outcome and the latest known client directive.
func (s *EnrollmentScheduler) loop(ctx context.Context) {
	reason := models.InvocationReasonInitialization
	var retryCount int64

	directive, err := s.store.GetClientDirective(ctx)
	if err != nil {
		s.logger.Err(err).Str("func", "EnrollmentScheduler.loop").Msg("failed to read stored client directive")
	}
	if directive.Valid() {
		// The device has enrolled before; this is a regular check-in.
		reason = models.InvocationReasonPeriodic
	}

	for {
		metadata := models.ClientMetadata{
			RetryCount:       retryCount,
			InvocationReason: reason,
		}

		var clientPolicy *models.PolicyReference
		if directive.Valid() {
			clientPolicy = directive.PolicyReference
		}

		result := s.newEnroller().Enroll(ctx, metadata, s.appMetadata, clientPolicy)

		if result.ClientDirective.Valid() {
			directive = result.ClientDirective
			if err := s.store.SetClientDirective(ctx, *directive); err != nil {
				s.logger.Err(err).Str("func", "EnrollmentScheduler.loop").Msg("failed to persist client directive")
			}
		}

		var delay time.Duration
		switch {
		case result.Success():
			reason = models.InvocationReasonPeriodic
			retryCount = 0
			delay = s.checkinDelay(directive)

		case s.retryBudgetLeft(directive, retryCount+1):
			reason = models.InvocationReasonFailureRecovery
			retryCount++
			delay = s.retryPeriod(directive)

		default:
			// Retry budget exhausted; fall back to the regular cadence.
			reason = models.InvocationReasonPeriodic
			retryCount = 0
			delay = s.checkinDelay(directive)
		}

		s.logger.Info().
			Str("result_code", string(result.Code)).
			Dur("next_attempt_in", delay).
			Str("next_reason", string(reason)).
			Msg("enrollment attempt scheduled")

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
	}
}

func (s *EnrollmentScheduler) checkinDelay(directive *models.ClientDirective) time.Duration {
	if directive.Valid() {
		return directive.CheckinDelay()
	}
	return s.fallback.CheckinInterval
}

func (s *EnrollmentScheduler) retryPeriod(directive *models.ClientDirective) time.Duration {
	if directive.Valid() {
		return directive.RetryPeriod()
	}
	return s.fallback.RetryPeriod
}

// retryBudgetLeft reports whether the next failure retry is still within the
// directive's budget. Zero retry attempts means retry without limit; with no
// directive yet the fallback behaves the same way.
func (s *EnrollmentScheduler) retryBudgetLeft(directive *models.ClientDirective, attempt int64) bool {
	if !directive.Valid() || directive.RetryAttempts == 0 {
		return true
	}
	return attempt <= int64(directive.RetryAttempts)
}
