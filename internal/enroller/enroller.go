// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package enroller drives one key-enrollment attempt against the trust
// authority: it reports the device's current key bundles, interprets the
// authority's instructions, creates and proves the keys the authority asked
// for, and records the outcome in the key registry.
package enroller

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/atomic"

	"github.com/MKhiriev/go-key-enroll/internal/adapter"
	"github.com/MKhiriev/go-key-enroll/internal/crypto"
	"github.com/MKhiriev/go-key-enroll/internal/logger"
	"github.com/MKhiriev/go-key-enroll/internal/registry"
	"github.com/MKhiriev/go-key-enroll/models"
)

// Enroller runs a single enrollment attempt. One instance serves exactly one
// call to [Enroller.Enroll]; schedulers construct a fresh instance per
// attempt. Calling Enroll twice is a caller bug and panics.
type Enroller struct {
	registry      registry.Store
	clientFactory adapter.ClientFactory
	keyCreator    crypto.KeyCreator
	proofComputer crypto.KeyProofComputer
	timeouts      Timeouts
	logger        *logger.Logger

	started atomic.Bool

	// Attempt state below is touched only by the goroutine running Enroll.
	state     State
	directive *models.ClientDirective
}

// New constructs an enroller from its collaborators. Zero timeout fields
// fall back to the ten-second defaults.
func New(store registry.Store, clientFactory adapter.ClientFactory, keyCreator crypto.KeyCreator, proofComputer crypto.KeyProofComputer, timeouts Timeouts, log *logger.Logger) *Enroller {
	return &Enroller{
		registry:      store,
		clientFactory: clientFactory,
		keyCreator:    keyCreator,
		proofComputer: proofComputer,
		timeouts:      timeouts.withDefaults(),
		logger:        log,
		state:         StateNotStarted,
	}
}

// Enroll runs the attempt to completion and returns its result. It blocks
// through up to three bounded waits: the SyncKeys round trip, key creation,
// and the EnrollKeys round trip.
//
// Destructive instructions from the sync response (key deletions and
// activations) are applied to the registry as soon as they validate, before
// the attempt finishes and regardless of how it finishes. Newly created
// keys are stored only after the authority accepts them.
//
// The returned result carries the authority's latest client directive when
// one was received, so the caller can schedule the next attempt even after
// a failure. Canceling ctx aborts the in-flight round trip; the attempt
// then finishes with that phase's transport error.
func (e *Enroller) Enroll(ctx context.Context, clientMetadata models.ClientMetadata, appMetadata models.ClientAppMetadata, clientPolicy *models.PolicyReference) models.EnrollmentResult {
	if !e.started.CompareAndSwap(false, true) {
		panic("enroller: Enroll called more than once on the same instance")
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	request, handleOrders, err := e.buildSyncKeysRequest(ctx, clientMetadata, appMetadata, clientPolicy)
	if err != nil {
		e.logger.Err(err).Str("func", "Enroller.Enroll").Msg("failed to build sync keys request")
		return e.finish(models.ResultErrorSyncKeysAPICallUnknownError)
	}

	e.setState(StateWaitingForSyncKeysResponse)
	response, code := e.awaitSyncKeys(ctx, request)
	if code != "" {
		return e.finish(code)
	}

	if code := checkSyncKeysResponse(response, len(request.SyncSingleKeyRequests)); code != "" {
		return e.finish(code)
	}

	// The directive is trusted from here on; every later finish reports it.
	e.directive = response.ClientDirective

	keysToCreate, keyDirectives, code := e.applySingleKeyResponses(ctx, response, handleOrders)
	if code != "" {
		return e.finish(code)
	}

	if len(keysToCreate) == 0 {
		return e.finish(models.ResultSuccessNoNewKeysNeeded)
	}

	e.setState(StateWaitingForKeyCreation)
	newKeys, clientEphemeralDH, code := e.awaitKeyCreation(keysToCreate, response.ServerEphemeralDH)
	if code != "" {
		return e.finish(code)
	}

	enrollRequest, err := e.buildEnrollKeysRequest(response.RandomSessionID, clientEphemeralDH, newKeys)
	if err != nil {
		e.logger.Err(err).Str("func", "Enroller.Enroll").Msg("failed to compute key proofs")
		return e.finish(models.ResultErrorKeyProofComputationFailed)
	}

	e.setState(StateWaitingForEnrollKeysResponse)
	if code := e.awaitEnrollKeys(ctx, enrollRequest); code != "" {
		return e.finish(code)
	}

	e.storeEnrolledKeys(ctx, newKeys, keyDirectives)

	return e.finish(models.ResultSuccessNewKeysEnrolled)
}

// buildSyncKeysRequest assembles the sync request from the registry's
// current contents and records, per bundle, the exact handle order sent.
// That order is the contract for interpreting the positional key_actions in
// the response, so it is kept as attempt state instead of being re-derived.
func (e *Enroller) buildSyncKeysRequest(ctx context.Context, clientMetadata models.ClientMetadata, appMetadata models.ClientAppMetadata, clientPolicy *models.PolicyReference) (models.SyncKeysRequest, map[models.KeyBundleName][]string, error) {
	// The authority cross-checks the application name against the device
	// software package list; a mismatch gets the request rejected.
	if !appMetadata.HasSoftwarePackage(models.ApplicationName) {
		e.logger.Warn().
			Str("application_name", models.ApplicationName).
			Msg("client app metadata does not list the enrolling software package")
	}

	serialized, err := json.Marshal(appMetadata)
	if err != nil {
		return models.SyncKeysRequest{}, nil, fmt.Errorf("serialize client app metadata: %w", err)
	}

	request := models.SyncKeysRequest{
		ApplicationName:             models.ApplicationName,
		ClientVersion:               models.ClientVersion,
		ClientMetadata:              clientMetadata,
		SerializedClientAppMetadata: serialized,
		PolicyReference:             clientPolicy,
	}

	order := models.KeyBundleOrder()
	handleOrders := make(map[models.KeyBundleName][]string, len(order))

	for _, name := range order {
		bundle, err := e.registry.GetKeyBundle(ctx, name)
		if err != nil {
			return models.SyncKeysRequest{}, nil, fmt.Errorf("read key bundle %q: %w", name, err)
		}

		single := models.SyncSingleKeyRequest{
			KeyName:    name,
			KeyHandles: bundle.Handles(),
		}
		if bundle.KeyDirective != nil && bundle.KeyDirective.PolicyReference != nil {
			single.PolicyReference = bundle.KeyDirective.PolicyReference
		}

		handleOrders[name] = single.KeyHandles
		request.SyncSingleKeyRequests = append(request.SyncSingleKeyRequests, single)
	}

	return request, handleOrders, nil
}

// applySingleKeyResponses walks the per-bundle responses in canonical order.
// Valid key actions are applied to the registry immediately; the protocol
// does not defer deletions and activations to the end of the session. A
// bundle whose payload is invalid is skipped whole, the first such error
// becomes the attempt's verdict, and the remaining bundles still get their
// valid instructions honored.
func (e *Enroller) applySingleKeyResponses(ctx context.Context, response models.SyncKeysResponse, handleOrders map[models.KeyBundleName][]string) (map[models.KeyBundleName]models.KeyCreationInstruction, map[models.KeyBundleName]models.KeyDirective, models.ResultCode) {
	keysToCreate := make(map[models.KeyBundleName]models.KeyCreationInstruction)
	keyDirectives := make(map[models.KeyBundleName]models.KeyDirective)
	var firstError models.ResultCode

	hasServerDH := len(response.ServerEphemeralDH) > 0

	for i, name := range models.KeyBundleOrder() {
		single := response.SyncSingleKeyResponses[i]

		actions, code := processKeyActions(single.KeyActions, handleOrders[name])
		if code != "" {
			e.logger.Error().
				Str("bundle_name", string(name)).
				Str("result_code", string(code)).
				Msg("rejected key actions for bundle")
			if firstError == "" {
				firstError = code
			}
			continue
		}

		e.applyKeyActions(ctx, name, actions)

		instruction, directive, code := processKeyCreationInstruction(name, single, hasServerDH)
		if code != "" {
			e.logger.Error().
				Str("bundle_name", string(name)).
				Str("result_code", string(code)).
				Msg("rejected key-creation instruction for bundle")
			if firstError == "" {
				firstError = code
			}
			continue
		}

		if instruction != nil {
			keysToCreate[name] = *instruction
		}
		if directive != nil {
			keyDirectives[name] = *directive
		}
	}

	return keysToCreate, keyDirectives, firstError
}

// applyKeyActions applies one bundle's validated actions. Registry failures
// here are logged and do not fail the attempt: the next sync reports the
// device's actual handles and the authority re-issues whatever still needs
// doing.
func (e *Enroller) applyKeyActions(ctx context.Context, name models.KeyBundleName, actions keyActions) {
	for _, handle := range actions.deleteHandles {
		if err := e.registry.DeleteKey(ctx, name, handle); err != nil {
			e.logger.Err(err).
				Str("bundle_name", string(name)).
				Str("handle", handle).
				Msg("failed to delete key on authority instruction")
		}
	}

	if actions.activateHandle == "" {
		return
	}
	if err := e.registry.SetActiveKey(ctx, name, actions.activateHandle); err != nil {
		e.logger.Err(err).
			Str("bundle_name", string(name)).
			Str("handle", actions.activateHandle).
			Msg("failed to activate key on authority instruction")
	}
}

// buildEnrollKeysRequest emits one enroll sub-request per created key, in
// canonical bundle order, each carrying a proof of possession bound to the
// session. Only asymmetric keys disclose material; the authority derives
// symmetric secrets from its side of the Diffie-Hellman exchange.
func (e *Enroller) buildEnrollKeysRequest(sessionID string, clientEphemeralDH []byte, newKeys map[models.KeyBundleName]models.Key) (models.EnrollKeysRequest, error) {
	request := models.EnrollKeysRequest{
		RandomSessionID:   sessionID,
		ClientEphemeralDH: clientEphemeralDH,
	}

	for _, name := range models.KeyBundleOrder() {
		key, ok := newKeys[name]
		if !ok {
			continue
		}

		single := models.EnrollSingleKeyRequest{
			KeyName:      name,
			NewKeyHandle: key.Handle,
		}
		if key.IsAsymmetric() {
			single.KeyMaterial = key.PublicKey
		}

		proof, err := e.proofComputer.ComputeKeyProof(key, sessionID, models.KeyProofSalt)
		if err != nil {
			return models.EnrollKeysRequest{}, fmt.Errorf("key proof for bundle %q: %w", name, err)
		}
		if len(proof) == 0 {
			return models.EnrollKeysRequest{}, fmt.Errorf("key proof for bundle %q is empty", name)
		}
		single.KeyProof = proof

		request.EnrollSingleKeyRequests = append(request.EnrollSingleKeyRequests, single)
	}

	return request, nil
}

// storeEnrolledKeys writes the accepted keys and their directives to the
// registry. The authority has already enrolled them at this point, so
// storage failures are logged rather than turned into attempt failures;
// the next sync reconciles any divergence.
func (e *Enroller) storeEnrolledKeys(ctx context.Context, newKeys map[models.KeyBundleName]models.Key, keyDirectives map[models.KeyBundleName]models.KeyDirective) {
	for _, name := range models.KeyBundleOrder() {
		if key, ok := newKeys[name]; ok {
			if err := e.registry.AddEnrolledKey(ctx, name, key); err != nil {
				e.logger.Err(err).
					Str("bundle_name", string(name)).
					Str("handle", key.Handle).
					Msg("failed to store enrolled key")
			}
		}

		if directive, ok := keyDirectives[name]; ok {
			if err := e.registry.SetKeyDirective(ctx, name, directive); err != nil {
				e.logger.Err(err).
					Str("bundle_name", string(name)).
					Msg("failed to store key directive")
			}
		}
	}
}

type syncKeysOutcome struct {
	response models.SyncKeysResponse
	err      error
}

// awaitSyncKeys runs the SyncKeys round trip on a fresh client, bounded by
// the sync-phase timeout. A late completion after the timer fires lands in
// the buffered channel and is discarded with the attempt.
func (e *Enroller) awaitSyncKeys(ctx context.Context, request models.SyncKeysRequest) (models.SyncKeysResponse, models.ResultCode) {
	completions := make(chan syncKeysOutcome, 1)
	go func() {
		response, err := e.clientFactory.NewClient().SyncKeys(ctx, request)
		completions <- syncKeysOutcome{response: response, err: err}
	}()

	timer := time.NewTimer(e.timeouts.SyncKeysResponse)
	defer timer.Stop()

	select {
	case outcome := <-completions:
		if outcome.err != nil {
			e.logger.Err(outcome.err).Str("func", "Enroller.awaitSyncKeys").Msg("sync keys call failed")
			return models.SyncKeysResponse{}, syncKeysErrorCode(outcome.err)
		}
		return outcome.response, ""
	case <-timer.C:
		e.logger.Error().Dur("timeout", e.timeouts.SyncKeysResponse).Msg("timed out waiting for sync keys response")
		return models.SyncKeysResponse{}, models.ResultErrorTimeoutWaitingForSyncResponse
	}
}

type keyCreationOutcome struct {
	newKeys           map[models.KeyBundleName]models.Key
	clientEphemeralDH []byte
	err               error
}

// awaitKeyCreation runs the key creator, bounded by the creation-phase
// timeout.
func (e *Enroller) awaitKeyCreation(instructions map[models.KeyBundleName]models.KeyCreationInstruction, serverEphemeralDH []byte) (map[models.KeyBundleName]models.Key, []byte, models.ResultCode) {
	completions := make(chan keyCreationOutcome, 1)
	go func() {
		newKeys, clientEphemeralDH, err := e.keyCreator.CreateKeys(instructions, serverEphemeralDH)
		completions <- keyCreationOutcome{newKeys: newKeys, clientEphemeralDH: clientEphemeralDH, err: err}
	}()

	timer := time.NewTimer(e.timeouts.KeyCreation)
	defer timer.Stop()

	select {
	case outcome := <-completions:
		if outcome.err != nil {
			e.logger.Err(outcome.err).Str("func", "Enroller.awaitKeyCreation").Msg("key creation failed")
			return nil, nil, models.ResultErrorKeyCreationFailed
		}
		return outcome.newKeys, outcome.clientEphemeralDH, ""
	case <-timer.C:
		e.logger.Error().Dur("timeout", e.timeouts.KeyCreation).Msg("timed out waiting for key creation")
		return nil, nil, models.ResultErrorTimeoutWaitingForKeyCreation
	}
}

// awaitEnrollKeys runs the EnrollKeys round trip on a fresh client, bounded
// by the enroll-phase timeout. The response body carries nothing the engine
// acts on; transport-level success is the signal.
func (e *Enroller) awaitEnrollKeys(ctx context.Context, request models.EnrollKeysRequest) models.ResultCode {
	completions := make(chan error, 1)
	go func() {
		_, err := e.clientFactory.NewClient().EnrollKeys(ctx, request)
		completions <- err
	}()

	timer := time.NewTimer(e.timeouts.EnrollKeysResponse)
	defer timer.Stop()

	select {
	case err := <-completions:
		if err != nil {
			e.logger.Err(err).Str("func", "Enroller.awaitEnrollKeys").Msg("enroll keys call failed")
			return enrollKeysErrorCode(err)
		}
		return ""
	case <-timer.C:
		e.logger.Error().Dur("timeout", e.timeouts.EnrollKeysResponse).Msg("timed out waiting for enroll keys response")
		return models.ResultErrorTimeoutWaitingForEnrollResponse
	}
}

func (e *Enroller) setState(next State) {
	e.logger.Debug().
		Stringer("from", e.state).
		Stringer("to", next).
		Msg("enrollment state transition")
	e.state = next
}

func (e *Enroller) finish(code models.ResultCode) models.EnrollmentResult {
	e.setState(StateFinished)

	result := models.NewEnrollmentResult(code, e.directive)
	e.logger.Info().
		Str("result_code", string(code)).
		Bool("success", result.Success()).
		Msg("enrollment attempt finished")
	return result
}
