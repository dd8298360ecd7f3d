// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package authority

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-key-enroll/internal/logger"
	"github.com/MKhiriev/go-key-enroll/internal/utils"
	"github.com/MKhiriev/go-key-enroll/models"
)

func (h *Handler) syncKeys(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	deviceID, found := utils.GetDeviceIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.syncKeys").Msg("no device ID in context")
		http.Error(w, "no device ID was given", http.StatusUnauthorized)
		return
	}

	var syncRequest models.SyncKeysRequest
	if err := json.NewDecoder(r.Body).Decode(&syncRequest); err != nil {
		log.Err(err).Str("func", "*Handler.syncKeys").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if syncRequest.ApplicationName == "" || len(syncRequest.SyncSingleKeyRequests) == 0 {
		log.Error().Str("func", "*Handler.syncKeys").Msg("sync request is missing application name or bundles")
		http.Error(w, "incomplete sync request", http.StatusBadRequest)
		return
	}

	response := models.SyncKeysResponse{
		ServerStatus:    models.ServerStatusOK,
		RandomSessionID: uuid.NewString(),
		ClientDirective: h.policy.clientDirective(),
	}

	// Answer the sub-requests positionally, in the order they arrived.
	expectedBundles := make(map[string]struct{})
	for _, single := range syncRequest.SyncSingleKeyRequests {
		decision := h.policy.decide(single)
		if decision.KeyCreation != models.KeyCreationNone && decision.KeyCreation != "" {
			expectedBundles[string(single.KeyName)] = struct{}{}
		}
		response.SyncSingleKeyResponses = append(response.SyncSingleKeyResponses, decision)
	}

	if len(expectedBundles) > 0 {
		h.openSession(response.RandomSessionID, deviceID, expectedBundles)
	}

	log.Info().
		Str("device_id", deviceID).
		Str("session_id", response.RandomSessionID).
		Int("bundles", len(syncRequest.SyncSingleKeyRequests)).
		Int("creations_requested", len(expectedBundles)).
		Msg("sync keys request served")

	utils.WriteJSON(w, response, http.StatusOK)
}

func (h *Handler) enrollKeys(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	deviceID, found := utils.GetDeviceIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.enrollKeys").Msg("no device ID in context")
		http.Error(w, "no device ID was given", http.StatusUnauthorized)
		return
	}

	var enrollRequest models.EnrollKeysRequest
	if err := json.NewDecoder(r.Body).Decode(&enrollRequest); err != nil {
		log.Err(err).Str("func", "*Handler.enrollKeys").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	openSession, ok := h.closeSession(enrollRequest.RandomSessionID)
	if !ok || openSession.deviceID != deviceID {
		log.Error().
			Str("func", "*Handler.enrollKeys").
			Str("session_id", enrollRequest.RandomSessionID).
			Msg(ErrUnknownSession.Error())
		http.Error(w, ErrUnknownSession.Error(), http.StatusBadRequest)
		return
	}

	var response models.EnrollKeysResponse
	for _, single := range enrollRequest.EnrollSingleKeyRequests {
		if _, expected := openSession.expectedBundles[string(single.KeyName)]; !expected {
			log.Error().
				Str("func", "*Handler.enrollKeys").
				Str("key_name", string(single.KeyName)).
				Msg("enrollment for a bundle no creation was requested for")
			http.Error(w, "unexpected bundle in enroll request", http.StatusBadRequest)
			return
		}
		if single.NewKeyHandle == "" || len(single.KeyProof) == 0 {
			log.Error().
				Str("func", "*Handler.enrollKeys").
				Str("key_name", string(single.KeyName)).
				Msg("enroll request is missing a key handle or proof")
			http.Error(w, "incomplete enroll request", http.StatusBadRequest)
			return
		}

		response.EnrollSingleKeyResponses = append(response.EnrollSingleKeyResponses, models.EnrollSingleKeyResponse{
			KeyName: single.KeyName,
		})
	}

	log.Info().
		Str("device_id", deviceID).
		Str("session_id", enrollRequest.RandomSessionID).
		Int("keys_enrolled", len(enrollRequest.EnrollSingleKeyRequests)).
		Msg("enroll keys request served")

	utils.WriteJSON(w, response, http.StatusOK)
}
