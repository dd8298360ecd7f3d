// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package enroller

import "github.com/MKhiriev/go-key-enroll/models"

// The functions in this file are pure: they validate and interpret one
// SyncKeysResponse without touching the registry or the network. A returned
// zero ResultCode means the input passed.

// checkSyncKeysResponse validates the response top to bottom. Any failure
// here is fatal to the attempt.
//
// The precedence is fixed: an overloaded server wins over every other
// complaint, then the session id, the client directive, and finally the
// response count.
func checkSyncKeysResponse(response models.SyncKeysResponse, expectedResponses int) models.ResultCode {
	if !response.ServerStatus.Valid() {
		return models.ResultErrorSyncKeysAPICallResponseMalformed
	}

	if response.ServerStatus == models.ServerStatusOverloaded {
		return models.ResultErrorServerOverloaded
	}

	if response.RandomSessionID == "" {
		return models.ResultErrorSyncMissingSessionID
	}

	if !response.ClientDirective.Valid() {
		return models.ResultErrorSyncInvalidClientDirective
	}

	if len(response.SyncSingleKeyResponses) != expectedResponses {
		return models.ResultErrorWrongNumberOfKeyResponses
	}

	return ""
}

// keyActions is the interpreted form of one bundle's key_actions list:
// which handles to delete and which single handle, if any, to activate.
type keyActions struct {
	activateHandle string
	deleteHandles  []string
}

// processKeyActions interprets a bundle's key_actions against the handle
// order recorded when the request was built. Nothing is applied here; the
// caller applies the outcome only when the whole list is valid.
//
// Unless every handle is deleted, exactly one action must be an activate:
// the bundle must come out of the exchange with exactly one active key.
func processKeyActions(actions []models.KeyAction, handleOrder []string) (keyActions, models.ResultCode) {
	if len(actions) != len(handleOrder) {
		return keyActions{}, models.ResultErrorWrongNumberOfKeyActions
	}

	var result keyActions
	for i, action := range actions {
		if !action.Valid() {
			return keyActions{}, models.ResultErrorInvalidKeyAction
		}

		switch action {
		case models.KeyActionDelete:
			result.deleteHandles = append(result.deleteHandles, handleOrder[i])
		case models.KeyActionActivate:
			if result.activateHandle != "" {
				return keyActions{}, models.ResultErrorMultipleActiveKeys
			}
			result.activateHandle = handleOrder[i]
		}
	}

	if result.activateHandle == "" && len(result.deleteHandles) != len(handleOrder) {
		return keyActions{}, models.ResultErrorNoActiveKey
	}

	return result, ""
}

// processKeyCreationInstruction interprets a bundle's key-creation field.
// It returns nil when the authority wants no new key for the bundle, and
// otherwise the instruction for the key creator plus the new key directive
// to store once the key enrolls.
//
// An absent key_creation value means none; the authority omits the field
// for bundles it is satisfied with.
func processKeyCreationInstruction(name models.KeyBundleName, single models.SyncSingleKeyResponse, hasServerDH bool) (*models.KeyCreationInstruction, *models.KeyDirective, models.ResultCode) {
	if single.KeyCreation == "" || single.KeyCreation == models.KeyCreationNone {
		return nil, nil, ""
	}

	if !single.KeyCreation.Valid() {
		return nil, nil, models.ResultErrorInvalidKeyCreation
	}

	if !single.KeyType.Valid() {
		return nil, nil, models.ResultErrorKeyTypeNotSupported
	}

	// Symmetric keys are derived from a Diffie-Hellman handshake; without
	// the server's half there is nothing to derive from.
	if single.KeyType.IsSymmetric() && !hasServerDH {
		return nil, nil, models.ResultErrorMissingServerDiffieHellman
	}

	instruction := &models.KeyCreationInstruction{
		Status: single.KeyCreation.KeyStatus(),
		Type:   single.KeyType,
	}

	// The device identity bundle's key handle is pinned by the protocol;
	// every other bundle lets the key creator assign one.
	if name == models.KeyBundleDeviceIdentity {
		instruction.Handle = models.DeviceIdentityKeyHandle
	}

	return instruction, single.KeyDirective, ""
}
