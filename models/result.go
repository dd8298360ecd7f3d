// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// ResultCode is the verdict of one enrollment attempt. Every attempt ends
// with exactly one code; anything other than the two success codes is a
// failure.
type ResultCode string

const (
	// ResultSuccessNewKeysEnrolled: the full two-round flow completed and
	// the new keys are enrolled.
	ResultSuccessNewKeysEnrolled ResultCode = "success_new_keys_enrolled"

	// ResultSuccessNoNewKeysNeeded: the sync round completed and the
	// authority requested no new keys, so no enroll round was needed.
	ResultSuccessNoNewKeysNeeded ResultCode = "success_no_new_keys_needed"

	// ResultErrorServerOverloaded: the authority refused the attempt.
	ResultErrorServerOverloaded ResultCode = "error_server_overloaded"

	// SyncKeys transport failures, one code per request-error kind.
	ResultErrorSyncKeysAPICallOffline             ResultCode = "error_sync_keys_api_call_offline"
	ResultErrorSyncKeysAPICallEndpointNotFound    ResultCode = "error_sync_keys_api_call_endpoint_not_found"
	ResultErrorSyncKeysAPICallAuthenticationError ResultCode = "error_sync_keys_api_call_authentication_error"
	ResultErrorSyncKeysAPICallBadRequest          ResultCode = "error_sync_keys_api_call_bad_request"
	ResultErrorSyncKeysAPICallResponseMalformed   ResultCode = "error_sync_keys_api_call_response_malformed"
	ResultErrorSyncKeysAPICallInternalServerError ResultCode = "error_sync_keys_api_call_internal_server_error"
	ResultErrorSyncKeysAPICallUnknownError        ResultCode = "error_sync_keys_api_call_unknown_error"

	// EnrollKeys transport failures, one code per request-error kind.
	ResultErrorEnrollKeysAPICallOffline             ResultCode = "error_enroll_keys_api_call_offline"
	ResultErrorEnrollKeysAPICallEndpointNotFound    ResultCode = "error_enroll_keys_api_call_endpoint_not_found"
	ResultErrorEnrollKeysAPICallAuthenticationError ResultCode = "error_enroll_keys_api_call_authentication_error"
	ResultErrorEnrollKeysAPICallBadRequest          ResultCode = "error_enroll_keys_api_call_bad_request"
	ResultErrorEnrollKeysAPICallResponseMalformed   ResultCode = "error_enroll_keys_api_call_response_malformed"
	ResultErrorEnrollKeysAPICallInternalServerError ResultCode = "error_enroll_keys_api_call_internal_server_error"
	ResultErrorEnrollKeysAPICallUnknownError        ResultCode = "error_enroll_keys_api_call_unknown_error"

	// ResultErrorSyncMissingSessionID: the sync response carried no
	// random session id.
	ResultErrorSyncMissingSessionID ResultCode = "error_sync_keys_response_missing_session_id"

	// ResultErrorSyncInvalidClientDirective: the sync response's client
	// directive was missing or out of range.
	ResultErrorSyncInvalidClientDirective ResultCode = "error_sync_keys_response_invalid_client_directive"

	// ResultErrorWrongNumberOfKeyResponses: the sync response did not
	// answer every requested bundle exactly once.
	ResultErrorWrongNumberOfKeyResponses ResultCode = "error_wrong_number_of_sync_single_key_responses"

	// ResultErrorWrongNumberOfKeyActions: a bundle's key_actions did not
	// match the number of handles the client reported.
	ResultErrorWrongNumberOfKeyActions ResultCode = "error_wrong_number_of_key_actions"

	// ResultErrorInvalidKeyAction: a key action was not a recognized
	// value.
	ResultErrorInvalidKeyAction ResultCode = "error_invalid_key_action"

	// ResultErrorInvalidKeyCreation: a key-creation instruction was not
	// a recognized value.
	ResultErrorInvalidKeyCreation ResultCode = "error_invalid_key_creation"

	// ResultErrorMultipleActiveKeys: a bundle's actions tried to
	// activate more than one key.
	ResultErrorMultipleActiveKeys ResultCode = "error_key_actions_specify_multiple_active_keys"

	// ResultErrorNoActiveKey: a bundle's actions left keys behind but
	// designated none of them active.
	ResultErrorNoActiveKey ResultCode = "error_key_actions_do_not_specify_an_active_key"

	// ResultErrorKeyTypeNotSupported: the authority requested a key of a
	// type this client cannot create.
	ResultErrorKeyTypeNotSupported ResultCode = "error_key_creation_key_type_not_supported"

	// ResultErrorMissingServerDiffieHellman: the authority requested a
	// symmetric key without providing its ephemeral Diffie-Hellman key.
	ResultErrorMissingServerDiffieHellman ResultCode = "error_symmetric_key_creation_missing_server_diffie_hellman"

	// ResultErrorKeyCreationFailed: the key creator could not produce
	// the requested keys.
	ResultErrorKeyCreationFailed ResultCode = "error_key_creation_failed"

	// ResultErrorKeyProofComputationFailed: a proof of possession could
	// not be computed for a new key.
	ResultErrorKeyProofComputationFailed ResultCode = "error_key_proof_computation_failed"

	// Per-phase timeouts.
	ResultErrorTimeoutWaitingForSyncResponse   ResultCode = "error_timeout_waiting_for_sync_keys_response"
	ResultErrorTimeoutWaitingForKeyCreation    ResultCode = "error_timeout_waiting_for_key_creation"
	ResultErrorTimeoutWaitingForEnrollResponse ResultCode = "error_timeout_waiting_for_enroll_keys_response"
)

// EnrollmentResult is the outcome of one enrollment attempt.
type EnrollmentResult struct {
	// Code is the attempt's verdict.
	Code ResultCode `json:"code"`

	// ClientDirective is the latest directive received during the
	// attempt, nil when the attempt failed before a directive was
	// validated. Callers use it to schedule the next attempt even when
	// the attempt itself failed.
	ClientDirective *ClientDirective `json:"client_directive,omitempty"`
}

// NewEnrollmentResult builds a result from a verdict and the directive
// known at the time the attempt finished.
func NewEnrollmentResult(code ResultCode, directive *ClientDirective) EnrollmentResult {
	return EnrollmentResult{Code: code, ClientDirective: directive}
}

// Success reports whether the attempt ended in one of the two success
// verdicts.
func (r EnrollmentResult) Success() bool {
	return r.Code == ResultSuccessNewKeysEnrolled || r.Code == ResultSuccessNoNewKeysNeeded
}
