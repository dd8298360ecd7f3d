package enroller

import (
	"errors"

	"github.com/MKhiriev/go-key-enroll/internal/adapter"
	"github.com/MKhiriev/go-key-enroll/models"
)

// syncKeysErrorCode maps a SyncKeys transport failure to its result code.
// Failure kinds are namespaced per phase so callers can tell which round of
// the protocol broke down.
func syncKeysErrorCode(err error) models.ResultCode {
	switch {
	case errors.Is(err, adapter.ErrOffline):
		return models.ResultErrorSyncKeysAPICallOffline
	case errors.Is(err, adapter.ErrEndpointNotFound):
		return models.ResultErrorSyncKeysAPICallEndpointNotFound
	case errors.Is(err, adapter.ErrAuthentication):
		return models.ResultErrorSyncKeysAPICallAuthenticationError
	case errors.Is(err, adapter.ErrBadRequest):
		return models.ResultErrorSyncKeysAPICallBadRequest
	case errors.Is(err, adapter.ErrResponseMalformed):
		return models.ResultErrorSyncKeysAPICallResponseMalformed
	case errors.Is(err, adapter.ErrInternalServerError):
		return models.ResultErrorSyncKeysAPICallInternalServerError
	default:
		return models.ResultErrorSyncKeysAPICallUnknownError
	}
}

// enrollKeysErrorCode maps an EnrollKeys transport failure to its result
// code.
func enrollKeysErrorCode(err error) models.ResultCode {
	switch {
	case errors.Is(err, adapter.ErrOffline):
		return models.ResultErrorEnrollKeysAPICallOffline
	case errors.Is(err, adapter.ErrEndpointNotFound):
		return models.ResultErrorEnrollKeysAPICallEndpointNotFound
	case errors.Is(err, adapter.ErrAuthentication):
		return models.ResultErrorEnrollKeysAPICallAuthenticationError
	case errors.Is(err, adapter.ErrBadRequest):
		return models.ResultErrorEnrollKeysAPICallBadRequest
	case errors.Is(err, adapter.ErrResponseMalformed):
		return models.ResultErrorEnrollKeysAPICallResponseMalformed
	case errors.Is(err, adapter.ErrInternalServerError):
		return models.ResultErrorEnrollKeysAPICallInternalServerError
	default:
		return models.ResultErrorEnrollKeysAPICallUnknownError
	}
}
