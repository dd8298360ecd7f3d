package adapter

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/MKhiriev/go-key-enroll/internal/logger"
	"github.com/MKhiriev/go-key-enroll/internal/utils"
	"github.com/MKhiriev/go-key-enroll/models"
	"github.com/go-resty/resty/v2"
)

type httpAuthorityClient struct {
	client *utils.HTTPClient

	token   string
	hashKey string

	logger *logger.Logger
}

// SyncKeys implements [Client]. It POSTs the first-round request to
// POST /v1/keys/sync with the device token in the Authorization header and,
// when a hash key is configured, a transport integrity digest of the body in
// the HashSHA256 header. Returns an error wrapping [ErrOffline] on transport
// failure, a status-mapped sentinel on non-2xx responses, or
// [ErrResponseMalformed] if the body cannot be decoded.
func (h *httpAuthorityClient) SyncKeys(ctx context.Context, req models.SyncKeysRequest) (models.SyncKeysResponse, error) {
	resp, err := h.post(ctx, "/v1/keys/sync", req)
	if err != nil {
		return models.SyncKeysResponse{}, fmt.Errorf("sync keys request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.SyncKeysResponse{}, err
	}

	var syncResponse models.SyncKeysResponse
	if err = json.Unmarshal(resp.Body(), &syncResponse); err != nil {
		return models.SyncKeysResponse{}, fmt.Errorf("%w: decode sync keys response: %v", ErrResponseMalformed, err)
	}

	return syncResponse, nil
}

// EnrollKeys implements [Client]. It POSTs the second-round request to
// POST /v1/keys/enroll under the same header regime as SyncKeys. Returns an
// error wrapping [ErrOffline] on transport failure, a status-mapped sentinel
// on non-2xx responses, or [ErrResponseMalformed] if the body cannot be
// decoded.
func (h *httpAuthorityClient) EnrollKeys(ctx context.Context, req models.EnrollKeysRequest) (models.EnrollKeysResponse, error) {
	resp, err := h.post(ctx, "/v1/keys/enroll", req)
	if err != nil {
		return models.EnrollKeysResponse{}, fmt.Errorf("enroll keys request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.EnrollKeysResponse{}, err
	}

	var enrollResponse models.EnrollKeysResponse
	if err = json.Unmarshal(resp.Body(), &enrollResponse); err != nil {
		return models.EnrollKeysResponse{}, fmt.Errorf("%w: decode enroll keys response: %v", ErrResponseMalformed, err)
	}

	return enrollResponse, nil
}

// post marshals body and sends it to path. The body is serialised here rather
// than by resty so the integrity digest covers the exact bytes on the wire.
func (h *httpAuthorityClient) post(ctx context.Context, path string, body any) (*resty.Response, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request body: %w", err)
	}

	req := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(payload)

	if h.token != "" {
		req.SetHeader("Authorization", "Bearer "+h.token)
	}
	if h.hashKey != "" {
		req.SetHeader("HashSHA256", hex.EncodeToString(utils.Hash(payload)))
	}

	resp, err := req.Post(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOffline, err)
	}

	return resp, nil
}
