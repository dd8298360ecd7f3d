package adapter

import "errors"

var (
	ErrOffline             = errors.New("authority unreachable")
	ErrBadRequest          = errors.New("bad request")
	ErrAuthentication      = errors.New("authentication failed")
	ErrEndpointNotFound    = errors.New("endpoint not found")
	ErrResponseMalformed   = errors.New("malformed response")
	ErrInternalServerError = errors.New("internal server error")
)
