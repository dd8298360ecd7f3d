// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package authority

import (
	"context"
	"errors"
	"net/http"

	"github.com/MKhiriev/go-key-enroll/internal/config"
	"github.com/MKhiriev/go-key-enroll/internal/logger"
)

// Server runs the dev authority's HTTP API.
type Server struct {
	server  *http.Server
	handler *Handler
	logger  *logger.Logger
}

// NewServer wires the handler's router into an http.Server listening on the
// configured address.
func NewServer(handler *Handler, cfg config.AuthorityServer, logger *logger.Logger) *Server {
	logger.Info().Str("address", cfg.HTTPAddress).Msg("creating authority http server...")

	return &Server{
		server: &http.Server{
			Addr:         cfg.HTTPAddress,
			Handler:      handler.Init(),
			ReadTimeout:  cfg.RequestTimeout,
			WriteTimeout: cfg.RequestTimeout,
		},
		handler: handler,
		logger:  logger,
	}
}

// Run serves until Shutdown is called. A closed-server error is the normal
// way out and is not reported.
func (s *Server) Run() error {
	s.logger.Info().Str("address", s.server.Addr).Msg("authority http server listening")
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains the server: the liveness probe starts answering 503 so
// load balancers stop routing, then in-flight requests are allowed to
// finish.
func (s *Server) Shutdown(ctx context.Context) {
	s.handler.SetReady(false)

	if err := s.server.Shutdown(ctx); err != nil {
		s.logger.Err(err).Msg("authority http server shutdown")
	}
}
