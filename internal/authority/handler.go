// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package authority

import (
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/atomic"

	"github.com/MKhiriev/go-key-enroll/internal/config"
	"github.com/MKhiriev/go-key-enroll/internal/logger"
)

// Handler serves the dev trust-authority's enrollment API.
type Handler struct {
	tokenSignKey string
	tokenIssuer  string

	policy enrollmentPolicy

	// Open sync sessions by random session id. A session is opened by
	// a sync round that demands key creation and closed by the matching
	// enroll round.
	mu       sync.Mutex
	sessions map[string]session

	ready *atomic.Bool

	logger *logger.Logger
}

// session tracks what one sync round told the device to create, so the
// enroll round can be checked against it.
type session struct {
	deviceID        string
	expectedBundles map[string]struct{}
}

// NewHandler builds the API handler from the authority-side configuration.
func NewHandler(cfg *config.AuthorityConfig, logger *logger.Logger) *Handler {
	logger.Info().Msg("authority handler created")
	return &Handler{
		tokenSignKey: cfg.App.TokenSignKey,
		tokenIssuer:  cfg.App.TokenIssuer,
		policy:       newEnrollmentPolicy(),
		sessions:     make(map[string]session),
		ready:        atomic.NewBool(true),
		logger:       logger,
	}
}

// Init assembles the router: a public liveness probe and the two
// authenticated enrollment endpoints.
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withLogging)

	router.Get("/ping", h.ping)

	router.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Post("/v1/keys/sync", h.syncKeys)
		r.Post("/v1/keys/enroll", h.enrollKeys)
	})

	return router
}

// SetReady flips the readiness flag reported by the liveness probe. The
// server drains by flipping it to false before shutdown.
func (h *Handler) SetReady(ready bool) {
	h.ready.Store(ready)
}

func (h *Handler) ping(w http.ResponseWriter, _ *http.Request) {
	if !h.ready.Load() {
		http.Error(w, "draining", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) openSession(sessionID, deviceID string, expectedBundles map[string]struct{}) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sessions[sessionID] = session{deviceID: deviceID, expectedBundles: expectedBundles}
}

// closeSession removes and returns the session for sessionID. The second
// return value reports whether the session was open.
func (h *Handler) closeSession(sessionID string) (session, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	s, ok := h.sessions[sessionID]
	if ok {
		delete(h.sessions, sessionID)
	}
	return s, ok
}
