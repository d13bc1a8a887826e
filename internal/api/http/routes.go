package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"netmonitor/internal/domain"
	"netmonitor/internal/logging"
	"netmonitor/internal/screen"
	"netmonitor/pkg/version"
)

const maxIngestBody = 64 << 10

// handler contains the HTTP handlers and shared dependencies for the REST API.
type handler struct {
	screen    screen.Service
	logger    *logging.Logger
	heartbeat time.Duration
}

func registerRoutes(router chi.Router, h *handler, o options) {
	router.Get("/healthz", h.handleHealth)
	if o.metrics != nil {
		router.Method(http.MethodGet, "/metrics", o.metrics)
	}

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/screen", func(r chi.Router) {
			r.Get("/", h.handleView)
			r.Post("/permission", h.handleGrant)
			r.Post("/refresh", h.handleRefresh)
			r.Post("/pull", h.handlePull)
			r.Post("/export", h.handleExport)
			r.Get("/events", h.handleEvents)
		})
		r.With(o.verifier.Middleware).Post("/telemetry", h.handleTelemetry)
	})
}

type errorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}

type exportResponse struct {
	Text string `json:"text"`
}

type healthResponse struct {
	Status string `json:"status"`
	version.Info
}

func (h *handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Info: version.Get()})
}

func (h *handler) handleView(w http.ResponseWriter, r *http.Request) {
	h.respondView(w, r, h.screen.Snapshot)
}

func (h *handler) handleGrant(w http.ResponseWriter, r *http.Request) {
	h.respondView(w, r, h.screen.Grant)
}

func (h *handler) handleRefresh(w http.ResponseWriter, r *http.Request) {
	h.respondView(w, r, h.screen.Refresh)
}

func (h *handler) handlePull(w http.ResponseWriter, r *http.Request) {
	h.respondView(w, r, h.screen.Pull)
}

func (h *handler) handleExport(w http.ResponseWriter, r *http.Request) {
	text, err := h.screen.Export(r.Context())
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, exportResponse{Text: text})
}

func (h *handler) handleTelemetry(w http.ResponseWriter, r *http.Request) {
	sample, err := decodeSample(http.MaxBytesReader(w, r.Body, maxIngestBody))
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	view, err := h.screen.Ingest(r.Context(), sample)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusAccepted, view)
}

func (h *handler) respondView(w http.ResponseWriter, r *http.Request, op func(context.Context) (screen.View, error)) {
	view, err := op(r.Context())
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, view)
}

func (h *handler) respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrLocked):
		h.writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrInvalidPayload):
		h.writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrStopped):
		h.writeError(w, http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		h.writeError(w, http.StatusServiceUnavailable, "request cancelled")
	default:
		requestLogger(r, h.logger).Error("screen operation failed", logging.AttachError(err)...)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func (h *handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, errorResponse{Error: message, Code: status})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
