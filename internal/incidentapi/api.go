// Package incidentapi exposes incident triage over HTTP: create, fetch,
// paginated list, status updates, and aggregate stats.
package incidentapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/linnemanlabs/go-core/log"
	"github.com/linnemanlabs/go-core/xerrors"

	"github.com/linnemanlabs/beacon/internal/incident"
)

// IncidentService defines the business operations incidentapi needs.
type IncidentService interface {
	Create(ctx context.Context, r *incident.Report) (*incident.Incident, error)
	Get(ctx context.Context, id int64) (*incident.Incident, error)
	List(ctx context.Context, q incident.ListQuery) (*incident.Page, error)
	UpdateStatus(ctx context.Context, id int64, status string) (*incident.Incident, error)
	Stats(ctx context.Context) (*incident.Stats, error)
}

// API holds dependencies for HTTP handlers.
type API struct {
	logger log.Logger
	svc    IncidentService
	auth   func(http.Handler) http.Handler
}

// New creates a new API handler. auth, when non-nil, guards mutating
// routes.
func New(logger log.Logger, svc IncidentService, auth func(http.Handler) http.Handler) *API {
	if logger == nil {
		logger = log.Nop()
	}
	if svc == nil {
		panic(xerrors.New("incident service is required"))
	}
	return &API{
		logger: logger,
		svc:    svc,
		auth:   auth,
	}
}

// RegisterRoutes attaches API endpoints to the router.
func (a *API) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/incidents", func(r chi.Router) {
		r.Get("/", a.handleList)
		r.Get("/stats", a.handleStats)
		r.Get("/{id}", a.handleGet)

		r.Group(func(r chi.Router) {
			if a.auth != nil {
				r.Use(a.auth)
			}
			r.Post("/", a.handleCreate)
			r.Patch("/{id}/status", a.handleUpdateStatus)
		})
	})
}

func (a *API) writeJSON(ctx context.Context, w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		a.logger.Error(ctx, err, "failed to encode response")
	}
}

// writeErr maps domain errors to HTTP status codes.
func (a *API) writeErr(w http.ResponseWriter, r *http.Request, err error) {
	var verr *incident.ValidationError
	switch {
	case errors.As(err, &verr):
		writeError(w, http.StatusBadRequest, verr.Error())
	case errors.Is(err, incident.ErrInvalidStatus):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, incident.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		a.logger.Error(r.Context(), err, "request failed",
			"method", r.Method, "path", r.URL.Path)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
