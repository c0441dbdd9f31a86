package incidentapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/linnemanlabs/beacon/internal/incident"
)

func (a *API) handleCreate(w http.ResponseWriter, r *http.Request) {
	var report incident.Report
	if err := json.NewDecoder(r.Body).Decode(&report); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	in, err := a.svc.Create(r.Context(), &report)
	if err != nil {
		a.writeErr(w, r, err)
		return
	}

	span := trace.SpanFromContext(r.Context())
	span.SetAttributes(
		attribute.Int64("beacon.incident.id", in.ID),
		attribute.String("beacon.incident.severity", string(in.Severity)),
		attribute.String("beacon.incident.category", string(in.Category)),
	)

	a.writeJSON(r.Context(), w, http.StatusCreated, in)
}

func (a *API) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	span := trace.SpanFromContext(r.Context())
	span.SetAttributes(attribute.Int64("beacon.incident.id", id))

	in, err := a.svc.Get(r.Context(), id)
	if err != nil {
		a.writeErr(w, r, err)
		return
	}

	a.writeJSON(r.Context(), w, http.StatusOK, in)
}

type statusUpdateRequest struct {
	Status string `json:"status"`
}

func (a *API) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req statusUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	span := trace.SpanFromContext(r.Context())
	span.SetAttributes(
		attribute.Int64("beacon.incident.id", id),
		attribute.String("beacon.incident.status", req.Status),
	)

	in, err := a.svc.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		a.writeErr(w, r, err)
		return
	}

	a.writeJSON(r.Context(), w, http.StatusOK, in)
}

func (a *API) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := a.svc.Stats(r.Context())
	if err != nil {
		a.writeErr(w, r, err)
		return
	}
	a.writeJSON(r.Context(), w, http.StatusOK, stats)
}

// parseID extracts the integer id path parameter, writing a 404 for
// non-numeric values since no record can ever match them.
func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusNotFound, "incident not found")
		return 0, false
	}
	return id, true
}
