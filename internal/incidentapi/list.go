package incidentapi

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/linnemanlabs/beacon/internal/incident"
)

func (a *API) handleList(w http.ResponseWriter, r *http.Request) {
	q, err := parseListQuery(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	page, err := a.svc.List(r.Context(), q)
	if err != nil {
		a.writeErr(w, r, err)
		return
	}

	a.writeJSON(r.Context(), w, http.StatusOK, page)
}

// parseListQuery builds a ListQuery from URL parameters, applying the
// documented defaults for anything omitted.
func parseListQuery(values url.Values) (incident.ListQuery, error) {
	q := incident.DefaultListQuery()

	if v := values.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return q, fmt.Errorf("invalid page %q", v)
		}
		q.Page = n
	}
	if v := values.Get("size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return q, fmt.Errorf("invalid size %q", v)
		}
		q.Size = n
	}
	if v := values.Get("severity"); v != "" {
		sev, ok := incident.ParseSeverity(v)
		if !ok {
			return q, fmt.Errorf("invalid severity %q", v)
		}
		q.Severity = &sev
	}
	if v := values.Get("category"); v != "" {
		cat, ok := incident.ParseCategory(v)
		if !ok {
			return q, fmt.Errorf("invalid category %q", v)
		}
		q.Category = &cat
	}
	if v := values.Get("sortBy"); v != "" {
		field, ok := incident.ParseSortField(v)
		if !ok {
			return q, fmt.Errorf("invalid sortBy %q", v)
		}
		q.SortBy = field
	}
	if v := values.Get("sortDir"); v != "" {
		dir, ok := incident.ParseSortDir(v)
		if !ok {
			return q, fmt.Errorf("invalid sortDir %q", v)
		}
		q.SortDir = dir
	}

	return q, nil
}
