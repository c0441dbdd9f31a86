package incident

import "sort"

// SortField enumerates the fields List results may be ordered by.
// Restricting the set keeps sorting well defined: severity sorts by
// rank, not alphabetically, and timestamps compare as timestamps.
type SortField string

const (
	SortByID         SortField = "id"
	SortByCreatedAt  SortField = "createdAt"
	SortByUpdatedAt  SortField = "updatedAt"
	SortBySeverity   SortField = "aiSeverity"
	SortByConfidence SortField = "confidenceScore"
)

// ParseSortField validates a caller-supplied sortBy value.
func ParseSortField(s string) (SortField, bool) {
	switch SortField(s) {
	case SortByID, SortByCreatedAt, SortByUpdatedAt, SortBySeverity, SortByConfidence:
		return SortField(s), true
	}
	return "", false
}

// SortDir is the sort direction.
type SortDir string

const (
	SortAsc  SortDir = "asc"
	SortDesc SortDir = "desc"
)

// ParseSortDir validates a caller-supplied sortDir value.
func ParseSortDir(s string) (SortDir, bool) {
	switch SortDir(s) {
	case SortAsc, SortDesc:
		return SortDir(s), true
	}
	return "", false
}

// ListQuery holds filter, sort, and pagination parameters for List.
type ListQuery struct {
	Page     int
	Size     int
	Severity *Severity
	Category *Category
	SortBy   SortField
	SortDir  SortDir
}

// DefaultListQuery returns the query used when no parameters are given:
// first page of 10, newest first.
func DefaultListQuery() ListQuery {
	return ListQuery{
		Page:    0,
		Size:    10,
		SortBy:  SortByCreatedAt,
		SortDir: SortDesc,
	}
}

// Validate checks pagination bounds. Filters and sort fields are
// validated at parse time by the API layer.
func (q *ListQuery) Validate() error {
	if q.Page < 0 {
		return &ValidationError{Field: "page", Reason: "must not be negative"}
	}
	if q.Size <= 0 {
		return &ValidationError{Field: "size", Reason: "must be positive"}
	}
	return nil
}

// Page is one bounded slice of the filtered, sorted record collection.
type Page struct {
	Content       []*Incident `json:"content"`
	Number        int         `json:"number"`
	Size          int         `json:"size"`
	TotalElements int         `json:"totalElements"`
	TotalPages    int         `json:"totalPages"`
}

// RunQuery applies filters, sort, and pagination to a store snapshot.
// It never mutates the input records. An out-of-range page yields an
// empty page rather than an error; TotalElements counts the filtered
// set before pagination.
func RunQuery(records []*Incident, q ListQuery) *Page {
	filtered := make([]*Incident, 0, len(records))
	for _, in := range records {
		if q.Severity != nil && in.Severity != *q.Severity {
			continue
		}
		if q.Category != nil && in.Category != *q.Category {
			continue
		}
		filtered = append(filtered, in)
	}

	sortRecords(filtered, q.SortBy, q.SortDir)

	total := len(filtered)
	totalPages := (total + q.Size - 1) / q.Size

	start := q.Page * q.Size
	if start > total {
		start = total
	}
	end := start + q.Size
	if end > total {
		end = total
	}

	return &Page{
		Content:       filtered[start:end],
		Number:        q.Page,
		Size:          q.Size,
		TotalElements: total,
		TotalPages:    totalPages,
	}
}

// sortRecords orders records in place. Ties keep snapshot order.
func sortRecords(records []*Incident, field SortField, dir SortDir) {
	less := lessFunc(field)
	if dir == SortDesc {
		inner := less
		less = func(a, b *Incident) bool { return inner(b, a) }
	}
	sort.SliceStable(records, func(i, j int) bool {
		return less(records[i], records[j])
	})
}

func lessFunc(field SortField) func(a, b *Incident) bool {
	switch field {
	case SortByID:
		return func(a, b *Incident) bool { return a.ID < b.ID }
	case SortByUpdatedAt:
		return func(a, b *Incident) bool { return a.UpdatedAt.Before(b.UpdatedAt) }
	case SortBySeverity:
		return func(a, b *Incident) bool { return a.Severity.Rank() < b.Severity.Rank() }
	case SortByConfidence:
		return func(a, b *Incident) bool { return a.ConfidenceScore < b.ConfidenceScore }
	default:
		return func(a, b *Incident) bool { return a.CreatedAt.Before(b.CreatedAt) }
	}
}
