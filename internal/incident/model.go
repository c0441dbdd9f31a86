package incident

import "time"

// Status tracks where an incident is in its lifecycle.
type Status string

const (
	// StatusOpen means reported, nobody working on it yet
	StatusOpen Status = "OPEN"

	// StatusInProgress means somebody picked it up
	StatusInProgress Status = "IN_PROGRESS"

	// StatusResolved means the underlying problem is fixed
	StatusResolved Status = "RESOLVED"

	// StatusClosed means verified and archived
	StatusClosed Status = "CLOSED"
)

// ParseStatus validates a caller-supplied status value.
func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusOpen, StatusInProgress, StatusResolved, StatusClosed:
		return Status(s), true
	}
	return "", false
}

// Severity is the urgency tier assigned at triage time.
type Severity string

const (
	SeverityCritical Severity = "CRITICAL"
	SeverityHigh     Severity = "HIGH"
	SeverityMedium   Severity = "MEDIUM"
	SeverityLow      Severity = "LOW"
)

// Rank orders severities for sorting, highest urgency first.
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 4
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	}
	return 0
}

// ParseSeverity validates a caller-supplied severity filter value.
func ParseSeverity(s string) (Severity, bool) {
	switch Severity(s) {
	case SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow:
		return Severity(s), true
	}
	return "", false
}

// Category is the functional-area classification assigned at triage time.
type Category string

const (
	CategorySecurity Category = "SECURITY"
	CategoryNetwork  Category = "NETWORK"
	CategoryDatabase Category = "DATABASE"
	CategoryFrontend Category = "FRONTEND"
	CategoryHardware Category = "HARDWARE"
	CategorySoftware Category = "SOFTWARE"
)

// ParseCategory validates a caller-supplied category filter value.
func ParseCategory(s string) (Category, bool) {
	switch Category(s) {
	case CategorySecurity, CategoryNetwork, CategoryDatabase,
		CategoryFrontend, CategoryHardware, CategorySoftware:
		return Category(s), true
	}
	return "", false
}

// StatusEvent records one status transition. Events are append-only.
type StatusEvent struct {
	ID   string    `json:"id"`
	From Status    `json:"from"`
	To   Status    `json:"to"`
	At   time.Time `json:"at"`
}

// Incident is a triaged incident record. Triage fields (severity,
// category, suggested action, confidence) are assigned once at creation
// and never recomputed; only Status and UpdatedAt mutate afterwards.
type Incident struct {
	ID              int64         `json:"id"`
	Title           string        `json:"title"`
	Description     string        `json:"description"`
	AffectedService string        `json:"affectedService"`
	Status          Status        `json:"status"`
	Severity        Severity      `json:"aiSeverity"`
	Category        Category      `json:"aiCategory"`
	SuggestedAction string        `json:"aiSuggestedAction"`
	ConfidenceScore float64       `json:"confidenceScore"`
	CreatedAt       time.Time     `json:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt"`
	History         []StatusEvent `json:"statusHistory,omitempty"`
}

// Clone returns a deep copy so stored records never alias caller memory.
func (in *Incident) Clone() *Incident {
	cp := *in
	if in.History != nil {
		cp.History = make([]StatusEvent, len(in.History))
		copy(cp.History, in.History)
	}
	return &cp
}
