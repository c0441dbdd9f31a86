package incident

import (
	"context"
	"strings"

	"github.com/linnemanlabs/go-core/log"
)

// Report is the raw creation input before triage.
type Report struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	AffectedService string `json:"affectedService"`
}

// Validate checks that all required fields are present and non-blank.
func (r *Report) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return &ValidationError{Field: "title"}
	}
	if strings.TrimSpace(r.Description) == "" {
		return &ValidationError{Field: "description"}
	}
	if strings.TrimSpace(r.AffectedService) == "" {
		return &ValidationError{Field: "affectedService"}
	}
	return nil
}

// Annotation is the triage output attached to a record at creation.
type Annotation struct {
	Severity        Severity
	Category        Category
	SuggestedAction string
	ConfidenceScore float64
}

// Engine runs the triage pipeline: classify severity and category,
// look up the remediation, score the evidence. It is deterministic and
// stateless; the same report always produces the same annotation.
type Engine struct {
	logger log.Logger
}

// NewEngine creates a triage engine.
func NewEngine(logger log.Logger) *Engine {
	if logger == nil {
		logger = log.Nop()
	}
	return &Engine{logger: logger}
}

// Annotate triages a validated report. It never fails: every report
// classifies to some (severity, category) pair via the cascade defaults.
func (e *Engine) Annotate(ctx context.Context, r *Report) Annotation {
	sev := ClassifySeverity(r.Title, r.Description)
	cat := ClassifyCategory(r.Title, r.Description, r.AffectedService)

	a := Annotation{
		Severity:        sev,
		Category:        cat,
		SuggestedAction: SuggestedAction(sev, cat),
		ConfidenceScore: ConfidenceScore(r.Title, r.Description),
	}

	e.logger.Info(ctx, "report triaged",
		"severity", a.Severity,
		"category", a.Category,
		"confidence", a.ConfidenceScore,
		"service", r.AffectedService,
	)

	return a
}
