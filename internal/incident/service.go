package incident

import (
	"context"
	"time"

	"github.com/linnemanlabs/go-core/log"
	"github.com/oklog/ulid/v2"
)

// Notifier delivers out-of-band notifications for noteworthy incidents.
type Notifier interface {
	NotifyCreated(ctx context.Context, in *Incident) error
}

// Service is the business boundary for incident operations. It owns
// validation, triage dispatch, query execution, and aggregation; the
// store below it only persists.
type Service struct {
	store    Store
	engine   *Engine
	logger   log.Logger
	metrics  *Metrics
	notifier Notifier
}

// NewService creates a new incident service. metrics and notifier may
// be nil.
func NewService(store Store, engine *Engine, logger log.Logger, metrics *Metrics, notifier Notifier) *Service {
	if logger == nil {
		logger = log.Nop()
	}
	return &Service{
		store:    store,
		engine:   engine,
		logger:   logger,
		metrics:  metrics,
		notifier: notifier,
	}
}

// Create validates a report, runs the triage pipeline, and persists the
// annotated record. Triage fields are computed exactly once here; they
// are never recomputed even if classification rules change later.
func (s *Service) Create(ctx context.Context, r *Report) (*Incident, error) {
	if err := r.Validate(); err != nil {
		s.reject("validation")
		return nil, err
	}

	a := s.engine.Annotate(ctx, r)

	in := &Incident{
		Title:           r.Title,
		Description:     r.Description,
		AffectedService: r.AffectedService,
		Status:          StatusOpen,
		Severity:        a.Severity,
		Category:        a.Category,
		SuggestedAction: a.SuggestedAction,
		ConfidenceScore: a.ConfidenceScore,
	}

	stored, err := s.store.Insert(ctx, in)
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.CreatesTotal.WithLabelValues(string(stored.Severity), string(stored.Category)).Inc()
		s.metrics.CreateConfidence.Observe(stored.ConfidenceScore)
	}

	s.logger.Info(ctx, "incident created",
		"id", stored.ID,
		"severity", stored.Severity,
		"category", stored.Category,
		"service", stored.AffectedService,
	)

	if s.notifier != nil && stored.Severity == SeverityCritical {
		// fire-and-forget - notification failure must not fail the create.
		go s.notify(context.WithoutCancel(ctx), stored.Clone())
	}

	return stored, nil
}

// Get retrieves an incident by id.
func (s *Service) Get(ctx context.Context, id int64) (*Incident, error) {
	in, ok, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		s.reject("not_found")
		return nil, ErrNotFound
	}
	return in, nil
}

// List runs the query engine over a store snapshot.
func (s *Service) List(ctx context.Context, q ListQuery) (*Page, error) {
	if err := q.Validate(); err != nil {
		s.reject("validation")
		return nil, err
	}

	start := time.Now()
	records, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	page := RunQuery(records, q)

	if s.metrics != nil {
		s.metrics.ListDuration.Observe(time.Since(start).Seconds())
		s.metrics.ListResultSize.Observe(float64(page.TotalElements))
	}
	return page, nil
}

// UpdateStatus transitions an incident to a new status, stamping
// UpdatedAt and recording the transition event. The status value is
// validated before the store is touched, so a rejected mutation leaves
// the record unchanged.
func (s *Service) UpdateStatus(ctx context.Context, id int64, status string) (*Incident, error) {
	st, ok := ParseStatus(status)
	if !ok {
		s.reject("invalid_status")
		return nil, ErrInvalidStatus
	}

	current, ok, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		s.reject("not_found")
		return nil, ErrNotFound
	}

	ev := &StatusEvent{
		ID:   ulid.Make().String(),
		From: current.Status,
		To:   st,
		At:   time.Now(),
	}

	updated, ok, err := s.store.UpdateStatus(ctx, id, st, ev)
	if err != nil {
		return nil, err
	}
	if !ok {
		s.reject("not_found")
		return nil, ErrNotFound
	}

	if s.metrics != nil {
		s.metrics.StatusUpdatesTotal.WithLabelValues(string(st)).Inc()
	}

	s.logger.Info(ctx, "incident status updated",
		"id", id,
		"from", ev.From,
		"to", ev.To,
	)

	return updated, nil
}

// Stats aggregates counts over the full unfiltered collection.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	records, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	return ComputeStats(records), nil
}

func (s *Service) notify(ctx context.Context, in *Incident) {
	outcome := "ok"
	if err := s.notifier.NotifyCreated(ctx, in); err != nil {
		outcome = "error"
		s.logger.Error(ctx, err, "creation notification failed", "id", in.ID)
	}
	if s.metrics != nil {
		s.metrics.NotifiesTotal.WithLabelValues(outcome).Inc()
	}
}

func (s *Service) reject(reason string) {
	if s.metrics != nil {
		s.metrics.RejectsTotal.WithLabelValues(reason).Inc()
	}
}
