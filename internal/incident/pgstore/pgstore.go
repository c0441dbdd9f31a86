// Package pgstore provides a PostgreSQL implementation of incident.Store.
package pgstore

import (
	"context"
	_ "embed"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/linnemanlabs/beacon/internal/incident"
)

var tracer = otel.Tracer("github.com/linnemanlabs/beacon/internal/incident/pgstore")

//go:embed schema.sql
var schema string

// Store persists incident records in PostgreSQL. Ids come from a
// BIGSERIAL sequence, which gives atomic allocation without reuse.
type Store struct {
	pool *pgxpool.Pool
}

// New applies the schema and returns a ready Store backed by the pool.
func New(ctx context.Context, pool *pgxpool.Pool) (*Store, error) {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{pool: pool}, nil
}

const incidentColumns = `id, title, description, affected_service, status,
	severity, category, suggested_action, confidence, created_at, updated_at`

// Insert persists a new record. The database allocates the id and
// stamps both timestamps; the stored row is returned.
func (s *Store) Insert(ctx context.Context, in *incident.Incident) (*incident.Incident, error) {
	ctx, span := tracer.Start(ctx, "pgstore.Insert", trace.WithAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.operation.name", "INSERT"),
	))
	defer span.End()

	query := `INSERT INTO incidents (
		title, description, affected_service, status,
		severity, category, suggested_action, confidence
	) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	RETURNING ` + incidentColumns

	row := s.pool.QueryRow(ctx, query,
		in.Title, in.Description, in.AffectedService, string(in.Status),
		string(in.Severity), string(in.Category), in.SuggestedAction, in.ConfidenceScore,
	)
	stored, err := scanIncident(row)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("insert incident: %w", err)
	}
	return stored, nil
}

// Get retrieves a record by id, including its status history.
func (s *Store) Get(ctx context.Context, id int64) (*incident.Incident, bool, error) {
	ctx, span := tracer.Start(ctx, "pgstore.Get", trace.WithAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.operation.name", "SELECT"),
	))
	defer span.End()

	query := `SELECT ` + incidentColumns + ` FROM incidents WHERE id = $1`
	in, err := scanIncident(s.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, false, err
	}

	if err := s.loadHistory(ctx, s.pool, in); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, false, err
	}
	return in, true, nil
}

// List returns all records in id order with their status history. Both
// queries run inside one repeatable-read transaction so the enumeration
// is a consistent snapshot relative to concurrent writes.
func (s *Store) List(ctx context.Context) ([]*incident.Incident, error) {
	ctx, span := tracer.Start(ctx, "pgstore.List", trace.WithAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.operation.name", "SELECT"),
	))
	defer span.End()

	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.RepeatableRead,
		AccessMode: pgx.ReadOnly,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is harmless

	records, err := s.listIncidents(ctx, tx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	if err := s.loadAllHistory(ctx, tx, records); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("commit: %w", err)
	}

	span.SetAttributes(attribute.Int("beacon.incidents.count", len(records)))
	return records, nil
}

// UpdateStatus sets status and updated_at and appends the transition
// event in one transaction. ok is false when the id is unknown.
func (s *Store) UpdateStatus(ctx context.Context, id int64, status incident.Status, ev *incident.StatusEvent) (*incident.Incident, bool, error) {
	ctx, span := tracer.Start(ctx, "pgstore.UpdateStatus", trace.WithAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.operation.name", "UPDATE"),
	))
	defer span.End()

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, false, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is harmless

	query := `UPDATE incidents SET status = $2, updated_at = $3 WHERE id = $1
		RETURNING ` + incidentColumns
	in, err := scanIncident(tx.QueryRow(ctx, query, id, string(status), ev.At))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, false, fmt.Errorf("update status: %w", err)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO incident_events (id, incident_id, from_status, to_status, at)
		 VALUES ($1, $2, $3, $4, $5)`,
		ev.ID, id, string(ev.From), string(ev.To), ev.At,
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, false, fmt.Errorf("insert status event: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, false, fmt.Errorf("commit: %w", err)
	}

	if err := s.loadHistory(ctx, s.pool, in); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, false, err
	}
	return in, true, nil
}

// querier abstracts pool vs transaction for reads.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func (s *Store) listIncidents(ctx context.Context, q querier) ([]*incident.Incident, error) {
	rows, err := q.Query(ctx, `SELECT `+incidentColumns+` FROM incidents ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query incidents: %w", err)
	}
	defer rows.Close()

	var records []*incident.Incident
	for rows.Next() {
		in, err := scanIncident(rows)
		if err != nil {
			return nil, fmt.Errorf("scan incident: %w", err)
		}
		records = append(records, in)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate incidents: %w", err)
	}
	return records, nil
}

// loadHistory reads status events for a single record.
func (s *Store) loadHistory(ctx context.Context, q querier, in *incident.Incident) error {
	rows, err := q.Query(ctx,
		`SELECT id, from_status, to_status, at FROM incident_events
		 WHERE incident_id = $1 ORDER BY at, id`,
		in.ID,
	)
	if err != nil {
		return fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var ev incident.StatusEvent
		var from, to string
		if err := rows.Scan(&ev.ID, &from, &to, &ev.At); err != nil {
			return fmt.Errorf("scan event: %w", err)
		}
		ev.From = incident.Status(from)
		ev.To = incident.Status(to)
		in.History = append(in.History, ev)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate events: %w", err)
	}
	return nil
}

// loadAllHistory attaches status events to every record in one query.
func (s *Store) loadAllHistory(ctx context.Context, q querier, records []*incident.Incident) error {
	if len(records) == 0 {
		return nil
	}

	byID := make(map[int64]*incident.Incident, len(records))
	for _, in := range records {
		byID[in.ID] = in
	}

	rows, err := q.Query(ctx,
		`SELECT incident_id, id, from_status, to_status, at
		 FROM incident_events ORDER BY incident_id, at, id`)
	if err != nil {
		return fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var incidentID int64
		var ev incident.StatusEvent
		var from, to string
		if err := rows.Scan(&incidentID, &ev.ID, &from, &to, &ev.At); err != nil {
			return fmt.Errorf("scan event: %w", err)
		}
		ev.From = incident.Status(from)
		ev.To = incident.Status(to)
		if in, ok := byID[incidentID]; ok {
			in.History = append(in.History, ev)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate events: %w", err)
	}
	return nil
}

// scanIncident scans a single row into an Incident (without history).
func scanIncident(row pgx.Row) (*incident.Incident, error) {
	var (
		in       incident.Incident
		status   string
		severity string
		category string
	)
	err := row.Scan(
		&in.ID, &in.Title, &in.Description, &in.AffectedService, &status,
		&severity, &category, &in.SuggestedAction, &in.ConfidenceScore,
		&in.CreatedAt, &in.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	in.Status = incident.Status(status)
	in.Severity = incident.Severity(severity)
	in.Category = incident.Category(category)
	return &in, nil
}
