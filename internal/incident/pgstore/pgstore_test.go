package pgstore_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/linnemanlabs/beacon/internal/incident"
	"github.com/linnemanlabs/beacon/internal/incident/pgstore"
	"github.com/linnemanlabs/beacon/internal/postgres"
)

func openStore(t *testing.T) *pgstore.Store {
	t.Helper()
	dsn := os.Getenv("BEACON_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("BEACON_TEST_DATABASE_URL not set, skipping integration test")
	}
	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, dsn)
	if err != nil {
		t.Fatalf("postgres.NewPool: %v", err)
	}
	t.Cleanup(pool.Close)
	s, err := pgstore.New(ctx, pool)
	if err != nil {
		t.Fatalf("pgstore.New: %v", err)
	}
	return s
}

func sampleIncident() *incident.Incident {
	return &incident.Incident{
		Title:           "Replica lag on orders database",
		Description:     "Replication is 40 seconds behind the primary.",
		AffectedService: "orders-db",
		Status:          incident.StatusOpen,
		Severity:        incident.SeverityHigh,
		Category:        incident.CategoryDatabase,
		SuggestedAction: "Kill long-running queries, check replication lag, and throttle batch workloads.",
		ConfidenceScore: 0.7,
	}
}

func TestInsertAndGet(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	in := sampleIncident()
	stored, err := s.Insert(ctx, in)
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if stored.ID == 0 {
		t.Fatal("Insert did not assign an id")
	}
	if stored.CreatedAt.IsZero() || stored.UpdatedAt.IsZero() {
		t.Error("Insert did not stamp timestamps")
	}

	got, ok, err := s.Get(ctx, stored.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok {
		t.Fatal("Get returned ok=false, want true")
	}

	assertEqual(t, "Title", in.Title, got.Title)
	assertEqual(t, "Description", in.Description, got.Description)
	assertEqual(t, "AffectedService", in.AffectedService, got.AffectedService)
	assertEqual(t, "Status", string(in.Status), string(got.Status))
	assertEqual(t, "Severity", string(in.Severity), string(got.Severity))
	assertEqual(t, "Category", string(in.Category), string(got.Category))
	assertEqual(t, "SuggestedAction", in.SuggestedAction, got.SuggestedAction)
	assertEqual(t, "ConfidenceScore", in.ConfidenceScore, got.ConfidenceScore)
	if len(got.History) != 0 {
		t.Errorf("History = %v, want empty for fresh record", got.History)
	}
}

func TestGetMissing(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	_, ok, err := s.Get(ctx, -1)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Error("Get returned ok=true for nonexistent id")
	}
}

func TestInsertAssignsIncreasingIDs(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	first, err := s.Insert(ctx, sampleIncident())
	if err != nil {
		t.Fatalf("Insert first: %v", err)
	}
	second, err := s.Insert(ctx, sampleIncident())
	if err != nil {
		t.Fatalf("Insert second: %v", err)
	}
	if second.ID <= first.ID {
		t.Errorf("ids not increasing: %d then %d", first.ID, second.ID)
	}
}

func TestList(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	before, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List before: %v", err)
	}

	stored, err := s.Insert(ctx, sampleIncident())
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}

	after, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List after: %v", err)
	}
	if len(after) != len(before)+1 {
		t.Fatalf("List len = %d, want %d", len(after), len(before)+1)
	}

	found := false
	for _, in := range after {
		if in.ID == stored.ID {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("inserted record %d missing from List", stored.ID)
	}
}

func TestUpdateStatusAndHistory(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	stored, err := s.Insert(ctx, sampleIncident())
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}

	at := time.Now().Truncate(time.Microsecond).UTC()
	ev := &incident.StatusEvent{
		ID:   ulid.Make().String(),
		From: incident.StatusOpen,
		To:   incident.StatusInProgress,
		At:   at,
	}

	updated, ok, err := s.UpdateStatus(ctx, stored.ID, incident.StatusInProgress, ev)
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if !ok {
		t.Fatal("UpdateStatus returned ok=false")
	}
	assertEqual(t, "Status", string(incident.StatusInProgress), string(updated.Status))
	if !updated.UpdatedAt.Equal(at) {
		t.Errorf("UpdatedAt = %v, want event time %v", updated.UpdatedAt, at)
	}
	if len(updated.History) != 1 {
		t.Fatalf("History len = %d, want 1", len(updated.History))
	}
	assertEqual(t, "event ID", ev.ID, updated.History[0].ID)
	assertEqual(t, "event From", string(ev.From), string(updated.History[0].From))
	assertEqual(t, "event To", string(ev.To), string(updated.History[0].To))

	// second transition appends, never overwrites
	ev2 := &incident.StatusEvent{
		ID:   ulid.Make().String(),
		From: incident.StatusInProgress,
		To:   incident.StatusResolved,
		At:   at.Add(time.Minute),
	}
	updated, ok, err = s.UpdateStatus(ctx, stored.ID, incident.StatusResolved, ev2)
	if err != nil {
		t.Fatalf("UpdateStatus second: %v", err)
	}
	if !ok {
		t.Fatal("UpdateStatus second returned ok=false")
	}
	if len(updated.History) != 2 {
		t.Fatalf("History len = %d, want 2", len(updated.History))
	}
	assertEqual(t, "second event To", string(incident.StatusResolved), string(updated.History[1].To))
}

func TestUpdateStatusMissing(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	ev := &incident.StatusEvent{
		ID:   ulid.Make().String(),
		From: incident.StatusOpen,
		To:   incident.StatusClosed,
		At:   time.Now().UTC(),
	}
	_, ok, err := s.UpdateStatus(ctx, -1, incident.StatusClosed, ev)
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if ok {
		t.Error("UpdateStatus returned ok=true for nonexistent id")
	}
}

func assertEqual[T comparable](t *testing.T, field string, want, got T) {
	t.Helper()
	if want != got {
		t.Errorf("%s: got %v, want %v", field, got, want)
	}
}
