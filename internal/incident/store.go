package incident

import "context"

// Store is the persistence interface for incident records.
//
// Implementations must allocate strictly increasing ids (never reused),
// return copies rather than shared pointers, and give List snapshot
// semantics: a concurrent insert or update must not surface a partially
// written record in an in-flight enumeration.
type Store interface {
	// Insert persists a new record, allocating the next id and
	// stamping CreatedAt/UpdatedAt. The stored record is returned.
	Insert(ctx context.Context, in *Incident) (*Incident, error)

	// Get retrieves a record by id. ok is false when the id is unknown.
	Get(ctx context.Context, id int64) (*Incident, bool, error)

	// List returns a snapshot of all records in insertion order.
	List(ctx context.Context) ([]*Incident, error)

	// UpdateStatus sets the record's status, stamps UpdatedAt, and
	// appends the transition event atomically. All other fields are
	// left untouched. ok is false when the id is unknown.
	UpdateStatus(ctx context.Context, id int64, status Status, ev *StatusEvent) (*Incident, bool, error)
}
