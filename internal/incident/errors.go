package incident

import (
	"fmt"

	"github.com/linnemanlabs/go-core/xerrors"
)

// Sentinel errors for lookup and mutation failures. The API layer maps
// these to HTTP status codes with errors.Is.
var (
	// ErrNotFound means no incident exists with the requested id.
	ErrNotFound = xerrors.New("incident not found")

	// ErrInvalidStatus means the supplied status is not one of the
	// four lifecycle values. The store is left unchanged.
	ErrInvalidStatus = xerrors.New("invalid incident status")
)

// ValidationError reports a rejected input field. For creation requests
// this means a missing or empty required field; no partial record is
// created. Reason overrides the default "is required" wording for
// out-of-range values.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = "is required"
	}
	return fmt.Sprintf("validation failed: %s %s", e.Field, reason)
}
