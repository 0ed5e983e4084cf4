package lifecycle

import "errors"

// Business-rule failures surfaced to callers. These are expected outcomes,
// not server faults, and are mapped to structured HTTP responses upstream.
var (
	// ErrInvalidJobState is returned when applying to a job that is not ACTIVE.
	ErrInvalidJobState = errors.New("job is not accepting applications")

	// ErrDuplicateApplication is returned when the (candidate, job) pair
	// already has an application.
	ErrDuplicateApplication = errors.New("application already exists for this candidate and job")

	// ErrNotFound is returned when the referenced job or application does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrAlreadyDecided is returned when deciding an application that already
	// reached a terminal state.
	ErrAlreadyDecided = errors.New("application has already been decided")

	// ErrInvalidDecision is returned for a decision other than accept/reject.
	ErrInvalidDecision = errors.New("decision must be accept or reject")
)
