package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrEmailAlreadyExists is returned when an attempt to create an
	// account fails because the email is already taken.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrUserNotFound is returned when a lookup expected to match exactly
	// one account produces an empty result set.
	ErrUserNotFound = errors.New("no user was found")

	// ErrResetRecordNotFound is returned when no account carries a live
	// (unexpired) reset record matching the presented token hash. The
	// caller must not distinguish "never existed" from "expired"; the
	// repository already collapses both into this single value.
	ErrResetRecordNotFound = errors.New("no matching reset record")

	// ErrTourNotFound is returned when a tour id does not exist.
	ErrTourNotFound = errors.New("no tour was found")

	// ErrReviewNotFound is returned when a review id does not exist.
	ErrReviewNotFound = errors.New("no review was found")

	// ErrUnavailable wraps driver-level failures (connection loss,
	// statement errors, context deadlines). It maps to a 5xx response
	// with a generic body; the underlying cause is only ever logged.
	ErrUnavailable = errors.New("storage unavailable")
)

// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
// query fails (e.g. an empty column list). Unlike execution failures it is
// a programming error, not an outage, and is never wrapped in
// [ErrUnavailable].
var ErrBuildingSQLQuery = errors.New("error building sql query")
