package store

import (
	"context"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/tournest/tournest/models"
)

// UserRepository is the persistence boundary of the credential store.
// Every mutation is a single-row statement: no method requires a
// multi-statement transaction, which keeps concurrent requests for the
// same account free of cross-request locking.
type UserRepository interface {
	// CreateUser persists a new account and returns it with
	// server-assigned fields populated.
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// FindUserByEmail returns the account with the given (lowercased)
	// email, including credential fields.
	FindUserByEmail(ctx context.Context, email string) (models.User, error)

	// FindUserByID returns the account with the given id, including
	// credential fields. Inactive accounts are returned as stored; the
	// caller decides whether to reject them.
	FindUserByID(ctx context.Context, userID uuid.UUID) (models.User, error)

	// UpdatePassword atomically sets a new password hash and password-set
	// timestamp and clears any outstanding reset record.
	UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string, passwordSetAt time.Time) error

	// SetResetRecord attaches a reset record to the account, overwriting
	// any prior one.
	SetResetRecord(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error

	// ClearResetRecord removes the account's reset record, if any.
	ClearResetRecord(ctx context.Context, userID uuid.UUID) error

	// FindUserByResetHash returns the active account whose reset record
	// matches tokenHash and is unexpired as of now. A missing and an
	// expired record are indistinguishable: both yield
	// ErrResetRecordNotFound.
	FindUserByResetHash(ctx context.Context, tokenHash string, now time.Time) (models.User, error)

	// UpdateProfile changes the account's display name and email.
	UpdateProfile(ctx context.Context, userID uuid.UUID, name, email string) (models.User, error)

	// Deactivate soft-deletes the account. The record is kept; only the
	// active flag flips.
	Deactivate(ctx context.Context, userID uuid.UUID) error

	// DeleteUser hard-deletes an account. Reserved for administrators.
	DeleteUser(ctx context.Context, userID uuid.UUID) error

	// ListUsers returns accounts shaped by the query feature parameters.
	ListUsers(ctx context.Context, params url.Values) ([]models.User, error)
}

// TourRepository persists the tour catalog.
type TourRepository interface {
	CreateTour(ctx context.Context, tour models.Tour) (models.Tour, error)
	FindTourByID(ctx context.Context, tourID int64) (models.Tour, error)
	UpdateTour(ctx context.Context, tour models.Tour) (models.Tour, error)
	DeleteTour(ctx context.Context, tourID int64) error

	// ListTours returns tours shaped by the query feature parameters
	// (filtering, sorting, projection, pagination).
	ListTours(ctx context.Context, params url.Values) ([]models.Tour, error)
}

// ReviewRepository persists tour reviews.
type ReviewRepository interface {
	CreateReview(ctx context.Context, review models.Review) (models.Review, error)
	FindReviewByID(ctx context.Context, reviewID int64) (models.Review, error)
	UpdateReview(ctx context.Context, review models.Review) (models.Review, error)
	DeleteReview(ctx context.Context, reviewID int64) error

	// ListReviews returns reviews shaped by the query feature parameters,
	// optionally scoped to a single tour (tourID > 0).
	ListReviews(ctx context.Context, tourID int64, params url.Values) ([]models.Review, error)
}
