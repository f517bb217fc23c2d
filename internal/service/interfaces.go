package service

import (
	"context"
	"net/url"

	"github.com/google/uuid"

	"github.com/tournest/tournest/models"
)

// AuthService is the credential store: it owns password hashing,
// verification, and the password-reset lifecycle. It never issues or
// verifies session tokens (that is TokenService); the HTTP middleware is
// the only place the two meet.
type AuthService interface {
	// Signup creates an account with the default role. The password and
	// its confirmation must match; nothing is created otherwise.
	Signup(ctx context.Context, name, email, password, passwordConfirm string) (models.User, error)

	// Login verifies email+password and returns the account.
	Login(ctx context.Context, email, password string) (models.User, error)

	// ForgotPassword begins the reset protocol: random token, hashed
	// record on the account, out-of-band delivery. A delivery failure
	// rolls the record back so no unreachable reset is left pending.
	ForgotPassword(ctx context.Context, email string) error

	// ResetPassword completes the protocol with a previously delivered
	// plaintext token. Single-use: success clears the record.
	ResetPassword(ctx context.Context, plaintextToken, password, passwordConfirm string) (models.User, error)

	// ChangePassword rotates the password of an authenticated account
	// after verifying the current one. Success invalidates every
	// outstanding session token by moving the password-set timestamp.
	ChangePassword(ctx context.Context, user models.User, currentPassword, newPassword, newPasswordConfirm string) (models.User, error)
}

// TokenService issues and verifies stateless session tokens. Verify is a
// pure function of the token and the signing secret: the freshness check
// against the account's password-set timestamp happens in the middleware,
// which is the only component seeing both sides.
type TokenService interface {
	Issue(ctx context.Context, userID uuid.UUID) (models.Token, error)
	Verify(ctx context.Context, tokenString string) (models.Token, error)
}

// UserService covers account administration and the self-service
// ("/me") operations.
type UserService interface {
	List(ctx context.Context, params url.Values) ([]models.User, error)
	Get(ctx context.Context, userID uuid.UUID) (models.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, name, email string) (models.User, error)
	Deactivate(ctx context.Context, userID uuid.UUID) error
	Delete(ctx context.Context, userID uuid.UUID) error
}

// TourService is CRUD glue over the tour catalog.
type TourService interface {
	List(ctx context.Context, params url.Values) ([]models.Tour, error)
	Get(ctx context.Context, tourID int64) (models.Tour, error)
	Create(ctx context.Context, tour models.Tour) (models.Tour, error)
	Update(ctx context.Context, tour models.Tour) (models.Tour, error)
	Delete(ctx context.Context, tourID int64) error
}

// ReviewService is CRUD glue over tour reviews with ownership checks on
// mutation.
type ReviewService interface {
	List(ctx context.Context, tourID int64, params url.Values) ([]models.Review, error)
	Get(ctx context.Context, reviewID int64) (models.Review, error)
	Create(ctx context.Context, author models.User, review models.Review) (models.Review, error)
	Update(ctx context.Context, actor models.User, review models.Review) (models.Review, error)
	Delete(ctx context.Context, actor models.User, reviewID int64) error
}
