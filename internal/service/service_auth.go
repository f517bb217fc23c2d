package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tournest/tournest/internal/config"
	"github.com/tournest/tournest/internal/logger"
	"github.com/tournest/tournest/internal/mailer"
	"github.com/tournest/tournest/internal/store"
	"github.com/tournest/tournest/internal/utils"
	"github.com/tournest/tournest/models"
)

// minPasswordLength is the minimum accepted password length.
const minPasswordLength = 8

// authService is the concrete implementation of AuthService.
//
// It owns every credential mutation: bcrypt hashing happens here, the
// password-set timestamp moves here, and the reset-record lifecycle is
// orchestrated here explicitly — persistence stays a dumb row store with
// no lifecycle hooks of its own.
type authService struct {
	userRepository store.UserRepository
	mailer         mailer.Mailer

	// bcryptCost is the hashing work factor, fixed at construction.
	bcryptCost int

	// resetTokenTTL bounds the password-reset window.
	resetTokenTTL time.Duration

	// publicBaseURL is the externally reachable prefix for reset links.
	publicBaseURL string

	logger *logger.Logger
}

// NewAuthService constructs the credential store wired to the given
// repository and mail collaborator.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAuthService(userRepository store.UserRepository, mailSender mailer.Mailer, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		mailer:         mailSender,
		bcryptCost:     cfg.BcryptCost,
		resetTokenTTL:  cfg.ResetTokenTTL,
		publicBaseURL:  strings.TrimRight(cfg.PublicBaseURL, "/"),
		logger:         logger,
	}
}

// Signup creates a new account with role "user".
//
// Validation failures (missing fields, short password, confirmation
// mismatch, malformed email) return a wrapped ErrValidation before anything
// is persisted. A duplicate email surfaces as store.ErrEmailAlreadyExists.
func (a *authService) Signup(ctx context.Context, name, email, password, passwordConfirm string) (models.User, error) {
	log := logger.FromContext(ctx)

	name = normalizeName(name)
	email = normalizeEmail(email)

	if err := validateSignup(name, email, password, passwordConfirm); err != nil {
		log.Err(err).Str("email", email).Msg("signup validation failed")
		return models.User{}, err
	}

	hash, err := utils.HashPassword(password, a.bcryptCost)
	if err != nil {
		return models.User{}, fmt.Errorf("error hashing signup password: %w", err)
	}

	userID, err := uuid.NewV7()
	if err != nil {
		userID = uuid.New()
	}

	user := models.User{
		UserID:        userID,
		Name:          name,
		Email:         email,
		Role:          models.RoleUser,
		PasswordHash:  hash,
		PasswordSetAt: nextPasswordSetAt(time.Time{}),
	}

	created, err := a.userRepository.CreateUser(ctx, user)
	if err != nil {
		log.Err(err).Str("email", email).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return created, nil
}

// Login authenticates an existing account.
//
// Unknown email, inactive account, and wrong password all collapse into
// ErrInvalidCredentials; the bcrypt comparison itself is constant-time.
func (a *authService) Login(ctx context.Context, email, password string) (models.User, error) {
	log := logger.FromContext(ctx)

	email = normalizeEmail(email)
	if email == "" || password == "" {
		return models.User{}, fmt.Errorf("%w: please provide email and password", ErrValidation)
	}

	foundUser, err := a.userRepository.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return models.User{}, ErrInvalidCredentials
		}
		log.Err(err).Str("email", email).Msg("user search by email failed")
		return models.User{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if !foundUser.Active || !utils.CheckPassword(password, foundUser.PasswordHash) {
		log.Warn().Str("email", email).Msg("failed login attempt")
		return models.User{}, ErrInvalidCredentials
	}

	return foundUser, nil
}

// ForgotPassword begins the time-boxed reset protocol.
//
// The plaintext token exists only in the outbound email; the account keeps
// its sha256 digest plus an expiry. If delivery fails the record is cleared
// again before the error is surfaced, so the user is never left with a
// pending reset they cannot complete.
func (a *authService) ForgotPassword(ctx context.Context, email string) error {
	log := logger.FromContext(ctx)

	email = normalizeEmail(email)
	if email == "" {
		return fmt.Errorf("%w: please provide email", ErrValidation)
	}

	user, err := a.userRepository.FindUserByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("user search by email failed: %w", err)
	}

	plaintext, digest, err := utils.NewResetToken()
	if err != nil {
		return fmt.Errorf("error generating reset token: %w", err)
	}

	expiresAt := time.Now().Add(a.resetTokenTTL)
	if err := a.userRepository.SetResetRecord(ctx, user.UserID, digest, expiresAt); err != nil {
		return fmt.Errorf("error storing reset record: %w", err)
	}

	resetURL := fmt.Sprintf("%s/api/v1/users/reset-password/%s", a.publicBaseURL, plaintext)
	msg := mailer.Message{
		To:      user.Email,
		Subject: fmt.Sprintf("Your password reset link (valid for %s)", a.resetTokenTTL),
		Body: fmt.Sprintf("Forgot your password? Submit a PATCH request with your new password and password confirmation to: %s\n"+
			"If you didn't request this email, you can safely ignore it.", resetURL),
	}

	if err := a.mailer.Send(ctx, msg); err != nil {
		log.Err(err).Str("email", user.Email).Msg("reset mail delivery failed, rolling reset record back")

		if clearErr := a.userRepository.ClearResetRecord(ctx, user.UserID); clearErr != nil {
			log.Err(clearErr).Str("email", user.Email).Msg("reset record rollback failed")
		}
		return fmt.Errorf("%w: %w", ErrMailDelivery, err)
	}

	return nil
}

// ResetPassword completes the protocol.
//
// The lookup re-hashes the presented token and matches it against live
// (unexpired) records only; a token that never existed and one past its
// window are indistinguishable, both yielding ErrResetTokenInvalid. On
// success the password hash, the forward-moving password-set timestamp,
// and the record teardown land in a single row write, making the token
// single-use even under concurrent attempts.
func (a *authService) ResetPassword(ctx context.Context, plaintextToken, password, passwordConfirm string) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := validateNewPassword(password, passwordConfirm); err != nil {
		return models.User{}, err
	}

	digest := utils.HashResetToken(plaintextToken)
	user, err := a.userRepository.FindUserByResetHash(ctx, digest, time.Now())
	if err != nil {
		if errors.Is(err, store.ErrResetRecordNotFound) {
			return models.User{}, ErrResetTokenInvalid
		}
		log.Err(err).Msg("reset record lookup failed")
		return models.User{}, fmt.Errorf("reset record lookup failed: %w", err)
	}

	updated, err := a.setPassword(ctx, user, password)
	if err != nil {
		return models.User{}, err
	}

	return updated, nil
}

// ChangePassword rotates the password of an authenticated account.
//
// The current password is verified first and the operation fails closed on
// mismatch. Success moves the password-set timestamp strictly forward,
// which is what invalidates every previously issued session token without
// any revocation list.
func (a *authService) ChangePassword(ctx context.Context, user models.User, currentPassword, newPassword, newPasswordConfirm string) (models.User, error) {
	log := logger.FromContext(ctx)

	if currentPassword == "" {
		return models.User{}, fmt.Errorf("%w: please provide your current password", ErrValidation)
	}
	if err := validateNewPassword(newPassword, newPasswordConfirm); err != nil {
		return models.User{}, err
	}

	if !utils.CheckPassword(currentPassword, user.PasswordHash) {
		log.Warn().Str("email", user.Email).Msg("password change with wrong current password")
		return models.User{}, ErrWrongPassword
	}

	updated, err := a.setPassword(ctx, user, newPassword)
	if err != nil {
		return models.User{}, err
	}

	return updated, nil
}

// setPassword hashes and persists a new password for user, moving the
// password-set timestamp strictly forward and clearing any reset record.
func (a *authService) setPassword(ctx context.Context, user models.User, password string) (models.User, error) {
	hash, err := utils.HashPassword(password, a.bcryptCost)
	if err != nil {
		return models.User{}, fmt.Errorf("error hashing password: %w", err)
	}

	setAt := nextPasswordSetAt(user.PasswordSetAt)
	if err := a.userRepository.UpdatePassword(ctx, user.UserID, hash, setAt); err != nil {
		return models.User{}, fmt.Errorf("error updating password: %w", err)
	}

	user.PasswordHash = hash
	user.PasswordSetAt = setAt
	user.ResetTokenHash = ""
	user.ResetExpiresAt = time.Time{}

	return user, nil
}

// nextPasswordSetAt computes the new password-set timestamp.
//
// The one-second rewind absorbs the second-granularity of the token's iat
// claim, so a token issued immediately after the change still verifies as
// fresh. The timestamp is nevertheless forced strictly past the previous
// value, keeping the invalidation rule monotonic under clock skew.
func nextPasswordSetAt(prev time.Time) time.Time {
	ts := time.Now().Add(-time.Second)
	if !ts.After(prev) {
		ts = prev.Add(time.Millisecond)
	}
	return ts
}

// normalizeEmail lowercases and trims an email address.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// normalizeName collapses internal whitespace runs and trims the result.
func normalizeName(name string) string {
	return strings.Join(strings.Fields(name), " ")
}

func validateSignup(name, email, password, passwordConfirm string) error {
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if email == "" {
		return fmt.Errorf("%w: email is required", ErrValidation)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return fmt.Errorf("%w: email is not valid", ErrValidation)
	}
	return validateNewPassword(password, passwordConfirm)
}

func validateNewPassword(password, passwordConfirm string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", ErrValidation, minPasswordLength)
	}
	if password != passwordConfirm {
		return fmt.Errorf("%w: password and password confirmation do not match", ErrValidation)
	}
	return nil
}
