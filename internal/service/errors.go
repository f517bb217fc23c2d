package service

import "errors"

// Sentinel errors raised by the domain services. The HTTP boundary maps
// each of these to a transport status; nothing below that boundary knows
// about status codes.
var (
	// ErrValidation marks malformed or incomplete input. Wrapped errors
	// carry user-visible detail (e.g. "passwords do not match").
	ErrValidation = errors.New("validation failed")

	// ErrInvalidCredentials is returned on login when the email is
	// unknown, the account is inactive, or the password does not match.
	// One error for all three: callers learn nothing about which.
	ErrInvalidCredentials = errors.New("incorrect email or password")

	// ErrWrongPassword is returned by the password-change flow when the
	// presented current password does not verify.
	ErrWrongPassword = errors.New("wrong password")

	// ErrTokenInvalid covers every session-token failure: malformed,
	// tampered, wrong issuer, expired. Deliberately undifferentiated.
	ErrTokenInvalid = errors.New("token is expired or invalid")

	// ErrSessionInvalidated is returned by the auth guard when a
	// structurally valid token predates the account's last password
	// change.
	ErrSessionInvalidated = errors.New("session is no longer valid")

	// ErrResetTokenInvalid is returned by the reset flow for both a
	// token that never existed and one whose window has elapsed. The
	// ambiguity is a security property (no account-existence leakage),
	// not an omission.
	ErrResetTokenInvalid = errors.New("reset token is invalid or has expired")

	// ErrForbidden is returned when an authenticated identity lacks the
	// role required for an operation.
	ErrForbidden = errors.New("permission denied")

	// ErrMailDelivery is returned when the outbound mail collaborator
	// fails. The forgot-password flow rolls its reset record back before
	// surfacing this.
	ErrMailDelivery = errors.New("could not send email")

	// ErrTokenCreationFailed wraps signing failures during issuance.
	ErrTokenCreationFailed = errors.New("token creation failed")
)
