package models

import (
	"time"

	"github.com/google/uuid"
)

// Role is the fixed enumeration used for role-based access control.
// Permission decisions are made exclusively against these values; there is
// no per-user permission storage.
type Role string

const (
	// RoleUser is the default role assigned at signup.
	RoleUser Role = "user"

	// RoleGuide is the limited staff role.
	RoleGuide Role = "guide"

	// RoleLeadGuide is the elevated staff role allowed to manage tours.
	RoleLeadGuide Role = "lead-guide"

	// RoleAdmin has unrestricted access to every protected route.
	RoleAdmin Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleGuide, RoleLeadGuide, RoleAdmin:
		return true
	}
	return false
}

// User represents an account entity used for authentication and authorization.
// Credential-related fields must never be exposed outside trusted boundaries.
type User struct {
	// UserID is the unique identifier of the account (UUID v7).
	UserID uuid.UUID `json:"id"`

	// Name is the display name of the user. Non-sensitive.
	Name string `json:"name"`

	// Email is the unique, lowercased account email used as the login.
	Email string `json:"email"`

	// Role controls route-level authorization. One of the Role constants.
	Role Role `json:"role"`

	// PasswordHash is the bcrypt hash of the account password.
	// The plaintext password is never persisted anywhere.
	PasswordHash string `json:"-"`

	// PasswordSetAt records when the current password was set. Session
	// tokens issued before this instant are treated as invalidated.
	PasswordSetAt time.Time `json:"-"`

	// ResetTokenHash is the sha256 hex digest of the outstanding
	// password-reset token. Empty when no reset is in flight.
	ResetTokenHash string `json:"-"`

	// ResetExpiresAt bounds the reset window. Zero when no reset is in
	// flight.
	ResetExpiresAt time.Time `json:"-"`

	// Active is the soft-delete flag. Inactive accounts cannot
	// authenticate; account holders never hard-delete their record.
	Active bool `json:"-"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// HasResetRecord reports whether a password-reset record is currently
// attached to the account. At most one record exists at a time.
func (u User) HasResetRecord() bool {
	return u.ResetTokenHash != "" && !u.ResetExpiresAt.IsZero()
}

// PublicUser is the external representation of an account returned by the
// auth endpoints. It deliberately carries no credential material.
type PublicUser struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// Public converts the user to its external representation.
func (u User) Public() PublicUser {
	return PublicUser{Name: u.Name, Email: u.Email, Role: u.Role}
}
