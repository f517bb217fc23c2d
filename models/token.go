package models

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Token wraps a session JWT with convenience accessors for the auth flows.
//
// It embeds [jwt.Token] for low-level operations and [jwt.RegisteredClaims]
// for standard claim access. SignedString holds the compact serialized form
// ready to be transmitted in the Authorization header or the session cookie.
//
// UserID and IssuedAt are parsed copies of the "sub" and "iat" claims,
// populated during issuance or verification so that callers do not re-parse
// claim strings. IssuedAt is what the required-auth guard compares against
// the account's password-set timestamp.
type Token struct {
	// Token is the underlying JWT used for signing and claim inspection.
	// Excluded from JSON because only the compact string form is
	// meaningful outside the server process.
	*jwt.Token `json:"-"`

	// RegisteredClaims provides the standard JWT claim set
	// (sub, exp, iat, iss, ...) as defined by RFC 7519.
	jwt.RegisteredClaims

	// SignedString is the compact JWS representation of the token.
	SignedString string `json:"-"`

	// UserID is the account identifier extracted from the "sub" claim.
	UserID uuid.UUID `json:"-"`

	// IssuedAtTime is the "iat" claim as a time.Time.
	IssuedAtTime time.Time `json:"-"`
}

// GetUserID extracts the account identifier from the token's "sub" claim
// and parses it as a UUID.
func (t *Token) GetUserID() (uuid.UUID, error) {
	sub, err := t.GetSubject()
	if err != nil {
		return uuid.Nil, fmt.Errorf("error extracting UserID from token: %w", err)
	}

	userID, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, fmt.Errorf("error converting token subject to UUID: %w", err)
	}

	return userID, nil
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t *Token) String() string {
	return t.SignedString
}
