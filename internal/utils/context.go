// Package utils provides general-purpose helper utilities used across
// different parts of the application: type-safe context keys, password
// hashing, reset-token generation, JWT issuance and validation, and HTTP
// response writing.
package utils

import (
	"context"

	"github.com/tournest/tournest/models"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// IdentityCtxKey is the key under which the authenticated account is stored
// in the request context. The value is an immutable models.User copy placed
// there by the auth guards; handlers read it via GetIdentityFromContext and
// never mutate shared request state.
var IdentityCtxKey = contextKey("identity")

// WithIdentity returns a child context carrying the authenticated account.
func WithIdentity(ctx context.Context, user models.User) context.Context {
	return context.WithValue(ctx, IdentityCtxKey, user)
}

// GetIdentityFromContext retrieves the authenticated account from the
// context.
//
// Returns the account and an ok flag:
//   - ok == true  — an identity was attached by an auth guard
//   - ok == false — the request is anonymous
func GetIdentityFromContext(ctx context.Context) (models.User, bool) {
	user, ok := ctx.Value(IdentityCtxKey).(models.User)
	return user, ok
}
