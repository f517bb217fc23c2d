package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/tournest/tournest/internal/logger"
	"github.com/tournest/tournest/internal/service"
	"github.com/tournest/tournest/internal/utils"
	"github.com/tournest/tournest/models"
)

// requireAuth is an HTTP middleware that enforces session-token
// authentication.
//
// It extracts the token from the "Authorization: Bearer <token>" header,
// falling back to the "session" cookie for browser clients, verifies it via
// [service.TokenService.Verify], and loads the account it names. The loaded
// account is stored in the request context via [utils.WithIdentity] so that
// downstream handlers never re-parse the token.
//
// The middleware rejects requests with HTTP 401 Unauthorized when:
//   - no token is present ([ErrNoSessionToken]);
//   - the token fails verification ([service.ErrTokenInvalid]);
//   - the account no longer exists or has been deactivated;
//   - the token was issued before the account's current password was set
//     ([service.ErrSessionInvalidated]). Changing the password therefore
//     invalidates every token issued earlier.
func (h *Handler) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString, err := sessionTokenFromRequest(r)
		if err != nil {
			h.writeError(w, r, err)
			return
		}

		ctx := r.Context()

		user, err := h.authenticate(ctx, tokenString)
		if err != nil {
			h.writeError(w, r, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(utils.WithIdentity(ctx, user)))
	})
}

// withCookieAuth enriches the request context with the identity behind the
// session cookie when one is present and valid. Unlike requireAuth it never
// rejects: an absent, malformed or stale cookie falls through anonymously.
// A request whose context already carries an identity passes through
// untouched.
func (h *Handler) withCookieAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if _, ok := utils.GetIdentityFromContext(ctx); ok {
			next.ServeHTTP(w, r)
			return
		}

		cookie, err := r.Cookie(sessionCookieName)
		if err != nil || cookie.Value == "" || cookie.Value == loggedOutCookieValue {
			next.ServeHTTP(w, r)
			return
		}

		user, err := h.authenticate(ctx, cookie.Value)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(utils.WithIdentity(ctx, user)))
	})
}

// authenticate verifies a session token and loads the active account it
// names. Shared by the strict and the enrich-only guards.
func (h *Handler) authenticate(ctx context.Context, tokenString string) (models.User, error) {
	token, err := h.services.TokenService.Verify(ctx, tokenString)
	if err != nil {
		return models.User{}, err
	}

	user, err := h.services.UserService.Get(ctx, token.UserID)
	if err != nil {
		// The account behind a syntactically valid token is gone.
		// Report it the same way as a bad token.
		return models.User{}, service.ErrTokenInvalid
	}
	if !user.Active {
		return models.User{}, service.ErrTokenInvalid
	}

	// A token minted before the current password was set belongs to a
	// session that a password change has revoked.
	if !token.IssuedAtTime.After(user.PasswordSetAt) {
		return models.User{}, service.ErrSessionInvalidated
	}

	return user, nil
}

// requireRoles is a middleware factory restricting a route to the given
// roles. It must be mounted after requireAuth; a request with no identity
// in its context is rejected as unauthorized rather than forbidden.
func (h *Handler) requireRoles(roles ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := utils.GetIdentityFromContext(r.Context())
			if !ok {
				h.writeError(w, r, ErrNoSessionToken)
				return
			}

			for _, role := range roles {
				if user.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			log := logger.FromRequest(r)
			log.Warn().
				Str("user_id", user.UserID.String()).
				Str("role", string(user.Role)).
				Msg("role guard rejected request")

			h.writeError(w, r, fmt.Errorf("%w: insufficient role", service.ErrForbidden))
		})
	}
}

// sessionTokenFromRequest extracts the session token, preferring the
// "Authorization" header over the cookie so that API clients can override
// a stale browser session.
func sessionTokenFromRequest(r *http.Request) (string, error) {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			return "", ErrInvalidAuthorizationHeader
		}
		return tokenString, nil
	}

	cookie, err := r.Cookie(sessionCookieName)
	if err != nil || cookie.Value == "" || cookie.Value == loggedOutCookieValue {
		return "", ErrNoSessionToken
	}

	return cookie.Value, nil
}
