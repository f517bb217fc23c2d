package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tournest/tournest/internal/config"
	"github.com/tournest/tournest/internal/logger"
	"github.com/tournest/tournest/internal/utils"
	"github.com/tournest/tournest/models"
)

const (
	sessionCookieName    = "session"
	loggedOutCookieValue = "logged-out"
)

type signupRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"passwordConfirm"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type resetPasswordRequest struct {
	Password        string `json:"password"`
	PasswordConfirm string `json:"passwordConfirm"`
}

type updatePasswordRequest struct {
	PasswordCurrent string `json:"passwordCurrent"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"passwordConfirm"`
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		http.Error(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}

	user, err := h.services.AuthService.Signup(ctx, req.Name, req.Email, req.Password, req.PasswordConfirm)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	log.Debug().Str("user_id", user.UserID.String()).Msg("user signed up")

	h.respondWithSession(w, r, user, http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		http.Error(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}

	user, err := h.services.AuthService.Login(ctx, req.Email, req.Password)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	log.Debug().Str("user_id", user.UserID.String()).Msg("user logged in")

	h.respondWithSession(w, r, user, http.StatusOK)
}

// logout overwrites the session cookie with a placeholder value that the
// auth guard refuses, and expires it immediately. Bearer-header clients
// simply discard their token; there is no server-side session state to
// clear.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    loggedOutCookieValue,
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   h.app.Environment != config.EnvDevelopment,
	})

	utils.WriteJSON(w, models.MessageResponse{
		Status:  models.StatusSuccess,
		Message: "logged out",
	}, http.StatusOK)
}

func (h *Handler) forgotPassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req forgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		http.Error(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if err := h.services.AuthService.ForgotPassword(ctx, req.Email); err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.MessageResponse{
		Status:  models.StatusSuccess,
		Message: "reset token sent to email",
	}, http.StatusOK)
}

func (h *Handler) resetPassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req resetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		http.Error(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}

	plaintextToken := chi.URLParam(r, "token")

	user, err := h.services.AuthService.ResetPassword(ctx, plaintextToken, req.Password, req.PasswordConfirm)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	log.Info().Str("user_id", user.UserID.String()).Msg("password reset completed")

	h.respondWithSession(w, r, user, http.StatusOK)
}

func (h *Handler) updatePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	identity, ok := utils.GetIdentityFromContext(ctx)
	if !ok {
		h.writeError(w, r, ErrNoSessionToken)
		return
	}

	var req updatePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		http.Error(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}

	user, err := h.services.AuthService.ChangePassword(ctx, identity, req.PasswordCurrent, req.Password, req.PasswordConfirm)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	log.Info().Str("user_id", user.UserID.String()).Msg("password changed")

	h.respondWithSession(w, r, user, http.StatusOK)
}

// respondWithSession issues a fresh session token for user, sets it as the
// session cookie and writes the auth envelope carrying the same token for
// bearer-header clients.
func (h *Handler) respondWithSession(w http.ResponseWriter, r *http.Request, user models.User, statusCode int) {
	token, err := h.services.TokenService.Issue(r.Context(), user.UserID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token.SignedString,
		Path:     "/",
		Expires:  time.Now().Add(h.app.CookieTTL),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   h.app.Environment != config.EnvDevelopment,
	})

	utils.WriteJSON(w, models.AuthResponse{
		Status: models.StatusSuccess,
		Token:  token.SignedString,
		User:   user.Public(),
	}, statusCode)
}
