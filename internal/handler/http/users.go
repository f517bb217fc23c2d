package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/tournest/tournest/internal/logger"
	"github.com/tournest/tournest/internal/service"
	"github.com/tournest/tournest/internal/utils"
	"github.com/tournest/tournest/models"
)

type updateProfileRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	identity, ok := utils.GetIdentityFromContext(r.Context())
	if !ok {
		h.writeError(w, r, ErrNoSessionToken)
		return
	}

	utils.WriteJSON(w, models.DataResponse{
		Status: models.StatusSuccess,
		Data:   identity.Public(),
	}, http.StatusOK)
}

// updateMe changes the caller's display name and email. Password fields
// are rejected here so that credential changes always pass through the
// update-password flow and its session invalidation.
func (h *Handler) updateMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	identity, ok := utils.GetIdentityFromContext(ctx)
	if !ok {
		h.writeError(w, r, ErrNoSessionToken)
		return
	}

	var req struct {
		updateProfileRequest
		Password        *string `json:"password"`
		PasswordConfirm *string `json:"passwordConfirm"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		http.Error(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if req.Password != nil || req.PasswordConfirm != nil {
		h.writeError(w, r, fmt.Errorf("%w: this route is not for password updates, use /api/v1/users/update-password", service.ErrValidation))
		return
	}

	user, err := h.services.UserService.UpdateProfile(ctx, identity.UserID, req.Name, req.Email)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.DataResponse{
		Status: models.StatusSuccess,
		Data:   user.Public(),
	}, http.StatusOK)
}

// deleteMe deactivates the caller's account. The row is kept; list
// queries simply stop returning it.
func (h *Handler) deleteMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, ok := utils.GetIdentityFromContext(ctx)
	if !ok {
		h.writeError(w, r, ErrNoSessionToken)
		return
	}

	if err := h.services.UserService.Deactivate(ctx, identity.UserID); err != nil {
		h.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.services.UserService.List(r.Context(), r.URL.Query())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	public := make([]models.PublicUser, 0, len(users))
	for _, user := range users {
		public = append(public, user.Public())
	}

	results := len(public)
	utils.WriteJSON(w, models.DataResponse{
		Status:  models.StatusSuccess,
		Results: &results,
		Data:    public,
	}, http.StatusOK)
}

// createUser exists so the admin collection route answers POST
// consistently. Accounts are only created through signup, where password
// handling lives.
func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, models.ErrorResponse{
		Status:  models.StatusError,
		Message: "this route is not defined, use /api/v1/users/signup instead",
	}, http.StatusInternalServerError)
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	user, err := h.services.UserService.Get(r.Context(), userID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.DataResponse{
		Status: models.StatusSuccess,
		Data:   user.Public(),
	}, http.StatusOK)
}

func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, err := userIDFromRequest(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		http.Error(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}

	user, err := h.services.UserService.UpdateProfile(ctx, userID, req.Name, req.Email)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.DataResponse{
		Status: models.StatusSuccess,
		Data:   user.Public(),
	}, http.StatusOK)
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.services.UserService.Delete(r.Context(), userID); err != nil {
		h.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func userIDFromRequest(r *http.Request) (uuid.UUID, error) {
	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: malformed user id", service.ErrValidation)
	}
	return userID, nil
}
