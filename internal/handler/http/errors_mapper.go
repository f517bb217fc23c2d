package http

import (
	"errors"
	"net/http"

	"github.com/tournest/tournest/internal/config"
	"github.com/tournest/tournest/internal/logger"
	"github.com/tournest/tournest/internal/service"
	"github.com/tournest/tournest/internal/store"
	"github.com/tournest/tournest/internal/utils"
	"github.com/tournest/tournest/models"
)

type errorStatus struct {
	sentinel error
	status   int
}

// errorStatuses is checked in order, most specific first. Availability
// outranks everything: a chain carrying ErrUnavailable is an outage
// regardless of which operation it surfaced through.
var errorStatuses = []errorStatus{
	{store.ErrUnavailable, http.StatusServiceUnavailable},
	{service.ErrMailDelivery, http.StatusServiceUnavailable},

	{service.ErrValidation, http.StatusBadRequest},
	{service.ErrResetTokenInvalid, http.StatusBadRequest},
	{store.ErrResetRecordNotFound, http.StatusBadRequest},

	{service.ErrInvalidCredentials, http.StatusUnauthorized},
	{service.ErrWrongPassword, http.StatusUnauthorized},
	{service.ErrTokenInvalid, http.StatusUnauthorized},
	{service.ErrSessionInvalidated, http.StatusUnauthorized},
	{ErrNoSessionToken, http.StatusUnauthorized},
	{ErrInvalidAuthorizationHeader, http.StatusUnauthorized},

	{service.ErrForbidden, http.StatusForbidden},

	{store.ErrUserNotFound, http.StatusNotFound},
	{store.ErrTourNotFound, http.StatusNotFound},
	{store.ErrReviewNotFound, http.StatusNotFound},

	{store.ErrEmailAlreadyExists, http.StatusConflict},

	{store.ErrBuildingSQLQuery, http.StatusInternalServerError},
}

// statusFromError resolves an error chain to an HTTP status code by
// walking errorStatuses in order, so a joined chain always maps to the
// same status.
func statusFromError(err error) int {
	for _, entry := range errorStatuses {
		if errors.Is(err, entry.sentinel) {
			return entry.status
		}
	}
	return http.StatusInternalServerError
}

// writeError maps err to a status code and writes the error envelope.
//
// Outside the development posture, 5xx bodies carry only the generic
// status text so that driver and infrastructure details never reach
// clients. 4xx messages are always safe to echo because they originate
// from the service sentinels, not from the underlying cause.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)

	status := statusFromError(err)
	log.Err(err).Int("status", status).Msg("request failed")

	message := err.Error()
	if status >= http.StatusInternalServerError && h.app.Environment != config.EnvDevelopment {
		message = http.StatusText(status)
	}

	utils.WriteJSON(w, models.ErrorResponse{
		Status:  models.StatusError,
		Message: message,
	}, status)
}
