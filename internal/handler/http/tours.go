package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tournest/tournest/internal/logger"
	"github.com/tournest/tournest/internal/service"
	"github.com/tournest/tournest/internal/utils"
	"github.com/tournest/tournest/models"
)

// listTours is the showcase route of the query feature builder: filtering,
// sorting, projection and pagination all come straight from the URL query
// string, e.g.
//
//	GET /api/v1/tours?price[gte]=100&sort=-price&fields=name,price&page=2&limit=10
func (h *Handler) listTours(w http.ResponseWriter, r *http.Request) {
	tours, err := h.services.TourService.List(r.Context(), r.URL.Query())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	results := len(tours)
	utils.WriteJSON(w, models.DataResponse{
		Status:  models.StatusSuccess,
		Results: &results,
		Data:    tours,
	}, http.StatusOK)
}

func (h *Handler) getTour(w http.ResponseWriter, r *http.Request) {
	tourID, err := int64URLParam(r, "tourID")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	tour, err := h.services.TourService.Get(r.Context(), tourID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.DataResponse{
		Status: models.StatusSuccess,
		Data:   tour,
	}, http.StatusOK)
}

func (h *Handler) createTour(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var tour models.Tour
	if err := json.NewDecoder(r.Body).Decode(&tour); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		http.Error(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}

	created, err := h.services.TourService.Create(ctx, tour)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	log.Info().Int64("tour_id", created.TourID).Str("name", created.Name).Msg("tour created")

	utils.WriteJSON(w, models.DataResponse{
		Status: models.StatusSuccess,
		Data:   created,
	}, http.StatusCreated)
}

func (h *Handler) updateTour(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	tourID, err := int64URLParam(r, "tourID")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var tour models.Tour
	if err := json.NewDecoder(r.Body).Decode(&tour); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		http.Error(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}
	tour.TourID = tourID

	updated, err := h.services.TourService.Update(ctx, tour)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.DataResponse{
		Status: models.StatusSuccess,
		Data:   updated,
	}, http.StatusOK)
}

func (h *Handler) deleteTour(w http.ResponseWriter, r *http.Request) {
	tourID, err := int64URLParam(r, "tourID")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.services.TourService.Delete(r.Context(), tourID); err != nil {
		h.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func int64URLParam(r *http.Request, name string) (int64, error) {
	value, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("%w: malformed %s", service.ErrValidation, name)
	}
	return value, nil
}
