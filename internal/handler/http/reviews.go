package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tournest/tournest/internal/logger"
	"github.com/tournest/tournest/internal/utils"
	"github.com/tournest/tournest/models"
)

// listReviews serves both the flat collection and the tour-nested one:
// without a tourID in the path it lists every review, with one it scopes
// the listing to that tour. Query features apply either way.
func (h *Handler) listReviews(w http.ResponseWriter, r *http.Request) {
	var tourID int64
	if chi.URLParam(r, "tourID") != "" {
		var err error
		tourID, err = int64URLParam(r, "tourID")
		if err != nil {
			h.writeError(w, r, err)
			return
		}
	}

	reviews, err := h.services.ReviewService.List(r.Context(), tourID, r.URL.Query())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	results := len(reviews)
	utils.WriteJSON(w, models.DataResponse{
		Status:  models.StatusSuccess,
		Results: &results,
		Data:    reviews,
	}, http.StatusOK)
}

func (h *Handler) getReview(w http.ResponseWriter, r *http.Request) {
	reviewID, err := int64URLParam(r, "reviewID")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	review, err := h.services.ReviewService.Get(r.Context(), reviewID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.DataResponse{
		Status: models.StatusSuccess,
		Data:   review,
	}, http.StatusOK)
}

// createReview is mounted under /tours/{tourID}/reviews. The author comes
// from the authenticated identity and the tour from the path; values in
// the body for either are ignored.
func (h *Handler) createReview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	identity, ok := utils.GetIdentityFromContext(ctx)
	if !ok {
		h.writeError(w, r, ErrNoSessionToken)
		return
	}

	tourID, err := int64URLParam(r, "tourID")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var review models.Review
	if err := json.NewDecoder(r.Body).Decode(&review); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		http.Error(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}
	review.TourID = tourID

	created, err := h.services.ReviewService.Create(ctx, identity, review)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.DataResponse{
		Status: models.StatusSuccess,
		Data:   created,
	}, http.StatusCreated)
}

func (h *Handler) updateReview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	identity, ok := utils.GetIdentityFromContext(ctx)
	if !ok {
		h.writeError(w, r, ErrNoSessionToken)
		return
	}

	reviewID, err := int64URLParam(r, "reviewID")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var review models.Review
	if err := json.NewDecoder(r.Body).Decode(&review); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		http.Error(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}
	review.ReviewID = reviewID

	updated, err := h.services.ReviewService.Update(ctx, identity, review)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.DataResponse{
		Status: models.StatusSuccess,
		Data:   updated,
	}, http.StatusOK)
}

func (h *Handler) deleteReview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, ok := utils.GetIdentityFromContext(ctx)
	if !ok {
		h.writeError(w, r, ErrNoSessionToken)
		return
	}

	reviewID, err := int64URLParam(r, "reviewID")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.services.ReviewService.Delete(ctx, identity, reviewID); err != nil {
		h.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
