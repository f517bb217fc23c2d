package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/tournest/tournest/models"
)

// Init builds the router. Middleware order matters: the trace id must be
// in the context before the access log runs, the cookie enrichment must
// run before any strict guard, and the auth guard must run before any
// role guard it feeds.
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(h.withCookieAuth)

	router.Route("/api/v1", func(api chi.Router) {
		api.Route("/users", func(r chi.Router) {
			// routes without authorization
			r.Post("/signup", h.signup)
			r.Post("/login", h.login)
			r.Post("/logout", h.logout)
			r.Post("/forgot-password", h.forgotPassword)
			r.Patch("/reset-password/{token}", h.resetPassword)

			r.Group(func(r chi.Router) {
				r.Use(h.requireAuth)

				r.Patch("/update-password", h.updatePassword)
				r.Get("/me", h.me)
				r.Patch("/update-me", h.updateMe)
				r.Delete("/delete-me", h.deleteMe)

				r.Group(func(r chi.Router) {
					r.Use(h.requireRoles(models.RoleAdmin))

					r.Get("/", h.listUsers)
					r.Post("/", h.createUser)
					r.Get("/{userID}", h.getUser)
					r.Patch("/{userID}", h.updateUser)
					r.Delete("/{userID}", h.deleteUser)
				})
			})
		})

		api.Route("/tours", func(r chi.Router) {
			r.Get("/", h.listTours)
			r.Get("/{tourID}", h.getTour)
			r.Get("/{tourID}/reviews", h.listReviews)

			r.Group(func(r chi.Router) {
				r.Use(h.requireAuth)

				r.With(h.requireRoles(models.RoleUser, models.RoleAdmin)).
					Post("/{tourID}/reviews", h.createReview)

				r.Group(func(r chi.Router) {
					r.Use(h.requireRoles(models.RoleAdmin, models.RoleLeadGuide))

					r.Post("/", h.createTour)
					r.Patch("/{tourID}", h.updateTour)
					r.Delete("/{tourID}", h.deleteTour)
				})
			})
		})

		api.Route("/reviews", func(r chi.Router) {
			r.Use(h.requireAuth)

			r.Get("/", h.listReviews)
			r.Get("/{reviewID}", h.getReview)
			r.Patch("/{reviewID}", h.updateReview)
			r.Delete("/{reviewID}", h.deleteReview)
		})
	})

	return router
}
