package service

import (
	"github.com/tournest/tournest/internal/config"
	"github.com/tournest/tournest/internal/logger"
	"github.com/tournest/tournest/internal/mailer"
	"github.com/tournest/tournest/internal/store"
)

// Services bundles every business-logic service the HTTP layer needs.
type Services struct {
	AuthService
	TokenService
	UserService
	TourService
	ReviewService
}

// NewServices wires the services to their repositories and settings.
func NewServices(storages *store.Storages, mailSender mailer.Mailer, cfg *config.StructuredConfig, logger *logger.Logger) *Services {
	return &Services{
		AuthService:   NewAuthService(storages.UserRepository, mailSender, cfg.App, logger),
		TokenService:  NewTokenService(cfg.App, logger),
		UserService:   NewUserService(storages.UserRepository, logger),
		TourService:   NewTourService(storages.TourRepository, logger),
		ReviewService: NewReviewService(storages.ReviewRepository, logger),
	}
}
