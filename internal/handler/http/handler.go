package http

import (
	"github.com/tournest/tournest/internal/config"
	"github.com/tournest/tournest/internal/logger"
	"github.com/tournest/tournest/internal/service"
)

type Handler struct {
	services *service.Services

	// app carries the settings the transport layer needs directly:
	// cookie lifetime and the error-reporting posture.
	app config.App

	logger *logger.Logger
}

func NewHandler(services *service.Services, app config.App, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		app:      app,
		logger:   logger,
	}
}
