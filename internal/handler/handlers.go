package handler

import (
	"github.com/MKhiriev/budget-keeper/internal/config"
	"github.com/MKhiriev/budget-keeper/internal/handler/http"
	"github.com/MKhiriev/budget-keeper/internal/logger"
	"github.com/MKhiriev/budget-keeper/internal/service"
)

// Handlers groups the transport handlers enabled by the server config.
type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(services *service.Services, cfg config.Server, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	handlers := &Handlers{}

	if cfg.HTTPAddress != "" {
		handlers.HTTP = http.NewHandler(services, cfg, logger)
	}

	if handlers.HTTP == nil {
		return nil, errNoHandlersAreCreated
	}

	return handlers, nil
}
