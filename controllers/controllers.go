package controllers

import (
	"log/slog"

	"github.com/blogem/form-intake/config"
	"github.com/blogem/form-intake/services"
)

// Controllers holds all controller instances
type Controllers struct {
	Health *HealthController
	Forms  *FormController
}

// NewControllers creates and initializes all controller instances
func NewControllers(services *services.Services, cfg *config.Config, log *slog.Logger) *Controllers {
	return &Controllers{
		Health: NewHealthController(services, cfg.Version),
		Forms:  NewFormController(services, cfg.Version, cfg.Admin.Issuer != "", log),
	}
}
