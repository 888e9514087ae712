package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/blogem/form-intake/middleware"
	"github.com/blogem/form-intake/models"
	"github.com/blogem/form-intake/services"
)

// HealthController handles health and liveness requests
type HealthController struct {
	services *services.Services
	version  string
}

// NewHealthController creates a new health controller
func NewHealthController(services *services.Services, version string) *HealthController {
	return &HealthController{
		services: services,
		version:  version,
	}
}

// Health handles GET /health
func (c *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `{"status":"healthy","service":"form-intake"}`)
}

// Index handles GET / with the service status and the available forms
func (c *HealthController) Index(w http.ResponseWriter, r *http.Request) {
	middleware.Success(w, r, map[string]any{
		"message":   "form-intake is running",
		"timestamp": models.FormatTimestamp(time.Now()),
		"version":   c.version,
		"forms":     c.services.Intake.Forms(),
	})
}

// NotFound answers unrouted requests with an error envelope
func (c *HealthController) NotFound(w http.ResponseWriter, r *http.Request) {
	middleware.Fail(w, r, "not found")
}
