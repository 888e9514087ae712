package services

import (
	"log/slog"
	"net/http"

	"github.com/blogem/form-intake/config"
	"github.com/blogem/form-intake/repositories"
)

// Services holds all service instances
type Services struct {
	Intake      IntakeService
	Comments    CommentService
	Digest      DigestService
	Maintenance MaintenanceService
}

// NewServices creates and initializes all service instances
func NewServices(repos *repositories.Repositories, n Notifier, client *http.Client, cfg *config.Config, log *slog.Logger) *Services {
	intake := NewIntakeService(NewCatalog(), repos.Tables, n, cfg, log)
	return &Services{
		Intake:      intake,
		Comments:    NewCommentService(intake, repos.Tables, log),
		Digest:      NewDigestService(client, n, log),
		Maintenance: NewMaintenanceService(intake, repos.Tables, repos.EventLog, log),
	}
}
