package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/blogem/form-intake/models"
	"github.com/blogem/form-intake/repositories"
)

// BackupResult describes a finished table backup
type BackupResult struct {
	Source string `json:"source"`
	Table  string `json:"table"`
	Rows   int    `json:"rows"`
}

// MaintenanceService interface defines the backup and retention jobs
type MaintenanceService interface {
	Backup(ctx context.Context, form string) (*BackupResult, error)
	Cleanup(ctx context.Context, form string, days int) (int, error)
	Failures(ctx context.Context) ([]models.LogEntry, error)
}

// maintenanceService implements MaintenanceService interface
type maintenanceService struct {
	intake   IntakeService
	tables   repositories.TableRepository
	eventLog repositories.EventLogRepository
	log      *slog.Logger
}

// NewMaintenanceService creates a new maintenance service
func NewMaintenanceService(intake IntakeService, tables repositories.TableRepository, eventLog repositories.EventLogRepository, log *slog.Logger) MaintenanceService {
	return &maintenanceService{
		intake:   intake,
		tables:   tables,
		eventLog: eventLog,
		log:      log.With("component", "maintenance"),
	}
}

// BackupTableName returns the name of a backup of table taken on the given date
func BackupTableName(date, table string) string {
	return fmt.Sprintf("Backup_%s_%s", date, table)
}

// Backup copies the form's table into Backup_<YYYY-MM-DD>_<table>
func (s *maintenanceService) Backup(ctx context.Context, name string) (*BackupResult, error) {
	form, err := s.intake.Form(name)
	if err != nil {
		return nil, err
	}

	t, err := s.intake.Table(ctx, form)
	if err != nil {
		return nil, err
	}

	target := BackupTableName(models.FormatDate(timeNow()), t.Name)
	backup, err := s.tables.Copy(ctx, t, target)
	if err != nil {
		if errors.Is(err, repositories.ErrTableExists) {
			return nil, fmt.Errorf("backup %s already exists: %w", target, err)
		}
		return nil, storeError("back up "+t.Name, err)
	}

	rows, err := s.tables.RowCount(ctx, backup)
	if err != nil {
		return nil, storeError("count backup rows", err)
	}

	s.log.Info("table backed up", "source", t.Name, "backup", backup.Name, "rows", rows)
	return &BackupResult{Source: t.Name, Table: backup.Name, Rows: rows}, nil
}

// Cleanup deletes rows whose timestamp is older than days. Rows without a
// readable timestamp are kept.
func (s *maintenanceService) Cleanup(ctx context.Context, name string, days int) (int, error) {
	if days <= 0 {
		return 0, fmt.Errorf("days must be positive, got %d", days)
	}

	form, err := s.intake.Form(name)
	if err != nil {
		return 0, err
	}

	col := form.Schema.TimestampIndex()
	if col < 0 {
		return 0, fmt.Errorf("form %s has no timestamp column", form.Name)
	}

	t, err := s.intake.Table(ctx, form)
	if err != nil {
		return 0, err
	}

	cutoff := timeNow().AddDate(0, 0, -days)
	removed, err := s.tables.Prune(ctx, t, func(row []string) bool {
		if col >= len(row) {
			return true
		}
		ts, err := models.ParseTimestamp(row[col])
		if err != nil {
			return true
		}
		return !ts.Before(cutoff)
	})
	if err != nil {
		return 0, storeError("clean up "+t.Name, err)
	}

	s.log.Info("old rows removed", "table", t.Name, "days", days, "removed", removed)
	return removed, nil
}

// Failures returns the recorded notification failures, oldest first
func (s *maintenanceService) Failures(ctx context.Context) ([]models.LogEntry, error) {
	entries, err := s.eventLog.GetAll(ctx)
	if err != nil {
		return nil, storeError("read "+models.LogTable, err)
	}
	return entries, nil
}
