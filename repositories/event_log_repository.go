package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/blogem/form-intake/models"
)

// EventLogRepository handles the sibling log table
type EventLogRepository interface {
	Create(ctx context.Context, entry models.LogEntry) error
	GetAll(ctx context.Context) ([]models.LogEntry, error)
}

type eventLogRepository struct {
	tables TableRepository
}

// NewEventLogRepository creates a new event log repository on top of the table store
func NewEventLogRepository(tables TableRepository) EventLogRepository {
	return &eventLogRepository{tables: tables}
}

// Create appends a log entry, creating the log table on first use
func (r *eventLogRepository) Create(ctx context.Context, entry models.LogEntry) error {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	t, err := r.tables.EnsureTable(ctx, models.LogTable, models.LogHeader)
	if err != nil {
		return fmt.Errorf("failed to open log table: %w", err)
	}

	if err := r.tables.Append(ctx, t, entry.Row()); err != nil {
		return fmt.Errorf("failed to write log entry: %w", err)
	}

	return nil
}

// GetAll returns every log entry in insertion order. A log table that was
// never written is read as empty and is not created.
func (r *eventLogRepository) GetAll(ctx context.Context) ([]models.LogEntry, error) {
	t, err := r.tables.Lookup(ctx, models.LogTable)
	if errors.Is(err, ErrTableNotFound) {
		return []models.LogEntry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open log table: %w", err)
	}

	rows, err := r.tables.ScanAll(ctx, t)
	if err != nil {
		return nil, err
	}

	entries := make([]models.LogEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, models.ParseLogEntry(row))
	}
	return entries, nil
}
