package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blogem/form-intake/config"
	"github.com/blogem/form-intake/database"
	"github.com/blogem/form-intake/models"
	"github.com/blogem/form-intake/notifier"
	"github.com/blogem/form-intake/repositories"
)

func setupMaintenance(t *testing.T) (*Services, *repositories.Repositories, *time.Time) {
	db, err := database.InitializeDatabase(database.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	now := time.Date(2025, 8, 7, 9, 0, 0, 0, time.UTC)
	timeNow = func() time.Time { return now }
	t.Cleanup(func() { timeNow = time.Now })

	repos := repositories.NewRepositories(db)
	dispatcher := notifier.NewDispatcher(nil, nil, repos.EventLog, discardLogger())
	return NewServices(repos, dispatcher, nil, &config.Config{}, discardLogger()), repos, &now
}

func TestBackup(t *testing.T) {
	ctx := context.Background()
	svc, repos, _ := setupMaintenance(t)

	for _, emotion := range []string{"happy", "sad"} {
		_, err := svc.Intake.Submit(ctx, FormFeedback, map[string]any{"emotion": emotion})
		require.NoError(t, err)
	}

	result, err := svc.Maintenance.Backup(ctx, FormFeedback)
	require.NoError(t, err)
	assert.Equal(t, "Responses", result.Source)
	assert.Equal(t, "Backup_2025-08-07_Responses", result.Table)
	assert.Equal(t, 2, result.Rows)

	backup, err := repos.Tables.Lookup(ctx, result.Table)
	require.NoError(t, err)
	assert.Equal(t, []string{"Timestamp", "Emotion", "Q1", "Q2", "Q3", "Q4", "Q5", "Q6", "Q7"}, backup.Header)

	// A second backup on the same day is refused
	_, err = svc.Maintenance.Backup(ctx, FormFeedback)
	assert.ErrorIs(t, err, repositories.ErrTableExists)
}

func TestBackup_UnknownForm(t *testing.T) {
	svc, _, _ := setupMaintenance(t)

	_, err := svc.Maintenance.Backup(context.Background(), "surveys")
	assert.ErrorIs(t, err, ErrUnknownForm)
}

func TestCleanup(t *testing.T) {
	ctx := context.Background()
	svc, _, now := setupMaintenance(t)
	today := *now

	*now = today.AddDate(0, 0, -45)
	_, err := svc.Comments.Add(ctx, map[string]any{"author": "Kim", "content": "old"})
	require.NoError(t, err)

	*now = today.AddDate(0, 0, -5)
	_, err = svc.Comments.Add(ctx, map[string]any{"author": "Kim", "content": "recent"})
	require.NoError(t, err)

	*now = today
	removed, err := svc.Maintenance.Cleanup(ctx, FormComments, 30)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	comments, err := svc.Comments.List(ctx)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "recent", comments[0].Content)
}

func TestCleanup_InvalidDays(t *testing.T) {
	svc, _, _ := setupMaintenance(t)

	_, err := svc.Maintenance.Cleanup(context.Background(), FormComments, 0)
	assert.Error(t, err)
}

func TestFailures(t *testing.T) {
	ctx := context.Background()
	svc, repos, now := setupMaintenance(t)

	entries, err := svc.Maintenance.Failures(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)

	require.NoError(t, repos.EventLog.Create(ctx, models.LogEntry{
		Timestamp:   *now,
		EventKind:   "email_failed",
		Target:      "team@example.com",
		ErrorDetail: "connection refused",
		Context:     FormMessage,
	}))

	entries, err = svc.Maintenance.Failures(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "email_failed", entries[0].EventKind)
	assert.Equal(t, "team@example.com", entries[0].Target)
	assert.Equal(t, FormMessage, entries[0].Context)
}
