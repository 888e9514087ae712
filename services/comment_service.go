package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/blogem/form-intake/models"
	"github.com/blogem/form-intake/repositories"
)

// CommentService interface defines the magazine comment actions
type CommentService interface {
	List(ctx context.Context) ([]models.Comment, error)
	Add(ctx context.Context, payload map[string]any) (*models.Comment, error)
	Like(ctx context.Context, payload map[string]any) (int, error)
	Delete(ctx context.Context, payload map[string]any) error
}

// commentService implements CommentService interface
type commentService struct {
	intake IntakeService
	tables repositories.TableRepository
	log    *slog.Logger
}

// NewCommentService creates a new comment service
func NewCommentService(intake IntakeService, tables repositories.TableRepository, log *slog.Logger) CommentService {
	return &commentService{
		intake: intake,
		tables: tables,
		log:    log.With("component", "comments"),
	}
}

// List returns all comments, newest first. Comments with equal timestamps keep
// their insertion order.
func (s *commentService) List(ctx context.Context) ([]models.Comment, error) {
	form, t, err := s.table(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := s.tables.ScanAll(ctx, t)
	if err != nil {
		return nil, storeError("read comments", err)
	}

	type entry struct {
		comment models.Comment
		rec     models.Record
	}
	entries := make([]entry, 0, len(rows))
	for _, row := range rows {
		rec, err := form.Schema.Parse(row)
		if err != nil {
			s.log.Warn("skipping unreadable comment row", "error", err)
			continue
		}
		if rec.ID == "" {
			continue
		}
		entries = append(entries, entry{comment: toComment(rec), rec: rec})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].rec.Timestamp.After(entries[j].rec.Timestamp)
	})

	comments := make([]models.Comment, len(entries))
	for i, e := range entries {
		comments[i] = e.comment
	}
	return comments, nil
}

// Add stores a new comment with zero likes
func (s *commentService) Add(ctx context.Context, payload map[string]any) (*models.Comment, error) {
	sub, err := s.intake.Submit(ctx, FormComments, payload)
	if err != nil {
		return nil, err
	}

	comment := toComment(sub.Record)
	return &comment, nil
}

// Like increments the like counter of a comment and returns the new count.
// The read and the write are separate statements, so concurrent likes of the
// same comment can lose updates.
func (s *commentService) Like(ctx context.Context, payload map[string]any) (int, error) {
	id, err := commentID(payload)
	if err != nil {
		return 0, err
	}

	form, t, err := s.table(ctx)
	if err != nil {
		return 0, err
	}

	rows, err := s.tables.ScanAll(ctx, t)
	if err != nil {
		return 0, storeError("read comments", err)
	}

	likesCol, _ := form.Schema.Column("likes")
	idx := t.ColumnIndex(likesCol.Header)

	current := -1
	for _, row := range rows {
		if len(row) > 0 && row[0] == id {
			current = 0
			if idx >= 0 && idx < len(row) {
				current, _ = strconv.Atoi(strings.TrimSpace(row[idx]))
			}
			break
		}
	}
	if current < 0 {
		return 0, fmt.Errorf("comment %w", ErrNotFound)
	}

	likes := current + 1
	err = s.tables.UpdateField(ctx, t, id, likesCol.Header, strconv.Itoa(likes))
	if errors.Is(err, repositories.ErrRowNotFound) {
		return 0, fmt.Errorf("comment %w", ErrNotFound)
	}
	if err != nil {
		return 0, storeError("update likes", err)
	}

	s.log.Info("comment liked", "id", id, "likes", likes)
	return likes, nil
}

// Delete removes a comment
func (s *commentService) Delete(ctx context.Context, payload map[string]any) error {
	id, err := commentID(payload)
	if err != nil {
		return err
	}

	_, t, err := s.table(ctx)
	if err != nil {
		return err
	}

	err = s.tables.DeleteByID(ctx, t, id)
	if errors.Is(err, repositories.ErrRowNotFound) {
		return fmt.Errorf("comment %w", ErrNotFound)
	}
	if err != nil {
		return storeError("delete comment", err)
	}

	s.log.Info("comment deleted", "id", id)
	return nil
}

func (s *commentService) table(ctx context.Context) (*Form, *repositories.Table, error) {
	form, err := s.intake.Form(FormComments)
	if err != nil {
		return nil, nil, err
	}
	t, err := s.intake.Table(ctx, form)
	if err != nil {
		return nil, nil, err
	}
	return form, t, nil
}

func commentID(payload map[string]any) (string, error) {
	id := payloadString(payload, "commentId")
	if id == "" {
		return "", &models.ValidationError{Field: "commentId", Message: "commentId required"}
	}
	return id, nil
}

func toComment(rec models.Record) models.Comment {
	likes, _ := strconv.Atoi(rec.Fields.Get("likes"))
	ts := ""
	if !rec.Timestamp.IsZero() {
		ts = models.FormatTimestamp(rec.Timestamp)
	}
	return models.Comment{
		ID:          rec.ID,
		Author:      rec.Fields.Get("author"),
		Content:     rec.Fields.Get("content"),
		Likes:       likes,
		IsAnonymous: rec.Fields.Bool("isAnonymous"),
		Timestamp:   ts,
	}
}
