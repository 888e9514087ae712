package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/blogem/form-intake/config"
	"github.com/blogem/form-intake/models"
	"github.com/blogem/form-intake/notifier"
	"github.com/blogem/form-intake/repositories"
)

// Notifier delivers the notifications of an accepted submission
type Notifier interface {
	Dispatch(ctx context.Context, plan notifier.Plan) notifier.Result
}

// Submission is an accepted, persisted form record
type Submission struct {
	Form          *Form
	Record        models.Record
	Payload       map[string]any
	Uploads       []models.Upload
	Notifications notifier.Result
}

// IntakeService interface defines the shared add pipeline of every form
type IntakeService interface {
	Form(name string) (*Form, error)
	Forms() []string
	Submit(ctx context.Context, form string, payload map[string]any) (*Submission, error)
	Table(ctx context.Context, form *Form) (*repositories.Table, error)
}

// intakeService implements IntakeService interface
type intakeService struct {
	catalog  *Catalog
	tables   repositories.TableRepository
	notifier Notifier
	cfg      *config.Config
	log      *slog.Logger
}

// NewIntakeService creates a new intake service
func NewIntakeService(catalog *Catalog, tables repositories.TableRepository, n Notifier, cfg *config.Config, log *slog.Logger) IntakeService {
	return &intakeService{
		catalog:  catalog,
		tables:   tables,
		notifier: n,
		cfg:      cfg,
		log:      log.With("component", "intake"),
	}
}

// Form resolves a form by name
func (s *intakeService) Form(name string) (*Form, error) {
	return s.catalog.Lookup(name)
}

// Forms lists the names of all forms
func (s *intakeService) Forms() []string {
	return s.catalog.Names()
}

// Table returns the form's table, creating it with its header on first use
func (s *intakeService) Table(ctx context.Context, form *Form) (*repositories.Table, error) {
	t, err := s.tables.EnsureTable(ctx, form.Schema.Table, form.Schema.Header())
	if err != nil {
		return nil, storeError("open table "+form.Schema.Table, err)
	}
	return t, nil
}

// Submit validates the payload, appends the record, and dispatches the form's
// notifications. Validation failures leave the table untouched. Notification
// failures are reported in the submission but never fail it.
func (s *intakeService) Submit(ctx context.Context, name string, payload map[string]any) (*Submission, error) {
	form, err := s.catalog.Lookup(name)
	if err != nil {
		return nil, err
	}

	// prepare rewrites payload keys; keep the caller's map intact
	data := make(map[string]any, len(payload))
	for k, v := range payload {
		data[k] = v
	}

	var uploads []models.Upload
	if form.prepare != nil {
		if uploads, err = form.prepare(data); err != nil {
			return nil, err
		}
	}

	fields, err := models.Validate(form.Schema, data)
	if err != nil {
		return nil, err
	}

	now := timeNow()
	rec := models.Record{Timestamp: now, Fields: fields}
	if form.Schema.HasID() {
		if rec.ID, err = newRecordID(form.Schema.IDPrefix, now); err != nil {
			return nil, err
		}
	}

	t, err := s.Table(ctx, form)
	if err != nil {
		return nil, err
	}

	if err := s.tables.Append(ctx, t, form.Schema.Row(rec)); err != nil {
		return nil, storeError("save "+form.Name+" submission", err)
	}

	s.log.Info("submission stored", "form", form.Name, "table", t.Name, "id", rec.ID)

	sub := &Submission{
		Form:    form,
		Record:  rec,
		Payload: data,
		Uploads: uploads,
	}

	if form.plan != nil && s.notifier != nil {
		plan := form.plan(sub, s.cfg.Form(form.Name))
		if !plan.Empty() {
			// Delivery continues even if the client goes away
			sub.Notifications = s.notifier.Dispatch(context.WithoutCancel(ctx), plan)
		}
	}

	return sub, nil
}

// Describe returns the response payload of an accepted submission
func (sub *Submission) Describe() map[string]any {
	notifications := sub.Notifications.Outcomes
	if notifications == nil {
		notifications = []notifier.Outcome{}
	}

	out := map[string]any{
		"message":       fmt.Sprintf("%s submission received", sub.Form.Name),
		"timestamp":     models.FormatTimestamp(sub.Record.Timestamp),
		"notifications": notifications,
	}
	if sub.Record.ID != "" {
		out["id"] = sub.Record.ID
	}
	if len(sub.Notifications.Notes) > 0 {
		out["attachmentNotes"] = sub.Notifications.Notes
	}
	if sub.Form.Name == FormMessage {
		out["emailSent"] = sub.Notifications.Delivered(notifier.ChannelEmail)
		out["webhookSent"] = sub.Notifications.Delivered(notifier.ChannelWebhook)
	}
	return out
}
