package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/blogem/form-intake/models"
)

// Notification channels
const (
	ChannelEmail   = "email"
	ChannelWebhook = "webhook"
)

// Log table event kinds written after a channel finally fails
const (
	EventEmailFailed   = "email_failed"
	EventWebhookFailed = "webhook_failed"
)

// DefaultMaxAttempts is how often an email is tried per recipient
const DefaultMaxAttempts = 3

// ErrNoTransport is reported when email is requested but no mailer is configured
var ErrNoTransport = errors.New("mail transport not configured")

// Email is one message sent to every recipient of an EmailPlan
type Email struct {
	Subject     string
	Body        string
	FromName    string
	Attachments []Attachment
}

// Mailer delivers a single email to a single recipient
type Mailer interface {
	Send(ctx context.Context, to string, msg *Email) error
}

// FailureRecorder persists channel failures to the log table
type FailureRecorder interface {
	Create(ctx context.Context, entry models.LogEntry) error
}

// EmailPlan describes the email channel of one notification
type EmailPlan struct {
	Recipients []string
	Subject    string
	Body       string
	FromName   string
	Uploads    []models.Upload
}

// WebhookPlan describes one webhook call
type WebhookPlan struct {
	URL     string
	Method  string
	Payload any
}

// Plan lists the channels to attempt for one accepted submission
type Plan struct {
	// Source names the originating form in log rows
	Source   string
	Email    *EmailPlan
	Webhooks []WebhookPlan
}

// Empty reports whether the plan has no channel to attempt
func (p Plan) Empty() bool {
	return (p.Email == nil || len(p.Email.Recipients) == 0) && len(p.Webhooks) == 0
}

// Outcome is the delivery result for one channel target
type Outcome struct {
	Channel   string `json:"channel"`
	Target    string `json:"target"`
	Delivered bool   `json:"delivered"`
	Attempts  int    `json:"attempts"`
	Error     string `json:"error,omitempty"`
}

// Result collects the outcomes of one dispatch
type Result struct {
	Outcomes []Outcome `json:"outcomes"`
	// Notes lists attachments that were left out of the email
	Notes []string `json:"notes,omitempty"`
}

// Delivered reports whether at least one target of the channel was reached
func (r Result) Delivered(channel string) bool {
	for _, o := range r.Outcomes {
		if o.Channel == channel && o.Delivered {
			return true
		}
	}
	return false
}

// Option configures a Dispatcher
type Option func(*Dispatcher)

// WithMaxAttempts sets how many times an email send is attempted
func WithMaxAttempts(n int) Option {
	return func(d *Dispatcher) {
		if n > 0 {
			d.maxAttempts = n
		}
	}
}

// WithBackoff sets the delay before retry number attempt
func WithBackoff(backoff func(attempt int) time.Duration) Option {
	return func(d *Dispatcher) {
		d.backoff = backoff
	}
}

// WithSleep replaces the wait between attempts
func WithSleep(sleep func(ctx context.Context, d time.Duration) error) Option {
	return func(d *Dispatcher) {
		d.sleep = sleep
	}
}

// Dispatcher attempts every channel of a plan independently. Failures are
// logged and recorded but never returned to the caller.
type Dispatcher struct {
	mailer      Mailer
	client      *http.Client
	recorder    FailureRecorder
	log         *slog.Logger
	maxAttempts int
	backoff     func(attempt int) time.Duration
	sleep       func(ctx context.Context, d time.Duration) error
}

// NewDispatcher creates a dispatcher. A nil mailer disables email delivery and
// a nil client uses a client with a 10 second timeout.
func NewDispatcher(mailer Mailer, client *http.Client, recorder FailureRecorder, log *slog.Logger, opts ...Option) *Dispatcher {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	if log == nil {
		log = slog.Default()
	}

	d := &Dispatcher{
		mailer:      mailer,
		client:      client,
		recorder:    recorder,
		log:         log.With("component", "notifier"),
		maxAttempts: DefaultMaxAttempts,
		backoff: func(attempt int) time.Duration {
			return time.Duration(attempt) * 2 * time.Second
		},
		sleep: sleepContext,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch runs the plan and returns one outcome per email recipient and webhook
func (d *Dispatcher) Dispatch(ctx context.Context, plan Plan) Result {
	var result Result

	if plan.Email != nil && len(plan.Email.Recipients) > 0 {
		outcomes, notes := d.sendEmail(ctx, plan.Source, plan.Email)
		result.Outcomes = append(result.Outcomes, outcomes...)
		result.Notes = notes
	}

	for _, hook := range plan.Webhooks {
		result.Outcomes = append(result.Outcomes, d.sendWebhook(ctx, plan.Source, hook))
	}

	return result
}

func (d *Dispatcher) sendEmail(ctx context.Context, source string, plan *EmailPlan) ([]Outcome, []string) {
	attachments, notes := PrepareAttachments(plan.Uploads)

	body := plan.Body
	if len(notes) > 0 {
		var b strings.Builder
		b.WriteString(body)
		b.WriteString("\n\n[Excluded attachments]\n")
		for _, note := range notes {
			b.WriteString("- ")
			b.WriteString(note)
			b.WriteString("\n")
		}
		body = b.String()
	}

	msg := &Email{
		Subject:     plan.Subject,
		Body:        body,
		FromName:    plan.FromName,
		Attachments: attachments,
	}

	outcomes := make([]Outcome, 0, len(plan.Recipients))
	for _, to := range plan.Recipients {
		outcome := Outcome{Channel: ChannelEmail, Target: to}

		if d.mailer == nil {
			outcome.Error = ErrNoTransport.Error()
			d.log.Warn("email skipped", "to", to, "source", source, "error", ErrNoTransport)
			outcomes = append(outcomes, outcome)
			continue
		}

		var err error
		for attempt := 1; attempt <= d.maxAttempts; attempt++ {
			outcome.Attempts = attempt
			if err = d.mailer.Send(ctx, to, msg); err == nil {
				break
			}

			d.log.Warn("email send failed",
				"to", to,
				"attempt", attempt,
				"max_attempts", d.maxAttempts,
				"error", err,
			)

			if attempt < d.maxAttempts {
				if serr := d.sleep(ctx, d.backoff(attempt)); serr != nil {
					err = serr
					break
				}
			}
		}

		if err == nil {
			outcome.Delivered = true
			d.log.Info("email sent", "to", to, "source", source, "attachments", len(attachments))
		} else {
			outcome.Error = err.Error()
			d.record(ctx, models.LogEntry{
				EventKind:   EventEmailFailed,
				Target:      to,
				ErrorDetail: err.Error(),
				Context:     source,
				Extra:       fmt.Sprintf("attachments: %d", len(attachments)),
			})
		}

		outcomes = append(outcomes, outcome)
	}

	return outcomes, notes
}

func (d *Dispatcher) sendWebhook(ctx context.Context, source string, hook WebhookPlan) Outcome {
	outcome := Outcome{Channel: ChannelWebhook, Target: hook.URL, Attempts: 1}

	err := d.postWebhook(ctx, hook)
	if err == nil {
		outcome.Delivered = true
		d.log.Info("webhook sent", "url", hook.URL, "source", source)
		return outcome
	}

	outcome.Error = err.Error()
	d.log.Warn("webhook failed", "url", hook.URL, "source", source, "error", err)
	d.record(ctx, models.LogEntry{
		EventKind:   EventWebhookFailed,
		Target:      hook.URL,
		ErrorDetail: err.Error(),
		Context:     source,
	})

	return outcome
}

func (d *Dispatcher) postWebhook(ctx context.Context, hook WebhookPlan) error {
	method := strings.ToUpper(strings.TrimSpace(hook.Method))
	if method == "" {
		method = http.MethodPost
	}

	body, err := json.Marshal(hook.Payload)
	if err != nil {
		return fmt.Errorf("failed to encode webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, hook.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "form-intake-webhook/1.0")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call webhook: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	return nil
}

func (d *Dispatcher) record(ctx context.Context, entry models.LogEntry) {
	if d.recorder == nil {
		return
	}
	if err := d.recorder.Create(ctx, entry); err != nil {
		d.log.Error("failed to record notification failure", "event", entry.EventKind, "error", err)
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
