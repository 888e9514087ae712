package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/blogem/form-intake/models"
	"github.com/blogem/form-intake/notifier"
)

// Digest skip reasons
const (
	DigestDisabled  = "webhook disabled"
	DigestWrongHour = "not the scheduled hour"
	DigestNoEvents  = "no events today"
)

// DigestResult describes one digest run
type DigestResult struct {
	Date    string            `json:"date"`
	Events  int               `json:"events"`
	Sent    bool              `json:"sent"`
	Skipped string            `json:"skipped,omitempty"`
	Text    string            `json:"text,omitempty"`
	Outcome *notifier.Outcome `json:"outcome,omitempty"`
}

// DigestService interface defines the daily schedule digest
type DigestService interface {
	LoadConfig(ctx context.Context, url string) (*models.DigestConfig, error)
	Run(ctx context.Context, cfg *models.DigestConfig, force bool) (*DigestResult, error)
}

// digestService implements DigestService interface
type digestService struct {
	client   *http.Client
	notifier Notifier
	log      *slog.Logger
}

// NewDigestService creates a new digest service. A nil client uses a client with a 10 second timeout.
func NewDigestService(client *http.Client, n Notifier, log *slog.Logger) DigestService {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &digestService{
		client:   client,
		notifier: n,
		log:      log.With("component", "digest"),
	}
}

// LoadConfig fetches the remote digest configuration
func (s *digestService) LoadConfig(ctx context.Context, url string) (*models.DigestConfig, error) {
	if url == "" {
		return nil, errors.New("digest config url is not set")
	}

	var cfg models.DigestConfig
	if err := s.fetchJSON(ctx, url, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load digest config: %w", err)
	}

	s.log.Debug("digest config loaded", "webhook", cfg.Webhook.URL, "timezone", cfg.App.Timezone)
	return &cfg, nil
}

// Run sends today's events to the digest webhook when the digest is enabled and
// the current hour in the configured timezone is the send hour. force skips the
// hour check.
func (s *digestService) Run(ctx context.Context, cfg *models.DigestConfig, force bool) (*DigestResult, error) {
	tz := cfg.App.Timezone
	if tz == "" {
		tz = models.DefaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", tz, err)
	}

	now := timeNow().In(loc)
	result := &DigestResult{Date: models.FormatDate(now)}

	if !cfg.Webhook.Enabled {
		result.Skipped = DigestDisabled
		s.log.Info("digest skipped", "reason", result.Skipped)
		return result, nil
	}

	if !force && now.Hour() != cfg.SendHour() {
		result.Skipped = DigestWrongHour
		s.log.Info("digest skipped", "reason", result.Skipped, "hour", now.Hour(), "send_hour", cfg.SendHour())
		return result, nil
	}

	if cfg.Events.URL == "" {
		return nil, errors.New("events url is not set")
	}

	var list models.EventList
	if err := s.fetchJSON(ctx, cfg.Events.URL, &list); err != nil {
		return nil, fmt.Errorf("failed to load events: %w", err)
	}

	var today []models.Event
	for _, e := range list.Events {
		if e.Date == result.Date {
			today = append(today, e)
		}
	}
	result.Events = len(today)

	if len(today) == 0 {
		result.Skipped = DigestNoEvents
		s.log.Info("digest skipped", "reason", result.Skipped, "date", result.Date)
		return result, nil
	}

	result.Text = DigestText(cfg.Webhook.Preamble, result.Date, today)

	dispatched := s.notifier.Dispatch(ctx, notifier.Plan{
		Source: "digest",
		Webhooks: []notifier.WebhookPlan{{
			URL:     cfg.Webhook.URL,
			Method:  http.MethodPost,
			Payload: map[string]string{"text": result.Text},
		}},
	})
	if len(dispatched.Outcomes) > 0 {
		outcome := dispatched.Outcomes[0]
		result.Outcome = &outcome
		result.Sent = outcome.Delivered
	}

	s.log.Info("digest run finished", "date", result.Date, "events", result.Events, "sent", result.Sent)
	return result, nil
}

// DigestText renders the digest message for the given events
func DigestText(preamble, date string, events []models.Event) string {
	var b strings.Builder
	b.WriteString(preamble)
	b.WriteString("📅 ")
	b.WriteString(date)
	b.WriteString(" 오늘 일정 안내\n")

	lines := make([]string, 0, len(events))
	for _, e := range events {
		line := "- " + e.Title
		if e.Description != "" {
			line += " (" + e.Description + ")"
		}
		lines = append(lines, line)
	}
	b.WriteString(strings.Join(lines, "\n"))

	return b.String()
}

func (s *digestService) fetchJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch %s: unexpected status %d", url, resp.StatusCode)
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s: %w", url, err)
	}

	return nil
}
