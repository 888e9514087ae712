package notifier

import (
	"bytes"
	"context"
	"fmt"

	"github.com/wneessen/go-mail"
)

// SMTPConfig holds the outgoing mail server settings
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
}

// SMTPMailer sends emails through an SMTP server
type SMTPMailer struct {
	cfg SMTPConfig
}

// NewSMTPMailer returns a mailer for cfg, or nil when no host is configured
func NewSMTPMailer(cfg SMTPConfig) *SMTPMailer {
	if cfg.Host == "" {
		return nil
	}
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	return &SMTPMailer{cfg: cfg}
}

// Send delivers msg to a single recipient
func (m *SMTPMailer) Send(ctx context.Context, to string, msg *Email) error {
	message, err := m.build(to, msg)
	if err != nil {
		return err
	}

	opts := []mail.Option{
		mail.WithPort(m.cfg.Port),
		mail.WithTLSPortPolicy(mail.TLSOpportunistic),
	}
	if m.cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(m.cfg.Username),
			mail.WithPassword(m.cfg.Password),
		)
	}

	client, err := mail.NewClient(m.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("failed to create mail client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, message); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", to, err)
	}

	return nil
}

func (m *SMTPMailer) build(to string, msg *Email) (*mail.Msg, error) {
	message := mail.NewMsg()

	fromName := msg.FromName
	if fromName == "" {
		fromName = m.cfg.FromName
	}
	from := m.cfg.From
	if from == "" {
		from = m.cfg.Username
	}

	if fromName != "" {
		if err := message.FromFormat(fromName, from); err != nil {
			return nil, fmt.Errorf("invalid sender %q: %w", from, err)
		}
	} else if err := message.From(from); err != nil {
		return nil, fmt.Errorf("invalid sender %q: %w", from, err)
	}

	if err := message.To(to); err != nil {
		return nil, fmt.Errorf("invalid recipient %q: %w", to, err)
	}

	message.Subject(msg.Subject)
	message.SetBodyString(mail.TypeTextPlain, msg.Body)

	for _, a := range msg.Attachments {
		err := message.AttachReader(a.Name, bytes.NewReader(a.Data),
			mail.WithFileContentType(mail.ContentType(a.ContentType)))
		if err != nil {
			return nil, fmt.Errorf("failed to attach %s: %w", a.Name, err)
		}
	}

	return message, nil
}
