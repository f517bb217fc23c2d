// Package mailer delivers transactional email through the configured mail
// provider's HTTP API. Delivery is synchronous from the caller's point of
// view: the forgot-password flow needs to know whether the message was
// accepted before it commits to a pending reset.
package mailer

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-resty/resty/v2"

	"github.com/tournest/tournest/internal/config"
	"github.com/tournest/tournest/internal/logger"
)

// Message is one outbound email.
type Message struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Mailer is the outbound email collaborator.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// ErrNotConfigured is returned when no mail endpoint has been configured.
var ErrNotConfigured = errors.New("mail endpoint is not configured")

// httpMailer posts messages to the provider's submission endpoint with
// bearer authentication.
type httpMailer struct {
	client   *resty.Client
	endpoint string
	from     string
	logger   *logger.Logger
}

// payload is the provider's submission format.
type payload struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
}

// NewMailer constructs a [Mailer] from the mail configuration.
func NewMailer(cfg config.Mail, log *logger.Logger) Mailer {
	client := resty.New().
		SetTimeout(cfg.Timeout).
		SetAuthToken(cfg.APIToken).
		SetHeader("Content-Type", "application/json")

	return &httpMailer{
		client:   client,
		endpoint: cfg.Endpoint,
		from:     cfg.From,
		logger:   log,
	}
}

// Send submits the message and fails on any non-2xx provider response.
func (m *httpMailer) Send(ctx context.Context, msg Message) error {
	log := logger.FromContext(ctx)

	if m.endpoint == "" {
		return ErrNotConfigured
	}

	resp, err := m.client.R().
		SetContext(ctx).
		SetBody(payload{
			From:    m.from,
			To:      msg.To,
			Subject: msg.Subject,
			Text:    msg.Body,
		}).
		Post(m.endpoint)
	if err != nil {
		log.Err(err).Str("to", msg.To).Msg("mail submission failed")
		return fmt.Errorf("mail submission failed: %w", err)
	}

	if resp.IsError() {
		log.Error().Str("to", msg.To).Int("status", resp.StatusCode()).Msg("mail provider rejected message")
		return fmt.Errorf("mail provider rejected message: status %d", resp.StatusCode())
	}

	return nil
}
