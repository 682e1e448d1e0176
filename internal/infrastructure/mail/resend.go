// Package mail sends staff notifications.
package mail

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sort"

	"github.com/resend/resend-go/v2"
	"github.com/shcya/backend/internal/application/notification"
	"github.com/shcya/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// Ensure ResendMailer implements Mailer
var _ notification.Mailer = (*ResendMailer)(nil)

// ResendMailer delivers email through the Resend API
type ResendMailer struct {
	client *resend.Client
	from   string
	logger *zap.Logger
}

// ResendOption configures a ResendMailer
type ResendOption func(*ResendMailer)

// WithBaseURL points the client at another API root, used by tests.
func WithBaseURL(u *url.URL) ResendOption {
	return func(m *ResendMailer) {
		m.client.BaseURL = u
	}
}

// NewResendMailer creates a mailer sending as from
func NewResendMailer(apiKey, from string, logger *zap.Logger, opts ...ResendOption) (*ResendMailer, error) {
	if apiKey == "" {
		return nil, errors.New("resend api key is required")
	}
	if from == "" {
		return nil, errors.New("sender address is required")
	}
	m := &ResendMailer{
		client: resend.NewClient(apiKey),
		from:   from,
		logger: logger,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Send delivers msg
func (m *ResendMailer) Send(ctx context.Context, msg notification.Message) error {
	if len(msg.To) == 0 {
		return errors.New("message has no recipients")
	}

	req := &resend.SendEmailRequest{
		From:    m.from,
		To:      msg.To,
		Subject: msg.Subject,
		Html:    msg.HTML,
		Text:    msg.Text,
		ReplyTo: msg.ReplyTo,
		Tags:    toTags(msg.Tags),
	}

	sent, err := m.client.Emails.SendWithContext(ctx, req)
	if err != nil {
		logger.L(ctx).Error("Failed to send email",
			zap.Strings("to", msg.To),
			zap.String("subject", msg.Subject),
			zap.Error(err),
		)
		return fmt.Errorf("failed to send email: %w", err)
	}

	m.logger.Info("Email sent",
		zap.String("email_id", sent.Id),
		zap.Strings("to", msg.To),
		zap.String("subject", msg.Subject),
	)
	return nil
}

func toTags(tags map[string]string) []resend.Tag {
	if len(tags) == 0 {
		return nil
	}
	names := make([]string, 0, len(tags))
	for name := range tags {
		names = append(names, name)
	}
	sort.Strings(names)
	result := make([]resend.Tag, 0, len(names))
	for _, name := range names {
		result = append(result, resend.Tag{Name: name, Value: tags[name]})
	}
	return result
}
