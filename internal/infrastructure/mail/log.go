package mail

import (
	"context"
	"sync"

	"github.com/shcya/backend/internal/application/notification"
	"go.uber.org/zap"
)

// Ensure LogMailer implements Mailer
var _ notification.Mailer = (*LogMailer)(nil)

// LogMailer writes messages to the log instead of sending them. It is the
// development default and keeps the last messages for inspection.
type LogMailer struct {
	logger *zap.Logger

	mu   sync.Mutex
	sent []notification.Message
}

const logMailerKeep = 50

// NewLogMailer creates a LogMailer
func NewLogMailer(logger *zap.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

// Send logs msg
func (m *LogMailer) Send(ctx context.Context, msg notification.Message) error {
	m.logger.Info("Email (not sent)",
		zap.Strings("to", msg.To),
		zap.String("reply_to", msg.ReplyTo),
		zap.String("subject", msg.Subject),
		zap.String("text", msg.Text),
	)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	if len(m.sent) > logMailerKeep {
		m.sent = m.sent[len(m.sent)-logMailerKeep:]
	}
	return nil
}

// Sent returns a copy of the retained messages, oldest first
func (m *LogMailer) Sent() []notification.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]notification.Message(nil), m.sent...)
}
