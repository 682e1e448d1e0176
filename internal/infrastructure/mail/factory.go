package mail

import (
	"fmt"

	"github.com/shcya/backend/internal/application/notification"
	"github.com/shcya/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// New returns the mailer selected by cfg.Provider
func New(cfg config.MailConfig, logger *zap.Logger) (notification.Mailer, error) {
	switch cfg.Provider {
	case "resend":
		return NewResendMailer(cfg.APIKey, cfg.From, logger)
	case "log", "":
		return NewLogMailer(logger), nil
	default:
		return nil, fmt.Errorf("unknown mail provider %q", cfg.Provider)
	}
}
