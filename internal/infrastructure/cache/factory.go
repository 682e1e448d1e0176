package cache

import (
	"context"
	"io"

	"github.com/shcya/backend/internal/domain/shared"
	"github.com/shcya/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// Guard is a SubmissionGuard that owns resources released by Close
type Guard interface {
	shared.SubmissionGuard
	io.Closer
}

// NewSubmissionGuard returns the Redis guard when Redis is enabled and
// reachable, otherwise the in-memory guard.
func NewSubmissionGuard(ctx context.Context, cfg config.RedisConfig, logger *zap.Logger) Guard {
	if !cfg.Enabled {
		logger.Info("Using in-memory submission guard")
		return NewInMemorySubmissionGuard(0)
	}

	client, err := NewRedisClient(ctx, cfg)
	if err != nil {
		logger.Warn("Redis unavailable, falling back to in-memory submission guard. "+
			"Duplicate submissions are only detected per instance.",
			zap.String("addr", cfg.Addr()),
			zap.Error(err),
		)
		return NewInMemorySubmissionGuard(0)
	}

	logger.Info("Using Redis submission guard", zap.String("addr", cfg.Addr()))
	return NewRedisSubmissionGuard(client, "")
}
