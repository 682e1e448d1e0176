// Package submission holds the intake steps shared by the public forms:
// repeat suppression and outcome counting.
package submission

import (
	"context"
	"time"

	"github.com/shcya/backend/internal/domain/shared"
	"github.com/shcya/backend/internal/infrastructure/logger"
	"github.com/shcya/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// DefaultWindow is how long a submission blocks its repeats when no
// window is configured.
const DefaultWindow = 10 * time.Minute

// Form names, used as guard key prefixes and metric labels
const (
	FormInquiry = "inquiry"
	FormDSC     = "dsc"
	FormCareers = "careers"
)

// Metrics receives one call per submission outcome. *telemetry.BusinessMetrics
// implements it.
type Metrics interface {
	RecordSubmission(ctx context.Context, form, result string)
}

// Gate admits a submission at most once per window.
type Gate struct {
	guard   shared.SubmissionGuard
	window  time.Duration
	metrics Metrics
}

// NewGate creates a Gate. A nil guard admits everything; window <= 0
// means DefaultWindow.
func NewGate(guard shared.SubmissionGuard, window time.Duration, metrics Metrics) *Gate {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Gate{guard: guard, window: window, metrics: metrics}
}

// Window returns the repeat suppression window
func (g *Gate) Window() time.Duration {
	return g.window
}

// Ticket is an admitted submission. Exactly one of Accept or Fail must be called.
type Ticket struct {
	gate    *Gate
	form    string
	key     string
	claimed bool
}

// Admit claims key for the form. A held key returns ALREADY_EXISTS with
// duplicateMessage. If the guard itself fails, the submission is admitted
// without dedupe.
func (g *Gate) Admit(ctx context.Context, form, key, duplicateMessage string) (*Ticket, error) {
	t := &Ticket{gate: g, form: form, key: key}
	if g.guard == nil {
		return t, nil
	}

	ok, err := g.guard.Claim(ctx, key, g.window)
	if err != nil {
		logger.L(ctx).Warn("Submission guard unavailable, admitting without dedupe",
			zap.String("form", form),
			zap.Error(err),
		)
		return t, nil
	}
	if !ok {
		g.record(ctx, form, telemetry.ResultDuplicate)
		return nil, shared.NewDomainError(shared.CodeAlreadyExists, duplicateMessage)
	}
	t.claimed = true
	return t, nil
}

// Rejected counts a submission that failed validation.
func (g *Gate) Rejected(ctx context.Context, form string) {
	g.record(ctx, form, telemetry.ResultInvalid)
}

// Accept counts the submission as stored. The key stays claimed until
// the window expires.
func (t *Ticket) Accept(ctx context.Context) {
	t.gate.record(ctx, t.form, telemetry.ResultAccepted)
}

// Fail releases the key so the visitor can retry, and counts the failure.
// A duplicate reported by the store is counted as such.
func (t *Ticket) Fail(ctx context.Context, cause error) {
	if t.claimed {
		if err := t.gate.guard.Release(ctx, t.key); err != nil {
			logger.L(ctx).Warn("Failed to release submission guard",
				zap.String("form", t.form),
				zap.Error(err),
			)
		}
	}
	result := telemetry.ResultFailed
	if de, ok := shared.AsDomainError(cause); ok && de.Code == shared.CodeAlreadyExists {
		result = telemetry.ResultDuplicate
	}
	t.gate.record(ctx, t.form, result)
}

func (g *Gate) record(ctx context.Context, form, result string) {
	if g.metrics != nil {
		g.metrics.RecordSubmission(ctx, form, result)
	}
}
