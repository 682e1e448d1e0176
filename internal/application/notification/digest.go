package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/shcya/backend/internal/infrastructure/logger"
	"github.com/shcya/backend/internal/infrastructure/scheduler"
	"go.uber.org/zap"
)

// DigestJobName is the scheduler name of the pending DSC digest
const DigestJobName = "dsc_pending_digest"

// PendingCounter reports how many DSC applications await processing
type PendingCounter interface {
	CountPending(ctx context.Context) (int64, error)
}

// JobMetrics records scheduled job runs
type JobMetrics interface {
	RecordJob(ctx context.Context, job string, d time.Duration, err error)
}

// DailyDigest emails staff the number of pending DSC applications. No
// email is sent when nothing is pending.
type DailyDigest struct {
	counter    PendingCounter
	mailer     Mailer
	recipients []string
	metrics    Metrics
	jobMetrics JobMetrics
	now        func() time.Time
}

// NewDailyDigest creates the digest job. Either metrics argument may be nil.
func NewDailyDigest(counter PendingCounter, mailer Mailer, recipients []string, metrics Metrics, jobMetrics JobMetrics) *DailyDigest {
	return &DailyDigest{
		counter:    counter,
		mailer:     mailer,
		recipients: recipients,
		metrics:    metrics,
		jobMetrics: jobMetrics,
		now:        func() time.Time { return time.Now().In(scheduler.IST) },
	}
}

// Name implements scheduler.Job
func (d *DailyDigest) Name() string {
	return DigestJobName
}

// Run implements scheduler.Job
func (d *DailyDigest) Run(ctx context.Context) error {
	started := d.now()
	err := d.run(ctx)
	if d.jobMetrics != nil {
		d.jobMetrics.RecordJob(ctx, DigestJobName, d.now().Sub(started), err)
	}
	return err
}

func (d *DailyDigest) run(ctx context.Context) error {
	pending, err := d.counter.CountPending(ctx)
	if err != nil {
		return fmt.Errorf("count pending applications: %w", err)
	}
	if d.metrics != nil {
		d.metrics.RecordPendingDSC(ctx, pending)
	}

	log := logger.L(ctx).With(zap.Int64("pending", pending))
	if pending == 0 || len(d.recipients) == 0 {
		log.Info("Digest skipped", zap.Int("recipients", len(d.recipients)))
		return nil
	}

	day := d.now().Format("02 Jan 2006")
	noun := "applications"
	if pending == 1 {
		noun = "application"
	}
	msg := Message{
		To:      d.recipients,
		Subject: fmt.Sprintf("%d pending DSC %s (%s)", pending, noun, day),
		Text: fmt.Sprintf("There are %d DSC %s waiting to be processed as of %s.\n"+
			"Open the back office to review them.\n", pending, noun, day),
		Tags: map[string]string{"job": DigestJobName},
	}
	if err := d.mailer.Send(ctx, msg); err != nil {
		return fmt.Errorf("send digest: %w", err)
	}
	log.Info("Digest sent")
	return nil
}
