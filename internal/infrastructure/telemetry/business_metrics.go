package telemetry

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/metric"
)

// ErrMeterNil is returned when a metrics constructor gets no meter
var ErrMeterNil = errors.New("telemetry: meter cannot be nil")

// Submission results
const (
	ResultAccepted  = "accepted"
	ResultDuplicate = "duplicate"
	ResultInvalid   = "invalid"
	ResultFailed    = "failed"
)

// BusinessMetrics are the site's domain counters. A nil *BusinessMetrics
// is valid and records nothing.
type BusinessMetrics struct {
	evaluations     *Counter
	submissions     *Counter
	uploads         *Counter
	uploadBytes     *Histogram
	pendingDSC      *Gauge
	jobDuration     *Histogram
	notificationErr *Counter
}

// NewBusinessMetrics creates the instruments on meter.
func NewBusinessMetrics(meter metric.Meter) (*BusinessMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}

	bm := &BusinessMetrics{}
	var err error

	if bm.evaluations, err = NewCounter(meter,
		"shcya_rule86b_evaluations_total",
		"Rule 86B evaluations by outcome",
		"{evaluations}",
	); err != nil {
		return nil, err
	}
	if bm.submissions, err = NewCounter(meter,
		"shcya_form_submissions_total",
		"Public form submissions by form and result",
		"{submissions}",
	); err != nil {
		return nil, err
	}
	if bm.uploads, err = NewCounter(meter,
		"shcya_document_uploads_total",
		"Document uploads by kind and result",
		"{uploads}",
	); err != nil {
		return nil, err
	}
	if bm.uploadBytes, err = NewHistogram(meter, HistogramOpts{
		Name:        "shcya_document_upload_size_bytes",
		Description: "Size of accepted document uploads",
		Unit:        "By",
		Boundaries:  UploadSizeBuckets,
	}); err != nil {
		return nil, err
	}
	if bm.pendingDSC, err = NewGauge(meter,
		"shcya_dsc_applications_pending",
		"DSC applications awaiting processing at the last digest",
		"{applications}",
	); err != nil {
		return nil, err
	}
	if bm.jobDuration, err = NewHistogram(meter, HistogramOpts{
		Name:        "shcya_job_duration_seconds",
		Description: "Scheduled job run time",
		Unit:        "s",
		Boundaries:  JobDurationBuckets,
	}); err != nil {
		return nil, err
	}
	if bm.notificationErr, err = NewCounter(meter,
		"shcya_notification_failures_total",
		"Staff notifications that could not be sent",
		"{notifications}",
	); err != nil {
		return nil, err
	}
	return bm, nil
}

// RecordEvaluation counts one Rule 86B evaluation.
func (bm *BusinessMetrics) RecordEvaluation(ctx context.Context, applies bool, reasonCode string) {
	if bm == nil {
		return
	}
	bm.evaluations.Inc(ctx, AttrApplies.Bool(applies), AttrReasonCode.String(reasonCode))
}

// RecordSubmission counts one form submission; result is one of the Result* constants.
func (bm *BusinessMetrics) RecordSubmission(ctx context.Context, form, result string) {
	if bm == nil {
		return
	}
	bm.submissions.Inc(ctx, AttrForm.String(form), AttrResult.String(result))
}

// RecordUpload counts an upload attempt. size is recorded only on success.
func (bm *BusinessMetrics) RecordUpload(ctx context.Context, kind, result string, size int64) {
	if bm == nil {
		return
	}
	bm.uploads.Inc(ctx, AttrDocumentKind.String(kind), AttrResult.String(result))
	if result == ResultAccepted && size > 0 {
		bm.uploadBytes.Record(ctx, float64(size), AttrDocumentKind.String(kind))
	}
}

// RecordPendingDSC publishes the pending DSC count seen by the digest job.
func (bm *BusinessMetrics) RecordPendingDSC(ctx context.Context, count int64) {
	if bm == nil {
		return
	}
	bm.pendingDSC.Record(ctx, count)
}

// RecordJob records how long a scheduled job ran and whether it failed.
func (bm *BusinessMetrics) RecordJob(ctx context.Context, job string, d time.Duration, err error) {
	if bm == nil {
		return
	}
	result := ResultAccepted
	if err != nil {
		result = ResultFailed
	}
	bm.jobDuration.RecordDuration(ctx, d, AttrJob.String(job), AttrResult.String(result))
}

// RecordNotificationFailure counts a staff email that was not delivered.
func (bm *BusinessMetrics) RecordNotificationFailure(ctx context.Context, form string) {
	if bm == nil {
		return
	}
	bm.notificationErr.Inc(ctx, AttrForm.String(form))
}
