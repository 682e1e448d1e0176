package notification

import (
	"context"
	"fmt"
	"strings"

	"github.com/shcya/backend/internal/application/submission"
	"github.com/shcya/backend/internal/domain/careers"
	"github.com/shcya/backend/internal/domain/dsc"
	"github.com/shcya/backend/internal/domain/inquiry"
	"github.com/shcya/backend/internal/domain/shared"
	"github.com/shcya/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// Metrics receives notification outcomes. *telemetry.BusinessMetrics implements it.
type Metrics interface {
	RecordNotificationFailure(ctx context.Context, form string)
	RecordPendingDSC(ctx context.Context, count int64)
}

// StaffNotifier emails the firm's staff when a form is submitted. Delivery
// failures are logged and counted; they never reach the submitter.
type StaffNotifier struct {
	mailer     Mailer
	recipients []string
	metrics    Metrics
	logger     *zap.Logger
}

// NewStaffNotifier creates a StaffNotifier. metrics may be nil.
func NewStaffNotifier(mailer Mailer, recipients []string, metrics Metrics, logger *zap.Logger) *StaffNotifier {
	return &StaffNotifier{
		mailer:     mailer,
		recipients: recipients,
		metrics:    metrics,
		logger:     logger.Named("notification"),
	}
}

// EventTypes returns the submission events the notifier handles
func (n *StaffNotifier) EventTypes() []string {
	return []string{
		inquiry.EventTypeInquirySubmitted,
		dsc.EventTypeApplicationSubmitted,
		careers.EventTypeJobApplicationSubmitted,
	}
}

// Handle sends the staff email for one submission event
func (n *StaffNotifier) Handle(ctx context.Context, event shared.DomainEvent) error {
	msg, form, ok := n.compose(event)
	if !ok {
		n.logger.Debug("Ignoring event", zap.String("event_type", event.EventType()))
		return nil
	}
	if len(n.recipients) == 0 {
		n.logger.Debug("No staff recipients configured", zap.String("form", form))
		return nil
	}

	if err := n.mailer.Send(ctx, msg); err != nil {
		logger.L(ctx).Error("Failed to notify staff",
			zap.String("form", form),
			zap.String("event_id", event.EventID().String()),
			zap.String("aggregate_id", event.AggregateID().String()),
			zap.Error(err),
		)
		if n.metrics != nil {
			n.metrics.RecordNotificationFailure(ctx, form)
		}
		return nil
	}

	n.logger.Info("Staff notified",
		zap.String("form", form),
		zap.String("aggregate_id", event.AggregateID().String()),
	)
	return nil
}

func (n *StaffNotifier) compose(event shared.DomainEvent) (Message, string, bool) {
	switch e := event.(type) {
	case *inquiry.InquirySubmittedEvent:
		return n.inquiryMessage(e), submission.FormInquiry, true
	case *dsc.ApplicationSubmittedEvent:
		return n.dscMessage(e), submission.FormDSC, true
	case *careers.JobApplicationSubmittedEvent:
		return n.careersMessage(e), submission.FormCareers, true
	}
	return Message{}, "", false
}

func (n *StaffNotifier) inquiryMessage(e *inquiry.InquirySubmittedEvent) Message {
	var b body
	b.line("Name", e.Name)
	b.line("Email", e.Email)
	b.line("Phone", e.Phone)
	b.line("Company", e.Company)
	b.line("Service", string(e.ServiceType))
	b.line("Reference", e.InquiryID.String())
	b.paragraph(e.Message)

	return Message{
		To:      n.recipients,
		ReplyTo: e.Email,
		Subject: fmt.Sprintf("New enquiry: %s from %s", e.ServiceType, e.Name),
		Text:    b.String(),
		Tags:    map[string]string{"form": submission.FormInquiry},
	}
}

func (n *StaffNotifier) dscMessage(e *dsc.ApplicationSubmittedEvent) Message {
	var b body
	b.line("Applicant", e.ApplicantName)
	b.line("Email", e.Email)
	b.line("Mobile", e.Mobile)
	b.line("PAN", e.PANNumber)
	b.line("Aadhaar", e.MaskedAadhaar)
	b.line("Class", string(e.Class))
	b.line("Type", string(e.ApplicationType))
	b.line("Organization", e.Organization)
	b.line("Reference", e.ApplicationID.String())

	return Message{
		To:      n.recipients,
		ReplyTo: e.Email,
		Subject: fmt.Sprintf("New DSC application (%s, %s) from %s", e.Class, e.ApplicationType, e.ApplicantName),
		Text:    b.String(),
		Tags:    map[string]string{"form": submission.FormDSC},
	}
}

func (n *StaffNotifier) careersMessage(e *careers.JobApplicationSubmittedEvent) Message {
	var b body
	b.line("Candidate", e.FullName)
	b.line("Email", e.Email)
	b.line("Phone", e.Phone)
	b.line("Position", e.PositionApplied)
	b.line("Experience", fmt.Sprintf("%d years", e.ExperienceYears))
	b.line("Employment", string(e.EmploymentType))
	b.line("Resume", e.ResumeURL)
	b.line("Reference", e.ApplicationID.String())

	return Message{
		To:      n.recipients,
		ReplyTo: e.Email,
		Subject: fmt.Sprintf("New application for %s from %s", e.PositionApplied, e.FullName),
		Text:    b.String(),
		Tags:    map[string]string{"form": submission.FormCareers},
	}
}

// body builds a plain text email, skipping empty fields
type body struct {
	strings.Builder
}

func (b *body) line(label, value string) {
	if value == "" {
		return
	}
	b.WriteString(label)
	b.WriteString(": ")
	b.WriteString(value)
	b.WriteByte('\n')
}

func (b *body) paragraph(text string) {
	if text == "" {
		return
	}
	b.WriteByte('\n')
	b.WriteString(text)
	b.WriteByte('\n')
}
