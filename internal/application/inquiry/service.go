// Package inquiry handles service enquiries from the contact forms and
// their follow-up in the back office.
package inquiry

import (
	"context"

	"github.com/google/uuid"
	"github.com/shcya/backend/internal/application/submission"
	"github.com/shcya/backend/internal/domain/inquiry"
	"github.com/shcya/backend/internal/domain/shared"
	"github.com/shcya/backend/internal/infrastructure/logger"
	"github.com/shcya/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

const duplicateMessage = "This inquiry has already been submitted."

// Service handles enquiry operations
type Service struct {
	repo      inquiry.Repository
	gate      *submission.Gate
	publisher shared.EventPublisher
}

// NewService creates an enquiry Service
func NewService(repo inquiry.Repository, gate *submission.Gate, publisher shared.EventPublisher) *Service {
	if gate == nil {
		gate = submission.NewGate(nil, 0, nil)
	}
	return &Service{repo: repo, gate: gate, publisher: publisher}
}

// Submit validates and stores an enquiry, then announces it. A repeat of
// the same email and service within the window is ALREADY_EXISTS.
func (s *Service) Submit(ctx context.Context, req SubmitInquiryRequest) (*InquiryResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "inquiry", "submit")
	defer span.End()

	inq, err := inquiry.NewServiceInquiry(req.Name, req.Email, req.Phone, req.Company, inquiry.ServiceType(req.ServiceType), req.Message)
	if err != nil {
		s.gate.Rejected(ctx, submission.FormInquiry)
		return nil, err
	}

	ticket, err := s.gate.Admit(ctx, submission.FormInquiry, inq.DedupeKey(), duplicateMessage)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, inq); err != nil {
		ticket.Fail(ctx, err)
		telemetry.RecordError(span, err)
		return nil, err
	}
	ticket.Accept(ctx)

	s.publish(ctx, inq)
	logger.L(ctx).Info("Inquiry submitted",
		zap.String("inquiry_id", inq.ID.String()),
		zap.String("service_type", string(inq.ServiceType)),
	)

	resp := ToInquiryResponse(inq)
	return &resp, nil
}

// GetByID returns one enquiry
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*InquiryResponse, error) {
	inq, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToInquiryResponse(inq)
	return &resp, nil
}

// List returns a page of enquiries, newest first by default, and the total count.
func (s *Service) List(ctx context.Context, f ListFilter) ([]InquiryResponse, int64, error) {
	if f.ServiceType != "" && !inquiry.ServiceType(f.ServiceType).IsValid() {
		return nil, 0, shared.NewDomainError("INVALID_SERVICE_TYPE", "Unknown service type: "+f.ServiceType)
	}
	if f.Status != "" && !inquiry.Status(f.Status).IsValid() {
		return nil, 0, shared.NewDomainError("INVALID_STATUS", "Unknown inquiry status: "+f.Status)
	}

	filter := f.ToDomainFilter()
	items, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return ToInquiryResponses(items), total, nil
}

// UpdateStatus records staff follow-up on an enquiry
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, req UpdateStatusRequest) (*InquiryResponse, error) {
	inq, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := inq.UpdateStatus(inquiry.Status(req.Status)); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, inq); err != nil {
		return nil, err
	}

	s.publish(ctx, inq)
	logger.L(ctx).Info("Inquiry status updated",
		zap.String("inquiry_id", inq.ID.String()),
		zap.String("status", string(inq.Status)),
		zap.String("actor", logger.GetActor(ctx)),
	)

	resp := ToInquiryResponse(inq)
	return &resp, nil
}

// publish hands the events to the bus. The record is already stored, so
// a publish failure is logged and not returned.
func (s *Service) publish(ctx context.Context, inq *inquiry.ServiceInquiry) {
	if err := shared.PublishAndClear(ctx, s.publisher, inq); err != nil {
		logger.L(ctx).Warn("Failed to publish inquiry events",
			zap.String("inquiry_id", inq.ID.String()),
			zap.Error(err),
		)
	}
}
