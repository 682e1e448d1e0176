// Package careers handles job applications from the careers page.
package careers

import (
	"context"

	"github.com/google/uuid"
	"github.com/shcya/backend/internal/application/submission"
	"github.com/shcya/backend/internal/domain/careers"
	"github.com/shcya/backend/internal/domain/shared"
	"github.com/shcya/backend/internal/infrastructure/logger"
	"github.com/shcya/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

const duplicateMessage = "You have already applied for this position."

// Service handles job application operations
type Service struct {
	repo      careers.Repository
	gate      *submission.Gate
	publisher shared.EventPublisher
}

// NewService creates a careers Service
func NewService(repo careers.Repository, gate *submission.Gate, publisher shared.EventPublisher) *Service {
	if gate == nil {
		gate = submission.NewGate(nil, 0, nil)
	}
	return &Service{repo: repo, gate: gate, publisher: publisher}
}

// Submit validates and stores a job application
func (s *Service) Submit(ctx context.Context, req SubmitApplicationRequest) (*ApplicationResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "careers", "submit")
	defer span.End()

	app, err := careers.NewJobApplication(
		careers.Candidate{
			FullName:       req.FullName,
			Email:          req.Email,
			Phone:          req.Phone,
			CurrentCompany: req.CurrentCompany,
			Qualification:  req.Qualification,
			Skills:         req.Skills,
		},
		careers.Preferences{
			PositionApplied: req.PositionApplied,
			ExperienceYears: req.ExperienceYears,
			ExpectedSalary:  req.ExpectedSalary,
			Availability:    careers.Availability(req.Availability),
			EmploymentType:  careers.EmploymentType(req.EmploymentType),
		},
		req.CoverLetter,
		req.ResumeURL,
	)
	if err != nil {
		s.gate.Rejected(ctx, submission.FormCareers)
		return nil, err
	}

	ticket, err := s.gate.Admit(ctx, submission.FormCareers, app.DedupeKey(), duplicateMessage)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, app); err != nil {
		ticket.Fail(ctx, err)
		telemetry.RecordError(span, err)
		return nil, err
	}
	ticket.Accept(ctx)

	if err := shared.PublishAndClear(ctx, s.publisher, app); err != nil {
		logger.L(ctx).Warn("Failed to publish job application events",
			zap.String("application_id", app.ID.String()),
			zap.Error(err),
		)
	}
	logger.L(ctx).Info("Job application submitted",
		zap.String("application_id", app.ID.String()),
		zap.String("position", app.PositionApplied),
	)

	resp := ToApplicationResponse(app)
	return &resp, nil
}

// GetByID returns one job application
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*ApplicationResponse, error) {
	app, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToApplicationResponse(app)
	return &resp, nil
}

// List returns a page of job applications and the total count
func (s *Service) List(ctx context.Context, f ListFilter) ([]ApplicationResponse, int64, error) {
	if f.Status != "" && !careers.Status(f.Status).IsValid() {
		return nil, 0, shared.NewDomainError("INVALID_STATUS", "Unknown application status: "+f.Status)
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
	return ToApplicationResponses(items), total, nil
}

// UpdateStatus records a screening decision
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, req UpdateStatusRequest) (*ApplicationResponse, error) {
	app, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := app.UpdateStatus(careers.Status(req.Status)); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, app); err != nil {
		return nil, err
	}

	logger.L(ctx).Info("Job application status updated",
		zap.String("application_id", app.ID.String()),
		zap.String("status", string(app.Status)),
		zap.String("actor", logger.GetActor(ctx)),
	)
	resp := ToApplicationResponse(app)
	return &resp, nil
}
