// Package dsc handles Digital Signature Certificate applications from
// intake to completion.
package dsc

import (
	"context"

	"github.com/google/uuid"
	"github.com/shcya/backend/internal/application/submission"
	"github.com/shcya/backend/internal/domain/dsc"
	"github.com/shcya/backend/internal/domain/shared"
	"github.com/shcya/backend/internal/domain/shared/valueobject"
	"github.com/shcya/backend/internal/infrastructure/logger"
	"github.com/shcya/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

const duplicateMessage = "This application has already been submitted."

// Service handles DSC application operations
type Service struct {
	repo      dsc.Repository
	gate      *submission.Gate
	publisher shared.EventPublisher
}

// NewService creates a DSC application Service
func NewService(repo dsc.Repository, gate *submission.Gate, publisher shared.EventPublisher) *Service {
	if gate == nil {
		gate = submission.NewGate(nil, 0, nil)
	}
	return &Service{repo: repo, gate: gate, publisher: publisher}
}

// Submit validates and stores an application. A second application for
// the same PAN and type within the window is ALREADY_EXISTS.
func (s *Service) Submit(ctx context.Context, req SubmitApplicationRequest) (*ApplicationResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "dsc", "submit")
	defer span.End()

	app, err := buildApplication(req)
	if err != nil {
		s.gate.Rejected(ctx, submission.FormDSC)
		return nil, err
	}

	ticket, err := s.gate.Admit(ctx, submission.FormDSC, app.DedupeKey(), duplicateMessage)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, app); err != nil {
		ticket.Fail(ctx, err)
		telemetry.RecordError(span, err)
		return nil, err
	}
	ticket.Accept(ctx)

	s.publish(ctx, app)
	logger.L(ctx).Info("DSC application submitted",
		zap.String("application_id", app.ID.String()),
		zap.String("dsc_class", string(app.Class)),
		zap.String("application_type", string(app.ApplicationType)),
		zap.String("aadhaar", dsc.MaskAadhaar(app.AadhaarNumber)),
	)

	resp := ToApplicationResponse(app)
	return &resp, nil
}

func buildApplication(req SubmitApplicationRequest) (*dsc.Application, error) {
	address, err := valueobject.NewAddress(req.Address, req.City, req.State, req.Pincode)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_ADDRESS", err.Error())
	}
	applicant := dsc.Applicant{
		Name:          req.ApplicantName,
		Email:         req.Email,
		Mobile:        req.Mobile,
		PANNumber:     req.PANNumber,
		AadhaarNumber: req.AadhaarNumber,
		Organization:  req.Organization,
		Designation:   req.Designation,
	}
	docs := dsc.Documents{
		PANDocumentURL:     req.PANDocumentURL,
		AadhaarDocumentURL: req.AadhaarDocumentURL,
		PhotoURL:           req.PhotoURL,
	}
	return dsc.NewApplication(applicant, dsc.Class(req.DSCClass), dsc.ApplicationType(req.ApplicationType), address, docs)
}

// GetByID returns one application
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*ApplicationResponse, error) {
	app, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToApplicationResponse(app)
	return &resp, nil
}

// List returns a page of applications and the total count
func (s *Service) List(ctx context.Context, f ListFilter) ([]ApplicationResponse, int64, error) {
	if f.Status != "" && !dsc.Status(f.Status).IsValid() {
		return nil, 0, shared.NewDomainError("INVALID_STATUS", "Unknown application status: "+f.Status)
	}
	if f.DSCClass != "" && !dsc.Class(f.DSCClass).IsValid() {
		return nil, 0, shared.NewDomainError("INVALID_DSC_CLASS", "DSC class must be class2 or class3")
	}
	if f.ApplicationType != "" && !dsc.ApplicationType(f.ApplicationType).IsValid() {
		return nil, 0, shared.NewDomainError("INVALID_APPLICATION_TYPE", "Application type must be new, renewal or revoke")
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

// UpdateStatus moves an application through processing
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, req UpdateStatusRequest) (*ApplicationResponse, error) {
	app, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := app.UpdateStatus(dsc.Status(req.Status)); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, app); err != nil {
		return nil, err
	}

	s.publish(ctx, app)
	logger.L(ctx).Info("DSC application status updated",
		zap.String("application_id", app.ID.String()),
		zap.String("status", string(app.Status)),
		zap.String("actor", logger.GetActor(ctx)),
	)

	resp := ToApplicationResponse(app)
	return &resp, nil
}

// AttachDocument records the URL of an uploaded document on an application
func (s *Service) AttachDocument(ctx context.Context, id uuid.UUID, req AttachDocumentRequest) (*ApplicationResponse, error) {
	app, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := app.AttachDocument(dsc.DocumentKind(req.Kind), req.URL); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, app); err != nil {
		return nil, err
	}

	logger.L(ctx).Info("DSC document attached",
		zap.String("application_id", app.ID.String()),
		zap.String("kind", req.Kind),
		zap.Bool("complete", app.HasAllDocuments()),
	)
	resp := ToApplicationResponse(app)
	return &resp, nil
}

// CountPending returns the number of applications awaiting processing
func (s *Service) CountPending(ctx context.Context) (int64, error) {
	return s.repo.CountByStatus(ctx, dsc.StatusPending)
}

func (s *Service) publish(ctx context.Context, app *dsc.Application) {
	if err := shared.PublishAndClear(ctx, s.publisher, app); err != nil {
		logger.L(ctx).Warn("Failed to publish DSC application events",
			zap.String("application_id", app.ID.String()),
			zap.Error(err),
		)
	}
}
