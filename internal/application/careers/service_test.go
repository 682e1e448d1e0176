package careers

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shcya/backend/internal/application/submission"
	"github.com/shcya/backend/internal/domain/careers"
	"github.com/shcya/backend/internal/domain/shared"
	"github.com/shcya/backend/internal/infrastructure/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) FindByID(ctx context.Context, id uuid.UUID) (*careers.JobApplication, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*careers.JobApplication), args.Error(1)
}

func (m *MockRepository) FindAll(ctx context.Context, filter shared.Filter) ([]careers.JobApplication, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]careers.JobApplication), args.Error(1)
}

func (m *MockRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) Save(ctx context.Context, app *careers.JobApplication) error {
	return m.Called(ctx, app).Error(0)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	return m.Called(ctx, events).Error(0)
}

func validRequest() SubmitApplicationRequest {
	return SubmitApplicationRequest{
		FullName:        "Arjun Nair",
		Email:           "arjun@example.com",
		Phone:           "9988776655",
		PositionApplied: "Audit Assistant",
		ExperienceYears: 2,
		Qualification:   "CA Inter",
		Availability:    "1-month",
		EmploymentType:  "full-time",
	}
}

func TestService_Submit_DedupesWithinWindow(t *testing.T) {
	repo := new(MockRepository)
	pub := new(MockPublisher)
	repo.On("Save", mock.Anything, mock.AnythingOfType("*careers.JobApplication")).Return(nil).Once()
	pub.On("Publish", mock.Anything, mock.MatchedBy(func(events []shared.DomainEvent) bool {
		return len(events) == 1 && events[0].EventType() == careers.EventTypeJobApplicationSubmitted
	})).Return(nil).Once()

	guard := cache.NewInMemorySubmissionGuard(time.Minute)
	defer guard.Close()
	svc := NewService(repo, submission.NewGate(guard, time.Minute, nil), pub)

	resp, err := svc.Submit(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, "received", resp.Status)
	assert.Equal(t, "Audit Assistant", resp.PositionApplied)

	again := validRequest()
	again.Email = "ARJUN@example.com"
	again.PositionApplied = "audit assistant "
	_, err = svc.Submit(context.Background(), again)
	assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	assert.Equal(t, duplicateMessage, err.Error())

	other := validRequest()
	other.PositionApplied = "Tax Associate"
	repo.On("Save", mock.Anything, mock.Anything).Return(nil).Once()
	pub.On("Publish", mock.Anything, mock.Anything).Return(nil).Once()
	_, err = svc.Submit(context.Background(), other)
	require.NoError(t, err)

	mock.AssertExpectationsForObjects(t, repo, pub)
}

func TestService_Submit_Invalid(t *testing.T) {
	repo := new(MockRepository)
	req := validRequest()
	req.Availability = "someday"

	_, err := NewService(repo, nil, nil).Submit(context.Background(), req)
	de, ok := shared.AsDomainError(err)
	require.True(t, ok)
	assert.Equal(t, "INVALID_AVAILABILITY", de.Code)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestService_List(t *testing.T) {
	repo := new(MockRepository)
	matchFilter := mock.MatchedBy(func(f shared.Filter) bool {
		return f.Filters["position_applied"] == "Audit Assistant" && f.OrderBy == "created_at"
	})
	repo.On("FindAll", mock.Anything, matchFilter).Return([]careers.JobApplication{}, nil).Once()
	repo.On("Count", mock.Anything, matchFilter).Return(int64(0), nil).Once()

	items, total, err := NewService(repo, nil, nil).List(context.Background(), ListFilter{PositionApplied: "Audit Assistant"})
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Zero(t, total)

	_, _, err = NewService(repo, nil, nil).List(context.Background(), ListFilter{Status: "hired"})
	assert.Error(t, err)
	repo.AssertExpectations(t)
}

func TestService_UpdateStatus(t *testing.T) {
	req := validRequest()
	app, err := careers.NewJobApplication(
		careers.Candidate{FullName: req.FullName, Email: req.Email, Phone: req.Phone, Qualification: req.Qualification},
		careers.Preferences{PositionApplied: req.PositionApplied, Availability: careers.AvailabilityImmediate, EmploymentType: careers.EmploymentRemote},
		"", "",
	)
	require.NoError(t, err)

	repo := new(MockRepository)
	repo.On("FindByID", mock.Anything, app.ID).Return(app, nil)
	repo.On("Save", mock.Anything, app).Return(nil).Once()

	svc := NewService(repo, nil, nil)
	resp, err := svc.UpdateStatus(context.Background(), app.ID, UpdateStatusRequest{Status: "shortlisted"})
	require.NoError(t, err)
	assert.Equal(t, "shortlisted", resp.Status)

	_, err = svc.UpdateStatus(context.Background(), app.ID, UpdateStatusRequest{Status: "received"})
	assert.ErrorIs(t, err, shared.ErrInvalidState)

	missing := uuid.New()
	repo.On("FindByID", mock.Anything, missing).Return(nil, shared.ErrNotFound)
	_, err = svc.UpdateStatus(context.Background(), missing, UpdateStatusRequest{Status: "rejected"})
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
