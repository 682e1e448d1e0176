package inquiry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shcya/backend/internal/application/submission"
	"github.com/shcya/backend/internal/domain/inquiry"
	"github.com/shcya/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) FindByID(ctx context.Context, id uuid.UUID) (*inquiry.ServiceInquiry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inquiry.ServiceInquiry), args.Error(1)
}

func (m *MockRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inquiry.ServiceInquiry, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]inquiry.ServiceInquiry), args.Error(1)
}

func (m *MockRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) Save(ctx context.Context, inq *inquiry.ServiceInquiry) error {
	return m.Called(ctx, inq).Error(0)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	return m.Called(ctx, events).Error(0)
}

type MockGuard struct {
	mock.Mock
}

func (m *MockGuard) Claim(ctx context.Context, key string, window time.Duration) (bool, error) {
	args := m.Called(ctx, key, window)
	return args.Bool(0), args.Error(1)
}

func (m *MockGuard) Release(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func validRequest() SubmitInquiryRequest {
	return SubmitInquiryRequest{
		Name:        "Asha Verma",
		Email:       "Asha@Example.com",
		Phone:       "98765 43210",
		Company:     "Verma Traders",
		ServiceType: "Taxation",
		Message:     "Need help with GST returns",
	}
}

func newTestService(repo *MockRepository, guard *MockGuard, pub *MockPublisher) *Service {
	return NewService(repo, submission.NewGate(guard, time.Minute, nil), pub)
}

func TestService_Submit(t *testing.T) {
	repo := new(MockRepository)
	guard := new(MockGuard)
	pub := new(MockPublisher)

	guard.On("Claim", mock.Anything, "inquiry:asha@example.com:taxation", time.Minute).Return(true, nil).Once()
	repo.On("Save", mock.Anything, mock.AnythingOfType("*inquiry.ServiceInquiry")).Return(nil).Once()
	pub.On("Publish", mock.Anything, mock.MatchedBy(func(events []shared.DomainEvent) bool {
		return len(events) == 1 && events[0].EventType() == inquiry.EventTypeInquirySubmitted
	})).Return(nil).Once()

	resp, err := newTestService(repo, guard, pub).Submit(context.Background(), validRequest())
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, resp.ID)
	assert.Equal(t, "asha@example.com", resp.Email)
	assert.Equal(t, "Taxation", resp.ServiceType)
	assert.Equal(t, "new", resp.Status)
	repo.AssertExpectations(t)
	guard.AssertExpectations(t)
	pub.AssertExpectations(t)
}

func TestService_Submit_InvalidInput(t *testing.T) {
	repo := new(MockRepository)
	guard := new(MockGuard)
	req := validRequest()
	req.ServiceType = "Payroll"

	_, err := newTestService(repo, guard, nil).Submit(context.Background(), req)
	require.Error(t, err)
	de, ok := shared.AsDomainError(err)
	require.True(t, ok)
	assert.Equal(t, "INVALID_SERVICE_TYPE", de.Code)
	guard.AssertNotCalled(t, "Claim", mock.Anything, mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestService_Submit_Duplicate(t *testing.T) {
	repo := new(MockRepository)
	guard := new(MockGuard)
	guard.On("Claim", mock.Anything, mock.Anything, time.Minute).Return(false, nil).Once()

	_, err := newTestService(repo, guard, nil).Submit(context.Background(), validRequest())
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	assert.Equal(t, "This inquiry has already been submitted.", err.Error())
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestService_Submit_SaveFailureReleasesGuard(t *testing.T) {
	repo := new(MockRepository)
	guard := new(MockGuard)
	pub := new(MockPublisher)
	saveErr := shared.NewDomainError(shared.CodePermissionDenied, "Database permission error. Please contact support.")

	guard.On("Claim", mock.Anything, "inquiry:asha@example.com:taxation", time.Minute).Return(true, nil).Once()
	guard.On("Release", mock.Anything, "inquiry:asha@example.com:taxation").Return(nil).Once()
	repo.On("Save", mock.Anything, mock.Anything).Return(saveErr).Once()

	_, err := newTestService(repo, guard, pub).Submit(context.Background(), validRequest())
	assert.ErrorIs(t, err, shared.ErrPermissionDenied)
	guard.AssertExpectations(t)
	pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestService_Submit_PublishFailureStillSucceeds(t *testing.T) {
	repo := new(MockRepository)
	pub := new(MockPublisher)
	repo.On("Save", mock.Anything, mock.Anything).Return(nil).Once()
	pub.On("Publish", mock.Anything, mock.Anything).Return(errors.New("bus stopped")).Once()

	resp, err := NewService(repo, nil, pub).Submit(context.Background(), validRequest())
	require.NoError(t, err)
	assert.NotNil(t, resp)
	pub.AssertExpectations(t)
}

func TestService_List(t *testing.T) {
	repo := new(MockRepository)
	inq, err := inquiry.NewServiceInquiry("A", "a@example.com", "9876543210", "", inquiry.ServiceAuditing, "")
	require.NoError(t, err)

	matchFilter := mock.MatchedBy(func(f shared.Filter) bool {
		return f.Page == 2 && f.PageSize == 10 && f.OrderBy == "created_at" && f.OrderDir == "desc" &&
			f.Filters["service_type"] == "Auditing" && f.Filters["status"] == "new"
	})
	repo.On("FindAll", mock.Anything, matchFilter).Return([]inquiry.ServiceInquiry{*inq}, nil).Once()
	repo.On("Count", mock.Anything, matchFilter).Return(int64(11), nil).Once()

	items, total, err := NewService(repo, nil, nil).List(context.Background(), ListFilter{
		Page:        2,
		PageSize:    10,
		ServiceType: "Auditing",
		Status:      "new",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(11), total)
	require.Len(t, items, 1)
	assert.Equal(t, inq.ID, items[0].ID)
	repo.AssertExpectations(t)
}

func TestService_List_RejectsUnknownFilters(t *testing.T) {
	svc := NewService(new(MockRepository), nil, nil)

	_, _, err := svc.List(context.Background(), ListFilter{ServiceType: "Payroll"})
	assert.Error(t, err)
	_, _, err = svc.List(context.Background(), ListFilter{Status: "archived"})
	assert.Error(t, err)
}

func TestService_UpdateStatus(t *testing.T) {
	inq, err := inquiry.NewServiceInquiry("A", "a@example.com", "9876543210", "", inquiry.ServiceAuditing, "")
	require.NoError(t, err)
	inq.ClearDomainEvents()

	repo := new(MockRepository)
	pub := new(MockPublisher)
	repo.On("FindByID", mock.Anything, inq.ID).Return(inq, nil)
	repo.On("Save", mock.Anything, inq).Return(nil).Once()
	pub.On("Publish", mock.Anything, mock.MatchedBy(func(events []shared.DomainEvent) bool {
		return len(events) == 1 && events[0].EventType() == inquiry.EventTypeInquiryStatusChanged
	})).Return(nil).Once()

	svc := NewService(repo, nil, pub)
	resp, err := svc.UpdateStatus(context.Background(), inq.ID, UpdateStatusRequest{Status: "contacted"})
	require.NoError(t, err)
	assert.Equal(t, "contacted", resp.Status)

	// contacted cannot go back to new
	_, err = svc.UpdateStatus(context.Background(), inq.ID, UpdateStatusRequest{Status: "new"})
	assert.ErrorIs(t, err, shared.ErrInvalidState)
	repo.AssertExpectations(t)
	pub.AssertExpectations(t)
}

func TestService_GetByID_NotFound(t *testing.T) {
	repo := new(MockRepository)
	id := uuid.New()
	repo.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

	_, err := NewService(repo, nil, nil).GetByID(context.Background(), id)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
