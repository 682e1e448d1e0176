package submission

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shcya/backend/internal/domain/shared"
	"github.com/shcya/backend/internal/infrastructure/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

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

type MockMetrics struct {
	mock.Mock
}

func (m *MockMetrics) RecordSubmission(ctx context.Context, form, result string) {
	m.Called(ctx, form, result)
}

const key = "inquiry:a@example.com:taxation"

func TestNewGate_DefaultWindow(t *testing.T) {
	assert.Equal(t, DefaultWindow, NewGate(nil, 0, nil).Window())
	assert.Equal(t, time.Minute, NewGate(nil, time.Minute, nil).Window())
}

func TestGate_AdmitAndAccept(t *testing.T) {
	guard := new(MockGuard)
	metrics := new(MockMetrics)
	guard.On("Claim", mock.Anything, key, 5*time.Minute).Return(true, nil).Once()
	metrics.On("RecordSubmission", mock.Anything, FormInquiry, telemetry.ResultAccepted).Once()

	gate := NewGate(guard, 5*time.Minute, metrics)
	ticket, err := gate.Admit(context.Background(), FormInquiry, key, "dup")
	require.NoError(t, err)
	ticket.Accept(context.Background())

	guard.AssertExpectations(t)
	guard.AssertNotCalled(t, "Release", mock.Anything, mock.Anything)
	metrics.AssertExpectations(t)
}

func TestGate_AdmitDuplicate(t *testing.T) {
	guard := new(MockGuard)
	metrics := new(MockMetrics)
	guard.On("Claim", mock.Anything, key, DefaultWindow).Return(false, nil).Once()
	metrics.On("RecordSubmission", mock.Anything, FormInquiry, telemetry.ResultDuplicate).Once()

	ticket, err := NewGate(guard, 0, metrics).Admit(context.Background(), FormInquiry, key, "This inquiry has already been submitted.")
	assert.Nil(t, ticket)
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	assert.Equal(t, "This inquiry has already been submitted.", err.Error())
	metrics.AssertExpectations(t)
}

func TestGate_GuardErrorAdmitsWithoutClaim(t *testing.T) {
	guard := new(MockGuard)
	metrics := new(MockMetrics)
	guard.On("Claim", mock.Anything, key, DefaultWindow).Return(false, errors.New("redis down")).Once()
	metrics.On("RecordSubmission", mock.Anything, FormInquiry, telemetry.ResultFailed).Once()

	ticket, err := NewGate(guard, 0, metrics).Admit(context.Background(), FormInquiry, key, "dup")
	require.NoError(t, err)

	// Nothing was claimed, so nothing is released
	ticket.Fail(context.Background(), errors.New("db down"))
	guard.AssertNotCalled(t, "Release", mock.Anything, mock.Anything)
	metrics.AssertExpectations(t)
}

func TestTicket_FailReleasesKey(t *testing.T) {
	tests := []struct {
		name       string
		cause      error
		releaseErr error
		result     string
	}{
		{"store failure", shared.NewDomainError(shared.CodeSubmissionFailed, "Failed to submit inquiry: boom"), nil, telemetry.ResultFailed},
		{"store duplicate", shared.NewDomainError(shared.CodeAlreadyExists, "This inquiry has already been submitted."), nil, telemetry.ResultDuplicate},
		{"release error is only logged", errors.New("boom"), errors.New("redis down"), telemetry.ResultFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			guard := new(MockGuard)
			metrics := new(MockMetrics)
			guard.On("Claim", mock.Anything, key, DefaultWindow).Return(true, nil).Once()
			guard.On("Release", mock.Anything, key).Return(tt.releaseErr).Once()
			metrics.On("RecordSubmission", mock.Anything, FormInquiry, tt.result).Once()

			ticket, err := NewGate(guard, 0, metrics).Admit(context.Background(), FormInquiry, key, "dup")
			require.NoError(t, err)
			ticket.Fail(context.Background(), tt.cause)

			guard.AssertExpectations(t)
			metrics.AssertExpectations(t)
		})
	}
}

func TestGate_NilGuardAndMetrics(t *testing.T) {
	gate := NewGate(nil, 0, nil)
	ticket, err := gate.Admit(context.Background(), FormCareers, key, "dup")
	require.NoError(t, err)
	assert.NotPanics(t, func() {
		gate.Rejected(context.Background(), FormCareers)
		ticket.Fail(context.Background(), errors.New("boom"))
		ticket.Accept(context.Background())
	})
}
