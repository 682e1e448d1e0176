package dto

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{ErrCodeValidation, http.StatusBadRequest},
		{ErrCodeInvalidJSON, http.StatusBadRequest},
		{ErrCodeTokenExpired, http.StatusUnauthorized},
		{ErrCodeForbidden, http.StatusForbidden},
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeAlreadyExists, http.StatusConflict},
		{ErrCodeInvalidState, http.StatusUnprocessableEntity},
		{ErrCodePayloadTooLarge, http.StatusRequestEntityTooLarge},
		{ErrCodeUnsupportedMedia, http.StatusUnsupportedMediaType},
		{ErrCodeRateLimited, http.StatusTooManyRequests},
		{ErrCodeStorageUnavailable, http.StatusBadGateway},
		{ErrCodeStorageBucketNotFound, http.StatusInternalServerError},
		{ErrCodePermissionDenied, http.StatusInternalServerError},
		{ErrCodeSubmissionFailed, http.StatusInternalServerError},
		{"INVALID_PAN", http.StatusBadRequest},
		{"INVALID_PINCODE", http.StatusBadRequest},
		{"SOMETHING_ELSE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, GetHTTPStatus(tt.code))
		})
	}
}

func TestNormalizeErrorCode(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"NOT_FOUND", ErrCodeNotFound},
		{"ALREADY_EXISTS", ErrCodeAlreadyExists},
		{"INVALID_STATE", ErrCodeInvalidState},
		{"PERMISSION_DENIED", ErrCodePermissionDenied},
		{"SUBMISSION_FAILED", ErrCodeSubmissionFailed},
		{"STORAGE_UPLOAD_FAILED", ErrCodeStorageUnavailable},
		{"STORAGE_BUCKET_NOT_FOUND", ErrCodeStorageBucketNotFound},
		{"UNSUPPORTED_CONTENT_TYPE", ErrCodeUnsupportedMedia},
		{"PAYLOAD_TOO_LARGE", ErrCodePayloadTooLarge},
		{ErrCodeValidation, ErrCodeValidation},
		{"INVALID_AADHAAR", "INVALID_AADHAAR"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeErrorCode(tt.in))
		})
	}
}

// Every translated domain code must resolve to a status and keep the ERR_ prefix.
func TestDomainCodesAreMapped(t *testing.T) {
	for domain, code := range domainCodes {
		assert.True(t, strings.HasPrefix(code, "ERR_"), domain)
		_, ok := ErrorCodeHTTPStatus[code]
		assert.True(t, ok, "%s -> %s has no status", domain, code)
	}
}

func TestNewErrorResponseWithRequestID(t *testing.T) {
	before := time.Now()
	resp := NewErrorResponseWithRequestID("ALREADY_EXISTS", "This inquiry has already been submitted.", "req-42")

	assert.False(t, resp.Success)
	assert.Nil(t, resp.Data)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeAlreadyExists, resp.Error.Code)
	assert.Equal(t, "req-42", resp.Error.RequestID)
	assert.False(t, resp.Error.Timestamp.Before(before))

	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"success":false`)
	assert.NotContains(t, string(raw), `"data"`)
	assert.NotContains(t, string(raw), `"details"`)
}

func TestNewValidationErrorResponse(t *testing.T) {
	resp := NewValidationErrorResponse("Validation failed", "req-7", []ValidationDetail{
		{Field: "pan_number", Message: "must be a valid PAN", Tag: "pan"},
		{Field: "pincode", Message: "must be a 6-digit PIN code", Tag: "pincode"},
	})

	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeValidation, resp.Error.Code)
	assert.Len(t, resp.Error.Details, 2)
	assert.Equal(t, "pan_number", resp.Error.Details[0].Field)
}

func TestNewSuccessResponseWithMeta(t *testing.T) {
	tests := []struct {
		total     int64
		pageSize  int
		wantPages int
		wantSize  int
	}{
		{0, 20, 0, 20},
		{20, 20, 1, 20},
		{21, 20, 2, 20},
		{45, 10, 5, 10},
		{45, 0, 3, 20},
		{45, -5, 3, 20},
	}

	for _, tt := range tests {
		resp := NewSuccessResponseWithMeta([]string{}, tt.total, 2, tt.pageSize)
		assert.True(t, resp.Success)
		require.NotNil(t, resp.Meta)
		assert.Equal(t, tt.wantPages, resp.Meta.TotalPages, "total=%d size=%d", tt.total, tt.pageSize)
		assert.Equal(t, tt.wantSize, resp.Meta.PageSize)
		assert.Equal(t, 2, resp.Meta.Page)
	}
}
