package dto

import (
	"net/http"
	"strings"
)

// Error codes returned in the response envelope. Format: ERR_<DESCRIPTION>.
const (
	ErrCodeInternal   = "ERR_INTERNAL"
	ErrCodeValidation = "ERR_VALIDATION"

	ErrCodeUnauthorized = "ERR_UNAUTHORIZED"
	ErrCodeForbidden    = "ERR_FORBIDDEN"
	ErrCodeTokenExpired = "ERR_TOKEN_EXPIRED"
	ErrCodeTokenInvalid = "ERR_TOKEN_INVALID"

	ErrCodeNotFound            = "ERR_NOT_FOUND"
	ErrCodeAlreadyExists       = "ERR_ALREADY_EXISTS"
	ErrCodeConcurrencyConflict = "ERR_CONCURRENCY_CONFLICT"
	// ErrCodeInvalidState is returned for a status change the workflow forbids
	ErrCodeInvalidState = "ERR_INVALID_STATE"

	ErrCodeBadRequest       = "ERR_BAD_REQUEST"
	ErrCodeInvalidInput     = "ERR_INVALID_INPUT"
	ErrCodeInvalidJSON      = "ERR_INVALID_JSON"
	ErrCodePayloadTooLarge  = "ERR_PAYLOAD_TOO_LARGE"
	ErrCodeUnsupportedMedia = "ERR_UNSUPPORTED_MEDIA_TYPE"

	// ErrCodePermissionDenied means the database role may not write the table
	ErrCodePermissionDenied      = "ERR_PERMISSION_DENIED"
	ErrCodeSubmissionFailed      = "ERR_SUBMISSION_FAILED"
	ErrCodeStorageUnavailable    = "ERR_STORAGE_UNAVAILABLE"
	ErrCodeStorageBucketNotFound = "ERR_STORAGE_BUCKET_NOT_FOUND"

	ErrCodeRateLimited = "ERR_RATE_LIMITED"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:   http.StatusInternalServerError,
	ErrCodeValidation: http.StatusBadRequest,

	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,
	ErrCodeTokenExpired: http.StatusUnauthorized,
	ErrCodeTokenInvalid: http.StatusUnauthorized,

	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeAlreadyExists:       http.StatusConflict,
	ErrCodeConcurrencyConflict: http.StatusConflict,
	ErrCodeInvalidState:        http.StatusUnprocessableEntity,

	ErrCodeBadRequest:       http.StatusBadRequest,
	ErrCodeInvalidInput:     http.StatusBadRequest,
	ErrCodeInvalidJSON:      http.StatusBadRequest,
	ErrCodePayloadTooLarge:  http.StatusRequestEntityTooLarge,
	ErrCodeUnsupportedMedia: http.StatusUnsupportedMediaType,

	ErrCodePermissionDenied:      http.StatusInternalServerError,
	ErrCodeSubmissionFailed:      http.StatusInternalServerError,
	ErrCodeStorageUnavailable:    http.StatusBadGateway,
	ErrCodeStorageBucketNotFound: http.StatusInternalServerError,

	ErrCodeRateLimited: http.StatusTooManyRequests,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Field-level domain codes (INVALID_PAN, INVALID_EMAIL...) are client errors;
// anything else unknown is a 500.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	if strings.HasPrefix(code, "INVALID_") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// domainCodes translates shared.DomainError codes into envelope codes
var domainCodes = map[string]string{
	"NOT_FOUND":                ErrCodeNotFound,
	"ALREADY_EXISTS":           ErrCodeAlreadyExists,
	"INVALID_INPUT":            ErrCodeInvalidInput,
	"INVALID_STATE":            ErrCodeInvalidState,
	"CONCURRENCY_CONFLICT":     ErrCodeConcurrencyConflict,
	"PERMISSION_DENIED":        ErrCodePermissionDenied,
	"SUBMISSION_FAILED":        ErrCodeSubmissionFailed,
	"STORAGE_UPLOAD_FAILED":    ErrCodeStorageUnavailable,
	"STORAGE_BUCKET_NOT_FOUND": ErrCodeStorageBucketNotFound,
	"UNSUPPORTED_CONTENT_TYPE": ErrCodeUnsupportedMedia,
	"PAYLOAD_TOO_LARGE":        ErrCodePayloadTooLarge,
}

// NormalizeErrorCode converts a domain error code to its envelope code.
// ERR_* codes and field-level codes such as INVALID_PAN pass through.
func NormalizeErrorCode(code string) string {
	if mapped, ok := domainCodes[code]; ok {
		return mapped
	}
	return code
}
