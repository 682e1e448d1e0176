package handler

import "github.com/shcya/backend/internal/interfaces/http/dto"

// APIResponse documents the success envelope; Data holds the typed payload.
// @Description Envelope returned by every form, upload and back-office route
type APIResponse[T any] struct {
	Success bool           `json:"success" example:"true"`
	Data    T              `json:"data,omitempty"`
	Meta    *dto.Meta      `json:"meta,omitempty"`
	Error   *dto.ErrorInfo `json:"error,omitempty"`
}

// ErrorResponse documents the failure envelope
// @Description Failure envelope carrying a normalized ERR_* code and the request ID
type ErrorResponse struct {
	Success bool           `json:"success" example:"false"`
	Error   *dto.ErrorInfo `json:"error"`
}
