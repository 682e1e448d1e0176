package shared

import "errors"

// DomainError is an error carrying a stable machine-readable code.
// The HTTP layer maps Code to a status; Message is safe to show to the caller.
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is reports whether target is a DomainError with the same code, so that
// a wrapped error produced with NewDomainError matches the sentinel values below.
func (e *DomainError) Is(target error) bool {
	var other *DomainError
	if !errors.As(target, &other) {
		return false
	}
	return e.Code == other.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Error codes shared by every bounded context.
const (
	CodeNotFound               = "NOT_FOUND"
	CodeAlreadyExists          = "ALREADY_EXISTS"
	CodeInvalidInput           = "INVALID_INPUT"
	CodeInvalidState           = "INVALID_STATE"
	CodeConcurrencyConflict    = "CONCURRENCY_CONFLICT"
	CodePermissionDenied       = "PERMISSION_DENIED"
	CodeSubmissionFailed       = "SUBMISSION_FAILED"
	CodeStorageBucketNotFound  = "STORAGE_BUCKET_NOT_FOUND"
	CodeStorageUploadFailed    = "STORAGE_UPLOAD_FAILED"
	CodeUnsupportedContentType = "UNSUPPORTED_CONTENT_TYPE"
	CodePayloadTooLarge        = "PAYLOAD_TOO_LARGE"
)

var (
	ErrNotFound            = NewDomainError(CodeNotFound, "Resource not found")
	ErrAlreadyExists       = NewDomainError(CodeAlreadyExists, "Resource already exists")
	ErrInvalidInput        = NewDomainError(CodeInvalidInput, "Invalid input provided")
	ErrInvalidState        = NewDomainError(CodeInvalidState, "Operation not allowed in current state")
	ErrConcurrencyConflict = NewDomainError(CodeConcurrencyConflict, "Resource was modified by another process")
	ErrPermissionDenied    = NewDomainError(CodePermissionDenied, "Database permission error. Please contact support.")
)

// AsDomainError unwraps err into a *DomainError when possible.
func AsDomainError(err error) (*DomainError, bool) {
	var de *DomainError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}
