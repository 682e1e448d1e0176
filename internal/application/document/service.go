// Package document stores supporting documents uploaded with DSC and job
// applications.
package document

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/shcya/backend/internal/domain/shared"
	"github.com/shcya/backend/internal/infrastructure/logger"
	"github.com/shcya/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// DefaultMaxSize is used when no limit is configured
const DefaultMaxSize int64 = 5 << 20

// Kind names the purpose of an uploaded document. It is also the key prefix.
type Kind string

const (
	KindPAN     Kind = "pan"
	KindAadhaar Kind = "aadhaar"
	KindPhoto   Kind = "photo"
	KindResume  Kind = "resume"
)

// IsValid reports whether k is an accepted document kind
func (k Kind) IsValid() bool {
	switch k {
	case KindPAN, KindAadhaar, KindPhoto, KindResume:
		return true
	}
	return false
}

// allowedTypes maps each accepted content type to the key extension.
var allowedTypes = map[string]string{
	"application/pdf": ".pdf",
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
}

// ObjectStorage is implemented by the storage backends (S3 or stub).
type ObjectStorage interface {
	// Upload writes data at key, replacing any existing object
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	// PublicURL returns the URL the stored object is served from
	PublicURL(key string) string
	DeleteObject(ctx context.Context, key string) error
}

// UploadRequest is a document received from a form
type UploadRequest struct {
	Kind        Kind
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// UploadResult identifies the stored document
type UploadResult struct {
	Key         string `json:"key"`
	URL         string `json:"url"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

// Metrics counts upload outcomes. *telemetry.BusinessMetrics implements it.
type Metrics interface {
	RecordUpload(ctx context.Context, kind, result string, size int64)
}

// Service validates and stores uploaded documents
type Service struct {
	storage ObjectStorage
	maxSize int64
	logger  *zap.Logger
	metrics Metrics
}

// Option configures a Service
type Option func(*Service)

// WithMetrics records every upload attempt on m
func WithMetrics(m Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// NewService creates a document Service. maxSize <= 0 means DefaultMaxSize.
func NewService(storage ObjectStorage, maxSize int64, logger *zap.Logger, opts ...Option) *Service {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{storage: storage, maxSize: maxSize, logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// MaxSize returns the upload limit in bytes
func (s *Service) MaxSize() int64 {
	return s.maxSize
}

// Upload checks the kind, size and content of a document and stores it
// under <kind>/<uuid><ext>. The content type is taken from the bytes, not
// from what the client declared.
func (s *Service) Upload(ctx context.Context, req UploadRequest) (*UploadResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "document", "upload",
		telemetry.WithAttribute("document.kind", string(req.Kind)),
		telemetry.WithAttribute("document.declared_size", req.Size),
	)
	defer span.End()

	result, err := s.upload(ctx, req)
	if err == nil {
		telemetry.AddEvent(span, "stored", "key", result.Key, "size", result.Size, "content_type", result.ContentType)
	}
	if s.metrics != nil {
		switch {
		case err == nil:
			s.metrics.RecordUpload(ctx, string(req.Kind), telemetry.ResultAccepted, result.Size)
		case isStorageFailure(err):
			telemetry.RecordError(span, err)
			s.metrics.RecordUpload(ctx, string(req.Kind), telemetry.ResultFailed, 0)
		default:
			s.metrics.RecordUpload(ctx, string(req.Kind), telemetry.ResultInvalid, 0)
		}
	}
	return result, err
}

func isStorageFailure(err error) bool {
	de, ok := shared.AsDomainError(err)
	if !ok {
		return true
	}
	return de.Code == shared.CodeStorageUploadFailed || de.Code == shared.CodeStorageBucketNotFound
}

func (s *Service) upload(ctx context.Context, req UploadRequest) (*UploadResult, error) {
	if !req.Kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_DOCUMENT_KIND", "Document kind must be pan, aadhaar, photo or resume")
	}
	if req.Size > s.maxSize {
		return nil, tooLarge(s.maxSize)
	}
	if req.Body == nil {
		return nil, shared.NewDomainError("INVALID_DOCUMENT", "File is required")
	}

	data, err := io.ReadAll(io.LimitReader(req.Body, s.maxSize+1))
	if err != nil {
		return nil, shared.NewDomainError(shared.CodeStorageUploadFailed, "Failed to upload file: "+err.Error())
	}
	if int64(len(data)) > s.maxSize {
		return nil, tooLarge(s.maxSize)
	}
	if len(data) == 0 {
		return nil, shared.NewDomainError("INVALID_DOCUMENT", "File is empty")
	}

	contentType, ext, err := detectType(data, req.Kind)
	if err != nil {
		return nil, err
	}

	key := string(req.Kind) + "/" + uuid.NewString() + ext
	if err := s.storage.Upload(ctx, key, data, contentType); err != nil {
		logger.L(ctx).Error("Document upload failed",
			zap.String("key", key),
			zap.String("kind", string(req.Kind)),
			zap.Error(err),
		)
		if _, ok := shared.AsDomainError(err); ok {
			return nil, err
		}
		return nil, shared.NewDomainError(shared.CodeStorageUploadFailed, "Failed to upload file: "+err.Error())
	}

	logger.L(ctx).Info("Document uploaded",
		zap.String("key", key),
		zap.String("content_type", contentType),
		zap.Int("size", len(data)),
	)
	return &UploadResult{
		Key:         key,
		URL:         s.storage.PublicURL(key),
		ContentType: contentType,
		Size:        int64(len(data)),
	}, nil
}

// Discard removes a document that was uploaded for a submission that then failed.
func (s *Service) Discard(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := s.storage.DeleteObject(ctx, key); err != nil {
		s.logger.Warn("Failed to discard document", zap.String("key", key), zap.Error(err))
	}
}

func detectType(data []byte, kind Kind) (string, string, error) {
	detected := mimetype.Detect(data)
	contentType := strings.ToLower(detected.String())
	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		contentType = contentType[:i]
	}
	ext, ok := allowedTypes[contentType]
	if !ok {
		return "", "", shared.NewDomainError(shared.CodeUnsupportedContentType,
			fmt.Sprintf("Unsupported file type %s. Upload a PDF, JPEG or PNG file", contentType))
	}
	if kind == KindPhoto && contentType == "application/pdf" {
		return "", "", shared.NewDomainError(shared.CodeUnsupportedContentType, "Photo must be a JPEG or PNG image")
	}
	if kind == KindResume && contentType != "application/pdf" {
		return "", "", shared.NewDomainError(shared.CodeUnsupportedContentType, "Resume must be a PDF file")
	}
	return contentType, ext, nil
}

func tooLarge(max int64) error {
	return shared.NewDomainError(shared.CodePayloadTooLarge, fmt.Sprintf("File exceeds the %d MB limit", max>>20))
}
