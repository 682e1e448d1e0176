package handler

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	documentapp "github.com/shcya/backend/internal/application/document"
	"github.com/shcya/backend/internal/interfaces/http/middleware"
)

// multipartOverhead is allowed on top of the file size for the form
// boundaries and the kind field.
const multipartOverhead int64 = 64 << 10

// DocumentHandler accepts supporting documents ahead of a form submission.
// The returned URL goes into the application payload.
type DocumentHandler struct {
	BaseHandler
	documentService *documentapp.Service
}

// NewDocumentHandler creates a new DocumentHandler
func NewDocumentHandler(documentService *documentapp.Service) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

// BodyLimit is the request limit for upload routes
func (h *DocumentHandler) BodyLimit() int64 {
	return h.documentService.MaxSize() + multipartOverhead
}

// UploadDSCDocument godoc
// @ID           uploadDSCDocument
// @Summary      Upload a DSC supporting document
// @Description  Stores a PAN card, Aadhaar card or photograph (PDF, JPEG or PNG)
// @Tags         dsc
// @Accept       multipart/form-data
// @Produce      json
// @Param        file formData file   true "Document"
// @Param        kind formData string true "Document kind" Enums(pan, aadhaar, photo)
// @Success      201 {object} APIResponse[documentapp.UploadResult]
// @Failure      400 {object} ErrorResponse
// @Failure      413 {object} ErrorResponse
// @Failure      415 {object} ErrorResponse
// @Failure      502 {object} ErrorResponse
// @Router       /dsc-applications/documents [post]
func (h *DocumentHandler) UploadDSCDocument(c *gin.Context) {
	h.upload(c, "", documentapp.KindPAN, documentapp.KindAadhaar, documentapp.KindPhoto)
}

// UploadResume godoc
// @ID           uploadResume
// @Summary      Upload a resume
// @Tags         careers
// @Accept       multipart/form-data
// @Produce      json
// @Param        file formData file true "Resume (PDF)"
// @Success      201 {object} APIResponse[documentapp.UploadResult]
// @Failure      400 {object} ErrorResponse
// @Failure      413 {object} ErrorResponse
// @Failure      415 {object} ErrorResponse
// @Router       /careers/documents [post]
func (h *DocumentHandler) UploadResume(c *gin.Context) {
	h.upload(c, documentapp.KindResume, documentapp.KindResume)
}

// upload stores the "file" part. A missing "kind" field falls back to
// defaultKind when one is given.
func (h *DocumentHandler) upload(c *gin.Context, defaultKind documentapp.Kind, allowed ...documentapp.Kind) {
	fh, err := c.FormFile("file")
	if err != nil {
		h.handleFormError(c, err)
		return
	}

	kind := documentapp.Kind(c.PostForm("kind"))
	if kind == "" {
		kind = defaultKind
	}
	if !slices.Contains(allowed, kind) {
		names := make([]string, len(allowed))
		for i, k := range allowed {
			names[i] = string(k)
		}
		h.Error(c, http.StatusBadRequest, "INVALID_DOCUMENT_KIND", "Document kind must be one of: "+strings.Join(names, ", "))
		return
	}

	file, err := fh.Open()
	if err != nil {
		h.BadRequest(c, "Could not read uploaded file")
		return
	}
	defer file.Close()

	result, err := h.documentService.Upload(c.Request.Context(), documentapp.UploadRequest{
		Kind:        kind,
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Body:        file,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	// Nobody will ever see the URL of an object stored after the client left.
	if c.Request.Context().Err() != nil {
		h.documentService.Discard(context.WithoutCancel(c.Request.Context()), result.Key)
		return
	}
	h.Created(c, result)
}

func (h *DocumentHandler) handleFormError(c *gin.Context, err error) {
	switch {
	case middleware.IsBodyTooLarge(err), errors.Is(err, multipart.ErrMessageTooLarge):
		h.PayloadTooLarge(c, fmt.Sprintf("File exceeds the %d MB limit", h.documentService.MaxSize()>>20))
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		h.Error(c, http.StatusBadRequest, "INVALID_DOCUMENT", "File is required")
	default:
		h.BadRequest(c, "Invalid multipart form")
	}
}
