package handler

import (
	"github.com/gin-gonic/gin"
	dscapp "github.com/shcya/backend/internal/application/dsc"
)

// DSCHandler handles Digital Signature Certificate applications
type DSCHandler struct {
	BaseHandler
	dscService *dscapp.Service
}

// NewDSCHandler creates a new DSCHandler
func NewDSCHandler(dscService *dscapp.Service) *DSCHandler {
	return &DSCHandler{dscService: dscService}
}

// Submit godoc
// @ID           submitDSCApplication
// @Summary      Apply for a Digital Signature Certificate
// @Tags         dsc
// @Accept       json
// @Produce      json
// @Param        request body dscapp.SubmitApplicationRequest true "Application"
// @Success      201 {object} APIResponse[dscapp.ApplicationResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      429 {object} ErrorResponse
// @Router       /dsc-applications [post]
func (h *DSCHandler) Submit(c *gin.Context) {
	var req dscapp.SubmitApplicationRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.dscService.Submit(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// List godoc
// @ID           listDSCApplications
// @Summary      List DSC applications
// @Tags         admin
// @Produce      json
// @Param        page             query int    false "Page number" default(1)
// @Param        page_size        query int    false "Page size" default(20)
// @Param        order_by         query string false "Sort field" default(created_at)
// @Param        order_dir        query string false "Sort direction" Enums(asc, desc)
// @Param        search           query string false "Matches name, email, mobile or PAN"
// @Param        status           query string false "Status filter" Enums(pending, processing, approved, rejected, completed)
// @Param        dsc_class        query string false "Class filter" Enums(class2, class3)
// @Param        application_type query string false "Type filter" Enums(new, renewal, revoke)
// @Success      200 {object} APIResponse[[]dscapp.ApplicationResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/dsc-applications [get]
func (h *DSCHandler) List(c *gin.Context) {
	var filter dscapp.ListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	items, total, err := h.dscService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	page := filter.ToDomainFilter()
	h.SuccessWithMeta(c, items, total, page.Page, page.PageSize)
}

// GetByID godoc
// @ID           getDSCApplication
// @Summary      Get a DSC application
// @Tags         admin
// @Produce      json
// @Param        id path string true "Application ID" format(uuid)
// @Success      200 {object} APIResponse[dscapp.ApplicationResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/dsc-applications/{id} [get]
func (h *DSCHandler) GetByID(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	resp, err := h.dscService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// UpdateStatus godoc
// @ID           updateDSCApplicationStatus
// @Summary      Move a DSC application through processing
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id      path string                     true "Application ID" format(uuid)
// @Param        request body dscapp.UpdateStatusRequest true "New status"
// @Success      200 {object} APIResponse[dscapp.ApplicationResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/dsc-applications/{id}/status [put]
func (h *DSCHandler) UpdateStatus(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	var req dscapp.UpdateStatusRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.dscService.UpdateStatus(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// AttachDocument godoc
// @ID           attachDSCDocument
// @Summary      Attach an uploaded document to a DSC application
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id      path string                       true "Application ID" format(uuid)
// @Param        request body dscapp.AttachDocumentRequest true "Document"
// @Success      200 {object} APIResponse[dscapp.ApplicationResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/dsc-applications/{id}/documents [put]
func (h *DSCHandler) AttachDocument(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	var req dscapp.AttachDocumentRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.dscService.AttachDocument(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
