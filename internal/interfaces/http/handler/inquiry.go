package handler

import (
	"github.com/gin-gonic/gin"
	inquiryapp "github.com/shcya/backend/internal/application/inquiry"
)

// InquiryHandler handles contact form enquiries
type InquiryHandler struct {
	BaseHandler
	inquiryService *inquiryapp.Service
}

// NewInquiryHandler creates a new InquiryHandler
func NewInquiryHandler(inquiryService *inquiryapp.Service) *InquiryHandler {
	return &InquiryHandler{inquiryService: inquiryService}
}

// Submit godoc
// @ID           submitInquiry
// @Summary      Submit a service enquiry
// @Tags         inquiries
// @Accept       json
// @Produce      json
// @Param        request body inquiryapp.SubmitInquiryRequest true "Enquiry"
// @Success      201 {object} APIResponse[inquiryapp.InquiryResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      429 {object} ErrorResponse
// @Router       /inquiries [post]
func (h *InquiryHandler) Submit(c *gin.Context) {
	var req inquiryapp.SubmitInquiryRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.inquiryService.Submit(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// List godoc
// @ID           listInquiries
// @Summary      List enquiries
// @Tags         admin
// @Produce      json
// @Param        page         query int    false "Page number" default(1)
// @Param        page_size    query int    false "Page size" default(20)
// @Param        order_by     query string false "Sort field" default(created_at)
// @Param        order_dir    query string false "Sort direction" Enums(asc, desc)
// @Param        search       query string false "Matches name, email, phone or company"
// @Param        service_type query string false "Service filter"
// @Param        status       query string false "Status filter" Enums(new, contacted, closed)
// @Success      200 {object} APIResponse[[]inquiryapp.InquiryResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/inquiries [get]
func (h *InquiryHandler) List(c *gin.Context) {
	var filter inquiryapp.ListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	items, total, err := h.inquiryService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	page := filter.ToDomainFilter()
	h.SuccessWithMeta(c, items, total, page.Page, page.PageSize)
}

// GetByID godoc
// @ID           getInquiry
// @Summary      Get an enquiry
// @Tags         admin
// @Produce      json
// @Param        id path string true "Enquiry ID" format(uuid)
// @Success      200 {object} APIResponse[inquiryapp.InquiryResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/inquiries/{id} [get]
func (h *InquiryHandler) GetByID(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	resp, err := h.inquiryService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// UpdateStatus godoc
// @ID           updateInquiryStatus
// @Summary      Update an enquiry's follow-up status
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id      path string                         true "Enquiry ID" format(uuid)
// @Param        request body inquiryapp.UpdateStatusRequest true "New status"
// @Success      200 {object} APIResponse[inquiryapp.InquiryResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/inquiries/{id}/status [put]
func (h *InquiryHandler) UpdateStatus(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	var req inquiryapp.UpdateStatusRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.inquiryService.UpdateStatus(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
