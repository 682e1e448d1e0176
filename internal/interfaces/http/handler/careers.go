package handler

import (
	"github.com/gin-gonic/gin"
	careersapp "github.com/shcya/backend/internal/application/careers"
)

// CareersHandler handles job applications
type CareersHandler struct {
	BaseHandler
	careersService *careersapp.Service
}

// NewCareersHandler creates a new CareersHandler
func NewCareersHandler(careersService *careersapp.Service) *CareersHandler {
	return &CareersHandler{careersService: careersService}
}

// Submit godoc
// @ID           submitJobApplication
// @Summary      Apply for a position
// @Tags         careers
// @Accept       json
// @Produce      json
// @Param        request body careersapp.SubmitApplicationRequest true "Application"
// @Success      201 {object} APIResponse[careersapp.ApplicationResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /careers/applications [post]
func (h *CareersHandler) Submit(c *gin.Context) {
	var req careersapp.SubmitApplicationRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.careersService.Submit(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// List godoc
// @ID           listJobApplications
// @Summary      List job applications
// @Tags         admin
// @Produce      json
// @Param        page             query int    false "Page number" default(1)
// @Param        page_size        query int    false "Page size" default(20)
// @Param        order_by         query string false "Sort field" default(created_at)
// @Param        order_dir        query string false "Sort direction" Enums(asc, desc)
// @Param        search           query string false "Matches name, email or skills"
// @Param        status           query string false "Status filter" Enums(received, shortlisted, rejected)
// @Param        position_applied query string false "Position filter"
// @Success      200 {object} APIResponse[[]careersapp.ApplicationResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/careers/applications [get]
func (h *CareersHandler) List(c *gin.Context) {
	var filter careersapp.ListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	items, total, err := h.careersService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	page := filter.ToDomainFilter()
	h.SuccessWithMeta(c, items, total, page.Page, page.PageSize)
}

// GetByID godoc
// @ID           getJobApplication
// @Summary      Get a job application
// @Tags         admin
// @Produce      json
// @Param        id path string true "Application ID" format(uuid)
// @Success      200 {object} APIResponse[careersapp.ApplicationResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/careers/applications/{id} [get]
func (h *CareersHandler) GetByID(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	resp, err := h.careersService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// UpdateStatus godoc
// @ID           updateJobApplicationStatus
// @Summary      Record a screening decision
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id      path string                         true "Application ID" format(uuid)
// @Param        request body careersapp.UpdateStatusRequest true "New status"
// @Success      200 {object} APIResponse[careersapp.ApplicationResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/careers/applications/{id}/status [put]
func (h *CareersHandler) UpdateStatus(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	var req careersapp.UpdateStatusRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.careersService.UpdateStatus(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
