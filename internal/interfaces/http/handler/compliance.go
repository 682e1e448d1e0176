package handler

import (
	"github.com/gin-gonic/gin"
	complianceapp "github.com/shcya/backend/internal/application/compliance"
)

// ComplianceHandler serves the public GST calculators
type ComplianceHandler struct {
	BaseHandler
	complianceService *complianceapp.Service
}

// NewComplianceHandler creates a new ComplianceHandler
func NewComplianceHandler(complianceService *complianceapp.Service) *ComplianceHandler {
	return &ComplianceHandler{complianceService: complianceService}
}

// EvaluateRule86B godoc
// @ID           evaluateRule86B
// @Summary      Evaluate Rule 86B
// @Description  Decides whether the 1% cash payment restriction applies for a tax period
// @Tags         compliance
// @Accept       json
// @Produce      json
// @Param        request body complianceapp.EvaluateRequest true "Calculator input"
// @Success      200 {object} APIResponse[complianceapp.EvaluateResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /compliance/rule86b/evaluate [post]
func (h *ComplianceHandler) EvaluateRule86B(c *gin.Context) {
	var req complianceapp.EvaluateRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.complianceService.Evaluate(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
