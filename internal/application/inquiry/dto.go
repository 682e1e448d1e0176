package inquiry

import (
	"time"

	"github.com/google/uuid"
	"github.com/shcya/backend/internal/domain/inquiry"
	"github.com/shcya/backend/internal/domain/shared"
)

// SubmitInquiryRequest is the contact form payload
type SubmitInquiryRequest struct {
	Name        string `json:"name" binding:"required,max=200"`
	Email       string `json:"email" binding:"required,email,max=254"`
	Phone       string `json:"phone" binding:"required,indian_mobile"`
	Company     string `json:"company" binding:"max=200"`
	ServiceType string `json:"service_type" binding:"required,oneof='Digital Signature' Taxation 'Book Keeping' Auditing"`
	Message     string `json:"message" binding:"max=5000"`
}

// UpdateStatusRequest moves an enquiry along its follow-up workflow
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=new contacted closed"`
}

// ListFilter is the back-office list query
type ListFilter struct {
	Page        int    `form:"page"`
	PageSize    int    `form:"page_size"`
	OrderBy     string `form:"order_by"`
	OrderDir    string `form:"order_dir"`
	Search      string `form:"search"`
	ServiceType string `form:"service_type"`
	Status      string `form:"status"`
}

// ToDomainFilter converts the query into a repository filter
func (f ListFilter) ToDomainFilter() shared.Filter {
	filter := shared.Filter{
		Page:     f.Page,
		PageSize: f.PageSize,
		OrderBy:  f.OrderBy,
		OrderDir: f.OrderDir,
		Search:   f.Search,
		Filters:  make(map[string]any),
	}.Normalize()
	if f.ServiceType != "" {
		filter.Filters["service_type"] = f.ServiceType
	}
	if f.Status != "" {
		filter.Filters["status"] = f.Status
	}
	return filter
}

// InquiryResponse is an enquiry in API responses
type InquiryResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	Company     string    `json:"company,omitempty"`
	ServiceType string    `json:"service_type"`
	Message     string    `json:"message,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToInquiryResponse converts the domain entity
func ToInquiryResponse(i *inquiry.ServiceInquiry) InquiryResponse {
	return InquiryResponse{
		ID:          i.ID,
		Name:        i.Name,
		Email:       i.Email,
		Phone:       i.Phone,
		Company:     i.Company,
		ServiceType: string(i.ServiceType),
		Message:     i.Message,
		Status:      string(i.Status),
		CreatedAt:   i.CreatedAt,
		UpdatedAt:   i.UpdatedAt,
	}
}

// ToInquiryResponses converts a slice of enquiries
func ToInquiryResponses(items []inquiry.ServiceInquiry) []InquiryResponse {
	out := make([]InquiryResponse, len(items))
	for i := range items {
		out[i] = ToInquiryResponse(&items[i])
	}
	return out
}
