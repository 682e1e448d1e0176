package dsc

import (
	"time"

	"github.com/google/uuid"
	"github.com/shcya/backend/internal/domain/dsc"
	"github.com/shcya/backend/internal/domain/shared"
)

// SubmitApplicationRequest is the DSC application form payload. Document
// URLs come from earlier uploads to /dsc-applications/documents.
type SubmitApplicationRequest struct {
	ApplicantName      string `json:"applicant_name" binding:"required,max=200"`
	Email              string `json:"email" binding:"required,email,max=254"`
	Mobile             string `json:"mobile" binding:"required,indian_mobile"`
	PANNumber          string `json:"pan_number" binding:"required,pan"`
	AadhaarNumber      string `json:"aadhaar_number" binding:"required,aadhaar"`
	DSCClass           string `json:"dsc_class" binding:"omitempty,oneof=class2 class3"`
	ApplicationType    string `json:"application_type" binding:"omitempty,oneof=new renewal revoke"`
	Organization       string `json:"organization" binding:"max=200"`
	Designation        string `json:"designation" binding:"max=100"`
	Address            string `json:"address" binding:"required,max=500"`
	City               string `json:"city" binding:"required,max=100"`
	State              string `json:"state" binding:"required,max=100"`
	Pincode            string `json:"pincode" binding:"required,pincode"`
	PANDocumentURL     string `json:"pan_document_url" binding:"omitempty,url"`
	AadhaarDocumentURL string `json:"aadhaar_document_url" binding:"omitempty,url"`
	PhotoURL           string `json:"photo_url" binding:"omitempty,url"`
}

// UpdateStatusRequest moves an application through processing
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending processing approved rejected completed"`
}

// AttachDocumentRequest records an uploaded document on an application
type AttachDocumentRequest struct {
	Kind string `json:"kind" binding:"required,oneof=pan aadhaar photo"`
	URL  string `json:"url" binding:"required,url"`
}

// ListFilter is the back-office list query
type ListFilter struct {
	Page            int    `form:"page"`
	PageSize        int    `form:"page_size"`
	OrderBy         string `form:"order_by"`
	OrderDir        string `form:"order_dir"`
	Search          string `form:"search"`
	Status          string `form:"status"`
	DSCClass        string `form:"dsc_class"`
	ApplicationType string `form:"application_type"`
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
	if f.Status != "" {
		filter.Filters["status"] = f.Status
	}
	if f.DSCClass != "" {
		filter.Filters["dsc_class"] = f.DSCClass
	}
	if f.ApplicationType != "" {
		filter.Filters["application_type"] = f.ApplicationType
	}
	return filter
}

// ApplicationResponse is a DSC application in API responses. The Aadhaar
// number is masked.
type ApplicationResponse struct {
	ID                 uuid.UUID `json:"id"`
	ApplicantName      string    `json:"applicant_name"`
	Email              string    `json:"email"`
	Mobile             string    `json:"mobile"`
	PANNumber          string    `json:"pan_number"`
	AadhaarNumber      string    `json:"aadhaar_number"`
	DSCClass           string    `json:"dsc_class"`
	ApplicationType    string    `json:"application_type"`
	Organization       string    `json:"organization,omitempty"`
	Designation        string    `json:"designation,omitempty"`
	Address            string    `json:"address"`
	City               string    `json:"city"`
	State              string    `json:"state"`
	Pincode            string    `json:"pincode"`
	PANDocumentURL     string    `json:"pan_document_url,omitempty"`
	AadhaarDocumentURL string    `json:"aadhaar_document_url,omitempty"`
	PhotoURL           string    `json:"photo_url,omitempty"`
	DocumentsComplete  bool      `json:"documents_complete"`
	Status             string    `json:"status"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// ToApplicationResponse converts the domain entity
func ToApplicationResponse(a *dsc.Application) ApplicationResponse {
	return ApplicationResponse{
		ID:                 a.ID,
		ApplicantName:      a.Name,
		Email:              a.Email,
		Mobile:             a.Mobile,
		PANNumber:          a.PANNumber,
		AadhaarNumber:      dsc.MaskAadhaar(a.AadhaarNumber),
		DSCClass:           string(a.Class),
		ApplicationType:    string(a.ApplicationType),
		Organization:       a.Organization,
		Designation:        a.Designation,
		Address:            a.Address.Line(),
		City:               a.Address.City(),
		State:              a.Address.State(),
		Pincode:            a.Address.Pincode(),
		PANDocumentURL:     a.PANDocumentURL,
		AadhaarDocumentURL: a.AadhaarDocumentURL,
		PhotoURL:           a.PhotoURL,
		DocumentsComplete:  a.HasAllDocuments(),
		Status:             string(a.Status),
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}
}

// ToApplicationResponses converts a slice of applications
func ToApplicationResponses(items []dsc.Application) []ApplicationResponse {
	out := make([]ApplicationResponse, len(items))
	for i := range items {
		out[i] = ToApplicationResponse(&items[i])
	}
	return out
}
