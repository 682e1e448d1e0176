package careers

import (
	"time"

	"github.com/google/uuid"
	"github.com/shcya/backend/internal/domain/careers"
	"github.com/shcya/backend/internal/domain/shared"
)

// SubmitApplicationRequest is the careers form payload
type SubmitApplicationRequest struct {
	FullName        string `json:"full_name" binding:"required,max=200"`
	Email           string `json:"email" binding:"required,email,max=254"`
	Phone           string `json:"phone" binding:"required,indian_mobile"`
	PositionApplied string `json:"position_applied" binding:"required,max=200"`
	ExperienceYears int    `json:"experience_years" binding:"min=0,max=60"`
	CurrentCompany  string `json:"current_company" binding:"max=200"`
	Qualification   string `json:"qualification" binding:"required,max=500"`
	Skills          string `json:"skills" binding:"max=2000"`
	CoverLetter     string `json:"cover_letter" binding:"max=10000"`
	ExpectedSalary  string `json:"expected_salary" binding:"max=100"`
	Availability    string `json:"availability" binding:"required,oneof=immediate 2-weeks 1-month 2-months"`
	EmploymentType  string `json:"employment_type_preference" binding:"required,oneof=full-time part-time contract remote hybrid"`
	ResumeURL       string `json:"resume_url" binding:"omitempty,url"`
}

// UpdateStatusRequest records a screening decision
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=received shortlisted rejected"`
}

// ListFilter is the back-office list query
type ListFilter struct {
	Page            int    `form:"page"`
	PageSize        int    `form:"page_size"`
	OrderBy         string `form:"order_by"`
	OrderDir        string `form:"order_dir"`
	Search          string `form:"search"`
	Status          string `form:"status"`
	PositionApplied string `form:"position_applied"`
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
	if f.PositionApplied != "" {
		filter.Filters["position_applied"] = f.PositionApplied
	}
	return filter
}

// ApplicationResponse is a job application in API responses
type ApplicationResponse struct {
	ID              uuid.UUID `json:"id"`
	FullName        string    `json:"full_name"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	PositionApplied string    `json:"position_applied"`
	ExperienceYears int       `json:"experience_years"`
	CurrentCompany  string    `json:"current_company,omitempty"`
	Qualification   string    `json:"qualification"`
	Skills          string    `json:"skills,omitempty"`
	CoverLetter     string    `json:"cover_letter,omitempty"`
	ExpectedSalary  string    `json:"expected_salary,omitempty"`
	Availability    string    `json:"availability"`
	EmploymentType  string    `json:"employment_type_preference"`
	ResumeURL       string    `json:"resume_url,omitempty"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ToApplicationResponse converts the domain entity
func ToApplicationResponse(j *careers.JobApplication) ApplicationResponse {
	return ApplicationResponse{
		ID:              j.ID,
		FullName:        j.FullName,
		Email:           j.Email,
		Phone:           j.Phone,
		PositionApplied: j.PositionApplied,
		ExperienceYears: j.ExperienceYears,
		CurrentCompany:  j.CurrentCompany,
		Qualification:   j.Qualification,
		Skills:          j.Skills,
		CoverLetter:     j.CoverLetter,
		ExpectedSalary:  j.ExpectedSalary,
		Availability:    string(j.Availability),
		EmploymentType:  string(j.EmploymentType),
		ResumeURL:       j.ResumeURL,
		Status:          string(j.Status),
		CreatedAt:       j.CreatedAt,
		UpdatedAt:       j.UpdatedAt,
	}
}

// ToApplicationResponses converts a slice of job applications
func ToApplicationResponses(items []careers.JobApplication) []ApplicationResponse {
	out := make([]ApplicationResponse, len(items))
	for i := range items {
		out[i] = ToApplicationResponse(&items[i])
	}
	return out
}
