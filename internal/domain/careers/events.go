package careers

import (
	"github.com/google/uuid"
	"github.com/shcya/backend/internal/domain/shared"
)

const AggregateTypeJobApplication = "JobApplication"

const EventTypeJobApplicationSubmitted = "JobApplicationSubmitted"

// JobApplicationSubmittedEvent is published when a candidate applies
type JobApplicationSubmittedEvent struct {
	shared.BaseDomainEvent
	ApplicationID   uuid.UUID      `json:"application_id"`
	FullName        string         `json:"full_name"`
	Email           string         `json:"email"`
	Phone           string         `json:"phone"`
	PositionApplied string         `json:"position_applied"`
	ExperienceYears int            `json:"experience_years"`
	EmploymentType  EmploymentType `json:"employment_type_preference"`
	ResumeURL       string         `json:"resume_url,omitempty"`
}

func NewJobApplicationSubmittedEvent(j *JobApplication) *JobApplicationSubmittedEvent {
	return &JobApplicationSubmittedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeJobApplicationSubmitted, AggregateTypeJobApplication, j.ID),
		ApplicationID:   j.ID,
		FullName:        j.FullName,
		Email:           j.Email,
		Phone:           j.Phone,
		PositionApplied: j.PositionApplied,
		ExperienceYears: j.ExperienceYears,
		EmploymentType:  j.EmploymentType,
		ResumeURL:       j.ResumeURL,
	}
}
