// Package careers models job applications sent through the careers page.
package careers

import (
	"strings"

	"github.com/shcya/backend/internal/domain/shared"
)

// Availability is how soon a candidate can join
type Availability string

const (
	AvailabilityImmediate Availability = "immediate"
	Availability2Weeks    Availability = "2-weeks"
	Availability1Month    Availability = "1-month"
	Availability2Months   Availability = "2-months"
)

func (a Availability) IsValid() bool {
	switch a {
	case AvailabilityImmediate, Availability2Weeks, Availability1Month, Availability2Months:
		return true
	}
	return false
}

// EmploymentType is the candidate's preferred engagement
type EmploymentType string

const (
	EmploymentFullTime EmploymentType = "full-time"
	EmploymentPartTime EmploymentType = "part-time"
	EmploymentContract EmploymentType = "contract"
	EmploymentRemote   EmploymentType = "remote"
	EmploymentHybrid   EmploymentType = "hybrid"
)

func (e EmploymentType) IsValid() bool {
	switch e {
	case EmploymentFullTime, EmploymentPartTime, EmploymentContract, EmploymentRemote, EmploymentHybrid:
		return true
	}
	return false
}

// Status tracks screening
type Status string

const (
	StatusReceived    Status = "received"
	StatusShortlisted Status = "shortlisted"
	StatusRejected    Status = "rejected"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusReceived, StatusShortlisted, StatusRejected:
		return true
	}
	return false
}

// CanTransitionTo: received may go either way, shortlisted may still be rejected.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusReceived:
		return next == StatusShortlisted || next == StatusRejected
	case StatusShortlisted:
		return next == StatusRejected
	}
	return false
}

const maxExperienceYears = 60

// Candidate is the personal part of a job application
type Candidate struct {
	FullName       string
	Email          string
	Phone          string
	CurrentCompany string
	Qualification  string
	Skills         string
}

// Preferences is what the candidate is asking for
type Preferences struct {
	PositionApplied string
	ExperienceYears int
	ExpectedSalary  string
	Availability    Availability
	EmploymentType  EmploymentType
}

// JobApplication is a candidate's application for an open position.
type JobApplication struct {
	shared.BaseAggregateRoot
	Candidate
	Preferences
	CoverLetter string
	ResumeURL   string
	Status      Status
}

// NewJobApplication validates a submission from the careers form.
func NewJobApplication(c Candidate, p Preferences, coverLetter, resumeURL string) (*JobApplication, error) {
	c.FullName = strings.TrimSpace(c.FullName)
	c.Email = shared.NormalizeEmail(c.Email)
	c.Phone = shared.NormalizePhone(c.Phone)
	c.CurrentCompany = strings.TrimSpace(c.CurrentCompany)
	c.Qualification = strings.TrimSpace(c.Qualification)
	c.Skills = strings.TrimSpace(c.Skills)
	p.PositionApplied = strings.TrimSpace(p.PositionApplied)
	p.ExpectedSalary = strings.TrimSpace(p.ExpectedSalary)

	if err := shared.ValidateRequired("full_name", "Full name", c.FullName, 200); err != nil {
		return nil, err
	}
	if err := shared.ValidateEmail(c.Email); err != nil {
		return nil, err
	}
	if err := shared.ValidateMobile("phone", c.Phone); err != nil {
		return nil, err
	}
	if err := shared.ValidateRequired("position_applied", "Position", p.PositionApplied, 200); err != nil {
		return nil, err
	}
	if err := shared.ValidateRequired("qualification", "Qualification", c.Qualification, 500); err != nil {
		return nil, err
	}
	if p.ExperienceYears < 0 || p.ExperienceYears > maxExperienceYears {
		return nil, shared.NewDomainError("INVALID_EXPERIENCE_YEARS", "Experience must be between 0 and 60 years")
	}
	if !p.Availability.IsValid() {
		return nil, shared.NewDomainError("INVALID_AVAILABILITY", "Availability must be immediate, 2-weeks, 1-month or 2-months")
	}
	if !p.EmploymentType.IsValid() {
		return nil, shared.NewDomainError("INVALID_EMPLOYMENT_TYPE", "Employment type must be full-time, part-time, contract, remote or hybrid")
	}
	if len(coverLetter) > 10000 {
		return nil, shared.NewDomainError("INVALID_COVER_LETTER", "Cover letter cannot exceed 10000 characters")
	}

	app := &JobApplication{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Candidate:         c,
		Preferences:       p,
		CoverLetter:       strings.TrimSpace(coverLetter),
		ResumeURL:         strings.TrimSpace(resumeURL),
		Status:            StatusReceived,
	}
	app.AddDomainEvent(NewJobApplicationSubmittedEvent(app))
	return app, nil
}

// UpdateStatus records a screening decision
func (j *JobApplication) UpdateStatus(next Status) error {
	if !next.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown application status: "+string(next))
	}
	if !j.Status.CanTransitionTo(next) {
		return shared.NewDomainError(shared.CodeInvalidState, "Cannot change application status from "+string(j.Status)+" to "+string(next))
	}
	j.Status = next
	j.IncrementVersion()
	return nil
}

// DedupeKey identifies repeat applications for the same position
func (j *JobApplication) DedupeKey() string {
	return shared.SubmissionKey("careers", j.Email, j.PositionApplied)
}
