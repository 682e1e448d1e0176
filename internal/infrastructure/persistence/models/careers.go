package models

import (
	"github.com/shcya/backend/internal/domain/careers"
)

// JobApplicationModel maps the job_applications table.
type JobApplicationModel struct {
	AggregateModel
	FullName                 string                 `gorm:"type:varchar(200);not null"`
	Email                    string                 `gorm:"type:varchar(254);not null;index"`
	Phone                    string                 `gorm:"type:varchar(20);not null"`
	PositionApplied          string                 `gorm:"type:varchar(200);not null;index"`
	ExperienceYears          int                    `gorm:"not null;default:0"`
	CurrentCompany           string                 `gorm:"type:varchar(200)"`
	Qualification            string                 `gorm:"type:varchar(500);not null"`
	Skills                   string                 `gorm:"type:text"`
	CoverLetter              string                 `gorm:"type:text"`
	ExpectedSalary           string                 `gorm:"type:varchar(100)"`
	Availability             careers.Availability   `gorm:"type:varchar(20);not null"`
	EmploymentTypePreference careers.EmploymentType `gorm:"type:varchar(20);not null"`
	ResumeURL                string                 `gorm:"column:resume_url;type:text"`
	Status                   careers.Status         `gorm:"type:varchar(20);not null;default:'received';index"`
}

// TableName returns the table name for GORM
func (JobApplicationModel) TableName() string {
	return "job_applications"
}

// ToDomain converts the model to a domain JobApplication
func (m *JobApplicationModel) ToDomain() *careers.JobApplication {
	return &careers.JobApplication{
		BaseAggregateRoot: m.ToAggregateRoot(),
		Candidate: careers.Candidate{
			FullName:       m.FullName,
			Email:          m.Email,
			Phone:          m.Phone,
			CurrentCompany: m.CurrentCompany,
			Qualification:  m.Qualification,
			Skills:         m.Skills,
		},
		Preferences: careers.Preferences{
			PositionApplied: m.PositionApplied,
			ExperienceYears: m.ExperienceYears,
			ExpectedSalary:  m.ExpectedSalary,
			Availability:    m.Availability,
			EmploymentType:  m.EmploymentTypePreference,
		},
		CoverLetter: m.CoverLetter,
		ResumeURL:   m.ResumeURL,
		Status:      m.Status,
	}
}

// FromDomain populates the model from a domain JobApplication
func (m *JobApplicationModel) FromDomain(j *careers.JobApplication) {
	m.FromDomainAggregateRoot(j.BaseAggregateRoot)
	m.FullName = j.FullName
	m.Email = j.Email
	m.Phone = j.Phone
	m.PositionApplied = j.PositionApplied
	m.ExperienceYears = j.ExperienceYears
	m.CurrentCompany = j.CurrentCompany
	m.Qualification = j.Qualification
	m.Skills = j.Skills
	m.CoverLetter = j.CoverLetter
	m.ExpectedSalary = j.ExpectedSalary
	m.Availability = j.Availability
	m.EmploymentTypePreference = j.EmploymentType
	m.ResumeURL = j.ResumeURL
	m.Status = j.Status
}

// JobApplicationModelFromDomain creates a model from a domain JobApplication
func JobApplicationModelFromDomain(j *careers.JobApplication) *JobApplicationModel {
	m := &JobApplicationModel{}
	m.FromDomain(j)
	return m
}
