package models

import (
	"github.com/shcya/backend/internal/domain/dsc"
	"github.com/shcya/backend/internal/domain/shared/valueobject"
)

// DSCApplicationModel maps the dsc_applications table.
type DSCApplicationModel struct {
	AggregateModel
	ApplicantName      string              `gorm:"type:varchar(200);not null"`
	Email              string              `gorm:"type:varchar(254);not null"`
	Mobile             string              `gorm:"type:varchar(20);not null"`
	PANNumber          string              `gorm:"column:pan_number;type:char(10);not null;uniqueIndex:idx_dsc_applications_open_pan_type,where:status <> 'rejected' AND status <> 'completed'"`
	AadhaarNumber      string              `gorm:"type:char(12);not null"`
	DSCClass           dsc.Class           `gorm:"column:dsc_class;type:varchar(10);not null;default:'class2'"`
	ApplicationType    dsc.ApplicationType `gorm:"type:varchar(10);not null;default:'new';uniqueIndex:idx_dsc_applications_open_pan_type,where:status <> 'rejected' AND status <> 'completed'"`
	Organization       string              `gorm:"type:varchar(200)"`
	Designation        string              `gorm:"type:varchar(100)"`
	Address            string              `gorm:"type:varchar(500);not null"`
	City               string              `gorm:"type:varchar(100);not null"`
	State              string              `gorm:"type:varchar(100);not null"`
	Pincode            string              `gorm:"type:char(6);not null"`
	PANDocumentURL     string              `gorm:"column:pan_document_url;type:text"`
	AadhaarDocumentURL string              `gorm:"column:aadhaar_document_url;type:text"`
	PhotoURL           string              `gorm:"column:photo_url;type:text"`
	Status             dsc.Status          `gorm:"type:varchar(20);not null;default:'pending';index"`
}

// TableName returns the table name for GORM
func (DSCApplicationModel) TableName() string {
	return "dsc_applications"
}

// ToDomain converts the model to a domain Application
func (m *DSCApplicationModel) ToDomain() *dsc.Application {
	return &dsc.Application{
		BaseAggregateRoot: m.ToAggregateRoot(),
		Applicant: dsc.Applicant{
			Name:          m.ApplicantName,
			Email:         m.Email,
			Mobile:        m.Mobile,
			PANNumber:     m.PANNumber,
			AadhaarNumber: m.AadhaarNumber,
			Organization:  m.Organization,
			Designation:   m.Designation,
		},
		Class:           m.DSCClass,
		ApplicationType: m.ApplicationType,
		Address:         valueobject.RestoreAddress(m.Address, m.City, m.State, m.Pincode),
		Documents: dsc.Documents{
			PANDocumentURL:     m.PANDocumentURL,
			AadhaarDocumentURL: m.AadhaarDocumentURL,
			PhotoURL:           m.PhotoURL,
		},
		Status: m.Status,
	}
}

// FromDomain populates the model from a domain Application
func (m *DSCApplicationModel) FromDomain(a *dsc.Application) {
	m.FromDomainAggregateRoot(a.BaseAggregateRoot)
	m.ApplicantName = a.Name
	m.Email = a.Email
	m.Mobile = a.Mobile
	m.PANNumber = a.PANNumber
	m.AadhaarNumber = a.AadhaarNumber
	m.DSCClass = a.Class
	m.ApplicationType = a.ApplicationType
	m.Organization = a.Organization
	m.Designation = a.Designation
	m.Address = a.Address.Line()
	m.City = a.Address.City()
	m.State = a.Address.State()
	m.Pincode = a.Address.Pincode()
	m.PANDocumentURL = a.PANDocumentURL
	m.AadhaarDocumentURL = a.AadhaarDocumentURL
	m.PhotoURL = a.PhotoURL
	m.Status = a.Status
}

// DSCApplicationModelFromDomain creates a model from a domain Application
func DSCApplicationModelFromDomain(a *dsc.Application) *DSCApplicationModel {
	m := &DSCApplicationModel{}
	m.FromDomain(a)
	return m
}
