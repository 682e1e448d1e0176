package models

import (
	"github.com/shcya/backend/internal/domain/inquiry"
)

// ServiceInquiryModel maps the service_inquiries table.
type ServiceInquiryModel struct {
	AggregateModel
	Name        string              `gorm:"type:varchar(200);not null"`
	Email       string              `gorm:"type:varchar(254);not null;index"`
	Phone       string              `gorm:"type:varchar(20);not null"`
	Company     string              `gorm:"type:varchar(200)"`
	ServiceType inquiry.ServiceType `gorm:"type:varchar(50);not null;index"`
	Message     string              `gorm:"type:text"`
	Status      inquiry.Status      `gorm:"type:varchar(20);not null;default:'new';index"`
}

// TableName returns the table name for GORM
func (ServiceInquiryModel) TableName() string {
	return "service_inquiries"
}

// ToDomain converts the model to a domain ServiceInquiry
func (m *ServiceInquiryModel) ToDomain() *inquiry.ServiceInquiry {
	return &inquiry.ServiceInquiry{
		BaseAggregateRoot: m.ToAggregateRoot(),
		Name:              m.Name,
		Email:             m.Email,
		Phone:             m.Phone,
		Company:           m.Company,
		ServiceType:       m.ServiceType,
		Message:           m.Message,
		Status:            m.Status,
	}
}

// FromDomain populates the model from a domain ServiceInquiry
func (m *ServiceInquiryModel) FromDomain(i *inquiry.ServiceInquiry) {
	m.FromDomainAggregateRoot(i.BaseAggregateRoot)
	m.Name = i.Name
	m.Email = i.Email
	m.Phone = i.Phone
	m.Company = i.Company
	m.ServiceType = i.ServiceType
	m.Message = i.Message
	m.Status = i.Status
}

// ServiceInquiryModelFromDomain creates a model from a domain ServiceInquiry
func ServiceInquiryModelFromDomain(i *inquiry.ServiceInquiry) *ServiceInquiryModel {
	m := &ServiceInquiryModel{}
	m.FromDomain(i)
	return m
}
