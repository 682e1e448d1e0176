// Package inquiry models service enquiries sent from the public site's
// contact forms.
package inquiry

import (
	"strings"

	"github.com/shcya/backend/internal/domain/shared"
)

// ServiceType is the practice area an enquiry is about
type ServiceType string

const (
	ServiceDigitalSignature ServiceType = "Digital Signature"
	ServiceTaxation         ServiceType = "Taxation"
	ServiceBookKeeping      ServiceType = "Book Keeping"
	ServiceAuditing         ServiceType = "Auditing"
)

// ServiceTypes lists every accepted service type in display order
func ServiceTypes() []ServiceType {
	return []ServiceType{ServiceDigitalSignature, ServiceTaxation, ServiceBookKeeping, ServiceAuditing}
}

// IsValid reports whether t is one of the offered services
func (t ServiceType) IsValid() bool {
	switch t {
	case ServiceDigitalSignature, ServiceTaxation, ServiceBookKeeping, ServiceAuditing:
		return true
	}
	return false
}

// Status tracks follow-up by staff
type Status string

const (
	StatusNew       Status = "new"
	StatusContacted Status = "contacted"
	StatusClosed    Status = "closed"
)

var allowedTransitions = map[Status][]Status{
	StatusNew:       {StatusContacted, StatusClosed},
	StatusContacted: {StatusClosed},
}

// IsValid reports whether s is a known status
func (s Status) IsValid() bool {
	switch s {
	case StatusNew, StatusContacted, StatusClosed:
		return true
	}
	return false
}

// CanTransitionTo reports whether staff may move an enquiry from s to next
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range allowedTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ServiceInquiry is a prospective client's request to be contacted.
type ServiceInquiry struct {
	shared.BaseAggregateRoot
	Name        string
	Email       string
	Phone       string
	Company     string
	ServiceType ServiceType
	Message     string
	Status      Status
}

// NewServiceInquiry validates the form fields and records an InquirySubmitted event.
func NewServiceInquiry(name, email, phone, company string, serviceType ServiceType, message string) (*ServiceInquiry, error) {
	name = strings.TrimSpace(name)
	email = shared.NormalizeEmail(email)
	phone = shared.NormalizePhone(phone)
	company = strings.TrimSpace(company)
	message = strings.TrimSpace(message)

	if err := shared.ValidateRequired("name", "Name", name, 200); err != nil {
		return nil, err
	}
	if err := shared.ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := shared.ValidateMobile("phone", phone); err != nil {
		return nil, err
	}
	if len(company) > 200 {
		return nil, shared.NewDomainError("INVALID_COMPANY", "Company is too long")
	}
	if !serviceType.IsValid() {
		return nil, shared.NewDomainError("INVALID_SERVICE_TYPE", "Service type must be one of Digital Signature, Taxation, Book Keeping, Auditing")
	}
	if len(message) > 5000 {
		return nil, shared.NewDomainError("INVALID_MESSAGE", "Message cannot exceed 5000 characters")
	}

	inq := &ServiceInquiry{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Email:             email,
		Phone:             phone,
		Company:           company,
		ServiceType:       serviceType,
		Message:           message,
		Status:            StatusNew,
	}
	inq.AddDomainEvent(NewInquirySubmittedEvent(inq))
	return inq, nil
}

// UpdateStatus moves the enquiry along its follow-up workflow.
func (i *ServiceInquiry) UpdateStatus(next Status) error {
	if !next.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown inquiry status: "+string(next))
	}
	if !i.Status.CanTransitionTo(next) {
		return shared.NewDomainError(shared.CodeInvalidState, "Cannot change inquiry status from "+string(i.Status)+" to "+string(next))
	}
	old := i.Status
	i.Status = next
	i.IncrementVersion()
	i.AddDomainEvent(NewInquiryStatusChangedEvent(i, old, next))
	return nil
}

// DedupeKey identifies repeat submissions of the same enquiry.
func (i *ServiceInquiry) DedupeKey() string {
	return shared.SubmissionKey("inquiry", i.Email, string(i.ServiceType))
}
