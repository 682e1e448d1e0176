package inquiry

import (
	"github.com/google/uuid"
	"github.com/shcya/backend/internal/domain/shared"
)

const AggregateTypeInquiry = "ServiceInquiry"

const (
	EventTypeInquirySubmitted     = "InquirySubmitted"
	EventTypeInquiryStatusChanged = "InquiryStatusChanged"
)

// InquirySubmittedEvent is published when a visitor submits the contact form
type InquirySubmittedEvent struct {
	shared.BaseDomainEvent
	InquiryID   uuid.UUID   `json:"inquiry_id"`
	Name        string      `json:"name"`
	Email       string      `json:"email"`
	Phone       string      `json:"phone"`
	Company     string      `json:"company,omitempty"`
	ServiceType ServiceType `json:"service_type"`
	Message     string      `json:"message,omitempty"`
}

func NewInquirySubmittedEvent(i *ServiceInquiry) *InquirySubmittedEvent {
	return &InquirySubmittedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInquirySubmitted, AggregateTypeInquiry, i.ID),
		InquiryID:       i.ID,
		Name:            i.Name,
		Email:           i.Email,
		Phone:           i.Phone,
		Company:         i.Company,
		ServiceType:     i.ServiceType,
		Message:         i.Message,
	}
}

// InquiryStatusChangedEvent is published when staff update an enquiry
type InquiryStatusChangedEvent struct {
	shared.BaseDomainEvent
	InquiryID uuid.UUID `json:"inquiry_id"`
	OldStatus Status    `json:"old_status"`
	NewStatus Status    `json:"new_status"`
}

func NewInquiryStatusChangedEvent(i *ServiceInquiry, oldStatus, newStatus Status) *InquiryStatusChangedEvent {
	return &InquiryStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInquiryStatusChanged, AggregateTypeInquiry, i.ID),
		InquiryID:       i.ID,
		OldStatus:       oldStatus,
		NewStatus:       newStatus,
	}
}
