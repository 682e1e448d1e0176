package dsc

import (
	"github.com/google/uuid"
	"github.com/shcya/backend/internal/domain/shared"
)

const AggregateTypeApplication = "DSCApplication"

const (
	EventTypeApplicationSubmitted     = "DSCApplicationSubmitted"
	EventTypeApplicationStatusChanged = "DSCApplicationStatusChanged"
)

// ApplicationSubmittedEvent is published for every new DSC application.
// The Aadhaar number is carried masked.
type ApplicationSubmittedEvent struct {
	shared.BaseDomainEvent
	ApplicationID   uuid.UUID       `json:"application_id"`
	ApplicantName   string          `json:"applicant_name"`
	Email           string          `json:"email"`
	Mobile          string          `json:"mobile"`
	PANNumber       string          `json:"pan_number"`
	MaskedAadhaar   string          `json:"masked_aadhaar"`
	Class           Class           `json:"dsc_class"`
	ApplicationType ApplicationType `json:"application_type"`
	Organization    string          `json:"organization,omitempty"`
}

func NewApplicationSubmittedEvent(a *Application) *ApplicationSubmittedEvent {
	return &ApplicationSubmittedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeApplicationSubmitted, AggregateTypeApplication, a.ID),
		ApplicationID:   a.ID,
		ApplicantName:   a.Name,
		Email:           a.Email,
		Mobile:          a.Mobile,
		PANNumber:       a.PANNumber,
		MaskedAadhaar:   MaskAadhaar(a.AadhaarNumber),
		Class:           a.Class,
		ApplicationType: a.ApplicationType,
		Organization:    a.Organization,
	}
}

// ApplicationStatusChangedEvent is published when staff move an application
type ApplicationStatusChangedEvent struct {
	shared.BaseDomainEvent
	ApplicationID uuid.UUID `json:"application_id"`
	Email         string    `json:"email"`
	OldStatus     Status    `json:"old_status"`
	NewStatus     Status    `json:"new_status"`
}

func NewApplicationStatusChangedEvent(a *Application, oldStatus, newStatus Status) *ApplicationStatusChangedEvent {
	return &ApplicationStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeApplicationStatusChanged, AggregateTypeApplication, a.ID),
		ApplicationID:   a.ID,
		Email:           a.Email,
		OldStatus:       oldStatus,
		NewStatus:       newStatus,
	}
}
