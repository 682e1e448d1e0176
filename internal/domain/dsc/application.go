// Package dsc models applications for Digital Signature Certificates.
package dsc

import (
	"regexp"
	"strings"

	"github.com/shcya/backend/internal/domain/shared"
	"github.com/shcya/backend/internal/domain/shared/valueobject"
)

// Class is the certificate class requested
type Class string

const (
	Class2 Class = "class2"
	Class3 Class = "class3"
)

// ApplicationType distinguishes new certificates from renewals and revocations
type ApplicationType string

const (
	TypeNew     ApplicationType = "new"
	TypeRenewal ApplicationType = "renewal"
	TypeRevoke  ApplicationType = "revoke"
)

// Status is the processing state of an application
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusApproved   Status = "approved"
	StatusRejected   Status = "rejected"
	StatusCompleted  Status = "completed"
)

var allowedTransitions = map[Status][]Status{
	StatusPending:    {StatusProcessing, StatusRejected},
	StatusProcessing: {StatusApproved, StatusRejected},
	StatusApproved:   {StatusCompleted},
}

// DocumentKind names a supporting document slot on the application
type DocumentKind string

const (
	DocumentPAN     DocumentKind = "pan"
	DocumentAadhaar DocumentKind = "aadhaar"
	DocumentPhoto   DocumentKind = "photo"
)

var (
	panPattern     = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`)
	aadhaarPattern = regexp.MustCompile(`^[2-9][0-9]{11}$`)
)

func (c Class) IsValid() bool {
	return c == Class2 || c == Class3
}

func (t ApplicationType) IsValid() bool {
	switch t {
	case TypeNew, TypeRenewal, TypeRevoke:
		return true
	}
	return false
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusApproved, StatusRejected, StatusCompleted:
		return true
	}
	return false
}

// CanTransitionTo reports whether an application may move from s to next
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range allowedTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition is possible
func (s Status) IsTerminal() bool {
	return len(allowedTransitions[s]) == 0
}

func (k DocumentKind) IsValid() bool {
	switch k {
	case DocumentPAN, DocumentAadhaar, DocumentPhoto:
		return true
	}
	return false
}

// NormalizePAN upper-cases and strips spaces
func NormalizePAN(pan string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(pan), " ", ""))
}

// NormalizeAadhaar strips spaces and hyphens
func NormalizeAadhaar(aadhaar string) string {
	return strings.NewReplacer(" ", "", "-", "").Replace(strings.TrimSpace(aadhaar))
}

// IsValidPAN checks the AAAAA9999A shape of a Permanent Account Number.
func IsValidPAN(pan string) bool {
	return panPattern.MatchString(NormalizePAN(pan))
}

// IsValidAadhaar checks that the number has 12 digits and does not start with 0 or 1.
func IsValidAadhaar(aadhaar string) bool {
	return aadhaarPattern.MatchString(NormalizeAadhaar(aadhaar))
}

// MaskAadhaar keeps only the last four digits, for logs and emails.
func MaskAadhaar(aadhaar string) string {
	n := NormalizeAadhaar(aadhaar)
	if len(n) < 4 {
		return strings.Repeat("X", len(n))
	}
	return strings.Repeat("X", len(n)-4) + n[len(n)-4:]
}

// Applicant holds the personal fields of an application
type Applicant struct {
	Name          string
	Email         string
	Mobile        string
	PANNumber     string
	AadhaarNumber string
	Organization  string
	Designation   string
}

// Documents holds the public URLs of uploaded supporting documents
type Documents struct {
	PANDocumentURL     string
	AadhaarDocumentURL string
	PhotoURL           string
}

// Application is a DSC application submitted from the site.
type Application struct {
	shared.BaseAggregateRoot
	Applicant
	Class           Class
	ApplicationType ApplicationType
	Address         valueobject.Address
	Documents
	Status Status
}

// NewApplication validates an application. An empty class defaults to
// class2 and an empty type defaults to new.
func NewApplication(applicant Applicant, class Class, appType ApplicationType, address valueobject.Address, docs Documents) (*Application, error) {
	applicant.Name = strings.TrimSpace(applicant.Name)
	applicant.Email = shared.NormalizeEmail(applicant.Email)
	applicant.Mobile = shared.NormalizePhone(applicant.Mobile)
	applicant.PANNumber = NormalizePAN(applicant.PANNumber)
	applicant.AadhaarNumber = NormalizeAadhaar(applicant.AadhaarNumber)
	applicant.Organization = strings.TrimSpace(applicant.Organization)
	applicant.Designation = strings.TrimSpace(applicant.Designation)

	if class == "" {
		class = Class2
	}
	if appType == "" {
		appType = TypeNew
	}

	if err := validateApplicant(applicant); err != nil {
		return nil, err
	}
	if !class.IsValid() {
		return nil, shared.NewDomainError("INVALID_DSC_CLASS", "DSC class must be class2 or class3")
	}
	if !appType.IsValid() {
		return nil, shared.NewDomainError("INVALID_APPLICATION_TYPE", "Application type must be new, renewal or revoke")
	}
	if address.IsEmpty() {
		return nil, shared.NewDomainError("INVALID_ADDRESS", "Address is required")
	}

	app := &Application{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Applicant:         applicant,
		Class:             class,
		ApplicationType:   appType,
		Address:           address,
		Documents:         docs,
		Status:            StatusPending,
	}
	app.AddDomainEvent(NewApplicationSubmittedEvent(app))
	return app, nil
}

func validateApplicant(a Applicant) error {
	if err := shared.ValidateRequired("applicant_name", "Applicant name", a.Name, 200); err != nil {
		return err
	}
	if err := shared.ValidateEmail(a.Email); err != nil {
		return err
	}
	if err := shared.ValidateMobile("mobile", a.Mobile); err != nil {
		return err
	}
	if !panPattern.MatchString(a.PANNumber) {
		return shared.NewDomainError("INVALID_PAN", "PAN must be in the format AAAAA9999A")
	}
	if !aadhaarPattern.MatchString(a.AadhaarNumber) {
		return shared.NewDomainError("INVALID_AADHAAR", "Aadhaar number must be 12 digits")
	}
	if len(a.Organization) > 200 {
		return shared.NewDomainError("INVALID_ORGANIZATION", "Organization is too long")
	}
	if len(a.Designation) > 100 {
		return shared.NewDomainError("INVALID_DESIGNATION", "Designation is too long")
	}
	return nil
}

// UpdateStatus moves the application through processing.
func (a *Application) UpdateStatus(next Status) error {
	if !next.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown application status: "+string(next))
	}
	if !a.Status.CanTransitionTo(next) {
		return shared.NewDomainError(shared.CodeInvalidState, "Cannot change application status from "+string(a.Status)+" to "+string(next))
	}
	old := a.Status
	a.Status = next
	a.IncrementVersion()
	a.AddDomainEvent(NewApplicationStatusChangedEvent(a, old, next))
	return nil
}

// AttachDocument records the URL of an uploaded document. Documents can
// only change while the application has not been decided.
func (a *Application) AttachDocument(kind DocumentKind, url string) error {
	if !kind.IsValid() {
		return shared.NewDomainError("INVALID_DOCUMENT_KIND", "Document kind must be pan, aadhaar or photo")
	}
	url = strings.TrimSpace(url)
	if url == "" {
		return shared.NewDomainError("INVALID_DOCUMENT_URL", "Document URL is required")
	}
	if a.Status != StatusPending && a.Status != StatusProcessing {
		return shared.NewDomainError(shared.CodeInvalidState, "Documents cannot be changed once the application is "+string(a.Status))
	}
	switch kind {
	case DocumentPAN:
		a.PANDocumentURL = url
	case DocumentAadhaar:
		a.AadhaarDocumentURL = url
	case DocumentPhoto:
		a.PhotoURL = url
	}
	a.IncrementVersion()
	return nil
}

// HasAllDocuments reports whether every document slot is filled
func (a *Application) HasAllDocuments() bool {
	return a.PANDocumentURL != "" && a.AadhaarDocumentURL != "" && a.PhotoURL != ""
}

// DedupeKey identifies repeat submissions for the same PAN and request type.
func (a *Application) DedupeKey() string {
	return shared.SubmissionKey("dsc", a.PANNumber, string(a.ApplicationType))
}
