package dsc

import (
	"testing"

	"github.com/shcya/backend/internal/domain/shared"
	"github.com/shcya/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validApplicant() Applicant {
	return Applicant{
		Name:          "Meera Iyer",
		Email:         "meera@example.com",
		Mobile:        "9123456789",
		PANNumber:     "abcde1234f",
		AadhaarNumber: "2345 6789 0123",
		Organization:  "Iyer & Co",
		Designation:   "Partner",
	}
}

func validAddress(t *testing.T) valueobject.Address {
	t.Helper()
	addr, err := valueobject.NewAddress("4 Anna Salai", "Chennai", "Tamil Nadu", "600002")
	require.NoError(t, err)
	return addr
}

func TestNewApplication(t *testing.T) {
	t.Run("normalizes and defaults", func(t *testing.T) {
		app, err := NewApplication(validApplicant(), "", "", validAddress(t), Documents{})

		require.NoError(t, err)
		assert.Equal(t, "ABCDE1234F", app.PANNumber)
		assert.Equal(t, "234567890123", app.AadhaarNumber)
		assert.Equal(t, Class2, app.Class)
		assert.Equal(t, TypeNew, app.ApplicationType)
		assert.Equal(t, StatusPending, app.Status)
		assert.False(t, app.HasAllDocuments())

		require.Len(t, app.GetDomainEvents(), 1)
		evt := app.GetDomainEvents()[0].(*ApplicationSubmittedEvent)
		assert.Equal(t, "XXXXXXXX0123", evt.MaskedAadhaar)
		assert.Equal(t, EventTypeApplicationSubmitted, evt.EventType())
	})

	tests := []struct {
		name   string
		mutate func(*Applicant)
		class  Class
		typ    ApplicationType
		code   string
	}{
		{"bad pan", func(a *Applicant) { a.PANNumber = "ABCD1234F" }, "", "", "INVALID_PAN"},
		{"bad aadhaar", func(a *Applicant) { a.AadhaarNumber = "123456789012" }, "", "", "INVALID_AADHAAR"},
		{"bad mobile", func(a *Applicant) { a.Mobile = "12" }, "", "", "INVALID_MOBILE"},
		{"missing name", func(a *Applicant) { a.Name = " " }, "", "", "INVALID_APPLICANT_NAME"},
		{"bad class", func(a *Applicant) {}, Class("class1"), "", "INVALID_DSC_CLASS"},
		{"bad type", func(a *Applicant) {}, "", ApplicationType("transfer"), "INVALID_APPLICATION_TYPE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := validApplicant()
			tt.mutate(&a)
			app, err := NewApplication(a, tt.class, tt.typ, validAddress(t), Documents{})
			assert.Nil(t, app)
			de, ok := shared.AsDomainError(err)
			require.True(t, ok)
			assert.Equal(t, tt.code, de.Code)
		})
	}

	t.Run("address required", func(t *testing.T) {
		_, err := NewApplication(validApplicant(), Class3, TypeRenewal, valueobject.Address{}, Documents{})
		de, ok := shared.AsDomainError(err)
		require.True(t, ok)
		assert.Equal(t, "INVALID_ADDRESS", de.Code)
	})
}

func TestApplication_UpdateStatus(t *testing.T) {
	newApp := func(t *testing.T) *Application {
		app, err := NewApplication(validApplicant(), Class3, TypeNew, validAddress(t), Documents{})
		require.NoError(t, err)
		app.ClearDomainEvents()
		return app
	}

	t.Run("happy path to completed", func(t *testing.T) {
		app := newApp(t)
		for _, s := range []Status{StatusProcessing, StatusApproved, StatusCompleted} {
			require.NoError(t, app.UpdateStatus(s))
		}
		assert.True(t, app.Status.IsTerminal())
		assert.Len(t, app.GetDomainEvents(), 3)
		assert.Equal(t, 4, app.Version)
	})

	t.Run("rejected from pending", func(t *testing.T) {
		app := newApp(t)
		require.NoError(t, app.UpdateStatus(StatusRejected))
		assert.ErrorIs(t, app.UpdateStatus(StatusProcessing), shared.ErrInvalidState)
	})

	t.Run("cannot skip processing", func(t *testing.T) {
		app := newApp(t)
		assert.ErrorIs(t, app.UpdateStatus(StatusApproved), shared.ErrInvalidState)
		assert.Equal(t, StatusPending, app.Status)
	})

	t.Run("unknown status", func(t *testing.T) {
		app := newApp(t)
		assert.Error(t, app.UpdateStatus(Status("lost")))
	})
}

func TestApplication_AttachDocument(t *testing.T) {
	app, err := NewApplication(validApplicant(), Class2, TypeNew, validAddress(t), Documents{})
	require.NoError(t, err)

	require.NoError(t, app.AttachDocument(DocumentPAN, "https://cdn/pan.pdf"))
	require.NoError(t, app.AttachDocument(DocumentAadhaar, "https://cdn/aadhaar.pdf"))
	assert.False(t, app.HasAllDocuments())
	require.NoError(t, app.AttachDocument(DocumentPhoto, "https://cdn/photo.jpg"))
	assert.True(t, app.HasAllDocuments())
	assert.Equal(t, "https://cdn/pan.pdf", app.PANDocumentURL)

	assert.Error(t, app.AttachDocument(DocumentKind("resume"), "x"))
	assert.Error(t, app.AttachDocument(DocumentPAN, " "))

	require.NoError(t, app.UpdateStatus(StatusRejected))
	assert.ErrorIs(t, app.AttachDocument(DocumentPAN, "https://cdn/new.pdf"), shared.ErrInvalidState)
}

func TestIdentityNumbers(t *testing.T) {
	assert.True(t, IsValidPAN("ABCDE1234F"))
	assert.True(t, IsValidPAN(" abcde 1234f "))
	assert.False(t, IsValidPAN("ABCDE12345"))
	assert.True(t, IsValidAadhaar("2345-6789-0123"))
	assert.False(t, IsValidAadhaar("0345 6789 0123"))
	assert.False(t, IsValidAadhaar("2345 6789 012"))
	assert.Equal(t, "XX", MaskAadhaar("12"))
}

func TestApplication_DedupeKey(t *testing.T) {
	a, _ := NewApplication(validApplicant(), Class2, TypeNew, validAddress(t), Documents{})
	b, _ := NewApplication(validApplicant(), Class3, TypeNew, validAddress(t), Documents{})
	c, _ := NewApplication(validApplicant(), Class2, TypeRenewal, validAddress(t), Documents{})
	assert.Equal(t, a.DedupeKey(), b.DedupeKey())
	assert.NotEqual(t, a.DedupeKey(), c.DedupeKey())
}
