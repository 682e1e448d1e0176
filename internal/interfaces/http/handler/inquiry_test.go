package handler

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/shcya/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func submitInquiry(t *testing.T, app *testApp, body map[string]any) string {
	t.Helper()
	w, resp := app.do(t, http.MethodPost, "/api/v1/inquiries", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return dataMap(t, resp)["id"].(string)
}

func TestInquiryHandler_Submit(t *testing.T) {
	app := newTestApp(t)

	w, resp := app.do(t, http.MethodPost, "/api/v1/inquiries", validInquiry())

	require.Equal(t, http.StatusCreated, w.Code)
	data := dataMap(t, resp)
	assert.Equal(t, "new", data["status"])
	assert.Equal(t, "Taxation", data["service_type"])
	assert.Equal(t, "ravi@example.in", data["email"])
	_, err := uuid.Parse(data["id"].(string))
	assert.NoError(t, err)
}

func TestInquiryHandler_Submit_DuplicateWithinWindow(t *testing.T) {
	app := newTestApp(t)
	submitInquiry(t, app, validInquiry())

	w, resp := app.do(t, http.MethodPost, "/api/v1/inquiries", validInquiry())

	assert.Equal(t, http.StatusConflict, w.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeAlreadyExists, resp.Error.Code)
	assert.Equal(t, "This inquiry has already been submitted.", resp.Error.Message)

	other := validInquiry()
	other["service_type"] = "Auditing"
	submitInquiry(t, app, other)
}

func TestInquiryHandler_Submit_Validation(t *testing.T) {
	app := newTestApp(t)

	tests := []struct {
		name  string
		field string
		value any
	}{
		{"missing name", "name", ""},
		{"bad email", "email", "not-an-email"},
		{"landline", "phone", "080 2345 678"},
		{"unknown service", "service_type", "Payroll"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := validInquiry()
			body[tt.field] = tt.value

			w, resp := app.do(t, http.MethodPost, "/api/v1/inquiries", body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			require.NotNil(t, resp.Error)
			assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
			require.NotEmpty(t, resp.Error.Details)
			assert.Equal(t, tt.field, resp.Error.Details[0].Field)
		})
	}
}

func TestInquiryHandler_AdminFlow(t *testing.T) {
	app := newTestApp(t)
	id := submitInquiry(t, app, validInquiry())
	second := validInquiry()
	second["email"] = "meera@example.in"
	second["service_type"] = "Book Keeping"
	submitInquiry(t, app, second)

	t.Run("list with meta", func(t *testing.T) {
		w, resp := app.do(t, http.MethodGet, "/api/v1/admin/inquiries?page_size=1", nil)
		require.Equal(t, http.StatusOK, w.Code)
		require.NotNil(t, resp.Meta)
		assert.Equal(t, int64(2), resp.Meta.Total)
		assert.Equal(t, 1, resp.Meta.PageSize)
		assert.Equal(t, 2, resp.Meta.TotalPages)
		assert.Len(t, resp.Data, 1)
	})

	t.Run("filter by service", func(t *testing.T) {
		w, resp := app.do(t, http.MethodGet, "/api/v1/admin/inquiries?service_type=Book+Keeping", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, int64(1), resp.Meta.Total)
	})

	t.Run("unknown status filter", func(t *testing.T) {
		w, resp := app.do(t, http.MethodGet, "/api/v1/admin/inquiries?status=archived", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "INVALID_STATUS", resp.Error.Code)
	})

	t.Run("get by id", func(t *testing.T) {
		w, resp := app.do(t, http.MethodGet, "/api/v1/admin/inquiries/"+id, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, id, dataMap(t, resp)["id"])
	})

	t.Run("status transitions", func(t *testing.T) {
		w, resp := app.do(t, http.MethodPut, "/api/v1/admin/inquiries/"+id+"/status", map[string]string{"status": "contacted"})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "contacted", dataMap(t, resp)["status"])

		w, resp = app.do(t, http.MethodPut, "/api/v1/admin/inquiries/"+id+"/status", map[string]string{"status": "new"})
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, dto.ErrCodeInvalidState, resp.Error.Code)
	})
}

func TestInquiryHandler_NotFoundAndBadID(t *testing.T) {
	app := newTestApp(t)

	w, resp := app.do(t, http.MethodGet, "/api/v1/admin/inquiries/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, dto.ErrCodeNotFound, resp.Error.Code)

	w, resp = app.do(t, http.MethodGet, "/api/v1/admin/inquiries/42", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.ErrCodeBadRequest, resp.Error.Code)
}
