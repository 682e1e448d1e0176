package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	careersapp "github.com/shcya/backend/internal/application/careers"
	complianceapp "github.com/shcya/backend/internal/application/compliance"
	documentapp "github.com/shcya/backend/internal/application/document"
	dscapp "github.com/shcya/backend/internal/application/dsc"
	inquiryapp "github.com/shcya/backend/internal/application/inquiry"
	"github.com/shcya/backend/internal/application/submission"
	"github.com/shcya/backend/internal/infrastructure/cache"
	"github.com/shcya/backend/internal/infrastructure/config"
	"github.com/shcya/backend/internal/infrastructure/persistence"
	"github.com/shcya/backend/internal/infrastructure/storage"
	"github.com/shcya/backend/internal/interfaces/http/dto"
	"github.com/shcya/backend/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

// testApp serves the handlers over a private in-memory database and
// object store.
type testApp struct {
	engine *gin.Engine
	store  *storage.StubObjectStorage
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	db, err := persistence.NewDatabase(&config.DatabaseConfig{Driver: "sqlite", Path: "file::memory:"})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate())
	t.Cleanup(func() { _ = db.Close() })

	guard := cache.NewInMemorySubmissionGuard(time.Minute)
	t.Cleanup(func() { _ = guard.Close() })
	gate := submission.NewGate(guard, time.Minute, nil)

	store := storage.NewStubObjectStorage("https://files.test")
	docs := documentapp.NewService(store, 1<<20, nil)

	inquiries := NewInquiryHandler(inquiryapp.NewService(persistence.NewGormInquiryRepository(db.DB), gate, nil))
	dsc := NewDSCHandler(dscapp.NewService(persistence.NewGormDSCApplicationRepository(db.DB), gate, nil))
	careers := NewCareersHandler(careersapp.NewService(persistence.NewGormJobApplicationRepository(db.DB), gate, nil))
	compliance := NewComplianceHandler(complianceapp.NewService(nil))
	documents := NewDocumentHandler(docs)

	r := gin.New()
	r.Use(middleware.RequestID())
	api := r.Group("/api/v1")
	api.POST("/compliance/rule86b/evaluate", compliance.EvaluateRule86B)
	api.POST("/inquiries", inquiries.Submit)
	api.POST("/dsc-applications", dsc.Submit)
	api.POST("/dsc-applications/documents", middleware.BodyLimit(documents.BodyLimit()), documents.UploadDSCDocument)
	api.POST("/careers/applications", careers.Submit)
	api.POST("/careers/documents", middleware.BodyLimit(documents.BodyLimit()), documents.UploadResume)

	admin := api.Group("/admin")
	admin.GET("/inquiries", inquiries.List)
	admin.GET("/inquiries/:id", inquiries.GetByID)
	admin.PUT("/inquiries/:id/status", inquiries.UpdateStatus)
	admin.GET("/dsc-applications", dsc.List)
	admin.GET("/dsc-applications/:id", dsc.GetByID)
	admin.PUT("/dsc-applications/:id/status", dsc.UpdateStatus)
	admin.PUT("/dsc-applications/:id/documents", dsc.AttachDocument)
	admin.GET("/careers/applications", careers.List)
	admin.GET("/careers/applications/:id", careers.GetByID)
	admin.PUT("/careers/applications/:id/status", careers.UpdateStatus)

	return &testApp{engine: r, store: store}
}

// do sends a JSON request; body may be a string or any value to marshal.
func (a *testApp) do(t *testing.T, method, path string, body any) (*httptest.ResponseRecorder, dto.Response) {
	t.Helper()

	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	return a.serve(t, req)
}

func (a *testApp) serve(t *testing.T, req *http.Request) (*httptest.ResponseRecorder, dto.Response) {
	t.Helper()

	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return w, resp
}

// dataMap returns the response data as a JSON object
func dataMap(t *testing.T, resp dto.Response) map[string]any {
	t.Helper()
	m, ok := resp.Data.(map[string]any)
	require.True(t, ok, "data is %T", resp.Data)
	return m
}

func validInquiry() map[string]any {
	return map[string]any{
		"name":         "Ravi Kumar",
		"email":        "ravi@example.in",
		"phone":        "+91 98765 43210",
		"company":      "Kumar Traders",
		"service_type": "Taxation",
		"message":      "Need help with GST returns",
	}
}

func validDSCApplication() map[string]any {
	return map[string]any{
		"applicant_name":   "Anita Sharma",
		"email":            "anita@example.in",
		"mobile":           "9876543210",
		"pan_number":       "ABCDE1234F",
		"aadhaar_number":   "234567890123",
		"dsc_class":        "class3",
		"application_type": "new",
		"address":          "12 MG Road",
		"city":             "Bengaluru",
		"state":            "Karnataka",
		"pincode":          "560001",
	}
}

func validJobApplication() map[string]any {
	return map[string]any{
		"full_name":                  "Priya Nair",
		"email":                      "priya@example.in",
		"phone":                      "9123456780",
		"position_applied":           "Audit Associate",
		"experience_years":           3,
		"qualification":              "CA Inter",
		"availability":               "1-month",
		"employment_type_preference": "full-time",
	}
}
