package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/giygas/interactions-api/catalog"
	"github.com/giygas/interactions-api/data"
	"github.com/giygas/interactions-api/engine"
	"github.com/giygas/interactions-api/interfaces"
	"github.com/go-chi/chi/v5"
)

// ============================================================================
// TEST DATA FACTORY
// ============================================================================

// newLoadedContainer returns a container holding the built-in catalog
func newLoadedContainer(t *testing.T) *data.DataContainer {
	t.Helper()
	c := catalog.Default()
	dc := data.NewDataContainer()
	if err := dc.Load(c, engine.New(c, engine.Options{}), &interfaces.CatalogQualityReport{}); err != nil {
		t.Fatalf("Failed to load container: %v", err)
	}
	dc.SetServerStartTime(time.Now())
	return dc
}

// ============================================================================
// MOCKS
// ============================================================================

// MockDataValidator rejects every input when inputErr is set
type MockDataValidator struct {
	inputErr error
}

func (m *MockDataValidator) ValidateInput(input string) error {
	return m.inputErr
}

func (m *MockDataValidator) ReportCatalogQuality(c *catalog.Catalog) *interfaces.CatalogQualityReport {
	return &interfaces.CatalogQualityReport{}
}

// MockHealthChecker returns a fixed health answer
type MockHealthChecker struct {
	status     string
	data       map[string]any
	httpStatus int
}

func (m *MockHealthChecker) HealthCheck() (string, map[string]any, int) {
	return m.status, m.data, m.httpStatus
}

var errRejected = errors.New("input contains invalid characters")

// ============================================================================
// HTTP HELPERS
// ============================================================================

// newTestRouter mounts the handler the way the server does
func newTestRouter(h interfaces.HTTPHandler) http.Handler {
	r := chi.NewRouter()
	r.Route("/v1", func(r chi.Router) {
		r.Get("/interactions", h.CheckInteraction)
		r.Get("/drugs", h.ListDrugs)
		r.Get("/drugs/{name}", h.GetDrugInfo)
		r.Get("/symptoms", h.ListSymptoms)
		r.Get("/symptoms/{symptom}/suggestions", h.SuggestForSymptom)
	})
	r.Get("/health", h.HealthCheck)
	return r
}

func doRequest(t *testing.T, router http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder, target any) {
	t.Helper()
	if err := json.Unmarshal(rr.Body.Bytes(), target); err != nil {
		t.Fatalf("Failed to decode response %q: %v", rr.Body.String(), err)
	}
}

func assertErrorResponse(t *testing.T, rr *httptest.ResponseRecorder, expectedStatus int) map[string]any {
	t.Helper()
	if rr.Code != expectedStatus {
		t.Errorf("Expected status %d, got %d (%s)", expectedStatus, rr.Code, rr.Body.String())
	}
	var body map[string]any
	decodeBody(t, rr, &body)
	for _, key := range []string{"error", "message", "code"} {
		if _, ok := body[key]; !ok {
			t.Errorf("Expected %q in error response, got %v", key, body)
		}
	}
	return body
}
