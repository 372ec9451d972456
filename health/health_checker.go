// Package health provides health checking functionality for the interactions API.
package health

import (
	"math"
	"net/http"
	"time"

	"github.com/giygas/interactions-api/interfaces"
)

// Compile-time check to ensure HealthCheckerImpl implements HealthChecker
var _ interfaces.HealthChecker = (*HealthCheckerImpl)(nil)

// HealthCheckerImpl implements the interfaces.HealthChecker interface
type HealthCheckerImpl struct {
	dataStore interfaces.DataStore
}

// NewHealthChecker creates a new health checker with injected dependencies
func NewHealthChecker(dataStore interfaces.DataStore) interfaces.HealthChecker {
	return &HealthCheckerImpl{
		dataStore: dataStore,
	}
}

// HealthCheck reports unhealthy when there is nothing to answer from and
// degraded when symptom suggestions will silently drop dangling drugs
func (h *HealthCheckerImpl) HealthCheck() (status string, data map[string]any, httpStatus int) {
	if h.dataStore == nil || !h.dataStore.IsReady() {
		return "unhealthy", map[string]any{"catalog_loaded": false}, http.StatusServiceUnavailable
	}

	c := h.dataStore.GetCatalog()
	report := h.dataStore.GetQualityReport()
	loadedAt := h.dataStore.GetLoadedAt()

	drugs, symptoms := 0, 0
	if c != nil {
		drugs, symptoms = c.DrugCount(), c.SymptomCount()
	}

	switch {
	case h.dataStore.GetEngine() == nil || drugs == 0:
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable

	case report != nil && report.DanglingSymptomDrugs > 0:
		status = "degraded"
		httpStatus = http.StatusOK

	default:
		status = "healthy"
		httpStatus = http.StatusOK
	}

	data = map[string]any{
		"catalog_loaded": true,
		"loaded_at":      loadedAt.Format(time.RFC3339),
		"drugs":          drugs,
		"symptoms":       symptoms,
	}

	if start := h.dataStore.GetServerStartTime(); !start.IsZero() {
		data["uptime_hours"] = math.Round(time.Since(start).Hours()*10) / 10
	}

	if report != nil {
		data["dangling_interactions"] = report.DanglingInteractions
		data["dangling_symptom_drugs"] = report.DanglingSymptomDrugs
		data["asymmetric_interactions"] = report.AsymmetricInteractions
	}

	return status, data, httpStatus
}
