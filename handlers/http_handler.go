// Package handlers provides HTTP request handlers for the interactions API.
// Query outcomes, including unrecognized names, are answered with 200 and a
// structured body; only invalid input is a client error.
package handlers

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/giygas/interactions-api/catalog/entities"
	"github.com/giygas/interactions-api/interfaces"
	"github.com/giygas/interactions-api/logging"
	"github.com/giygas/interactions-api/metrics"
	"github.com/go-chi/chi/v5"
)

// Compile-time check to ensure HTTPHandlerImpl implements HTTPHandler
var _ interfaces.HTTPHandler = (*HTTPHandlerImpl)(nil)

const (
	defaultSearchLimit = 20
	maxSearchLimit     = 100
)

// HTTPHandlerImpl implements the interfaces.HTTPHandler interface
type HTTPHandlerImpl struct {
	dataStore     interfaces.DataStore
	validator     interfaces.DataValidator
	healthChecker interfaces.HealthChecker
}

// NewHTTPHandler creates a new HTTP handler with injected dependencies
func NewHTTPHandler(dataStore interfaces.DataStore, validator interfaces.DataValidator, healthChecker interfaces.HealthChecker) interfaces.HTTPHandler {
	return &HTTPHandlerImpl{
		dataStore:     dataStore,
		validator:     validator,
		healthChecker: healthChecker,
	}
}

// ListResponse wraps a list of catalog names
type ListResponse struct {
	Query string   `json:"query,omitempty"`
	Count int      `json:"count"`
	Items []string `json:"items"`
}

// HealthResponse defines the structure for consistent JSON ordering
type HealthResponse struct {
	Status string         `json:"status"`
	Data   map[string]any `json:"data"`
}

// RespondWithJSON writes a JSON response
func (h *HTTPHandlerImpl) RespondWithJSON(w http.ResponseWriter, code int, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		logging.Error("Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Last-Modified", time.Now().UTC().Format(http.TimeFormat))
	w.WriteHeader(code)
	if _, err := w.Write(data); err != nil {
		logging.Warn("Failed to write response", "error", err)
	}
}

// RespondWithError writes a JSON error response
func (h *HTTPHandlerImpl) RespondWithError(w http.ResponseWriter, code int, message string) {
	errorResponse := map[string]any{
		"error":   http.StatusText(code),
		"message": message,
		"code":    code,
	}
	h.RespondWithJSON(w, code, errorResponse)
}

// engine returns the loaded engine or answers 503
func (h *HTTPHandlerImpl) engine(w http.ResponseWriter) (interfaces.InteractionChecker, bool) {
	if h.dataStore == nil {
		h.RespondWithError(w, http.StatusServiceUnavailable, "Catalog not loaded")
		return nil, false
	}
	engine := h.dataStore.GetEngine()
	if engine == nil {
		h.RespondWithError(w, http.StatusServiceUnavailable, "Catalog not loaded")
		return nil, false
	}
	return engine, true
}

// validate checks a user supplied name, answering 400 on failure
func (h *HTTPHandlerImpl) validate(w http.ResponseWriter, field, value string) bool {
	if h.validator == nil {
		return true
	}
	if err := h.validator.ValidateInput(value); err != nil {
		logging.Warn("Unusual user input", field, value, "error", err)
		h.RespondWithError(w, http.StatusBadRequest, field+": "+err.Error())
		return false
	}
	return true
}

// pathParam returns the decoded chi URL parameter
func pathParam(r *http.Request, key string) string {
	raw := chi.URLParam(r, key)
	if decoded, err := url.PathUnescape(raw); err == nil {
		return decoded
	}
	return raw
}

// CheckInteraction handles GET /v1/interactions?drug1=&drug2=
func (h *HTTPHandlerImpl) CheckInteraction(w http.ResponseWriter, r *http.Request) {
	drug1 := r.URL.Query().Get("drug1")
	drug2 := r.URL.Query().Get("drug2")

	if drug1 == "" || drug2 == "" {
		h.RespondWithError(w, http.StatusBadRequest, "Please enter both drug names (drug1 and drug2)")
		return
	}
	if !h.validate(w, "drug1", drug1) || !h.validate(w, "drug2", drug2) {
		return
	}

	engine, ok := h.engine(w)
	if !ok {
		return
	}

	result := engine.CheckInteraction(drug1, drug2)
	recordQuery(r, "check_interaction", string(result.Outcome))

	h.RespondWithJSON(w, http.StatusOK, result)
}

// recordQuery counts a lookup outcome and tags the request's access log line with it
func recordQuery(r *http.Request, operation, outcome string) {
	metrics.RecordQuery(operation, outcome)
	logging.AnnotateQuery(r.Context(), operation, outcome)
}

// ListDrugs handles GET /v1/drugs with an optional ?q= fuzzy search and ?limit=
func (h *HTTPHandlerImpl) ListDrugs(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query != "" && !h.validate(w, "q", query) {
		return
	}

	limit := 0
	if query != "" {
		limit = defaultSearchLimit
	}
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 1 || parsed > maxSearchLimit {
			h.RespondWithError(w, http.StatusBadRequest, "limit must be between 1 and 100")
			return
		}
		limit = parsed
	}

	engine, ok := h.engine(w)
	if !ok {
		return
	}

	items := engine.SearchDrugs(query, limit)
	h.RespondWithJSON(w, http.StatusOK, ListResponse{
		Query: query,
		Count: len(items),
		Items: items,
	})
}

// GetDrugInfo handles GET /v1/drugs/{name}
func (h *HTTPHandlerImpl) GetDrugInfo(w http.ResponseWriter, r *http.Request) {
	name := pathParam(r, "name")
	if !h.validate(w, "name", name) {
		return
	}

	engine, ok := h.engine(w)
	if !ok {
		return
	}

	result := engine.GetDrugInfo(name)
	recordQuery(r, "drug_info", resolvedLabel(result.Drug))

	h.RespondWithJSON(w, http.StatusOK, result)
}

// ListSymptoms handles GET /v1/symptoms
func (h *HTTPHandlerImpl) ListSymptoms(w http.ResponseWriter, r *http.Request) {
	if h.dataStore == nil || h.dataStore.GetCatalog() == nil {
		h.RespondWithError(w, http.StatusServiceUnavailable, "Catalog not loaded")
		return
	}

	items := h.dataStore.GetCatalog().SymptomNames()
	h.RespondWithJSON(w, http.StatusOK, ListResponse{
		Count: len(items),
		Items: items,
	})
}

// SuggestForSymptom handles GET /v1/symptoms/{symptom}/suggestions
func (h *HTTPHandlerImpl) SuggestForSymptom(w http.ResponseWriter, r *http.Request) {
	symptom := pathParam(r, "symptom")
	if !h.validate(w, "symptom", symptom) {
		return
	}

	engine, ok := h.engine(w)
	if !ok {
		return
	}

	result := engine.SuggestForSymptom(symptom)
	recordQuery(r, "suggest_for_symptom", resolvedLabel(result.Symptom))

	h.RespondWithJSON(w, http.StatusOK, result)
}

// HealthCheck handles GET /health
func (h *HTTPHandlerImpl) HealthCheck(w http.ResponseWriter, r *http.Request) {
	if h.healthChecker == nil {
		h.RespondWithError(w, http.StatusServiceUnavailable, "Health checker not configured")
		return
	}

	status, data, httpStatus := h.healthChecker.HealthCheck()
	metrics.SetHealthStatus(status)

	h.RespondWithJSON(w, httpStatus, HealthResponse{
		Status: status,
		Data:   data,
	})
}

func resolvedLabel(m entities.MatchResult) string {
	if m.Resolved {
		return "resolved"
	}
	return "unrecognized"
}
