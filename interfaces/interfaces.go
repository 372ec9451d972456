// Package interfaces defines core abstractions for the interactions API
// to improve testability, maintainability, and separation of concerns.
package interfaces

import (
	"net/http"
	"time"

	"github.com/giygas/interactions-api/catalog"
	"github.com/giygas/interactions-api/catalog/entities"
)

// FuzzyResolver maps free text to a canonical name or to "unresolved".
// Implementations are read-only after construction.
type FuzzyResolver interface {
	Resolve(text string) entities.MatchResult
}

// InteractionChecker is the query surface of the interaction engine
type InteractionChecker interface {
	CheckInteraction(nameA, nameB string) entities.InteractionResult
	GetDrugInfo(name string) entities.DrugInfoResult
	SuggestForSymptom(symptom string) entities.SuggestionResult

	// SearchDrugs lists canonical drug names loosely matching a partial query
	SearchDrugs(query string, limit int) []string
}

// CatalogQualityReport provides a summary of catalog consistency issues.
// Sample lists hold at most the first 10 entries found.
type CatalogQualityReport struct {
	DanglingInteractions       int      `json:"dangling_interactions"`
	DanglingInteractionsList   []string `json:"dangling_interactions_list"`
	DanglingSymptomDrugs       int      `json:"dangling_symptom_drugs"`
	DanglingSymptomDrugsList   []string `json:"dangling_symptom_drugs_list"`
	AsymmetricInteractions     int      `json:"asymmetric_interactions"`
	AsymmetricInteractionsList []string `json:"asymmetric_interactions_list"`
	NearDuplicateDrugNames     int      `json:"near_duplicate_drug_names"`
	NearDuplicateDrugNamesList []string `json:"near_duplicate_drug_names_list"`
	DrugsWithoutWarning        int      `json:"drugs_without_warning"`
	DrugsWithoutClass          int      `json:"drugs_without_class"`
	SymptomsWithoutDrugs       int      `json:"symptoms_without_drugs"`
	SymptomsWithoutDrugsList   []string `json:"symptoms_without_drugs_list"`
}

// DataStore gives thread-safe access to the catalog and the engine built on it.
// The store is populated once at startup and never updated afterwards.
type DataStore interface {
	GetEngine() InteractionChecker
	GetCatalog() *catalog.Catalog
	GetQualityReport() *CatalogQualityReport
	GetLoadedAt() time.Time
	GetServerStartTime() time.Time
	IsReady() bool
}

// Scheduler defines the contract for background maintenance jobs.
type Scheduler interface {
	Start() error
	Stop()
}

// LogCleaner removes log files past their retention period
type LogCleaner interface {
	CleanupOldLogs() error
}

// HTTPHandler defines the contract for HTTP request handlers.
type HTTPHandler interface {
	CheckInteraction(w http.ResponseWriter, r *http.Request)
	ListDrugs(w http.ResponseWriter, r *http.Request)
	GetDrugInfo(w http.ResponseWriter, r *http.Request)
	ListSymptoms(w http.ResponseWriter, r *http.Request)
	SuggestForSymptom(w http.ResponseWriter, r *http.Request)
	HealthCheck(w http.ResponseWriter, r *http.Request)
}

// HealthChecker defines the contract for health check functionality.
type HealthChecker interface {
	// HealthCheck returns the status label, details and HTTP status to send
	HealthCheck() (status string, details map[string]any, httpStatus int)
}

// DataValidator defines the contract for input and catalog validation.
type DataValidator interface {
	// ValidateInput validates a user supplied drug or symptom name
	ValidateInput(input string) error

	// ReportCatalogQuality lists consistency issues found in a catalog
	ReportCatalogQuality(c *catalog.Catalog) *CatalogQualityReport
}
