// Package data provides thread-safe access to the catalog and the engine
// built on it. The container is populated once at startup and is read-only
// afterwards, so handlers can share it without locking.
package data

import (
	"errors"
	"sync/atomic"
	"time"

	"github.com/giygas/interactions-api/catalog"
	"github.com/giygas/interactions-api/interfaces"
	"github.com/giygas/interactions-api/logging"
)

// Compile-time check to ensure DataContainer implements DataStore
var _ interfaces.DataStore = (*DataContainer)(nil)

// ErrAlreadyLoaded is returned when Load is called a second time
var ErrAlreadyLoaded = errors.New("data container already loaded")

// snapshot groups everything published by Load
type snapshot struct {
	engine   interfaces.InteractionChecker
	catalog  *catalog.Catalog
	report   *interfaces.CatalogQualityReport
	loadedAt time.Time
}

// DataContainer publishes the catalog and engine with a single atomic store
type DataContainer struct {
	current         atomic.Pointer[snapshot]
	serverStartTime atomic.Value // time.Time
}

// NewDataContainer creates an empty DataContainer
func NewDataContainer() *DataContainer {
	dc := &DataContainer{}
	dc.serverStartTime.Store(time.Time{})
	return dc
}

// Load publishes the catalog, its engine and quality report. Only the first
// call succeeds.
func (dc *DataContainer) Load(c *catalog.Catalog, engine interfaces.InteractionChecker, report *interfaces.CatalogQualityReport) error {
	if c == nil || engine == nil {
		return errors.New("catalog and engine are required")
	}
	if report == nil {
		report = &interfaces.CatalogQualityReport{}
	}

	next := &snapshot{
		engine:   engine,
		catalog:  c,
		report:   report,
		loadedAt: time.Now(),
	}
	if !dc.current.CompareAndSwap(nil, next) {
		return ErrAlreadyLoaded
	}

	logging.Info("Catalog loaded", "drug_count", c.DrugCount(), "symptom_count", c.SymptomCount())
	return nil
}

// IsReady reports whether Load has completed
func (dc *DataContainer) IsReady() bool {
	return dc.current.Load() != nil
}

// GetEngine returns the interaction engine, or nil before Load
func (dc *DataContainer) GetEngine() interfaces.InteractionChecker {
	if s := dc.current.Load(); s != nil {
		return s.engine
	}
	logging.Warn("Engine requested before catalog load")
	return nil
}

// GetCatalog returns the loaded catalog, or nil before Load
func (dc *DataContainer) GetCatalog() *catalog.Catalog {
	if s := dc.current.Load(); s != nil {
		return s.catalog
	}
	return nil
}

// GetQualityReport returns the report computed at load time
func (dc *DataContainer) GetQualityReport() *interfaces.CatalogQualityReport {
	if s := dc.current.Load(); s != nil {
		return s.report
	}
	return &interfaces.CatalogQualityReport{}
}

// GetLoadedAt returns when the catalog was published
func (dc *DataContainer) GetLoadedAt() time.Time {
	if s := dc.current.Load(); s != nil {
		return s.loadedAt
	}
	return time.Time{}
}

// SetServerStartTime sets the server start time
func (dc *DataContainer) SetServerStartTime(startTime time.Time) {
	dc.serverStartTime.Store(startTime)
}

// GetServerStartTime returns the server start time
func (dc *DataContainer) GetServerStartTime() time.Time {
	if v := dc.serverStartTime.Load(); v != nil {
		if startTime, ok := v.(time.Time); ok {
			return startTime
		}
	}

	logging.Warn("Could not get the server start time value")
	return time.Time{}
}
