package cmd

import (
	"fmt"

	"github.com/giygas/interactions-api/catalog"
	"github.com/giygas/interactions-api/config"
	"github.com/giygas/interactions-api/data"
	"github.com/giygas/interactions-api/engine"
	"github.com/giygas/interactions-api/interfaces"
	"github.com/giygas/interactions-api/logging"
	"github.com/giygas/interactions-api/metrics"
	"github.com/giygas/interactions-api/validation"
)

// loadCatalog returns the configured catalog file, or the built-in catalog
func loadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	if cfg.CatalogPath == "" {
		logging.Debug("Using built-in catalog")
		return catalog.Default(), nil
	}

	c, err := catalog.LoadFile(cfg.CatalogPath, cfg.CatalogEncoding)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	logging.Info("Catalog file loaded", "path", cfg.CatalogPath, "drugs", c.DrugCount(), "symptoms", c.SymptomCount())
	return c, nil
}

// buildEngine loads the catalog and builds the engine and quality report over it
func buildEngine(cfg *config.Config) (*engine.InteractionEngine, *interfaces.CatalogQualityReport, error) {
	c, err := loadCatalog(cfg)
	if err != nil {
		return nil, nil, err
	}

	eng := engine.New(c, engine.Options{
		NameThreshold: cfg.DrugMatchThreshold,
		SymptomCutoff: cfg.SymptomMatchCutoff,
	})

	report := validation.NewDataValidator().ReportCatalogQuality(c)
	logQualityReport(report)

	return eng, report, nil
}

// newDataContainer builds the engine and publishes it in a fresh container
func newDataContainer(cfg *config.Config) (*data.DataContainer, error) {
	eng, report, err := buildEngine(cfg)
	if err != nil {
		return nil, err
	}

	dc := data.NewDataContainer()
	if err := dc.Load(eng.Catalog(), eng, report); err != nil {
		return nil, fmt.Errorf("failed to publish catalog: %w", err)
	}

	metrics.SetCatalogSize(eng.Catalog().DrugCount(), eng.Catalog().SymptomCount())
	return dc, nil
}

func logQualityReport(report *interfaces.CatalogQualityReport) {
	if report.DanglingSymptomDrugs > 0 {
		logging.Warn("Symptoms reference unknown drugs",
			"count", report.DanglingSymptomDrugs,
			"samples", report.DanglingSymptomDrugsList)
	}
	if report.NearDuplicateDrugNames > 0 {
		logging.Warn("Catalog has near-duplicate drug names",
			"count", report.NearDuplicateDrugNames,
			"samples", report.NearDuplicateDrugNamesList)
	}
	if report.DanglingInteractions > 0 || report.AsymmetricInteractions > 0 {
		logging.Debug("Catalog interaction coverage",
			"dangling", report.DanglingInteractions,
			"asymmetric", report.AsymmetricInteractions)
	}
}
