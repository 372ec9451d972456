// Package validation checks user supplied query text and reports catalog
// consistency issues.
package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/giygas/interactions-api/catalog"
	"github.com/giygas/interactions-api/interfaces"
	"github.com/hbollon/go-edlib"
)

// Pre-compiled patterns, compiled once at package initialization
var (
	// Input validation: alphanumeric + accents + safe punctuation
	inputRegex = regexp.MustCompile(`^[a-zA-Z0-9\s\-\.\+'àâäéèêëïîôöùûüÿç]+$`)

	// Dangerous patterns as plain substrings (cheaper than regex)
	dangerousPatterns = []string{
		"<script", "</script>", "javascript:", "vbscript:", "onload=", "onerror=",
		"eval(", "expression(", "@import",
		// SQL injection patterns
		"' or ", "\" or ", "union select", "drop table", "delete from", "insert into",
		"--", "/*", "*/", "exec(",
		// Command injection patterns
		"; ", "| ", "& ", "`", "$(", "${",
		// Path traversal patterns
		"../", "..\\", "%2e%2e", "file://",
	}
)

const (
	maxInputLength = 100
	maxInputWords  = 6
	// Catalog names at least this similar can steal each other's matches
	nearDuplicateSimilarity = 0.85
	reportSampleSize        = 10
)

// DataValidatorImpl implements the interfaces.DataValidator interface
type DataValidatorImpl struct{}

// NewDataValidator creates a new data validator
func NewDataValidator() interfaces.DataValidator {
	return &DataValidatorImpl{}
}

// ValidateInput validates a drug or symptom name typed by a user
func (v *DataValidatorImpl) ValidateInput(input string) error {
	if strings.TrimSpace(input) == "" {
		return fmt.Errorf("input cannot be empty")
	}

	if len(input) > maxInputLength {
		return fmt.Errorf("input too long: maximum %d characters", maxInputLength)
	}

	if len(strings.Fields(input)) > maxInputWords {
		return fmt.Errorf("query too complex: maximum %d words allowed", maxInputWords)
	}

	lowerInput := strings.ToLower(input)
	for _, pattern := range dangerousPatterns {
		if strings.Contains(lowerInput, pattern) {
			return fmt.Errorf("input contains potentially dangerous content")
		}
	}

	if !inputRegex.MatchString(input) {
		return fmt.Errorf("input contains invalid characters. Only letters, numbers, spaces, hyphens, apostrophes, periods and plus sign are allowed")
	}

	if v.hasExcessiveRepetition(input) {
		return fmt.Errorf("input contains excessive character repetition")
	}

	return nil
}

// hasExcessiveRepetition reports the same byte repeated more than 10 times in a row
func (v *DataValidatorImpl) hasExcessiveRepetition(input string) bool {
	run := 1
	for i := 1; i < len(input); i++ {
		if input[i] == input[i-1] {
			run++
			if run > 10 {
				return true
			}
		} else {
			run = 1
		}
	}
	return false
}

// ReportCatalogQuality lists references to unknown drugs, one-sided
// interaction entries, incomplete records and drug names close enough to
// compete for the same query
func (v *DataValidatorImpl) ReportCatalogQuality(c *catalog.Catalog) *interfaces.CatalogQualityReport {
	report := &interfaces.CatalogQualityReport{
		DanglingInteractionsList:   []string{},
		DanglingSymptomDrugsList:   []string{},
		AsymmetricInteractionsList: []string{},
		NearDuplicateDrugNamesList: []string{},
		SymptomsWithoutDrugsList:   []string{},
	}
	if c == nil {
		return report
	}

	drugs := c.Drugs()

	// Check 1: interaction entries naming unknown drugs, and entries not
	// mirrored by the other drug
	for _, d := range drugs {
		if d.Warning == "" {
			report.DrugsWithoutWarning++
		}
		if d.Class == "" {
			report.DrugsWithoutClass++
		}

		for _, other := range d.Interactions {
			otherRecord, ok := c.Drug(other)
			if !ok {
				report.DanglingInteractions++
				report.DanglingInteractionsList = appendSample(report.DanglingInteractionsList, d.Name+" -> "+other)
				continue
			}
			if !otherRecord.ListsInteraction(d.Name) {
				report.AsymmetricInteractions++
				report.AsymmetricInteractionsList = appendSample(report.AsymmetricInteractionsList, d.Name+" -> "+other)
			}
		}
	}

	// Check 2: symptom lists naming unknown drugs
	for _, s := range c.Symptoms() {
		if len(s.Drugs) == 0 {
			report.SymptomsWithoutDrugs++
			report.SymptomsWithoutDrugsList = appendSample(report.SymptomsWithoutDrugsList, s.Name)
		}
		for _, drug := range s.Drugs {
			if !c.HasDrug(drug) {
				report.DanglingSymptomDrugs++
				report.DanglingSymptomDrugsList = appendSample(report.DanglingSymptomDrugsList, s.Name+" -> "+drug)
			}
		}
	}

	// Check 3: near-duplicate drug names
	for i := 0; i < len(drugs); i++ {
		for j := i + 1; j < len(drugs); j++ {
			similarity, err := edlib.StringsSimilarity(drugs[i].Name, drugs[j].Name, edlib.Levenshtein)
			if err != nil {
				continue
			}
			if similarity >= nearDuplicateSimilarity {
				report.NearDuplicateDrugNames++
				report.NearDuplicateDrugNamesList = appendSample(report.NearDuplicateDrugNamesList, drugs[i].Name+" ~ "+drugs[j].Name)
			}
		}
	}

	return report
}

func appendSample(list []string, item string) []string {
	if len(list) < reportSampleSize {
		return append(list, item)
	}
	return list
}
