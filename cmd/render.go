package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/giygas/interactions-api/catalog/entities"
	"github.com/giygas/interactions-api/interfaces"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func renderInteraction(w io.Writer, drug1, drug2 string, result entities.InteractionResult) {
	fmt.Fprintf(w, "Checking interaction between:\n")
	fmt.Fprintf(w, "- %s (matched to: %s)\n", drug1, result.DrugA)
	fmt.Fprintf(w, "- %s (matched to: %s)\n\n", drug2, result.DrugB)

	if result.Outcome != entities.OutcomeInteraction {
		fmt.Fprintf(w, "Result: %s\n", result.Message)
		return
	}

	fmt.Fprintln(w, "Potential Interactions Found:")
	for _, interaction := range result.Interactions {
		fmt.Fprintf(w, "- %s\n", interaction)
	}
	fmt.Fprintln(w, "\nWarnings:")
	for _, warning := range result.Warnings {
		fmt.Fprintf(w, "- %s\n", warning)
	}
}

func renderDrugInfo(w io.Writer, name string, result entities.DrugInfoResult) {
	fmt.Fprintf(w, "Information for: %s\n", name)
	fmt.Fprintf(w, "Matched to: %s\n\n", result.Drug)

	if result.Info == nil {
		fmt.Fprintln(w, result.Message)
		return
	}

	fmt.Fprintf(w, "Drug Type: %s\n", orDefault(result.Info.Class, "Unknown"))
	fmt.Fprintf(w, "Known Interactions: %s\n", strings.Join(result.Info.Interactions, ", "))
	fmt.Fprintf(w, "Warnings: %s\n", orDefault(result.Info.Warning, "None"))
}

func renderSuggestions(w io.Writer, symptom string, result entities.SuggestionResult) {
	fmt.Fprintf(w, "Medication suggestions for: %s\n", symptom)
	fmt.Fprintf(w, "Matched to symptom: %s\n\n", result.Symptom)

	if result.Message != "" {
		fmt.Fprintln(w, result.Message)
		return
	}

	fmt.Fprintln(w, "Possible medications:")
	for _, s := range result.Suggestions {
		fmt.Fprintf(w, "\n- %s (%s)\n", s.Name, s.Class)
		fmt.Fprintf(w, "  Warnings: %s\n", s.Warning)
	}
}

func renderNames(w io.Writer, names []string) {
	if len(names) == 0 {
		fmt.Fprintln(w, "No matching drugs.")
		return
	}
	for _, name := range names {
		fmt.Fprintln(w, name)
	}
}

func renderQualityReport(w io.Writer, drugs, symptoms int, r *interfaces.CatalogQualityReport) {
	fmt.Fprintf(w, "Catalog: %d drugs, %d symptoms\n\n", drugs, symptoms)

	section := func(label string, count int, samples []string) {
		fmt.Fprintf(w, "%s: %d\n", label, count)
		for _, s := range samples {
			fmt.Fprintf(w, "  - %s\n", s)
		}
	}

	section("Interactions naming drugs outside the catalog", r.DanglingInteractions, r.DanglingInteractionsList)
	section("One-sided interactions", r.AsymmetricInteractions, r.AsymmetricInteractionsList)
	section("Symptom drugs missing from the catalog", r.DanglingSymptomDrugs, r.DanglingSymptomDrugsList)
	section("Symptoms without drugs", r.SymptomsWithoutDrugs, r.SymptomsWithoutDrugsList)
	section("Near-duplicate drug names", r.NearDuplicateDrugNames, r.NearDuplicateDrugNamesList)
	fmt.Fprintf(w, "Drugs without warning: %d\n", r.DrugsWithoutWarning)
	fmt.Fprintf(w, "Drugs without class: %d\n", r.DrugsWithoutClass)
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
