// Package engine composes the catalog with the drug and symptom resolvers to
// answer interaction, drug information and symptom suggestion queries.
// Every query is a pure function of the immutable catalog, the resolver
// models and its arguments, so an engine can be shared between goroutines.
package engine

import (
	"fmt"
	"slices"

	"github.com/giygas/interactions-api/catalog"
	"github.com/giygas/interactions-api/catalog/entities"
	"github.com/giygas/interactions-api/interfaces"
	"github.com/giygas/interactions-api/matching"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Compile-time check to ensure InteractionEngine implements InteractionChecker
var _ interfaces.InteractionChecker = (*InteractionEngine)(nil)

// Options tunes the resolvers built by New. Zero values select the defaults.
type Options struct {
	NameThreshold float64
	SymptomCutoff float64
}

// InteractionEngine answers the three catalog queries
type InteractionEngine struct {
	catalog  *catalog.Catalog
	drugs    interfaces.FuzzyResolver
	symptoms interfaces.FuzzyResolver
}

// New builds the resolvers for c and returns an engine over them
func New(c *catalog.Catalog, opts Options) *InteractionEngine {
	if opts.NameThreshold == 0 {
		opts.NameThreshold = matching.DefaultNameThreshold
	}
	if opts.SymptomCutoff == 0 {
		opts.SymptomCutoff = matching.DefaultSymptomCutoff
	}

	return NewWithResolvers(c,
		matching.NewNameResolver(c.DrugNames(), opts.NameThreshold),
		matching.NewSymptomResolver(c.SymptomNames(), opts.SymptomCutoff),
	)
}

// NewWithResolvers returns an engine using the given resolvers
func NewWithResolvers(c *catalog.Catalog, drugs, symptoms interfaces.FuzzyResolver) *InteractionEngine {
	return &InteractionEngine{
		catalog:  c,
		drugs:    drugs,
		symptoms: symptoms,
	}
}

// CheckInteraction resolves both names and looks for a listed interaction in
// each direction, A→B first. The catalog may list a pair on one side only.
func (e *InteractionEngine) CheckInteraction(nameA, nameB string) entities.InteractionResult {
	a := e.drugs.Resolve(nameA)
	b := e.drugs.Resolve(nameB)

	result := entities.InteractionResult{
		DrugA:        a,
		DrugB:        b,
		Interactions: []string{},
		Warnings:     []string{},
	}

	if !a.Resolved || !b.Resolved {
		result.Outcome = entities.OutcomeUnrecognized
		result.Message = entities.MessageUnrecognizedPair
		return result
	}

	for _, pair := range [][2]string{{a.Name, b.Name}, {b.Name, a.Name}} {
		record, ok := e.catalog.Drug(pair[0])
		if !ok || !record.ListsInteraction(pair[1]) {
			continue
		}
		result.Interactions = append(result.Interactions, fmt.Sprintf("%s may interact with %s", pair[0], pair[1]))
		result.Warnings = append(result.Warnings, record.Warning)
	}

	if len(result.Interactions) == 0 {
		result.Outcome = entities.OutcomeNoInteraction
		result.Message = entities.MessageNoInteraction
		return result
	}

	result.Outcome = entities.OutcomeInteraction
	return result
}

// GetDrugInfo returns the full record of the drug closest to name
func (e *InteractionEngine) GetDrugInfo(name string) entities.DrugInfoResult {
	match := e.drugs.Resolve(name)
	if !match.Resolved {
		return entities.DrugInfoResult{Drug: match, Message: entities.MessageDrugNotFound}
	}

	record, ok := e.catalog.Drug(match.Name)
	if !ok {
		return entities.DrugInfoResult{Drug: entities.Unresolved(), Message: entities.MessageDrugNotFound}
	}

	return entities.DrugInfoResult{Drug: match, Info: &record}
}

// SuggestForSymptom lists the drugs recorded for the closest symptom, in the
// symptom's stored order. Each listed drug is re-resolved and silently
// skipped when it no longer maps to a catalog entry.
func (e *InteractionEngine) SuggestForSymptom(symptom string) entities.SuggestionResult {
	match := e.symptoms.Resolve(symptom)
	if !match.Resolved {
		return entities.SuggestionResult{Symptom: match, Suggestions: []entities.Suggestion{}, Message: entities.MessageNoSuggestions}
	}

	record, ok := e.catalog.Symptom(match.Name)
	if !ok {
		return entities.SuggestionResult{Symptom: entities.Unresolved(), Suggestions: []entities.Suggestion{}, Message: entities.MessageNoSuggestions}
	}

	suggestions := make([]entities.Suggestion, 0, len(record.Drugs))
	for _, listed := range record.Drugs {
		drug := e.drugs.Resolve(listed)
		if !drug.Resolved {
			continue
		}
		info, ok := e.catalog.Drug(drug.Name)
		if !ok {
			continue
		}
		suggestions = append(suggestions, entities.Suggestion{
			Name:    info.Name,
			Class:   info.Class,
			Warning: info.Warning,
		})
	}

	return entities.SuggestionResult{Symptom: match, Suggestions: suggestions}
}

// SearchDrugs returns canonical drug names containing the query's characters
// in order, closest first. An empty query lists the catalog. limit <= 0 means
// no limit.
func (e *InteractionEngine) SearchDrugs(query string, limit int) []string {
	names := e.catalog.DrugNames()
	query = catalog.NormalizeName(query)

	var results []string
	if query == "" {
		results = names
	} else {
		ranks := fuzzy.RankFindNormalizedFold(query, names)
		slices.SortStableFunc(ranks, func(a, b fuzzy.Rank) int {
			if a.Distance != b.Distance {
				return a.Distance - b.Distance
			}
			return a.OriginalIndex - b.OriginalIndex
		})
		results = make([]string, 0, len(ranks))
		for _, rank := range ranks {
			results = append(results, rank.Target)
		}
	}

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}

// Catalog returns the catalog the engine answers from
func (e *InteractionEngine) Catalog() *catalog.Catalog {
	return e.catalog
}
