// Package catalog holds the read-only drug and symptom reference set used by
// the interaction engine, along with its built-in data and file loader.
package catalog

import (
	"fmt"
	"slices"
	"strings"

	"github.com/giygas/interactions-api/catalog/entities"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Catalog is the immutable set of drug and symptom records.
// Iteration order is load order.
type Catalog struct {
	drugs        []entities.DrugRecord
	drugIndex    map[string]int
	symptoms     []entities.SymptomRecord
	symptomIndex map[string]int
}

// New builds a catalog from the given records. Names are trimmed and
// lower-cased. Empty or duplicate keys are rejected; references to unknown
// drugs are kept as-is.
func New(drugs []entities.DrugRecord, symptoms []entities.SymptomRecord) (*Catalog, error) {
	c := &Catalog{
		drugs:        make([]entities.DrugRecord, 0, len(drugs)),
		drugIndex:    make(map[string]int, len(drugs)),
		symptoms:     make([]entities.SymptomRecord, 0, len(symptoms)),
		symptomIndex: make(map[string]int, len(symptoms)),
	}

	for i, d := range drugs {
		name := NormalizeName(d.Name)
		if name == "" {
			return nil, fmt.Errorf("drug at index %d has an empty name", i)
		}
		if _, exists := c.drugIndex[name]; exists {
			return nil, fmt.Errorf("duplicate drug name: %s", name)
		}

		c.drugIndex[name] = len(c.drugs)
		c.drugs = append(c.drugs, entities.DrugRecord{
			Name:         name,
			Interactions: normalizeKeys(d.Interactions),
			Warning:      strings.TrimSpace(d.Warning),
			Class:        strings.TrimSpace(d.Class),
		})
	}

	for i, s := range symptoms {
		name := NormalizeName(s.Name)
		if name == "" {
			return nil, fmt.Errorf("symptom at index %d has an empty name", i)
		}
		if _, exists := c.symptomIndex[name]; exists {
			return nil, fmt.Errorf("duplicate symptom name: %s", name)
		}

		c.symptomIndex[name] = len(c.symptoms)
		c.symptoms = append(c.symptoms, entities.SymptomRecord{
			Name:  name,
			Drugs: normalizeKeys(s.Drugs),
		})
	}

	return c, nil
}

// Drug returns a copy of the record for a canonical drug name
func (c *Catalog) Drug(name string) (entities.DrugRecord, bool) {
	i, ok := c.drugIndex[name]
	if !ok {
		return entities.DrugRecord{}, false
	}
	d := c.drugs[i]
	d.Interactions = slices.Clone(d.Interactions)
	return d, true
}

// Symptom returns a copy of the record for a canonical symptom name
func (c *Catalog) Symptom(name string) (entities.SymptomRecord, bool) {
	i, ok := c.symptomIndex[name]
	if !ok {
		return entities.SymptomRecord{}, false
	}
	s := c.symptoms[i]
	s.Drugs = slices.Clone(s.Drugs)
	return s, true
}

// HasDrug reports whether name is a canonical drug key
func (c *Catalog) HasDrug(name string) bool {
	_, ok := c.drugIndex[name]
	return ok
}

// DrugNames returns the canonical drug names in catalog order
func (c *Catalog) DrugNames() []string {
	names := make([]string, len(c.drugs))
	for i, d := range c.drugs {
		names[i] = d.Name
	}
	return names
}

// SymptomNames returns the canonical symptom names in catalog order
func (c *Catalog) SymptomNames() []string {
	names := make([]string, len(c.symptoms))
	for i, s := range c.symptoms {
		names[i] = s.Name
	}
	return names
}

// Drugs returns copies of every drug record in catalog order
func (c *Catalog) Drugs() []entities.DrugRecord {
	out := make([]entities.DrugRecord, len(c.drugs))
	for i, d := range c.drugs {
		d.Interactions = slices.Clone(d.Interactions)
		out[i] = d
	}
	return out
}

// Symptoms returns copies of every symptom record in catalog order
func (c *Catalog) Symptoms() []entities.SymptomRecord {
	out := make([]entities.SymptomRecord, len(c.symptoms))
	for i, s := range c.symptoms {
		s.Drugs = slices.Clone(s.Drugs)
		out[i] = s
	}
	return out
}

func (c *Catalog) DrugCount() int    { return len(c.drugs) }
func (c *Catalog) SymptomCount() int { return len(c.symptoms) }

// NormalizeName trims and lower-cases a name. Catalog keys and resolver
// queries go through the same normalisation.
func NormalizeName(name string) string {
	return cases.Lower(language.Und).String(strings.TrimSpace(name))
}

func normalizeKeys(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if key := NormalizeName(n); key != "" {
			out = append(out, key)
		}
	}
	return out
}
