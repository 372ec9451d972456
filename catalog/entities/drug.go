// Package entities holds the value types shared by the catalog, the resolvers
// and the interaction engine.
package entities

// DrugRecord is one catalog entry, keyed by its canonical name.
type DrugRecord struct {
	Name         string   `json:"name" yaml:"name" toml:"name"`
	Interactions []string `json:"interactions" yaml:"interactions" toml:"interactions"`
	Warning      string   `json:"warning" yaml:"warning" toml:"warning"`
	Class        string   `json:"class" yaml:"class" toml:"class"`
}

// SymptomRecord maps a canonical symptom to drug names, most relevant first.
type SymptomRecord struct {
	Name  string   `json:"name" yaml:"name" toml:"name"`
	Drugs []string `json:"drugs" yaml:"drugs" toml:"drugs"`
}

// ListsInteraction reports whether the record's interaction set names other.
func (d DrugRecord) ListsInteraction(other string) bool {
	for _, name := range d.Interactions {
		if name == other {
			return true
		}
	}
	return false
}
