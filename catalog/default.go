package catalog

import "github.com/giygas/interactions-api/catalog/entities"

// defaultDrugs is the built-in reference set. Interaction sets are stored as
// entered and are not symmetrised.
var defaultDrugs = []entities.DrugRecord{
	{
		Name:         "aspirin",
		Interactions: []string{"ibuprofen", "warfarin", "clopidogrel"},
		Warning:      "May increase bleeding risk with other blood thinners",
		Class:        "NSAID",
	},
	{
		Name:         "ibuprofen",
		Interactions: []string{"aspirin", "lithium", "methotrexate"},
		Warning:      "May reduce effectiveness of blood pressure medications",
		Class:        "NSAID",
	},
	{
		Name:         "warfarin",
		Interactions: []string{"aspirin", "ibuprofen", "vitamin K"},
		Warning:      "Many drug and food interactions - requires careful monitoring",
		Class:        "Anticoagulant",
	},
	{
		Name:         "paracetamol",
		Interactions: []string{"alcohol"},
		Warning:      "Alcohol may increase liver damage risk",
		Class:        "Analgesic",
	},
	{
		Name:         "simvastatin",
		Interactions: []string{"grapefruit", "erythromycin"},
		Warning:      "Grapefruit may increase side effects",
		Class:        "Statin",
	},
}

var defaultSymptoms = []entities.SymptomRecord{
	{Name: "headache", Drugs: []string{"aspirin", "ibuprofen", "paracetamol"}},
	{Name: "fever", Drugs: []string{"paracetamol", "ibuprofen"}},
	{Name: "pain", Drugs: []string{"aspirin", "ibuprofen", "paracetamol"}},
	{Name: "inflammation", Drugs: []string{"ibuprofen", "aspirin"}},
	{Name: "blood clot prevention", Drugs: []string{"warfarin", "aspirin"}},
}

// Default returns the built-in catalog
func Default() *Catalog {
	c, err := New(defaultDrugs, defaultSymptoms)
	if err != nil {
		// The literal above is known to be valid
		panic(err)
	}
	return c
}
