package engine

import (
	"slices"
	"sync"
	"testing"

	"github.com/giygas/interactions-api/catalog"
	"github.com/giygas/interactions-api/catalog/entities"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newDefaultEngine() *InteractionEngine {
	return New(catalog.Default(), Options{})
}

// stubResolver resolves from a fixed table
type stubResolver map[string]string

func (s stubResolver) Resolve(text string) entities.MatchResult {
	if name, ok := s[text]; ok {
		return entities.Matched(name)
	}
	return entities.Unresolved()
}

// ===== CHECK INTERACTION =====

func TestCheckInteraction(t *testing.T) {
	engine := newDefaultEngine()

	tests := []struct {
		name             string
		drugA, drugB     string
		wantOutcome      entities.Outcome
		wantA, wantB     entities.MatchResult
		wantInteractions []string
		wantWarnings     []string
		wantMessage      string
	}{
		{
			name:        "listed in both directions",
			drugA:       "aspirin",
			drugB:       "warfarin",
			wantOutcome: entities.OutcomeInteraction,
			wantA:       entities.Matched("aspirin"),
			wantB:       entities.Matched("warfarin"),
			wantInteractions: []string{
				"aspirin may interact with warfarin",
				"warfarin may interact with aspirin",
			},
			wantWarnings: []string{
				"May increase bleeding risk with other blood thinners",
				"Many drug and food interactions - requires careful monitoring",
			},
		},
		{
			name:        "misspelled first name",
			drugA:       "asprin",
			drugB:       "ibuprofen",
			wantOutcome: entities.OutcomeInteraction,
			wantA:       entities.Matched("aspirin"),
			wantB:       entities.Matched("ibuprofen"),
			wantInteractions: []string{
				"aspirin may interact with ibuprofen",
				"ibuprofen may interact with aspirin",
			},
			wantWarnings: []string{
				"May increase bleeding risk with other blood thinners",
				"May reduce effectiveness of blood pressure medications",
			},
		},
		{
			name:        "misspelled names",
			drugA:       "asprin",
			drugB:       "ibuprofin",
			wantOutcome: entities.OutcomeInteraction,
			wantA:       entities.Matched("aspirin"),
			wantB:       entities.Matched("ibuprofen"),
			wantInteractions: []string{
				"aspirin may interact with ibuprofen",
				"ibuprofen may interact with aspirin",
			},
			wantWarnings: []string{
				"May increase bleeding risk with other blood thinners",
				"May reduce effectiveness of blood pressure medications",
			},
		},
		{
			name:             "listed on one side only",
			drugA:            "ibuprofen",
			drugB:            "warfarin",
			wantOutcome:      entities.OutcomeInteraction,
			wantA:            entities.Matched("ibuprofen"),
			wantB:            entities.Matched("warfarin"),
			wantInteractions: []string{"warfarin may interact with ibuprofen"},
			wantWarnings:     []string{"Many drug and food interactions - requires careful monitoring"},
		},
		{
			name:             "no interaction",
			drugA:            "paracetamol",
			drugB:            "simvastatin",
			wantOutcome:      entities.OutcomeNoInteraction,
			wantA:            entities.Matched("paracetamol"),
			wantB:            entities.Matched("simvastatin"),
			wantInteractions: []string{},
			wantWarnings:     []string{},
			wantMessage:      entities.MessageNoInteraction,
		},
		{
			name:             "same drug twice",
			drugA:            "aspirin",
			drugB:            "ASPIRIN",
			wantOutcome:      entities.OutcomeNoInteraction,
			wantA:            entities.Matched("aspirin"),
			wantB:            entities.Matched("aspirin"),
			wantInteractions: []string{},
			wantWarnings:     []string{},
			wantMessage:      entities.MessageNoInteraction,
		},
		{
			name:             "second name unrecognized",
			drugA:            "aspirin",
			drugB:            "tylenol",
			wantOutcome:      entities.OutcomeUnrecognized,
			wantA:            entities.Matched("aspirin"),
			wantB:            entities.Unresolved(),
			wantInteractions: []string{},
			wantWarnings:     []string{},
			wantMessage:      entities.MessageUnrecognizedPair,
		},
		{
			name:             "both unrecognized",
			drugA:            "xyzzyqqq",
			drugB:            "",
			wantOutcome:      entities.OutcomeUnrecognized,
			wantA:            entities.Unresolved(),
			wantB:            entities.Unresolved(),
			wantInteractions: []string{},
			wantWarnings:     []string{},
			wantMessage:      entities.MessageUnrecognizedPair,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := engine.CheckInteraction(tt.drugA, tt.drugB)

			if result.Outcome != tt.wantOutcome {
				t.Errorf("Expected outcome %s, got %s", tt.wantOutcome, result.Outcome)
			}
			if result.DrugA != tt.wantA || result.DrugB != tt.wantB {
				t.Errorf("Expected matches (%v, %v), got (%v, %v)", tt.wantA, tt.wantB, result.DrugA, result.DrugB)
			}
			if !slices.Equal(result.Interactions, tt.wantInteractions) {
				t.Errorf("Expected interactions %v, got %v", tt.wantInteractions, result.Interactions)
			}
			if !slices.Equal(result.Warnings, tt.wantWarnings) {
				t.Errorf("Expected warnings %v, got %v", tt.wantWarnings, result.Warnings)
			}
			if result.Message != tt.wantMessage {
				t.Errorf("Expected message %q, got %q", tt.wantMessage, result.Message)
			}
			if result.Interactions == nil || result.Warnings == nil {
				t.Error("Expected non-nil interactions and warnings")
			}
		})
	}
}

func TestCheckInteractionIsSymmetric(t *testing.T) {
	engine := newDefaultEngine()
	names := catalog.Default().DrugNames()

	for _, a := range names {
		for _, b := range names {
			ab := engine.CheckInteraction(a, b)
			ba := engine.CheckInteraction(b, a)

			if ab.Outcome != ba.Outcome {
				t.Errorf("Expected same outcome for (%s, %s) and (%s, %s), got %s and %s", a, b, b, a, ab.Outcome, ba.Outcome)
			}
			if len(ab.Interactions) != len(ba.Interactions) {
				t.Errorf("Expected same interaction count for %s and %s", a, b)
			}
			if len(ab.Interactions) != len(ab.Warnings) {
				t.Errorf("Expected aligned interactions and warnings for (%s, %s)", a, b)
			}
		}
	}
}

// ===== GET DRUG INFO =====

func TestGetDrugInfo(t *testing.T) {
	engine := newDefaultEngine()

	result := engine.GetDrugInfo("Warfrin")
	if !result.Drug.Resolved || result.Drug.Name != "warfarin" {
		t.Fatalf("Expected warfarin, got %+v", result.Drug)
	}
	if result.Info == nil {
		t.Fatal("Expected drug info")
	}
	if result.Info.Class != "Anticoagulant" {
		t.Errorf("Expected class Anticoagulant, got %s", result.Info.Class)
	}
	if !slices.Equal(result.Info.Interactions, []string{"aspirin", "ibuprofen", "vitamin k"}) {
		t.Errorf("Unexpected interactions: %v", result.Info.Interactions)
	}
	if result.Message != "" {
		t.Errorf("Expected no message, got %q", result.Message)
	}
}

func TestGetDrugInfoNotFound(t *testing.T) {
	engine := newDefaultEngine()

	for _, input := range []string{"tylenol", "", "xyzzyqqq"} {
		result := engine.GetDrugInfo(input)
		if result.Drug.Resolved {
			t.Errorf("Expected %q to be unresolved, got %+v", input, result.Drug)
		}
		if result.Info != nil {
			t.Errorf("Expected no info for %q", input)
		}
		if result.Message != entities.MessageDrugNotFound {
			t.Errorf("Expected not found message for %q, got %q", input, result.Message)
		}
	}
}

func TestGetDrugInfoDoesNotExposeCatalog(t *testing.T) {
	engine := newDefaultEngine()

	first := engine.GetDrugInfo("aspirin")
	first.Info.Interactions[0] = "mutated"

	second := engine.GetDrugInfo("aspirin")
	if second.Info.Interactions[0] != "ibuprofen" {
		t.Errorf("Expected catalog unchanged, got %v", second.Info.Interactions)
	}
}

// ===== SUGGEST FOR SYMPTOM =====

func TestSuggestForSymptom(t *testing.T) {
	engine := newDefaultEngine()

	tests := []struct {
		name        string
		symptom     string
		wantSymptom string
		wantDrugs   []string
	}{
		{"exact", "headache", "headache", []string{"aspirin", "ibuprofen", "paracetamol"}},
		{"split word", "head ache", "headache", []string{"aspirin", "ibuprofen", "paracetamol"}},
		{"misspelled", "fevr", "fever", []string{"paracetamol", "ibuprofen"}},
		{"partial", "blood clot", "blood clot prevention", []string{"warfarin", "aspirin"}},
		{"single m", "inflamation", "inflammation", []string{"ibuprofen", "aspirin"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := engine.SuggestForSymptom(tt.symptom)

			if !result.Symptom.Resolved || result.Symptom.Name != tt.wantSymptom {
				t.Fatalf("Expected symptom %s, got %+v", tt.wantSymptom, result.Symptom)
			}

			var got []string
			for _, s := range result.Suggestions {
				got = append(got, s.Name)
			}
			if !slices.Equal(got, tt.wantDrugs) {
				t.Errorf("Expected drugs %v, got %v", tt.wantDrugs, got)
			}
			if result.Message != "" {
				t.Errorf("Expected no message, got %q", result.Message)
			}
		})
	}
}

func TestSuggestForSymptomCarriesDrugDetails(t *testing.T) {
	engine := newDefaultEngine()

	result := engine.SuggestForSymptom("fever")
	if len(result.Suggestions) == 0 {
		t.Fatal("Expected suggestions")
	}
	first := result.Suggestions[0]
	if first.Name != "paracetamol" || first.Class != "Analgesic" || first.Warning != "Alcohol may increase liver damage risk" {
		t.Errorf("Unexpected suggestion: %+v", first)
	}
}

func TestSuggestForSymptomUnrecognized(t *testing.T) {
	engine := newDefaultEngine()

	for _, input := range []string{"clot", "", "xyz"} {
		result := engine.SuggestForSymptom(input)
		if result.Symptom.Resolved {
			t.Errorf("Expected %q to be unresolved", input)
		}
		if result.Suggestions == nil || len(result.Suggestions) != 0 {
			t.Errorf("Expected empty non-nil suggestions for %q, got %v", input, result.Suggestions)
		}
		if result.Message != entities.MessageNoSuggestions {
			t.Errorf("Expected no suggestions message for %q, got %q", input, result.Message)
		}
	}
}

func TestSuggestForSymptomSkipsDanglingDrugs(t *testing.T) {
	c, err := catalog.New(
		[]entities.DrugRecord{{Name: "aspirin", Class: "NSAID"}},
		[]entities.SymptomRecord{
			{Name: "pain", Drugs: []string{"morphine", "aspirin"}},
			{Name: "cough", Drugs: []string{"codeine"}},
		},
	)
	if err != nil {
		t.Fatalf("Failed to build catalog: %v", err)
	}
	engine := New(c, Options{})

	result := engine.SuggestForSymptom("pain")
	if len(result.Suggestions) != 1 || result.Suggestions[0].Name != "aspirin" {
		t.Errorf("Expected only aspirin, got %+v", result.Suggestions)
	}

	// Resolved symptom whose drugs all dangle: empty list, no message
	result = engine.SuggestForSymptom("cough")
	if !result.Symptom.Resolved {
		t.Fatal("Expected cough to resolve")
	}
	if result.Suggestions == nil || len(result.Suggestions) != 0 {
		t.Errorf("Expected empty suggestions, got %v", result.Suggestions)
	}
	if result.Message != "" {
		t.Errorf("Expected no message, got %q", result.Message)
	}
}

// ===== RESOLVER INJECTION =====

func TestNewWithResolvers(t *testing.T) {
	c := catalog.Default()
	engine := NewWithResolvers(c,
		stubResolver{"blood thinner": "warfarin", "painkiller": "aspirin", "ghost": "nonexistent"},
		stubResolver{"sore": "pain"},
	)

	result := engine.CheckInteraction("blood thinner", "painkiller")
	if result.Outcome != entities.OutcomeInteraction {
		t.Errorf("Expected interaction, got %s", result.Outcome)
	}

	// A resolver answer missing from the catalog is treated as not found
	info := engine.GetDrugInfo("ghost")
	if info.Drug.Resolved || info.Message != entities.MessageDrugNotFound {
		t.Errorf("Expected not found, got %+v", info)
	}

	// Listed drugs are resolved again, so the stub drops them all
	suggestions := engine.SuggestForSymptom("sore")
	if !suggestions.Symptom.Resolved || len(suggestions.Suggestions) != 0 {
		t.Errorf("Expected resolved symptom with no suggestions, got %+v", suggestions)
	}
}

func TestOptionsOverrideDefaults(t *testing.T) {
	engine := New(catalog.Default(), Options{NameThreshold: 0.95, SymptomCutoff: 0.99})

	if got := engine.CheckInteraction("asprin", "warfarin"); got.Outcome != entities.OutcomeUnrecognized {
		t.Errorf("Expected asprin to be rejected at 0.95, got %s", got.Outcome)
	}
	if got := engine.SuggestForSymptom("fevr"); got.Symptom.Resolved {
		t.Errorf("Expected fevr to be rejected at 0.99, got %+v", got.Symptom)
	}
}

// ===== SEARCH =====

func TestSearchDrugs(t *testing.T) {
	engine := newDefaultEngine()

	tests := []struct {
		name     string
		query    string
		limit    int
		expected []string
	}{
		{"empty query lists catalog", "", 0, []string{"aspirin", "ibuprofen", "warfarin", "paracetamol", "simvastatin"}},
		{"limit applies to listing", "", 2, []string{"aspirin", "ibuprofen"}},
		{"prefix", "ibu", 0, []string{"ibuprofen"}},
		{"case folded", "WARF", 0, []string{"warfarin"}},
		{"no match", "zzz", 0, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := engine.SearchDrugs(tt.query, tt.limit)
			if len(got) == 0 && len(tt.expected) == 0 {
				return
			}
			if !slices.Equal(got, tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestSearchDrugsOrdersByDistance(t *testing.T) {
	engine := newDefaultEngine()

	// "in" is a subsequence of aspirin, warfarin and simvastatin
	got := engine.SearchDrugs("in", 0)
	if len(got) < 2 {
		t.Fatalf("Expected several matches, got %v", got)
	}
	if got[0] != "aspirin" {
		t.Errorf("Expected the shortest candidate first, got %v", got)
	}
}

// ===== CONCURRENCY =====

func TestConcurrentQueries(t *testing.T) {
	engine := newDefaultEngine()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				if got := engine.CheckInteraction("asprin", "warfrin"); got.Outcome != entities.OutcomeInteraction {
					t.Errorf("Expected interaction, got %s", got.Outcome)
					return
				}
				engine.GetDrugInfo("ibuprofin")
				engine.SuggestForSymptom("headach")
			}
		}()
	}
	wg.Wait()
}
