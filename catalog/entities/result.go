package entities

// MatchResult is the outcome of resolving free text against canonical names.
// It never carries the similarity score.
type MatchResult struct {
	Name     string `json:"name,omitempty"`
	Resolved bool   `json:"resolved"`
}

// Matched returns a resolved MatchResult for a canonical name
func Matched(name string) MatchResult {
	return MatchResult{Name: name, Resolved: true}
}

// Unresolved returns the "no match" MatchResult
func Unresolved() MatchResult {
	return MatchResult{}
}

// String returns the canonical name, or "unknown" when unresolved
func (m MatchResult) String() string {
	if !m.Resolved {
		return "unknown"
	}
	return m.Name
}

// Outcome classifies the result of an interaction check
type Outcome string

const (
	OutcomeUnrecognized  Outcome = "unrecognized_input"
	OutcomeNoInteraction Outcome = "no_known_interaction"
	OutcomeInteraction   Outcome = "interaction_found"
)

// Messages returned alongside unresolved or empty outcomes.
const (
	MessageUnrecognizedPair = "One or both drugs not recognized in our database."
	MessageNoInteraction    = "No known interactions found between these medications."
	MessageDrugNotFound     = "Drug not recognized in our database."
	MessageNoSuggestions    = "No medication suggestions available for this symptom."
)

// InteractionResult is returned by a pairwise interaction check.
// Interactions and Warnings are index-aligned, A→B before B→A.
type InteractionResult struct {
	DrugA        MatchResult `json:"drugA"`
	DrugB        MatchResult `json:"drugB"`
	Outcome      Outcome     `json:"outcome"`
	Message      string      `json:"message,omitempty"`
	Interactions []string    `json:"interactions"`
	Warnings     []string    `json:"warnings"`
}

// DrugInfoResult is returned by a single drug lookup
type DrugInfoResult struct {
	Drug    MatchResult `json:"drug"`
	Info    *DrugRecord `json:"info,omitempty"`
	Message string      `json:"message,omitempty"`
}

// Suggestion is one drug proposed for a symptom
type Suggestion struct {
	Name    string `json:"name"`
	Class   string `json:"class"`
	Warning string `json:"warning"`
}

// SuggestionResult is returned by a symptom lookup
type SuggestionResult struct {
	Symptom     MatchResult  `json:"symptom"`
	Suggestions []Suggestion `json:"suggestions"`
	Message     string       `json:"message,omitempty"`
}
