package models

import "encoding/json"

type SuggestionType int

const (
	SuggestionInlining SuggestionType = iota
	SuggestionBranch
)

func (t SuggestionType) String() string {
	switch t {
	case SuggestionInlining:
		return "INLINING"
	case SuggestionBranch:
		return "BRANCH"
	default:
		return "UNKNOWN"
	}
}

func (t SuggestionType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// Suggestion is one improvement hint attributed to a bytecode position in a
// compiled member. Two suggestions are the same suggestion only when every
// field matches; differing text or score at the same site stays distinct.
type Suggestion struct {
	Member         *CompiledMember `json:"member,omitempty"`
	BytecodeOffset int             `json:"bytecode_offset"`
	Text           string          `json:"text"`
	Type           SuggestionType  `json:"type"`
	Score          int             `json:"score"`
}

func (s Suggestion) Equal(other Suggestion) bool {
	return memberKey(s.Member) == memberKey(other.Member) &&
		s.BytecodeOffset == other.BytecodeOffset &&
		s.Text == other.Text &&
		s.Type == other.Type &&
		s.Score == other.Score
}

// SuggestionList is the sink the walker appends into: ordered by first
// sighting, duplicate suppressing, never shrinking. One list corresponds to
// exactly one compiled member's last compilation task.
type SuggestionList struct {
	items []Suggestion
}

func NewSuggestionList() *SuggestionList {
	return &SuggestionList{items: make([]Suggestion, 0)}
}

// Add appends the suggestion unless an equal one is already present.
// It reports whether the suggestion was added.
func (l *SuggestionList) Add(s Suggestion) bool {
	for _, existing := range l.items {
		if existing.Equal(s) {
			return false
		}
	}
	l.items = append(l.items, s)
	return true
}

func (l *SuggestionList) Items() []Suggestion {
	return l.items
}

func (l *SuggestionList) Len() int {
	return len(l.items)
}

// AnalysisResult aggregates suggestions across every compiled member of one
// log. Ranking for display is the report generator's job; the slice keeps
// first-seen order.
type AnalysisResult struct {
	Log               string         `json:"log"`
	MembersAnalyzed   int            `json:"members_analyzed"`
	TotalSuggestions  int            `json:"total_suggestions"`
	SuggestionsByType map[string]int `json:"suggestions_by_type"`
	Suggestions       []Suggestion   `json:"suggestions"`
	AnalysisDuration  string         `json:"analysis_duration"`
}

func NewAnalysisResult() *AnalysisResult {
	return &AnalysisResult{
		Suggestions:       make([]Suggestion, 0),
		SuggestionsByType: make(map[string]int),
	}
}

func (r *AnalysisResult) AddSuggestion(s Suggestion) {
	r.Suggestions = append(r.Suggestions, s)
	r.TotalSuggestions++
	r.SuggestionsByType[s.Type.String()]++
}
