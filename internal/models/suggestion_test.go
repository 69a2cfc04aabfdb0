package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMember(class, name string) *CompiledMember {
	return &CompiledMember{
		ClassName:  class,
		MemberName: name,
		ReturnType: "int",
	}
}

func TestSuggestionList_PreservesFirstSeenOrder(t *testing.T) {
	list := NewSuggestionList()

	first := Suggestion{Member: testMember("a.B", "m"), BytecodeOffset: 1, Text: "one", Type: SuggestionBranch, Score: 10}
	second := Suggestion{Member: testMember("a.B", "m"), BytecodeOffset: 2, Text: "two", Type: SuggestionInlining, Score: 20}

	require.True(t, list.Add(first))
	require.True(t, list.Add(second))

	items := list.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "one", items[0].Text)
	assert.Equal(t, "two", items[1].Text)
}

func TestSuggestionList_SuppressesDuplicates(t *testing.T) {
	list := NewSuggestionList()

	s := Suggestion{Member: testMember("a.B", "m"), BytecodeOffset: 7, Text: "dup", Type: SuggestionInlining, Score: 500}

	assert.True(t, list.Add(s))
	assert.False(t, list.Add(s))
	assert.Equal(t, 1, list.Len())
}

func TestSuggestionList_DifferentScoreIsNotADuplicate(t *testing.T) {
	list := NewSuggestionList()

	s := Suggestion{Member: testMember("a.B", "m"), BytecodeOffset: 7, Text: "same text", Type: SuggestionInlining, Score: 500}
	higher := s
	higher.Score = 600

	assert.True(t, list.Add(s))
	assert.True(t, list.Add(higher))
	assert.Equal(t, 2, list.Len())
}

func TestSuggestion_EqualTreatsNilMembersAsEqual(t *testing.T) {
	a := Suggestion{BytecodeOffset: 3, Text: "x", Type: SuggestionBranch, Score: 1}
	b := Suggestion{BytecodeOffset: 3, Text: "x", Type: SuggestionBranch, Score: 1}

	assert.True(t, a.Equal(b))
}

func TestSuggestion_EqualComparesMembersByValue(t *testing.T) {
	a := Suggestion{Member: testMember("a.B", "m"), BytecodeOffset: 3, Text: "x", Type: SuggestionBranch, Score: 1}
	b := Suggestion{Member: testMember("a.B", "m"), BytecodeOffset: 3, Text: "x", Type: SuggestionBranch, Score: 1}
	c := Suggestion{Member: testMember("a.C", "m"), BytecodeOffset: 3, Text: "x", Type: SuggestionBranch, Score: 1}

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}

func TestSuggestionType_String(t *testing.T) {
	assert.Equal(t, "INLINING", SuggestionInlining.String())
	assert.Equal(t, "BRANCH", SuggestionBranch.String())
	assert.Equal(t, "UNKNOWN", SuggestionType(99).String())
}

func TestSuggestionType_MarshalsAsString(t *testing.T) {
	data, err := json.Marshal(SuggestionBranch)
	require.NoError(t, err)
	assert.Equal(t, `"BRANCH"`, string(data))
}

func TestAnalysisResult_CountsByType(t *testing.T) {
	result := NewAnalysisResult()
	result.AddSuggestion(Suggestion{Type: SuggestionBranch, Score: 1})
	result.AddSuggestion(Suggestion{Type: SuggestionInlining, Score: 2})
	result.AddSuggestion(Suggestion{Type: SuggestionInlining, Score: 3})

	assert.Equal(t, 3, result.TotalSuggestions)
	assert.Equal(t, 1, result.SuggestionsByType["BRANCH"])
	assert.Equal(t, 2, result.SuggestionsByType["INLINING"])
}
