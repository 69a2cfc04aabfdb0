package detectors

import (
	"testing"

	"jitcheck/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func branchContext() *ScanContext {
	return &ScanContext{
		Caller: &models.CompiledMember{
			ClassName:  "java.lang.String",
			MemberName: "indexOf",
			ReturnType: "int",
		},
		BytecodeOffset: 10,
		Dictionary:     models.NewParseDictionary(),
	}
}

func TestBranchDetector_Thresholds(t *testing.T) {
	tests := []struct {
		name      string
		count     string
		prob      string
		wantScore int
	}{
		{"coin toss over threshold", "2000", "0.5", 1000},
		{"inside window", "2100", "0.476", 1050},
		{"fractional count truncates", "2000.7", "0.5", 1000},
		{"scientific notation count", "2.5e3", "0.5", 1250},
		{"count below threshold", "999", "0.5", 0},
		{"window is exclusive low", "2000", "0.45", 0},
		{"window is exclusive high", "2000", "0.55", 0},
		{"predictable branch", "50000", "0.95", 0},
		{"never sentinel", "1000000", "never", 0},
		{"always sentinel", "1000000", "ALWAYS", 0},
		{"garbage count defaults to zero", "many", "0.5", 0},
		{"garbage probability defaults to zero", "2000", "sometimes", 0},
		{"missing attributes", "", "", 0},
	}

	detector := NewBranchDetector()

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			attrs := map[string]string{}
			if tc.count != "" {
				attrs[models.AttrBranchCount] = tc.count
			}
			if tc.prob != "" {
				attrs[models.AttrBranchProb] = tc.prob
			}

			suggestions := detector.Detect(branchContext(), attrs)

			if tc.wantScore == 0 {
				assert.Empty(t, suggestions)
				return
			}

			require.Len(t, suggestions, 1)
			assert.Equal(t, tc.wantScore, suggestions[0].Score)
			assert.Equal(t, models.SuggestionBranch, suggestions[0].Type)
		})
	}
}

func TestBranchDetector_SuggestionText(t *testing.T) {
	detector := NewBranchDetector()

	suggestions := detector.Detect(branchContext(), map[string]string{
		models.AttrBranchCount: "2100",
		models.AttrBranchProb:  "0.476",
	})
	require.Len(t, suggestions, 1)

	s := suggestions[0]
	assert.Equal(t, 10, s.BytecodeOffset)
	assert.Contains(t, s.Text, "bytecode 10")
	assert.Contains(t, s.Text, "2100")
	assert.Contains(t, s.Text, "0.476")
	assert.Contains(t, s.Text, "more predictable")
	assert.Equal(t, "java.lang.String", s.Member.FullyQualifiedClassName())
}

func TestBranchDetector_HandlesBranchTags(t *testing.T) {
	detector := NewBranchDetector()
	assert.Equal(t, models.TagBranch, detector.TagName())
}
