package analyzer

import (
	"path/filepath"
	"strings"
	"testing"

	"jitcheck/internal/jitlog"
	"jitcheck/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeLog_EndToEnd(t *testing.T) {
	log, err := jitlog.ParseFile(filepath.Join("..", "..", "testdata", "hotspot.log"))
	require.NoError(t, err)
	require.Len(t, log.Tasks, 1)

	result := NewAnalyzer().AnalyzeLog(log)

	assert.Equal(t, 1, result.MembersAnalyzed)
	require.Equal(t, 2, result.TotalSuggestions)

	byType := map[models.SuggestionType]models.Suggestion{}
	for _, s := range result.Suggestions {
		byType[s.Type] = s
	}

	inlining, ok := byType[models.SuggestionInlining]
	require.True(t, ok)
	// length() has iicount 5120 and the MinInliningThreshold reason weighs
	// 0.2: ceil(0.2 * 5120) = 1024.
	assert.Equal(t, 1024, inlining.Score)
	assert.Equal(t, 3, inlining.BytecodeOffset)
	assert.Contains(t, inlining.Text, "int length()")
	require.NotNil(t, inlining.Member)
	assert.Equal(t, "java.lang.String", inlining.Member.FullyQualifiedClassName())

	branch, ok := byType[models.SuggestionBranch]
	require.True(t, ok)
	// ceil(0.5 * 2100) = 1050.
	assert.Equal(t, 1050, branch.Score)
	assert.Equal(t, 10, branch.BytecodeOffset)
}

func TestAnalyzeLog_LastTaskPerMemberWins(t *testing.T) {
	taskFor := func(compileID, bci string) *jitlog.Task {
		dict := walkerDictionary()
		parse := tag(models.TagParse, map[string]string{models.AttrMethod: "200"},
			tag(models.TagBC, map[string]string{models.AttrBCI: bci}),
			qualifyingBranch(),
		)
		return &jitlog.Task{
			CompileID:  compileID,
			Member:     dict.LookupMember("200"),
			ParseTags:  []*models.Tag{parse},
			Dictionary: dict,
		}
	}

	log := &jitlog.CompilationLog{
		Path:  "synthetic",
		Tasks: []*jitlog.Task{taskFor("1", "7"), taskFor("2", "21")},
	}

	result := NewAnalyzer().AnalyzeLog(log)

	assert.Equal(t, 1, result.MembersAnalyzed)
	require.Len(t, result.Suggestions, 1)
	assert.Equal(t, 21, result.Suggestions[0].BytecodeOffset)
}

func TestAnalyzeLog_BrokenMemberIsSkippedNotFatal(t *testing.T) {
	dict := walkerDictionary()

	broken := &jitlog.Task{
		CompileID: "1",
		Member:    dict.LookupMember("100"),
		ParseTags: []*models.Tag{
			tag(models.TagParse, nil,
				tag(models.TagBC, map[string]string{models.AttrBCI: "garbage"}),
			),
		},
		Dictionary: dict,
	}
	healthy := &jitlog.Task{
		CompileID: "2",
		Member:    dict.LookupMember("200"),
		ParseTags: []*models.Tag{
			tag(models.TagParse, nil,
				tag(models.TagBC, map[string]string{models.AttrBCI: "4"}),
				qualifyingBranch(),
			),
		},
		Dictionary: dict,
	}

	result := NewAnalyzer().AnalyzeLog(&jitlog.CompilationLog{
		Path:  "synthetic",
		Tasks: []*jitlog.Task{broken, healthy},
	})

	assert.Equal(t, 1, result.MembersAnalyzed)
	require.Len(t, result.Suggestions, 1)
	assert.Equal(t, 4, result.Suggestions[0].BytecodeOffset)
}

func TestAnalyzer_DetectorInventory(t *testing.T) {
	a := NewAnalyzer()
	assert.Equal(t, 2, a.GetDetectorCount())
	assert.Contains(t, a.GetDetectorNames(), "Unpredictable Branch Detector")
	assert.Contains(t, a.GetDetectorNames(), "Inlining Failure Detector")
}

func TestReportGenerator_JSONIncludesSuggestions(t *testing.T) {
	log, err := jitlog.ParseFile(filepath.Join("..", "..", "testdata", "hotspot.log"))
	require.NoError(t, err)

	result := NewAnalyzer().AnalyzeLog(log)
	report := NewReportGenerator("json").Generate(result)

	assert.Contains(t, report, `"members_analyzed": 1`)
	assert.Contains(t, report, `"type": "BRANCH"`)
	assert.Contains(t, report, `"type": "INLINING"`)
	assert.Contains(t, report, "java.lang.String")
}

func TestReportGenerator_ConsoleRanksByScore(t *testing.T) {
	log, err := jitlog.ParseFile(filepath.Join("..", "..", "testdata", "hotspot.log"))
	require.NoError(t, err)

	result := NewAnalyzer().AnalyzeLog(log)

	gen := NewReportGenerator("console")
	gen.config.Output.Colors = false
	report := gen.Generate(result)

	assert.Contains(t, report, "Compiled members analyzed: 1")
	assert.Contains(t, report, "Suggestions found: 2")
	// The branch scores 1050 and the inlining failure 1024, so the branch
	// is listed first.
	branchIdx := strings.Index(report, "Suggestion #1 - BRANCH")
	inlineIdx := strings.Index(report, "Suggestion #2 - INLINING")
	assert.GreaterOrEqual(t, branchIdx, 0)
	assert.Greater(t, inlineIdx, branchIdx)
}
