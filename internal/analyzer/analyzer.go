package analyzer

import (
	"log/slog"
	"time"

	"jitcheck/internal/analyzer/detectors"
	"jitcheck/internal/config"
	"jitcheck/internal/jitlog"
	"jitcheck/internal/models"
)

// Analyzer runs every detector over the last compilation task of each
// member found in a log.
type Analyzer struct {
	config    *config.Config
	detectors []detectors.Detector
}

func NewAnalyzer() *Analyzer {
	return NewAnalyzerWithConfig(config.DefaultConfig())
}

func NewAnalyzerWithConfig(cfg *config.Config) *Analyzer {
	scores := detectors.NewScoreTable(cfg.Scores.Overrides, cfg.Scores.Explanations)

	return &Analyzer{
		config: cfg,
		detectors: []detectors.Detector{
			detectors.NewBranchDetectorWithConfig(cfg, scores),
			detectors.NewInliningDetectorWithConfig(cfg, scores),
		},
	}
}

// AnalyzeLog walks the last task per compiled member and aggregates the
// resulting suggestions. A member whose task fails to parse is logged and
// skipped; the rest of the log is still analyzed.
func (a *Analyzer) AnalyzeLog(log *jitlog.CompilationLog) *models.AnalysisResult {
	startTime := time.Now()

	result := models.NewAnalysisResult()
	result.Log = log.Path

	for _, task := range lastTaskPerMember(log.Tasks) {
		suggestions, err := a.AnalyzeTask(task)
		if err != nil {
			slog.Error("error building suggestions",
				"compileID", task.CompileID, "member", memberLabel(task.Member), "err", err)
			continue
		}

		result.MembersAnalyzed++
		for _, suggestion := range suggestions.Items() {
			result.AddSuggestion(suggestion)
		}
	}

	result.AnalysisDuration = time.Since(startTime).String()
	return result
}

// AnalyzeTask walks a single compilation task with a fresh walker and
// returns its sink.
func (a *Analyzer) AnalyzeTask(task *jitlog.Task) (*models.SuggestionList, error) {
	walker := NewWalker(task.Dictionary, a.detectors)

	for _, parseTag := range task.ParseTags {
		if err := walker.Walk(parseTag, task.Member); err != nil {
			return nil, err
		}
	}

	return walker.Suggestions(), nil
}

// GetDetectorCount returns the number of active detectors
func (a *Analyzer) GetDetectorCount() int {
	return len(a.detectors)
}

// GetDetectorNames returns the names of all active detectors
func (a *Analyzer) GetDetectorNames() []string {
	names := make([]string, len(a.detectors))
	for i, detector := range a.detectors {
		names[i] = detector.Name()
	}
	return names
}

// lastTaskPerMember keeps only the latest compilation of each member,
// preserving the order members first appeared in the log. Tasks whose
// member could not be resolved are keyed by compile ID so they are still
// walked rather than dropped.
func lastTaskPerMember(tasks []*jitlog.Task) []*jitlog.Task {
	latest := make(map[string]int)
	var selected []*jitlog.Task

	for _, task := range tasks {
		key := memberLabel(task.Member)
		if key == "" {
			key = "compile_id:" + task.CompileID
		}

		if idx, seen := latest[key]; seen {
			selected[idx] = task
			continue
		}
		latest[key] = len(selected)
		selected = append(selected, task)
	}

	return selected
}

func memberLabel(member *models.CompiledMember) string {
	if member == nil {
		return ""
	}
	return member.FullyQualifiedClassName() + "#" + member.UnqualifiedSignature()
}
