package detectors

import (
	"log/slog"
	"math"
	"strconv"
	"strings"

	"jitcheck/internal/config"
	"jitcheck/internal/models"
)

// InliningDetector scores inlining failures at hot call sites. The weight
// table decides which failure reasons are worth a suggestion; an unknown
// reason scores zero and stays out of the report.
type InliningDetector struct {
	config *config.Config
	scores *ScoreTable
}

func NewInliningDetector() *InliningDetector {
	return &InliningDetector{
		config: config.DefaultConfig(),
		scores: DefaultScoreTable(),
	}
}

func NewInliningDetectorWithConfig(cfg *config.Config, scores *ScoreTable) *InliningDetector {
	return &InliningDetector{
		config: cfg,
		scores: scores,
	}
}

func (d *InliningDetector) Name() string {
	return "Inlining Failure Detector"
}

func (d *InliningDetector) TagName() string {
	return models.TagInlineFail
}

func (d *InliningDetector) Detect(ctx *ScanContext, attrs map[string]string) []models.Suggestion {
	// An unresolvable callee means the log was truncated or the ID points
	// forward; either way there is nothing to report.
	callee := ctx.Dictionary.LookupMember(ctx.MethodID)
	if callee == nil {
		return nil
	}

	methodTag := ctx.Dictionary.Method(ctx.MethodID)
	if methodTag == nil {
		return nil
	}

	calleeBytes := methodTag.Attr(models.AttrBytes)

	invocations := methodTag.Attr(models.AttrIICount)
	if invocations == "" {
		slog.Warn("invocation count missing for method", "methodID", ctx.MethodID)
		return nil
	}

	invocationCount, err := strconv.Atoi(invocations)
	if err != nil {
		slog.Warn("couldn't parse invocation count", "methodID", ctx.MethodID, "value", invocations, "err", err)
		return nil
	}

	if invocationCount < d.config.Thresholds.MinInliningInvocations {
		return nil
	}

	reason := attrs[models.AttrReason]

	weight, known := d.scores.Weight(reason)
	if !known {
		slog.Info("no score is set for reason", "reason", reason)
	}

	score := weight * float64(invocationCount)
	if score <= 0 {
		return nil
	}

	var text strings.Builder
	text.WriteString("The call at bytecode ")
	text.WriteString(strconv.Itoa(ctx.BytecodeOffset))
	text.WriteString(" to\n")
	text.WriteString("Class: ")
	text.WriteString(callee.FullyQualifiedClassName())
	text.WriteString("\n")
	text.WriteString("Member: ")
	text.WriteString(callee.UnqualifiedSignature())
	text.WriteString("\n")
	text.WriteString("was not inlined for reason: '")
	text.WriteString(reason)
	text.WriteString("'\n")

	if explanation, ok := d.scores.Explanation(reason); ok {
		text.WriteString(explanation)
		text.WriteString("\n")
	}

	text.WriteString("Invocations: ")
	text.WriteString(strconv.Itoa(invocationCount))
	text.WriteString("\n")
	text.WriteString("Size of callee bytecode: ")
	text.WriteString(calleeBytes)
	text.WriteString("\n")

	return []models.Suggestion{{
		Member:         ctx.Caller,
		BytecodeOffset: ctx.BytecodeOffset,
		Text:           text.String(),
		Type:           models.SuggestionInlining,
		Score:          int(math.Ceil(score)),
	}}
}
