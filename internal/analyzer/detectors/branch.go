package detectors

import (
	"log/slog"
	"math"
	"strconv"
	"strings"

	"jitcheck/internal/config"
	"jitcheck/internal/models"
)

// Probability sentinels HotSpot prints instead of a number.
const (
	probNever  = "never"
	probAlways = "always"
)

// BranchDetector flags branches the compiler observed to be close to a
// coin toss. An unpredictable branch defeats both the hardware predictor
// and profile-guided layout.
type BranchDetector struct {
	config *config.Config
	scores *ScoreTable
}

func NewBranchDetector() *BranchDetector {
	return &BranchDetector{
		config: config.DefaultConfig(),
		scores: DefaultScoreTable(),
	}
}

func NewBranchDetectorWithConfig(cfg *config.Config, scores *ScoreTable) *BranchDetector {
	return &BranchDetector{
		config: cfg,
		scores: scores,
	}
}

func (d *BranchDetector) Name() string {
	return "Unpredictable Branch Detector"
}

func (d *BranchDetector) TagName() string {
	return models.TagBranch
}

func (d *BranchDetector) Detect(ctx *ScanContext, attrs map[string]string) []models.Suggestion {
	count := d.parseCount(attrs[models.AttrBranchCount])
	probability := d.parseProbability(attrs[models.AttrBranchProb])

	t := d.config.Thresholds

	var score float64
	if probability > t.BranchProbabilityLow && probability < t.BranchProbabilityHigh && count >= t.MinBranchCount {
		weight, _ := d.scores.Weight(ReasonUncertainBranch)
		score = weight * float64(count)
	}

	if score <= 0 {
		return nil
	}

	var text strings.Builder
	text.WriteString("Method contains an unpredictable branch at bytecode ")
	text.WriteString(strconv.Itoa(ctx.BytecodeOffset))
	text.WriteString(" that was observed ")
	text.WriteString(strconv.FormatInt(count, 10))
	text.WriteString(" times and is taken with probability ")
	text.WriteString(strconv.FormatFloat(probability, 'g', -1, 64))
	text.WriteString(". It may be possible to modify the branch (for example by sorting a Collection " +
		"before iterating) to make it more predictable.")

	return []models.Suggestion{{
		Member:         ctx.Caller,
		BytecodeOffset: ctx.BytecodeOffset,
		Text:           text.String(),
		Type:           models.SuggestionBranch,
		Score:          int(math.Ceil(score)),
	}}
}

// parseCount reads the branch execution count, which HotSpot may print in
// scientific notation. A malformed count defaults to zero rather than
// aborting the walk.
func (d *BranchDetector) parseCount(countStr string) int64 {
	if countStr == "" {
		return 0
	}
	value, err := strconv.ParseFloat(countStr, 64)
	if err != nil {
		slog.Error("couldn't parse branch count attribute", "value", countStr, "err", err)
		return 0
	}
	return int64(value)
}

// parseProbability reads the taken-probability, accepting the "never" and
// "always" sentinels. Anything else unparsable defaults to zero.
func (d *BranchDetector) parseProbability(probStr string) float64 {
	if probStr == "" {
		return 0
	}
	value, err := strconv.ParseFloat(probStr, 64)
	if err == nil {
		return value
	}

	switch {
	case strings.EqualFold(probStr, probNever):
		return 0
	case strings.EqualFold(probStr, probAlways):
		return 1
	default:
		slog.Error("unrecognised branch probability", "value", probStr, "err", err)
		return 0
	}
}
