package detectors

// Inlining failure reasons printed by the HotSpot server compiler. See
// the HotSpot "Server Compiler Inlining Messages" notes; matching is
// literal, no per-JDK normalization is attempted.
const (
	ReasonHotMethodTooBig           = "hot method too big"
	ReasonTooBig                    = "too big"
	ReasonAlreadyCompiledBigMethod  = "already compiled into a big method"
	ReasonAlreadyCompiledMedMethod  = "already compiled into a medium method"
	ReasonNeverExecuted             = "never executed"
	ReasonExecLessMinInliningThresh = "executed < MinInliningThreshold times"
	ReasonCallSiteNotReached        = "call site not reached"
	ReasonUncertainBranch           = "Uncertain branch"
	ReasonNativeMethod              = "native method"
	ReasonCalleeIsTooLarge          = "callee is too large"
	ReasonNoStaticBinding           = "no static binding"
)

var defaultWeights = map[string]float64{
	ReasonHotMethodTooBig:           1.0,
	ReasonCalleeIsTooLarge:          0.5,
	ReasonUncertainBranch:           0.5,
	ReasonTooBig:                    0.5,
	ReasonAlreadyCompiledBigMethod:  0.4,
	ReasonAlreadyCompiledMedMethod:  0.4,
	ReasonExecLessMinInliningThresh: 0.2,
	ReasonNoStaticBinding:           0.2,

	// Known but not worth surfacing: zero weight keeps them out of reports
	// while distinguishing them from reasons we have never seen.
	ReasonNeverExecuted:      0.0,
	ReasonNativeMethod:       0.0,
	ReasonCallSiteNotReached: 0.0,
}

var defaultExplanations = map[string]string{
	ReasonHotMethodTooBig: "The callee method is 'hot' but is too big to be inlined into the caller.\n" +
		"You may want to consider refactoring the callee into smaller methods.",
	ReasonTooBig:                    "The callee method is not 'hot' but is too big to be inlined into the caller method.",
	ReasonAlreadyCompiledBigMethod:  "The callee method is not 'hot' but is too big to be inlined into the caller method.",
	ReasonExecLessMinInliningThresh: "The callee method was not called enough times to be inlined.",
	ReasonCalleeIsTooLarge:          "The callee method is greater than the max inlining size at the C1 compiler level.",
	ReasonNoStaticBinding:           "The callee is known but there is no static binding so could not be inlined.",
}

// ScoreTable maps inlining-failure reasons to a weight in [0, 1] and to
// optional explanation text. Tables are built once and never mutated, so
// concurrent walkers may share one.
type ScoreTable struct {
	weights      map[string]float64
	explanations map[string]string
}

// DefaultScoreTable returns the built-in table.
func DefaultScoreTable() *ScoreTable {
	return &ScoreTable{
		weights:      defaultWeights,
		explanations: defaultExplanations,
	}
}

// NewScoreTable overlays the given weights and explanations on the
// built-in table, leaving the defaults untouched.
func NewScoreTable(weights map[string]float64, explanations map[string]string) *ScoreTable {
	if len(weights) == 0 && len(explanations) == 0 {
		return DefaultScoreTable()
	}

	merged := &ScoreTable{
		weights:      make(map[string]float64, len(defaultWeights)+len(weights)),
		explanations: make(map[string]string, len(defaultExplanations)+len(explanations)),
	}
	for reason, weight := range defaultWeights {
		merged.weights[reason] = weight
	}
	for reason, weight := range weights {
		merged.weights[reason] = weight
	}
	for reason, text := range defaultExplanations {
		merged.explanations[reason] = text
	}
	for reason, text := range explanations {
		merged.explanations[reason] = text
	}
	return merged
}

// Weight returns the weight for a reason and whether the reason is known.
// Unknown reasons score zero.
func (t *ScoreTable) Weight(reason string) (float64, bool) {
	weight, ok := t.weights[reason]
	return weight, ok
}

func (t *ScoreTable) Explanation(reason string) (string, bool) {
	text, ok := t.explanations[reason]
	return text, ok
}
