package detectors

import "jitcheck/internal/models"

// UnknownBytecodeOffset is the sentinel offset used before any bytecode
// position marker has been seen in the current scan.
const UnknownBytecodeOffset = -1

// ScanContext is the positional state a walker has accumulated when it
// hands a tag to a detector: who is being compiled, which method the next
// inlining decision concerns, and where in the bytecode the walk currently
// stands. Detectors read it, never write it.
type ScanContext struct {
	// Caller is the member whose compilation is being walked. May be nil
	// when a nested compile scope could not be resolved.
	Caller *models.CompiledMember

	// MethodID is the dictionary ID of the most recently referenced
	// method, typically the callee of the next inlining decision.
	MethodID string

	// BytecodeOffset is the current position within the caller's bytecode,
	// or UnknownBytecodeOffset.
	BytecodeOffset int

	// Dictionary resolves IDs for the compilation task being walked.
	Dictionary *models.ParseDictionary
}

// Detector is one suggestion heuristic. Each detector handles exactly one
// tag kind; the walker dispatches on TagName.
type Detector interface {
	Name() string
	TagName() string
	Detect(ctx *ScanContext, attrs map[string]string) []models.Suggestion
}
