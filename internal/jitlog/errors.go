package jitlog

import "fmt"

// LogParseError reports a structurally broken piece of compilation log. It
// is fatal only for the member (task) it is attributed to; the analysis run
// carries on with the next one.
type LogParseError struct {
	Operation  string
	CompileID  string
	Detail     string
	Underlying error
}

// NewLogParseError creates a parse error with context
func NewLogParseError(op string, err error) *LogParseError {
	return &LogParseError{
		Operation:  op,
		Underlying: err,
	}
}

// WithCompileID attributes the error to one compilation task
func (e *LogParseError) WithCompileID(id string) *LogParseError {
	e.CompileID = id
	return e
}

// WithDetail attaches the offending input fragment
func (e *LogParseError) WithDetail(detail string) *LogParseError {
	e.Detail = detail
	return e
}

func (e *LogParseError) Error() string {
	msg := fmt.Sprintf("log parse failed during %s", e.Operation)
	if e.CompileID != "" {
		msg += fmt.Sprintf(" (compile_id %s)", e.CompileID)
	}
	if e.Detail != "" {
		msg += fmt.Sprintf(": %q", e.Detail)
	}
	if e.Underlying != nil {
		msg += fmt.Sprintf(": %v", e.Underlying)
	}
	return msg
}

func (e *LogParseError) Unwrap() error {
	return e.Underlying
}
