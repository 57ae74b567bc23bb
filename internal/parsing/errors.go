package parsing

import "fmt"

// PipelineError records an unexpected failure inside a parse stage. It is reported to
// the tracer only; Parse itself never returns it.
type PipelineError struct {
	Stage string
	Cause error
}

func (e *PipelineError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parse stage %s failed: %v", e.Stage, e.Cause)
	}
	return fmt.Sprintf("parse stage %s failed", e.Stage)
}

func (e *PipelineError) Unwrap() error {
	return e.Cause
}

// panicError wraps a recovered value that is not itself an error.
type panicError struct {
	value any
}

func (e *panicError) Error() string {
	return fmt.Sprintf("panic: %v", e.value)
}

func asError(v any) error {
	if err, ok := v.(error); ok {
		return err
	}
	return &panicError{value: v}
}
