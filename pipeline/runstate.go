package pipeline

import "fmt"

// StageError records one mesh's failure for debug-level introspection: the
// originating stage name, the mesh's index within the run, and the
// wrapped error.
type StageError struct {
	Stage      string
	ModelIndex int
	Err        error
}

func (e StageError) Error() string {
	return fmt.Sprintf("%s: model %d: %v", e.Stage, e.ModelIndex, e.Err)
}

// RunState accumulates the outcome of one Pipeline.Execute call: a
// (success, failure) counter plus the ordered log of StageErrors. A failed
// mesh never rolls back its siblings — the run continues and records the
// failure here instead.
type RunState struct {
	Success int
	Failure int
	Errors  []StageError
}

// Reset clears rs back to the zero value, letting a Pipeline be reused
// across multiple Execute calls without retaining stale counters.
func (rs *RunState) Reset() { *rs = RunState{} }

func (rs *RunState) recordSuccess() { rs.Success++ }

func (rs *RunState) recordFailure(stage string, modelIndex int, err error) {
	rs.Failure++
	rs.Errors = append(rs.Errors, StageError{Stage: stage, ModelIndex: modelIndex, Err: err})
}
