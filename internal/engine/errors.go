package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrDegenerateInput means fewer than 3 distinct vertices remain, or the
	// polygon encloses no area.
	ErrDegenerateInput = errors.New("degenerate input")
	// ErrOrthogonalityViolation means an edge is not axis-aligned.
	ErrOrthogonalityViolation = errors.New("edge is not axis-aligned")
	// ErrSplitPointNotOnBoundary means a computed split point is not on the
	// polyline it should split.
	ErrSplitPointNotOnBoundary = errors.New("split point not on boundary")
	// ErrIterationLimitExceeded means a bounded growth or search loop hit its ceiling.
	ErrIterationLimitExceeded = errors.New("iteration limit exceeded")
	// ErrOffGrid means a vertex is not a multiple of the grid pitch.
	ErrOffGrid = errors.New("vertex off grid")
)

// Stage names used in StageError.
const (
	StagePreprocess = "preprocess"
	StageExtract    = "extract"
	StageDecompose  = "decompose"
	StageDemand     = "demand"
	StageResolve    = "resolve"
	StageGenerate   = "generate"
)

// StageError identifies the component and input fragment a run failed on.
type StageError struct {
	Stage    string
	Fragment string
	Err      error
}

func (e *StageError) Error() string {
	if e.Fragment == "" {
		return fmt.Sprintf("%s: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("%s: %v at %s", e.Stage, e.Err, e.Fragment)
}

func (e *StageError) Unwrap() error { return e.Err }

func stageErr(stage string, fragment fmt.Stringer, err error) error {
	frag := ""
	if fragment != nil {
		frag = fragment.String()
	}
	return &StageError{Stage: stage, Fragment: frag, Err: err}
}
