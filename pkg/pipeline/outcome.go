package pipeline

import (
	"errors"
	"fmt"
)

// Stage identifies one step of the pipeline state machine.
type Stage string

const (
	StageFetch      Stage = "fetching"
	StageExtract    Stage = "extracting"
	StageSegment    Stage = "segmenting"
	StageSummarize  Stage = "summarizing"
	StageFormat     Stage = "formatting"
	StageSynthesize Stage = "synthesizing"
	StagePersist    Stage = "persisting"
)

// ErrExtractionEmpty signals that no usable text was recovered from the
// fetched markup.
var ErrExtractionEmpty = errors.New("no usable article text extracted")

// StageError tags a failure with the stage it occurred in. Delegate
// errors never cross a stage boundary unwrapped.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

func stageErr(stage Stage, err error) *StageError {
	return &StageError{Stage: stage, Err: err}
}

// FailedStage returns the stage a pipeline error occurred in, or "" for
// non-stage errors.
func FailedStage(err error) Stage {
	var se *StageError
	if errors.As(err, &se) {
		return se.Stage
	}
	return ""
}
