package pipeline

import "fmt"

// Stage names one step of a formatting run
type Stage string

const (
	StageExtract   Stage = "extract"
	StageNormalize Stage = "normalize"
	StageClassify  Stage = "classify"
	StageSegment   Stage = "segment"
	StageRender    Stage = "render"
	StageExport    Stage = "export"
)

// Stages lists every stage in execution order
var Stages = []Stage{StageExtract, StageNormalize, StageClassify, StageSegment, StageRender, StageExport}

// StageError wraps the error of the stage that stopped a run
type StageError struct {
	Stage Stage
	Cause error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Stage, e.Cause)
}

func (e *StageError) Unwrap() error {
	return e.Cause
}

func stageErr(stage Stage, err error) error {
	return &StageError{Stage: stage, Cause: err}
}
