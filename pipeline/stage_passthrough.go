package pipeline

import "github.com/robjenks/rjm-pipeline/model"

// PassthroughStage returns its input unchanged. Grounded on
// original_source/ModelPipeline/PassthroughPipelineStage.h, dropped by the
// pipeline distillation but useful as a no-op filler stage in tests and as
// pipelineconfig's default when a configured stage list entry names no
// operation.
type PassthroughStage struct{}

// StageName implements Name.
func (PassthroughStage) StageName() string { return "PassthroughStage" }

// Process implements ProcessingStage.
func (PassthroughStage) Process(ctx *Context, m *model.ModelData) (*model.ModelData, error) {
	return m, nil
}
