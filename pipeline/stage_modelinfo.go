package pipeline

import "github.com/robjenks/rjm-pipeline/model"

// OutputModelInfoStage is a read-only diagnostic stage: it logs vertex
// count, index count, bounds, size, and centre through ctx.Log and never
// modifies or fails on the ModelData it sees.
type OutputModelInfoStage struct{}

// StageName implements Name.
func (OutputModelInfoStage) StageName() string { return "OutputModelInfoStage" }

// Process implements ProcessingStage.
func (OutputModelInfoStage) Process(ctx *Context, m *model.ModelData) (*model.ModelData, error) {
	if ctx.Log != nil {
		ctx.Log.Info(
			"model: vertices=%d indices=%d min=%v max=%v size=%v centre=%v",
			m.VertexCount(), m.IndexCount(), m.MinBounds, m.MaxBounds, m.Size, m.Centre,
		)
	}
	return m, nil
}
