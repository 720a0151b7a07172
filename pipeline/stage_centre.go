package pipeline

import (
	"github.com/robjenks/rjm-pipeline/linear"
	"github.com/robjenks/rjm-pipeline/model"
	"gonum.org/v1/gonum/floats"
)

// centreEpsilon is the "already there" threshold CentreStage and
// UnitScaleStage compare against.
const centreEpsilon = 1e-6

// CentreStage subtracts the run's centre point from every vertex
// position, leaving the mesh centred at the origin. The centre used is
// the aggregate metadata's centre for a multi-mesh run, or the model's own
// centre otherwise — both are the same value here since
// ctx.AggregateMetadata is always populated with recompute_children=false
// (see Pipeline.produce).
type CentreStage struct{}

// StageName implements Name.
func (CentreStage) StageName() string { return "CentreStage" }

// Process implements ProcessingStage.
func (CentreStage) Process(ctx *Context, m *model.ModelData) (*model.ModelData, error) {
	centre := ctx.AggregateMetadata.Centre
	if !ctx.AggregateMetadata.HasData() {
		centre = m.Centre
	}
	if isNearZero(&centre) {
		return m, nil
	}
	for i := range m.Vertices {
		m.Vertices[i].Position.Sub(&m.Vertices[i].Position, &centre)
	}
	m.RecalculateBounds()
	return m, nil
}

// isNearZero reports whether v's magnitude (not a componentwise check) is
// within centreEpsilon of zero.
func isNearZero(v *linear.V3) bool {
	return floats.EqualWithinAbs(float64(v.Len()), 0, centreEpsilon)
}
