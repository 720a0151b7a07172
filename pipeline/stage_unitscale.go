package pipeline

import (
	"github.com/robjenks/rjm-pipeline/linear"
	"github.com/robjenks/rjm-pipeline/model"
	"gonum.org/v1/gonum/floats"
)

// UnitScaleStage uniformly scales a mesh so its longest axis has extent 1.
//
// The early-out is intentionally "size <= 1 componentwise AND at least one
// component within epsilon of 1.0", not "already unit scale on the longest
// axis" — a mesh whose size is, say, (0.3, 0.9999999, 0.2) takes the
// early-out and is left unscaled even though by a strict reading it is not
// yet unit-scale on every axis. This documented quirk is preserved as-is
// rather than "fixed".
type UnitScaleStage struct{}

// StageName implements Name.
func (UnitScaleStage) StageName() string { return "UnitScaleStage" }

// Process implements ProcessingStage.
func (UnitScaleStage) Process(ctx *Context, m *model.ModelData) (*model.ModelData, error) {
	size := ctx.AggregateMetadata.Size
	if !ctx.AggregateMetadata.HasData() {
		size = m.Size
	}

	if alreadyUnitScale(size) {
		return m, nil
	}

	max := size[0]
	if size[1] > max {
		max = size[1]
	}
	if size[2] > max {
		max = size[2]
	}
	if max == 0 {
		return nil, ErrDegenerateSize
	}

	inv := 1 / max
	for i := range m.Vertices {
		m.Vertices[i].Position.Scale(inv, &m.Vertices[i].Position)
	}
	m.RecalculateBounds()
	return m, nil
}

func alreadyUnitScale(size linear.V3) bool {
	if size[0] > 1 || size[1] > 1 || size[2] > 1 {
		return false
	}
	for _, c := range size {
		if floats.EqualWithinAbs(float64(c), 1, centreEpsilon) {
			return true
		}
	}
	return false
}
