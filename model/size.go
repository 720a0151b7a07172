package model

import "github.com/robjenks/rjm-pipeline/linear"

// SizeProperties is a standalone bounds/centre/size block, computable from
// a single ModelData, from an aggregate of SizeProperties, or from a list
// of ModelData. It is the type used for the pipeline's per-run aggregate
// metadata (the joint bounds of every mesh produced by one InputStage
// call).
type SizeProperties struct {
	Min    linear.V3
	Max    linear.V3
	Size   linear.V3
	Centre linear.V3
}

// sentinel bounds used while reducing over vertices/children, the same
// "start from the opposite infinities" idiom as
// original_source/Definitions/ModelSizeProperties.cpp's +/-1e6 sentinels,
// widened here since float32 positions can legitimately exceed 1e6.
var (
	sentinelMin = linear.V3{math32Inf, math32Inf, math32Inf}
	sentinelMax = linear.V3{-math32Inf, -math32Inf, -math32Inf}
)

const math32Inf = 3.4e38

// FromModel computes bounds from a single ModelData's vertex positions.
func FromModel(m *ModelData) SizeProperties {
	if len(m.Vertices) == 0 {
		return SizeProperties{}
	}
	min, max := sentinelMin, sentinelMax
	for _, v := range m.Vertices {
		min.Min(&min, &v.Position)
		max.Max(&max, &v.Position)
	}
	return newSizeProperties(min, max)
}

// FromSizeProperties aggregates a list of SizeProperties into the enclosing
// AABB: componentwise min of mins, max of maxes.
func FromSizeProperties(props []SizeProperties) SizeProperties {
	if len(props) == 0 {
		return SizeProperties{}
	}
	min, max := sentinelMin, sentinelMax
	for _, p := range props {
		min.Min(&min, &p.Min)
		max.Max(&max, &p.Max)
	}
	return newSizeProperties(min, max)
}

// FromModels aggregates a list of ModelData. If recomputeChildren is set,
// each model's bounds are recomputed from its vertex data first; otherwise
// the model's existing MinBounds/MaxBounds are used as-is.
func FromModels(models []*ModelData, recomputeChildren bool) SizeProperties {
	props := make([]SizeProperties, 0, len(models))
	for _, m := range models {
		if m == nil {
			continue
		}
		if recomputeChildren {
			props = append(props, FromModel(m))
		} else {
			props = append(props, SizeProperties{Min: m.MinBounds, Max: m.MaxBounds, Size: m.Size, Centre: m.Centre})
		}
	}
	return FromSizeProperties(props)
}

// newSizeProperties builds a SizeProperties from min/max bounds, applying
// the sanity clamp (replace both with zero if min > max on any axis) and
// deriving Size/Centre.
func newSizeProperties(min, max linear.V3) SizeProperties {
	for i := range min {
		if min[i] > max[i] {
			min, max = linear.V3{}, linear.V3{}
			break
		}
	}
	p := SizeProperties{Min: min, Max: max}
	p.recalculateDerived()
	return p
}

// recalculateDerived sets Size and Centre from Min/Max.
func (p *SizeProperties) recalculateDerived() {
	p.Size.Sub(&p.Max, &p.Min)
	var half linear.V3
	half.Scale(0.5, &p.Size)
	p.Centre.Add(&p.Min, &half)
}

// HasData reports whether the bounds describe a non-degenerate extent
// (min differs from max on at least one axis).
func (p *SizeProperties) HasData() bool {
	return p.Min[0] != p.Max[0] || p.Min[1] != p.Max[1] || p.Min[2] != p.Max[2]
}
