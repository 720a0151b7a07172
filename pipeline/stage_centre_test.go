package pipeline

import (
	"testing"

	"github.com/robjenks/rjm-pipeline/linear"
	"github.com/robjenks/rjm-pipeline/model"
)

func cube(offset linear.V3) *model.ModelData {
	m := &model.ModelData{}
	for _, x := range []float32{-0.5, 0.5} {
		for _, y := range []float32{-0.5, 0.5} {
			for _, z := range []float32{-0.5, 0.5} {
				p := linear.V3{x, y, z}
				p.Add(&p, &offset)
				m.Vertices = append(m.Vertices, model.Vertex{Position: p, Normal: linear.V3{x, y, z}})
			}
		}
	}
	m.SequentialIndices()
	m.RecalculateBounds()
	return m
}

func TestCentreStageOffsetCube(t *testing.T) {
	m := cube(linear.V3{10, 5, -3})
	ctx := &Context{AggregateMetadata: model.FromModel(m)}

	got, err := CentreStage{}.Process(ctx, m)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if got.Centre.Len() > centreEpsilon {
		t.Fatalf("centre after CentreStage = %v, want near zero", got.Centre)
	}
	if got.Size != (linear.V3{1, 1, 1}) {
		t.Fatalf("size changed: %v", got.Size)
	}
}

func TestCentreStageIdempotent(t *testing.T) {
	m := cube(linear.V3{10, 5, -3})
	ctx := &Context{AggregateMetadata: model.FromModel(m)}
	first, err := CentreStage{}.Process(ctx, m)
	if err != nil {
		t.Fatalf("first Process: %v", err)
	}

	ctx2 := &Context{AggregateMetadata: model.FromModel(first)}
	before := make([]model.Vertex, len(first.Vertices))
	copy(before, first.Vertices)

	second, err := CentreStage{}.Process(ctx2, first)
	if err != nil {
		t.Fatalf("second Process: %v", err)
	}
	for i := range second.Vertices {
		if second.Vertices[i] != before[i] {
			t.Fatalf("second CentreStage pass should be a no-op, vertex %d changed", i)
		}
	}
}

func TestCentreStageMultiMeshDoesNotDestroyRelativePositions(t *testing.T) {
	a := cube(linear.V3{-5, 0, 0})
	b := cube(linear.V3{5, 0, 0})
	agg := model.FromModels([]*model.ModelData{a, b}, false)
	if agg.Centre.Len() > centreEpsilon {
		t.Fatalf("joint centre should already be near origin, got %v", agg.Centre)
	}

	ctx := &Context{AggregateMetadata: agg}
	gotA, err := CentreStage{}.Process(ctx, a)
	if err != nil {
		t.Fatal(err)
	}
	gotB, err := CentreStage{}.Process(ctx, b)
	if err != nil {
		t.Fatal(err)
	}
	if gotA.Centre[0] > -4 {
		t.Fatalf("mesh A should remain near x=-5, centre = %v", gotA.Centre)
	}
	if gotB.Centre[0] < 4 {
		t.Fatalf("mesh B should remain near x=+5, centre = %v", gotB.Centre)
	}
}

func TestCentreStageBoundsMatchRecomputedVertices(t *testing.T) {
	m := cube(linear.V3{10, 5, -3})
	ctx := &Context{AggregateMetadata: model.FromModel(m)}
	got, err := CentreStage{}.Process(ctx, m)
	if err != nil {
		t.Fatal(err)
	}
	recomputed := model.FromModel(got)
	if got.MinBounds != recomputed.Min || got.MaxBounds != recomputed.Max {
		t.Fatalf("cached bounds %v/%v do not match recomputed %v/%v", got.MinBounds, got.MaxBounds, recomputed.Min, recomputed.Max)
	}
}
