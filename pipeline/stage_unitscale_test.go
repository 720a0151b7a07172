package pipeline

import (
	"errors"
	"testing"

	"github.com/robjenks/rjm-pipeline/linear"
	"github.com/robjenks/rjm-pipeline/model"
)

func box(size linear.V3) *model.ModelData {
	m := &model.ModelData{}
	for _, sx := range []float32{-0.5, 0.5} {
		for _, sy := range []float32{-0.5, 0.5} {
			for _, sz := range []float32{-0.5, 0.5} {
				m.Vertices = append(m.Vertices, model.Vertex{
					Position: linear.V3{sx * size[0], sy * size[1], sz * size[2]},
					Normal:   linear.V3{sx, sy, sz},
				})
			}
		}
	}
	m.SequentialIndices()
	m.RecalculateBounds()
	return m
}

func TestUnitScaleStageLargeModel(t *testing.T) {
	m := box(linear.V3{8, 4, 2})
	ctx := &Context{AggregateMetadata: model.FromModel(m)}

	got, err := UnitScaleStage{}.Process(ctx, m)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	want := linear.V3{1, 0.5, 0.25}
	for i := 0; i < 3; i++ {
		if diff := got.Size[i] - want[i]; diff > 1e-5 || diff < -1e-5 {
			t.Fatalf("size = %v, want %v", got.Size, want)
		}
	}
}

func TestUnitScaleStageIdempotent(t *testing.T) {
	m := box(linear.V3{8, 4, 2})
	ctx := &Context{AggregateMetadata: model.FromModel(m)}
	first, err := UnitScaleStage{}.Process(ctx, m)
	if err != nil {
		t.Fatal(err)
	}
	ctx2 := &Context{AggregateMetadata: model.FromModel(first)}
	second, err := UnitScaleStage{}.Process(ctx2, first)
	if err != nil {
		t.Fatal(err)
	}
	for i := range first.Vertices {
		if first.Vertices[i] != second.Vertices[i] {
			t.Fatalf("second UnitScaleStage pass should be a no-op, vertex %d changed", i)
		}
	}
}

func TestUnitScaleStageDegenerateSize(t *testing.T) {
	m := &model.ModelData{Vertices: []model.Vertex{{Position: linear.V3{1, 1, 1}}, {Position: linear.V3{1, 1, 1}}}}
	m.RecalculateBounds()
	ctx := &Context{AggregateMetadata: model.FromModel(m)}
	_, err := UnitScaleStage{}.Process(ctx, m)
	if !errors.Is(err, ErrDegenerateSize) {
		t.Fatalf("got %v, want ErrDegenerateSize", err)
	}
}

func TestUnitScaleStageAlreadyUnitScaleEarlyOut(t *testing.T) {
	// size = (0.3, 1.0, 0.2): componentwise <= 1 and one component == 1.0,
	// so the documented early-out applies even though the mesh is not
	// unit-scale on every axis individually.
	m := box(linear.V3{0.3, 1.0, 0.2})
	ctx := &Context{AggregateMetadata: model.FromModel(m)}
	before := make([]model.Vertex, len(m.Vertices))
	copy(before, m.Vertices)

	got, err := UnitScaleStage{}.Process(ctx, m)
	if err != nil {
		t.Fatal(err)
	}
	for i := range got.Vertices {
		if got.Vertices[i] != before[i] {
			t.Fatal("documented early-out should leave vertices untouched")
		}
	}
}
