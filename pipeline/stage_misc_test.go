package pipeline

import (
	"bytes"
	"testing"

	"github.com/robjenks/rjm-pipeline/internal/fsio"
	"github.com/robjenks/rjm-pipeline/model"
	"github.com/robjenks/rjm-pipeline/objfmt"
	"github.com/robjenks/rjm-pipeline/rjmlog"
)

func TestPassthroughStageReturnsInputUnchanged(t *testing.T) {
	m := billboard()
	got, err := PassthroughStage{}.Process(&Context{}, m)
	if err != nil {
		t.Fatal(err)
	}
	if got != m {
		t.Fatal("PassthroughStage should return the same pointer unchanged")
	}
}

type recordingSink struct{ lines []string }

func (r *recordingSink) Info(format string, args ...any)  { r.lines = append(r.lines, format) }
func (r *recordingSink) Error(format string, args ...any) { r.lines = append(r.lines, format) }
func (r *recordingSink) Debug(format string, args ...any) { r.lines = append(r.lines, format) }

var _ rjmlog.Sink = (*recordingSink)(nil)

func TestOutputModelInfoStageLogsAndDoesNotMutate(t *testing.T) {
	m := billboard()
	before := make([]model.Vertex, len(m.Vertices))
	copy(before, m.Vertices)
	sink := &recordingSink{}

	got, err := OutputModelInfoStage{}.Process(&Context{Log: sink}, m)
	if err != nil {
		t.Fatal(err)
	}
	for i := range got.Vertices {
		if got.Vertices[i] != before[i] {
			t.Fatal("OutputModelInfoStage must never modify the mesh")
		}
	}
	if len(sink.lines) != 1 {
		t.Fatalf("expected exactly one log line, got %d", len(sink.lines))
	}
}

func TestOutputModelInfoStageNeverFails(t *testing.T) {
	var empty model.ModelData
	if _, err := (OutputModelInfoStage{}).Process(&Context{}, &empty); err != nil {
		t.Fatalf("OutputModelInfoStage should never fail, got %v", err)
	}
}

const triangleOBJ = `
v 0 0 0
v 1 0 0
v 0 1 0
vn 0 0 1
vn 0 0 1
vn 0 0 1
vt 0 0
vt 1 0
vt 0 1
f 1/1/1 2/2/2 3/3/3
`

func TestImporterPostprocessStageRoundTrips(t *testing.T) {
	imp := objfmt.NewScanningImporter()
	meshes, err := imp.Import([]byte(triangleOBJ), 0)
	if err != nil {
		t.Fatal(err)
	}
	m := meshes[0]
	m.MaterialIndex = 7

	ctx := &Context{Importer: imp}
	got, err := ImporterPostprocessStage{}.Process(ctx, m)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if got.VertexCount() != 3 {
		t.Fatalf("vertex_count = %d, want 3", got.VertexCount())
	}
	if got.MaterialIndex != 7 {
		t.Fatalf("MaterialIndex should survive the round trip, got %d", got.MaterialIndex)
	}
}

func TestImporterPostprocessStageDoesNotMutateInput(t *testing.T) {
	imp := objfmt.NewScanningImporter()
	meshes, _ := imp.Import([]byte(triangleOBJ), 0)
	m := meshes[0]
	originalFirstPos := m.Vertices[0].Position

	ctx := &Context{Importer: imp}
	if _, err := (ImporterPostprocessStage{}).Process(ctx, m); err != nil {
		t.Fatal(err)
	}
	if m.Vertices[0].Position != originalFirstPos {
		t.Fatal("ImporterPostprocessStage must not mutate the ModelData it was handed")
	}
}

func TestBuilderMissingStage(t *testing.T) {
	_, err := NewPipelineBuilder().Build()
	if err == nil {
		t.Fatal("expected ErrMissingStage")
	}

	_, err = NewPipelineBuilder().WithInput(BinaryInput{}).Build()
	if err == nil {
		t.Fatal("expected ErrMissingStage when output is unset")
	}
}

func TestBuilderFluentChain(t *testing.T) {
	p, err := NewPipelineBuilder().
		WithInput(BinaryInput{}).
		WithProcessing(CentreStage{}).
		WithProcessing(UnitScaleStage{}).
		WithOutput(BinaryOutput{}).
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if p == nil {
		t.Fatal("Build returned nil pipeline with no error")
	}
}

func TestObjOutputWritesSiblingMTL(t *testing.T) {
	m := billboard()
	out := ObjOutput{MaterialTextureName: "brick.png"}
	fs := fsio.NewMemFS()
	ctx := &Context{FS: fs}

	if err := out.EmitToFile(ctx, m, "scene.obj"); err != nil {
		t.Fatalf("EmitToFile: %v", err)
	}
	if !fs.Exists("scene.obj") {
		t.Fatal("expected scene.obj to be written")
	}
	if !fs.Exists("scene.mtl") {
		t.Fatal("expected sibling scene.mtl to be written")
	}
	mtl, _ := fs.ReadFile("scene.mtl")
	if !bytes.Contains(mtl, []byte("brick.png")) {
		t.Fatalf("scene.mtl should reference brick.png, got:\n%s", mtl)
	}

	obj, _ := fs.ReadFile("scene.obj")
	if !bytes.Contains(obj, []byte("mtllib scene.mtl\n")) {
		t.Fatalf("scene.obj should reference the sibling scene.mtl it was written next to, got:\n%s", obj)
	}
}

func TestObjOutputNoMTLWithoutMaterial(t *testing.T) {
	m := billboard()
	fs := fsio.NewMemFS()
	ctx := &Context{FS: fs}
	if err := (ObjOutput{}).EmitToFile(ctx, m, "scene.obj"); err != nil {
		t.Fatalf("EmitToFile: %v", err)
	}
	if fs.Exists("scene.mtl") {
		t.Fatal("no .mtl file should be written without MaterialTextureName")
	}
}
