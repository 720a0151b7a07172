package pipeline

import (
	"bytes"
	"fmt"

	"github.com/robjenks/rjm-pipeline/model"
	"github.com/robjenks/rjm-pipeline/objfmt"
)

// ImporterPostprocessStage lets a model already loaded from binary pass
// back through the importer's post-process flags (triangulation, UV
// generation, join-identical-vertices): it encodes the current ModelData
// to OBJ text, re-imports that text with the requested flags, and
// replaces the ModelData with the (single) imported result.
//
// The stage clones its input before encoding, since the re-import
// produces an entirely new ModelData and the caller's original must not
// be observably mutated if re-import fails.
type ImporterPostprocessStage struct {
	PostProcess objfmt.PostProcess
}

// StageName implements Name.
func (ImporterPostprocessStage) StageName() string { return "ImporterPostprocessStage" }

// Process implements ProcessingStage.
func (s ImporterPostprocessStage) Process(ctx *Context, m *model.ModelData) (*model.ModelData, error) {
	snapshot := m.Clone()

	var buf bytes.Buffer
	if err := objfmt.WriteOBJ(&buf, snapshot, objfmt.WriteOptions{}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIoFailure, err)
	}

	imp := ctx.Importer
	if imp == nil {
		imp = objfmt.NewScanningImporter()
	}
	meshes, err := imp.Import(buf.Bytes(), s.PostProcess)
	if err != nil {
		return nil, err
	}
	if len(meshes) == 0 {
		return nil, ErrNoModels
	}
	meshes[0].MaterialIndex = m.MaterialIndex
	return meshes[0], nil
}
