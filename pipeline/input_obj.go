package pipeline

import (
	"fmt"

	"github.com/robjenks/rjm-pipeline/model"
	"github.com/robjenks/rjm-pipeline/objfmt"
)

// ObjImporterInput delegates to ctx.Importer (the external mesh-importer
// collaborator stand-in). Any user-requested post-process flags are
// passed straight through to the importer; a mesh with missing
// positions/normals or non-triangular faces is dropped by the importer
// itself (see objfmt.ScanningImporter.Import), which fails with
// ErrMissingRequiredAttribute or ErrNonTriangulatedMesh when every mesh in
// the source is dropped for that reason.
type ObjImporterInput struct {
	PostProcess objfmt.PostProcess
}

// StageName implements Name.
func (ObjImporterInput) StageName() string { return "ObjImporterInput" }

// Produce implements InputStage.
func (s ObjImporterInput) Produce(ctx *Context, source Source) ([]*model.ModelData, error) {
	text := source.Bytes
	if text == nil {
		data, err := ctx.FS.ReadFile(source.Path)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrIoFailure, err)
		}
		text = data
	}
	imp := ctx.Importer
	if imp == nil {
		imp = objfmt.NewScanningImporter()
	}
	return imp.Import(text, s.PostProcess)
}
