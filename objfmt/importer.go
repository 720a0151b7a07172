// Package objfmt implements the Wavefront OBJ/MTL text codec: a
// from-scratch scanning importer (standing in for the pipeline's external
// mesh-importer collaborator) and the OBJ/MTL emitter used by ObjOutput.
//
// No example repository in the retrieval pack vendors an Assimp-equivalent
// Go binding, so ScanningImporter is written rather than wired to a
// third-party importer; it satisfies the same Importer contract a real
// binding would, so one could be substituted later without touching the
// pipeline package. See DESIGN.md.
package objfmt

import "github.com/robjenks/rjm-pipeline/model"

// Importer parses OBJ source text into a list of ModelData, optionally
// applying post-process flags before returning.
type Importer interface {
	Import(text []byte, flags PostProcess) ([]*model.ModelData, error)
}

// ScanningImporter is a bufio.Scanner-based OBJ parser, in the vein of the
// hand-rolled text formats gviegas-neo3/gltf parses with encoding/json.
type ScanningImporter struct{}

// NewScanningImporter returns a ready-to-use ScanningImporter.
func NewScanningImporter() *ScanningImporter { return &ScanningImporter{} }

// Import parses text as OBJ source and returns one ModelData per "o"- or
// "g"-scoped group (or a single implicit group if the source declares none). A mesh
// whose faces are not all triangles fails with ErrNonTriangulatedMesh and
// is dropped; other meshes in the same source are still returned.
func (s *ScanningImporter) Import(text []byte, flags PostProcess) ([]*model.ModelData, error) {
	return parseOBJ(text, flags)
}
