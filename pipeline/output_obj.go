package pipeline

import (
	"bytes"
	"fmt"

	"github.com/robjenks/rjm-pipeline/internal/fsio"
	"github.com/robjenks/rjm-pipeline/model"
	"github.com/robjenks/rjm-pipeline/objfmt"
)

// ObjOutput emits Wavefront OBJ text, plus a sibling .mtl file with
// default Phong parameters when MaterialTextureName is set.
type ObjOutput struct {
	MaterialTextureName string
}

// StageName implements Name.
func (ObjOutput) StageName() string { return "ObjOutput" }

// Emit implements OutputStage.
func (s ObjOutput) Emit(ctx *Context, m *model.ModelData) ([]byte, error) {
	var buf bytes.Buffer
	opts := objfmt.WriteOptions{MaterialTextureName: s.MaterialTextureName}
	if err := objfmt.WriteOBJ(&buf, m, opts); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIoFailure, err)
	}
	return buf.Bytes(), nil
}

// EmitToFile implements OutputStage. When MaterialTextureName is set it
// also writes the sibling <path-without-ext>.mtl file, and the emitted
// OBJ's mtllib line is derived from that same path so the reference and
// the file on disk always agree.
func (s ObjOutput) EmitToFile(ctx *Context, m *model.ModelData, path string) error {
	opts := objfmt.WriteOptions{MaterialTextureName: s.MaterialTextureName}
	if s.MaterialTextureName != "" {
		opts.MaterialLibName = fsio.BaseName(path)
	}
	var buf bytes.Buffer
	if err := objfmt.WriteOBJ(&buf, m, opts); err != nil {
		return fmt.Errorf("%w: %v", ErrIoFailure, err)
	}
	if err := ctx.FS.WriteFile(path, buf.Bytes()); err != nil {
		return fmt.Errorf("%w: %v", ErrIoFailure, err)
	}
	if s.MaterialTextureName == "" {
		return nil
	}

	mtlPath := fsio.ReplaceExt(path, "mtl")
	var mtl bytes.Buffer
	if err := objfmt.WriteMTL(&mtl, s.MaterialTextureName); err != nil {
		return fmt.Errorf("%w: %v", ErrIoFailure, err)
	}
	if err := ctx.FS.WriteFile(mtlPath, mtl.Bytes()); err != nil {
		return fmt.Errorf("%w: %v", ErrIoFailure, err)
	}
	return nil
}
