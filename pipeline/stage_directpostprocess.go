package pipeline

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/robjenks/rjm-pipeline/internal/fsio"
	"github.com/robjenks/rjm-pipeline/linear"
	"github.com/robjenks/rjm-pipeline/model"
)

// DirectPostprocessOption is a bitmask of the small geometric operations
// DirectPostprocessStage can apply, named after the CustomPostProcess
// idiom used throughout this codebase's flag enums.
type DirectPostprocessOption uint32

const (
	InvertU DirectPostprocessOption = 1 << iota
	InvertV
	CustomTransform
)

// DirectPostprocessStage applies InvertU, InvertV, and CustomTransform, in
// that order, each as its own loop over the vertex buffer. A stage with no
// option bits set is a no-op.
type DirectPostprocessStage struct {
	Options DirectPostprocessOption
}

// StageName implements Name.
func (DirectPostprocessStage) StageName() string { return "DirectPostprocessStage" }

// Process implements ProcessingStage.
func (s DirectPostprocessStage) Process(ctx *Context, m *model.ModelData) (*model.ModelData, error) {
	if s.Options&InvertU != 0 {
		for i := range m.Vertices {
			m.Vertices[i].Tex[0] = 1 - m.Vertices[i].Tex[0]
		}
	}
	if s.Options&InvertV != 0 {
		for i := range m.Vertices {
			m.Vertices[i].Tex[1] = 1 - m.Vertices[i].Tex[1]
		}
	}
	if s.Options&CustomTransform != 0 {
		mat, err := readTransformFile(ctx)
		if err != nil {
			return nil, err
		}
		applyCustomTransform(m, mat)
		m.RecalculateBounds()
	}
	return m, nil
}

// readTransformFile reads and parses the sibling <model>.transform file,
// 16 comma-separated floats in row-major order.
func readTransformFile(ctx *Context) (*linear.M4, error) {
	path := fsio.SiblingPath(ctx.SourcePath, ".transform")
	data, err := ctx.FS.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransformFileMissing, err)
	}

	fields := strings.FieldsFunc(string(data), func(r rune) bool {
		return r == ',' || r == '\n' || r == '\r' || r == '\t' || r == ' '
	})
	if len(fields) != 16 {
		return nil, fmt.Errorf("%w: want 16 floats, got %d", ErrTransformFileMalformed, len(fields))
	}
	var c [16]float32
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrTransformFileMalformed, err)
		}
		c[i] = float32(v)
	}
	var m linear.M4
	m.FromRowMajor(c)
	return &m, nil
}

// applyCustomTransform applies mat to every vertex's position (w=1, an
// affine point transform) and to normal/tangent/binormal (w=0, direction
// vectors untouched by translation). This corrects the original
// implementation's uniform XMVector3TransformCoord call, which applied
// w=1 semantics to direction vectors as well.
func applyCustomTransform(m *model.ModelData, mat *linear.M4) {
	for i := range m.Vertices {
		v := &m.Vertices[i]
		v.Position = transformPoint(mat, &v.Position)
		v.Normal = transformDirection(mat, &v.Normal)
		v.Tangent = transformDirection(mat, &v.Tangent)
		v.Binormal = transformDirection(mat, &v.Binormal)
	}
}

func transformPoint(mat *linear.M4, p *linear.V3) linear.V3 {
	var in, out linear.V4
	in.FromV3(p, 1)
	out.Mul(mat, &in)
	var result linear.V3
	result.FromV4(&out)
	return result
}

func transformDirection(mat *linear.M4, d *linear.V3) linear.V3 {
	var in, out linear.V4
	in.FromV3(d, 0)
	out.Mul(mat, &in)
	var result linear.V3
	result.FromV4(&out)
	return result
}
