package objfmt

import (
	"bufio"
	"fmt"
	"io"

	"github.com/robjenks/rjm-pipeline/model"
)

// Default Phong parameters written to the sibling .mtl file, conventional
// Wavefront defaults recovered from original_source/ModelPipeline's
// mention of a default-material .mtl companion.
const (
	defaultAmbient  = "0.2 0.2 0.2"
	defaultDiffuse  = "0.8 0.8 0.8"
	defaultSpecular = "1.0 1.0 1.0"
	defaultShine    = "0.0"
)

// WriteOptions controls the optional material references ObjOutput emits
// alongside geometry.
type WriteOptions struct {
	// MaterialTextureName, if non-empty, is written as mtllib/usemtl
	// references and drives the sibling .mtl file content.
	MaterialTextureName string
	// MaterialLibName is the base name (without extension) used for the
	// mtllib line and the .mtl file itself. Defaults to "material" if
	// MaterialTextureName is set and this is empty.
	MaterialLibName string
}

// WriteOBJ emits m to w as Wavefront OBJ text: v/vn/vt blocks followed by
// unshared-vertex face lines, 1-based indices, the same index repeated for
// position/normal/texcoord per vertex.
func WriteOBJ(w io.Writer, m *model.ModelData, opts WriteOptions) error {
	bw := bufio.NewWriter(w)

	libName := opts.MaterialLibName
	if opts.MaterialTextureName != "" {
		if libName == "" {
			libName = "material"
		}
		fmt.Fprintf(bw, "mtllib %s.mtl\n", libName)
	}

	for _, v := range m.Vertices {
		fmt.Fprintf(bw, "v %g %g %g\n", v.Position[0], v.Position[1], v.Position[2])
	}
	for _, v := range m.Vertices {
		fmt.Fprintf(bw, "vn %g %g %g\n", v.Normal[0], v.Normal[1], v.Normal[2])
	}
	for _, v := range m.Vertices {
		fmt.Fprintf(bw, "vt %g %g\n", v.Tex[0], v.Tex[1])
	}

	if opts.MaterialTextureName != "" {
		fmt.Fprintln(bw, "usemtl material0")
	}

	for i := 0; i+2 < len(m.Indices); i += 3 {
		a, b, c := m.Indices[i]+1, m.Indices[i+1]+1, m.Indices[i+2]+1
		fmt.Fprintf(bw, "f %d/%d/%d %d/%d/%d %d/%d/%d\n", a, a, a, b, b, b, c, c, c)
	}

	return bw.Flush()
}

// WriteMTL emits the sibling material library referencing textureName with
// default Phong parameters.
func WriteMTL(w io.Writer, textureName string) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "newmtl material0")
	fmt.Fprintf(bw, "Ka %s\n", defaultAmbient)
	fmt.Fprintf(bw, "Kd %s\n", defaultDiffuse)
	fmt.Fprintf(bw, "Ks %s\n", defaultSpecular)
	fmt.Fprintf(bw, "Ns %s\n", defaultShine)
	fmt.Fprintf(bw, "map_Kd %s\n", textureName)
	return bw.Flush()
}
