package objfmt

// PostProcess is a bitmask of post-import operations an Importer may be
// asked to apply. Named in the style of original_source's
// CustomPostProcess comment ("Assimp post-processing constants end with
// aiProcess_Debone"), supplementing the pipeline distillation's silence on
// which importer flags exist.
type PostProcess uint32

const (
	Triangulate PostProcess = 1 << iota
	GenerateNormals
	CalcTangentSpace
	JoinIdenticalVertices
)

// Has reports whether p includes flag.
func (p PostProcess) Has(flag PostProcess) bool { return p&flag != 0 }
