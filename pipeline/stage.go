package pipeline

import (
	"github.com/robjenks/rjm-pipeline/internal/fsio"
	"github.com/robjenks/rjm-pipeline/model"
	"github.com/robjenks/rjm-pipeline/objfmt"
	"github.com/robjenks/rjm-pipeline/rjmlog"
)

// Context is the immutable run state a ProcessingStage sees for each
// ModelData it is handed: the aggregate metadata computed once per run,
// which lets multi-mesh models be centred and scaled as one object rather
// than each independently.
type Context struct {
	// AggregateMetadata holds the joint bounds of every mesh produced by
	// the run's InputStage; Pipeline populates it for single-mesh runs too,
	// where it equals that mesh's own bounds. When HasData() is false (the
	// zero value, or bounds with no extent), stages fall back to the
	// ModelData's own SizeProperties.
	AggregateMetadata model.SizeProperties

	// SourcePath is the path the InputStage read from, empty for
	// in-memory sources. Stages that read sibling files (.transform)
	// derive their path from this.
	SourcePath string

	FS       fsio.FileSystem
	Log      rjmlog.Sink
	Importer objfmt.Importer
}

// InputStage produces a list of ModelData from a source: a file path, or
// in-memory bytes when Source.Bytes is set.
type InputStage interface {
	Produce(ctx *Context, source Source) ([]*model.ModelData, error)
}

// Source is the union of "file path" and "in-memory bytes" an InputStage
// may be asked to read: a caller either names a file or hands over the
// bytes it already has in memory.
type Source struct {
	Path  string
	Bytes []byte
}

// OutputStage consumes one ModelData and produces a byte sequence,
// optionally writing it to a file.
type OutputStage interface {
	Emit(ctx *Context, m *model.ModelData) ([]byte, error)
	EmitToFile(ctx *Context, m *model.ModelData, path string) error
}

// ProcessingStage transforms one ModelData, returning it unchanged,
// mutated, or replaced.
type ProcessingStage interface {
	Process(ctx *Context, m *model.ModelData) (*model.ModelData, error)
}

// Name identifies a stage for RunState's StageError log and debug
// logging. Stages that want a more useful name than their Go type
// implement this; the pipeline falls back to a generic label otherwise.
type Name interface {
	StageName() string
}

func stageName(s any) string {
	if n, ok := s.(Name); ok {
		return n.StageName()
	}
	return "stage"
}
