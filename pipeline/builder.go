package pipeline

import (
	"github.com/robjenks/rjm-pipeline/internal/fsio"
	"github.com/robjenks/rjm-pipeline/objfmt"
	"github.com/robjenks/rjm-pipeline/rjmlog"
)

// PipelineBuilder assembles a Pipeline with a fluent With... chain,
// mirroring original_source/ModelPipeline/TransformPipelineBuilder.cpp.
// Build returns ErrMissingStage if input or output is unset, translating
// TransformPipeline's constructor-time fatal checks into a returned error
// — panicking on caller-supplied configuration is not idiomatic Go.
type PipelineBuilder struct {
	input      InputStage
	processing []ProcessingStage
	output     OutputStage
	fs         fsio.FileSystem
	log        rjmlog.Sink
	importer   objfmt.Importer
	maxWorkers int
}

// NewPipelineBuilder returns a builder with the default collaborators: an
// os-backed FileSystem, a discarding Sink, and a ScanningImporter.
func NewPipelineBuilder() *PipelineBuilder {
	return &PipelineBuilder{
		fs:       fsio.OS{},
		log:      rjmlog.Discard,
		importer: objfmt.NewScanningImporter(),
	}
}

// WithInput sets the InputStage.
func (b *PipelineBuilder) WithInput(s InputStage) *PipelineBuilder {
	b.input = s
	return b
}

// WithProcessing appends one ProcessingStage to the chain, run in the
// order added.
func (b *PipelineBuilder) WithProcessing(s ProcessingStage) *PipelineBuilder {
	b.processing = append(b.processing, s)
	return b
}

// WithOutput sets the OutputStage.
func (b *PipelineBuilder) WithOutput(s OutputStage) *PipelineBuilder {
	b.output = s
	return b
}

// WithFileSystem overrides the default os-backed FileSystem, the seam
// tests use to substitute fsio.MemFS.
func (b *PipelineBuilder) WithFileSystem(fs fsio.FileSystem) *PipelineBuilder {
	b.fs = fs
	return b
}

// WithLog overrides the default discarding Sink.
func (b *PipelineBuilder) WithLog(log rjmlog.Sink) *PipelineBuilder {
	b.log = log
	return b
}

// WithImporter overrides the default ScanningImporter.
func (b *PipelineBuilder) WithImporter(imp objfmt.Importer) *PipelineBuilder {
	b.importer = imp
	return b
}

// WithMaxWorkers sets the worker bound ExecuteParallel uses.
func (b *PipelineBuilder) WithMaxWorkers(n int) *PipelineBuilder {
	b.maxWorkers = n
	return b
}

// Build validates and returns the assembled Pipeline.
func (b *PipelineBuilder) Build() (*Pipeline, error) {
	if b.input == nil || b.output == nil {
		return nil, ErrMissingStage
	}
	return &Pipeline{
		input:      b.input,
		processing: b.processing,
		output:     b.output,
		fs:         b.fs,
		log:        b.log,
		importer:   b.importer,
		MaxWorkers: b.maxWorkers,
	}, nil
}
