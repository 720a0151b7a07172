// Package pipeline implements the Pipeline/PipelineBuilder engine: an
// InputStage produces a list of ModelData, the pipeline computes aggregate
// run metadata, each mesh runs through the configured ProcessingStage
// chain, and the OutputStage writes the result. See errors.go for the
// error taxonomy and stage.go for the three polymorphic stage contracts.
package pipeline

import (
	"fmt"

	"github.com/robjenks/rjm-pipeline/internal/fsio"
	"github.com/robjenks/rjm-pipeline/model"
	"github.com/robjenks/rjm-pipeline/objfmt"
	"github.com/robjenks/rjm-pipeline/rjmlog"
)

// Pipeline is an assembled, ready-to-run conversion: one InputStage, an
// ordered chain of ProcessingStages, and one OutputStage.
type Pipeline struct {
	input      InputStage
	processing []ProcessingStage
	output     OutputStage

	fs       fsio.FileSystem
	log      rjmlog.Sink
	importer objfmt.Importer

	// MaxWorkers gates ExecuteParallel's per-mesh worker pool. Zero or
	// negative means "run Execute's sequential path instead" — see
	// ExecuteParallel.
	MaxWorkers int
}

func (p *Pipeline) newContext(sourcePath string, agg model.SizeProperties) *Context {
	return &Context{
		AggregateMetadata: agg,
		SourcePath:        sourcePath,
		FS:                p.fs,
		Log:               p.log,
		Importer:          p.importer,
	}
}

// Execute runs source through the full pipeline and writes one output
// file per successfully processed mesh to destPath (for a single mesh) or
// destPath with ".<index>" appended (for multiple meshes), since an
// OutputStage encodes exactly one mesh at a time. It returns the
// accumulated RunState; a non-nil error is only
// returned for failures that abort the entire run (missing stages, the
// InputStage itself failing, or NoModels) rather than per-mesh failures,
// which are recorded in RunState and do not stop the run.
func (p *Pipeline) Execute(source Source, destPath string) (RunState, error) {
	var rs RunState
	models, agg, err := p.produce(source)
	if err != nil {
		return rs, err
	}

	ctx := p.newContext(source.Path, agg)
	for i, m := range models {
		out, err := p.runOne(ctx, m, i, &rs)
		if err != nil {
			continue
		}
		path := destPath
		if len(models) > 1 {
			path = indexedPath(destPath, i)
		}
		if ctx.Log != nil && p.fs != nil {
			if abs, absErr := p.fs.Abs(path); absErr == nil {
				ctx.Log.Info("writing mesh %d to %s", i, abs)
			}
		}
		if err := p.output.EmitToFile(ctx, out, path); err != nil {
			rs.recordFailure(stageName(p.output), i, fmt.Errorf("%w: %v", ErrIoFailure, err))
			continue
		}
		rs.recordSuccess()
	}
	return rs, nil
}

// ExecuteInMemory processes only the first mesh InputStage produces and
// returns the OutputStage's encoded bytes directly — a deliberate
// one-mesh limitation, since there is no file system to fan multi-mesh
// output across when the caller wants bytes back directly.
func (p *Pipeline) ExecuteInMemory(source Source) ([]byte, error) {
	models, agg, err := p.produce(source)
	if err != nil {
		return nil, err
	}
	var rs RunState
	ctx := p.newContext(source.Path, agg)
	out, err := p.runOne(ctx, models[0], 0, &rs)
	if err != nil {
		return nil, err
	}
	return p.output.Emit(ctx, out)
}

// produce runs the InputStage and computes aggregate metadata, failing
// ErrMissingStage / ErrNoModels for run-aborting conditions.
func (p *Pipeline) produce(source Source) ([]*model.ModelData, model.SizeProperties, error) {
	if p.input == nil || p.output == nil {
		return nil, model.SizeProperties{}, ErrMissingStage
	}
	ctx := p.newContext(source.Path, model.SizeProperties{})
	models, err := p.input.Produce(ctx, source)
	if err != nil {
		return nil, model.SizeProperties{}, fmt.Errorf("%w: %w", ErrIoFailure, err)
	}
	if len(models) == 0 {
		return nil, model.SizeProperties{}, ErrNoModels
	}
	// recomputeChildren=false: each model's own (already-computed) bounds
	// are trusted rather than re-walking every vertex a second time. For a
	// single-mesh run this reduces to exactly that mesh's own bounds, so
	// ProcessingStages that fall back to "the model's own centre" see the
	// same value whether or not they consult aggregate metadata.
	agg := model.FromModels(models, false)
	return models, agg, nil
}

// runOne runs m through every ProcessingStage in order, recording a
// failure on rs and stopping the chain at the first error. The returned
// error is non-nil exactly when rs recorded a failure for this mesh.
// runOne itself never records a success: the caller does that only once
// the OutputStage has also written the result, so a mesh that processes
// cleanly but fails to write is counted as a failure, not both. A
// panicking stage is recovered here rather than left to unwind past the
// per-mesh loop in Execute/ExecuteParallel, so one malformed mesh can
// never take down a run that is otherwise making progress on its
// siblings.
func (p *Pipeline) runOne(ctx *Context, m *model.ModelData, index int, rs *RunState) (_ *model.ModelData, err error) {
	name := "pipeline"
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: stage %s panicked: %v", ErrIoFailure, name, r)
			rs.recordFailure(name, index, err)
		}
	}()

	cur := m
	for _, stage := range p.processing {
		name = stageName(stage)
		next, err := stage.Process(ctx, cur)
		if err != nil {
			rs.recordFailure(name, index, err)
			return nil, err
		}
		cur = next
	}
	return cur, nil
}

// indexedPath appends ".<index>" to path (e.g. "out.rjm" -> "out.rjm.0"),
// matching the original driver's path+"."+i convention rather than
// inserting the index before path's own extension.
func indexedPath(path string, index int) string {
	return fmt.Sprintf("%s.%d", path, index)
}
