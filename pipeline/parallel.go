package pipeline

import (
	"fmt"
	"sync"
)

// ExecuteParallel is an opt-in per-mesh parallel path: each mesh runs the
// ProcessingStage chain and its output write on its own goroutine, bounded
// to MaxWorkers concurrent meshes. Aggregate metadata is computed once,
// before any worker starts, exactly as the sequential Execute does.
// RunState's counters and error log are merged under a mutex, so
// concurrent mesh failures never race on the shared accumulator.
//
// If MaxWorkers <= 0, ExecuteParallel runs Execute's sequential path
// instead — parallelism is an explicit opt-in, never the default.
func (p *Pipeline) ExecuteParallel(source Source, destPath string) (RunState, error) {
	if p.MaxWorkers <= 0 {
		return p.Execute(source, destPath)
	}

	var rs RunState
	models, agg, err := p.produce(source)
	if err != nil {
		return rs, err
	}

	ctx := p.newContext(source.Path, agg)
	sem := make(chan struct{}, p.MaxWorkers)
	var mu sync.Mutex
	var wg sync.WaitGroup

	for i, m := range models {
		i, m := i, m
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()

			var local RunState
			out, err := p.runOne(ctx, m, i, &local)
			if err == nil {
				path := destPath
				if len(models) > 1 {
					path = indexedPath(destPath, i)
				}
				if err := p.output.EmitToFile(ctx, out, path); err != nil {
					local.recordFailure(stageName(p.output), i, fmt.Errorf("%w: %v", ErrIoFailure, err))
				} else {
					local.recordSuccess()
				}
			}

			mu.Lock()
			rs.Success += local.Success
			rs.Failure += local.Failure
			rs.Errors = append(rs.Errors, local.Errors...)
			mu.Unlock()
		}()
	}
	wg.Wait()
	return rs, nil
}
