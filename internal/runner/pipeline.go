package runner

import (
	"context"
	"log"
	"sync"
)

// Failable is implemented by pipeline items that can be marked failed.
type Failable interface {
	Fail(err error)
}

// Step runs one phase of an item's processing, mutating the item in place.
// Implementations should be safe to run concurrently with other steps in the
// same stage operating on the same item.
type Step[T Failable] func(ctx context.Context, item T) error

// Stage groups a set of steps that are safe to execute in parallel for a
// single item. All steps in a stage are started together, and the pipeline
// waits for them to complete before moving to the next stage.
type Stage[T Failable] struct {
	steps    []Step[T]
	optional bool
}

// NewStage constructs a required stage. An error from any of its steps marks
// the item failed and abandons its remaining stages.
func NewStage[T Failable](steps ...Step[T]) Stage[T] {
	return Stage[T]{steps: steps}
}

// NewOptionalStage constructs a stage of side-effect steps whose errors are
// logged instead of failing the item.
func NewOptionalStage[T Failable](steps ...Step[T]) Stage[T] {
	return Stage[T]{steps: steps, optional: true}
}

// Pipeline coordinates the execution of a sequence of stages for items
// flowing through a channel. Stages run sequentially per item; steps within
// a stage run in parallel.
type Pipeline[T Failable] struct {
	stages []Stage[T]
}

// NewPipeline constructs a Pipeline from the provided stages. Stages will be
// applied to each item in order.
func NewPipeline[T Failable](stages ...Stage[T]) *Pipeline[T] {
	return &Pipeline[T]{stages: stages}
}

// Process consumes items from the input channel, applies the stages to each,
// and emits the item on the returned channel once its stages have finished
// or failed. After the context is canceled, remaining items pass through
// untouched so the feeder can drain. The output channel is closed when the
// input channel is closed.
func (p *Pipeline[T]) Process(ctx context.Context, in <-chan T) <-chan T {
	out := make(chan T)
	go func() {
		defer close(out)
		for item := range in {
			if ctx.Err() == nil {
				p.apply(ctx, item)
			}
			out <- item
		}
	}()
	return out
}

func (p *Pipeline[T]) apply(ctx context.Context, item T) {
	for _, stage := range p.stages {
		var (
			wg     sync.WaitGroup
			mu     sync.Mutex
			failed error
		)
		for _, step := range stage.steps {
			wg.Add(1)
			go func(step Step[T]) {
				defer wg.Done()
				err := step(ctx, item)
				if err == nil {
					return
				}
				if stage.optional {
					log.Printf("Step failed: %v", err)
					return
				}
				mu.Lock()
				if failed == nil {
					failed = err
				}
				mu.Unlock()
			}(step)
		}
		wg.Wait() // stage barrier: all steps finished before the next stage
		if failed != nil {
			item.Fail(failed)
			return
		}
	}
}
