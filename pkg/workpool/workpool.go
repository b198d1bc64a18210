// Package workpool runs batches of tasks under a fixed concurrency ceiling
// while keeping results aligned with their input positions.
package workpool

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Task is a unit of work executed by Run.
type Task[T any] func(ctx context.Context) (T, error)

// Result holds the outcome of one task. Err is per-task: a failing task never
// cancels its siblings.
type Result[T any] struct {
	Value T
	Err   error
}

// Run executes tasks with at most limit running concurrently and returns one
// Result per task, index-aligned with the input slice regardless of
// completion order. A limit below 1 is treated as 1.
func Run[T any](ctx context.Context, tasks []Task[T], limit int) []Result[T] {
	if limit < 1 {
		limit = 1
	}

	results := make([]Result[T], len(tasks))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, task := range tasks {
		i, task := i, task
		g.Go(func() error {
			// Errors are captured per slot so one failure does not
			// cancel the group.
			results[i].Value, results[i].Err = task(ctx)
			return nil
		})
	}

	// Always nil: task errors live in their slots.
	_ = g.Wait()

	return results
}

// Values unpacks results into values and the first error encountered, for
// callers that treat any task failure as fatal.
func Values[T any](results []Result[T]) ([]T, error) {
	values := make([]T, len(results))
	var firstErr error
	for i, r := range results {
		values[i] = r.Value
		if r.Err != nil && firstErr == nil {
			firstErr = r.Err
		}
	}
	return values, firstErr
}
