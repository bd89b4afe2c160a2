// Package fetch runs independent read queries concurrently and collects
// their results under string names, so page handlers can assemble data
// for a view in a single call.
package fetch

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Op is a single named unit of work, typically a repository read.
type Op func(ctx context.Context) (any, error)

// Results holds the values produced by Parallel, keyed by operation name.
type Results map[string]any

// Parallel runs every operation on its own goroutine and waits for all
// of them. The first failure cancels the remaining operations and is
// returned wrapped with the operation's name; in that case the results
// map is nil.
func Parallel(ctx context.Context, ops map[string]Op) (Results, error) {
	g, ctx := errgroup.WithContext(ctx)

	var mu sync.Mutex
	results := make(Results, len(ops))

	for name, op := range ops {
		name, op := name, op
		g.Go(func() error {
			value, err := op(ctx)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			mu.Lock()
			results[name] = value
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Get pulls a named result and asserts its type, returning the zero
// value when the name is missing or holds a different type.
func Get[T any](r Results, name string) T {
	value, ok := r[name].(T)
	if !ok {
		var zero T
		return zero
	}
	return value
}
