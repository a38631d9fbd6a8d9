package search

import (
	"context"
	"fmt"
	"sync"
)

// Outcome is the settled result of one branch: a value or an error.
type Outcome[T any] struct {
	Value T
	Err   error
}

// Ok reports whether the branch succeeded.
func (o Outcome[T]) Ok() bool {
	return o.Err == nil
}

// Settle runs both functions concurrently and waits for both to finish.
// A failure (or panic) in one branch never cancels or hides the other.
func Settle[A, B any](ctx context.Context, fa func(context.Context) (A, error), fb func(context.Context) (B, error)) (Outcome[A], Outcome[B]) {
	var (
		wg sync.WaitGroup
		oa Outcome[A]
		ob Outcome[B]
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		oa = capture(ctx, fa)
	}()
	go func() {
		defer wg.Done()
		ob = capture(ctx, fb)
	}()
	wg.Wait()

	return oa, ob
}

func capture[T any](ctx context.Context, fn func(context.Context) (T, error)) (out Outcome[T]) {
	defer func() {
		if r := recover(); r != nil {
			out = Outcome[T]{Err: fmt.Errorf("branch panicked: %v", r)}
		}
	}()
	v, err := fn(ctx)
	return Outcome[T]{Value: v, Err: err}
}
