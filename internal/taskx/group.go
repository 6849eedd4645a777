// Package taskx runs detached background tasks whose outcome is observable.
//
// A Group replaces implicit fire-and-forget goroutines: the caller returns
// immediately, while tests and shutdown code can Wait for every task
// started so far and completion hooks see each result.
package taskx

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/dmitrijs2005/qrcontacts/internal/logging"
)

// Result describes a finished task.
type Result struct {
	Name     string
	Err      error
	Duration time.Duration
}

type Group struct {
	log   logging.Logger
	wg    sync.WaitGroup
	mu    sync.Mutex
	hooks []func(Result)
}

func NewGroup(log logging.Logger) *Group {
	return &Group{log: log}
}

// OnComplete registers fn to be called after every task, from the task's
// goroutine.
func (g *Group) OnComplete(fn func(Result)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.hooks = append(g.hooks, fn)
}

// Go starts fn in the background. fn receives a context that keeps ctx's
// values but is never cancelled with it.
func (g *Group) Go(ctx context.Context, name string, fn func(ctx context.Context) error) {
	ctx = context.WithoutCancel(ctx)

	g.wg.Add(1)
	go func() {
		defer g.wg.Done()

		start := time.Now()
		err := fn(ctx)
		res := Result{Name: name, Err: err, Duration: time.Since(start)}

		if err != nil {
			g.log.Warn(ctx, "background task failed", "task", name, "err", err)
		} else {
			g.log.Debug(ctx, "background task done", "task", name, "took", res.Duration)
		}

		g.mu.Lock()
		hooks := slices.Clone(g.hooks)
		g.mu.Unlock()
		for _, h := range hooks {
			h(res)
		}
	}()
}

// Wait blocks until every task started before the call has finished.
func (g *Group) Wait() {
	g.wg.Wait()
}

// WaitContext is Wait bounded by ctx.
func (g *Group) WaitContext(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		g.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
