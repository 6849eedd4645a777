// Package services holds the client's record stores: contacts, profile and
// QR settings, each kept in memory, written through to the local cache and
// mirrored to the remote store on a best-effort basis. It also contains the
// local authentication service that decides which user's records are
// loaded.
//
// Every record kind follows the same life cycle:
//
//	Load     hydrate from the cache (defaults when absent or corrupt), then,
//	         for a signed-in user, fetch the remote snapshot in the
//	         background. A successful fetch replaces memory and cache.
//	Mutate   apply in memory, write the full value to the cache, then push
//	         the change to the remote in the background. The remote result
//	         is only logged.
//
// Ready is closed once the initial reconciliation has settled, whether it
// succeeded or not.
package services

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/qrcontacts/internal/client/repositories/cache"
	"github.com/dmitrijs2005/qrcontacts/internal/logging"
	"github.com/dmitrijs2005/qrcontacts/internal/taskx"
)

// record is the state of one record kind for one user context.
type record[T any] struct {
	kind   cache.Kind
	userID string
	store  *cache.Store
	tasks  *taskx.Group
	log    logging.Logger

	def   func() T
	clone func(T) T
	fetch func(ctx context.Context, userID string) (T, error)

	mu       sync.Mutex
	value    T
	lastPush chan struct{}

	loadOnce  sync.Once
	ready     chan struct{}
	readyOnce sync.Once
}

func newRecord[T any](
	kind cache.Kind,
	deps Deps,
	def func() T,
	clone func(T) T,
	fetch func(ctx context.Context, userID string) (T, error),
) *record[T] {
	return &record[T]{
		kind:   kind,
		userID: deps.UserID,
		store:  deps.Store,
		tasks:  deps.Tasks,
		log:    deps.Log.With("kind", string(kind)),
		def:    def,
		clone:  clone,
		fetch:  fetch,
		value:  def(),
		ready:  make(chan struct{}),
	}
}

// Load hydrates from the cache and starts the remote reconciliation.
// Only the first call has an effect.
func (r *record[T]) Load(ctx context.Context) {
	r.loadOnce.Do(func() {
		v, _ := cache.Read(ctx, r.store, r.kind, r.def)

		r.mu.Lock()
		r.value = v
		r.mu.Unlock()

		if r.userID == "" {
			r.markReady()
			return
		}

		r.tasks.Go(ctx, "reconcile "+string(r.kind), func(ctx context.Context) error {
			defer r.markReady()
			return r.reconcile(ctx)
		})
	})
}

// reconcile fetches the remote snapshot and, on success, replaces the local
// state with it.
func (r *record[T]) reconcile(ctx context.Context) error {
	if r.userID == "" {
		return nil
	}

	// Remote writes already queued must land before the snapshot is taken,
	// otherwise the snapshot would drop them.
	r.mu.Lock()
	pending := r.lastPush
	r.mu.Unlock()
	if pending != nil {
		select {
		case <-pending:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	v, err := r.fetch(ctx, r.userID)
	if err != nil {
		r.log.Warn(ctx, "remote fetch failed, keeping local data", "err", err)
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.lastPush != pending {
		r.log.Debug(ctx, "local changes queued during fetch, snapshot skipped")
		return nil
	}

	r.value = v
	r.persist(ctx)
	r.log.Debug(ctx, "remote snapshot applied")
	return nil
}

func (r *record[T]) Ready() <-chan struct{} {
	return r.ready
}

func (r *record[T]) markReady() {
	r.readyOnce.Do(func() { close(r.ready) })
}

// Get returns a copy of the current value.
func (r *record[T]) Get() T {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.clone(r.value)
}

// remoteOp is a remote write scheduled after a local mutation.
type remoteOp struct {
	name string
	run  func(ctx context.Context, userID string) error
}

// mutate applies fn to a copy of the current value, stores the result and
// schedules the remote ops fn returned. fn's error aborts the mutation.
func (r *record[T]) mutate(ctx context.Context, fn func(T) (T, []remoteOp, error)) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	next, ops, err := fn(r.clone(r.value))
	if err != nil {
		var zero T
		return zero, err
	}
	r.value = next
	r.persist(ctx)

	for _, op := range ops {
		r.schedule(ctx, op)
	}
	return r.clone(next), nil
}

// persist writes the current value to the cache. Callers hold r.mu.
func (r *record[T]) persist(ctx context.Context) {
	if err := r.store.Write(ctx, r.kind, r.value); err != nil {
		r.log.Error(ctx, "cache write failed", "err", err)
	}
}

// schedule runs op in the background after every op scheduled before it,
// so the remote sees one kind's changes in order. Callers hold r.mu.
func (r *record[T]) schedule(ctx context.Context, op remoteOp) {
	if r.userID == "" {
		return
	}

	prev := r.lastPush
	done := make(chan struct{})
	r.lastPush = done

	userID := r.userID
	r.tasks.Go(ctx, op.name, func(ctx context.Context) error {
		defer close(done)
		if prev != nil {
			<-prev
		}
		return op.run(ctx, userID)
	})
}
