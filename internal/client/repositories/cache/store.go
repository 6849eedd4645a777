// Package cache persists one JSON document per record kind and user scope.
//
// The Store never surfaces decoding problems: a blob that cannot be read is
// logged and reported as absent so callers fall back to their defaults.
package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/qrcontacts/internal/logging"
)

// Kind names a cached record kind. The values double as storage keys.
type Kind string

const (
	KindContacts   Kind = "contacts"
	KindProfile    Kind = "profile"
	KindQRSettings Kind = "qrSettings"

	// KindSession is kept in the unscoped namespace.
	KindSession Kind = "session"
)

type Store struct {
	repo Repository
	log  logging.Logger
}

func NewStore(repo Repository, log logging.Logger) *Store {
	return &Store{repo: repo, log: log}
}

// Scoped returns a store whose keys live under scope (normally a user id).
func (s *Store) Scoped(scope string) *Store {
	return &Store{repo: s.repo.Scope(scope), log: s.log.With("scope", scope)}
}

// Write replaces the whole document stored for kind.
func (s *Store) Write(ctx context.Context, kind Kind, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", kind, err)
	}
	if err := s.repo.Set(ctx, string(kind), b); err != nil {
		return err
	}
	return nil
}

// Remove deletes the document stored for kind.
func (s *Store) Remove(ctx context.Context, kind Kind) error {
	return s.repo.Delete(ctx, string(kind))
}

// Clear drops every document in the store's scope.
func (s *Store) Clear(ctx context.Context) error {
	return s.repo.Clear(ctx)
}

// Read decodes the document stored for kind on top of a value built by def,
// so fields missing from the stored JSON keep their default values. The
// second result is false when nothing usable was stored. A nil def means the
// zero value of T.
func Read[T any](ctx context.Context, s *Store, kind Kind, def func() T) (T, bool) {
	if def == nil {
		def = func() T {
			var zero T
			return zero
		}
	}

	b, err := s.repo.Get(ctx, string(kind))
	if err != nil {
		s.log.Warn(ctx, "cache read failed", "kind", kind, "err", err)
		return def(), false
	}
	if b == nil {
		return def(), false
	}

	v := def()
	if err := json.Unmarshal(b, &v); err != nil {
		s.log.Warn(ctx, "cache entry corrupt, using defaults", "kind", kind, "err", err)
		return def(), false
	}
	return v, true
}
