package services

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/qrcontacts/internal/client/client"
	"github.com/dmitrijs2005/qrcontacts/internal/client/repositories/cache"
	"github.com/dmitrijs2005/qrcontacts/internal/logging"
	"github.com/dmitrijs2005/qrcontacts/internal/taskx"
)

// Session owns the record stores of one user context. An empty user id
// gives a cache-only session.
type Session struct {
	UserID   string
	Contacts ContactService
	Profile  ProfileService
	Settings SettingsService

	tasks *taskx.Group
}

// NewSession scopes store to userID and builds the three record stores.
// A nil remote is treated as an unconfigured one.
func NewSession(userID string, store *cache.Store, remote client.Client, tasks *taskx.Group, log logging.Logger) *Session {
	if remote == nil {
		remote = client.OfflineClient{}
	}
	deps := Deps{
		UserID: userID,
		Store:  store.Scoped(userID),
		Remote: remote,
		Tasks:  tasks,
		Log:    log.With("user", userID),
	}
	return &Session{
		UserID:   userID,
		Contacts: NewContactService(deps),
		Profile:  NewProfileService(deps),
		Settings: NewSettingsService(deps),
		tasks:    tasks,
	}
}

// Load hydrates every record kind and starts their reconciliation.
func (s *Session) Load(ctx context.Context) {
	s.Contacts.Load(ctx)
	s.Profile.Load(ctx)
	s.Settings.Load(ctx)
}

// Settled blocks until every record kind has finished its initial
// reconciliation, or ctx is done.
func (s *Session) Settled(ctx context.Context) error {
	for _, ready := range []<-chan struct{}{s.Contacts.Ready(), s.Profile.Ready(), s.Settings.Ready()} {
		select {
		case <-ready:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// Sync pulls every record kind from the remote now. Kinds that fail keep
// their local state; the failures are joined in the result.
func (s *Session) Sync(ctx context.Context) error {
	if s.UserID == "" {
		return ErrSignedOut
	}
	return errors.Join(
		s.Contacts.Sync(ctx),
		s.Profile.Sync(ctx),
		s.Settings.Sync(ctx),
	)
}

// Wait blocks until every background task scheduled so far has finished.
func (s *Session) Wait() {
	s.tasks.Wait()
}
