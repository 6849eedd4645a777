package services

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/qrcontacts/internal/client/client"
	"github.com/dmitrijs2005/qrcontacts/internal/client/models"
	"github.com/dmitrijs2005/qrcontacts/internal/client/repositories/cache"
	"github.com/dmitrijs2005/qrcontacts/internal/logging"
	"github.com/dmitrijs2005/qrcontacts/internal/taskx"
)

// fakeRemote is an in-memory client.Client that records every call.
type fakeRemote struct {
	mu sync.Mutex

	contacts []models.Contact
	profile  *models.Profile
	settings *models.QRSettings

	fetchErr error
	writeErr error

	// insertDelay slows InsertContact down to keep the write in flight.
	insertDelay time.Duration

	calls []string
}

var _ client.Client = (*fakeRemote)(nil)

func (f *fakeRemote) record(call string) {
	f.calls = append(f.calls, call)
}

func (f *fakeRemote) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeRemote) Close() error { return nil }

func (f *fakeRemote) Ping(context.Context) error { return nil }

func (f *fakeRemote) FetchContacts(_ context.Context, userID string) ([]models.Contact, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("fetch contacts " + userID)
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return cloneContacts(f.contacts), nil
}

func (f *fakeRemote) InsertContact(_ context.Context, _ string, c models.Contact) error {
	time.Sleep(f.insertDelay)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("insert " + c.ID)
	if f.writeErr != nil {
		return f.writeErr
	}
	f.contacts = append([]models.Contact{c}, f.contacts...)
	return nil
}

func (f *fakeRemote) UpdateContact(_ context.Context, _ string, c models.Contact) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("update " + c.ID)
	return f.writeErr
}

func (f *fakeRemote) DeleteContact(_ context.Context, _ string, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("delete " + id)
	return f.writeErr
}

func (f *fakeRemote) FetchProfile(_ context.Context, userID string) (models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("fetch profile " + userID)
	if f.fetchErr != nil {
		return models.Profile{}, f.fetchErr
	}
	if f.profile == nil {
		return models.Profile{}, client.ErrNotFound
	}
	return f.profile.Clone(), nil
}

func (f *fakeRemote) UpsertProfile(_ context.Context, _ string, p models.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("upsert profile " + p.Name)
	if f.writeErr != nil {
		return f.writeErr
	}
	p = p.Clone()
	f.profile = &p
	return nil
}

func (f *fakeRemote) FetchSettings(_ context.Context, userID string) (models.QRSettings, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("fetch settings " + userID)
	if f.fetchErr != nil {
		return models.QRSettings{}, f.fetchErr
	}
	if f.settings == nil {
		return models.QRSettings{}, client.ErrNotFound
	}
	return *f.settings, nil
}

func (f *fakeRemote) UpsertSettings(_ context.Context, _ string, s models.QRSettings) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record(fmt.Sprintf("upsert settings %d", s.QRSize))
	if f.writeErr != nil {
		return f.writeErr
	}
	f.settings = &s
	return nil
}

var baseTime = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

func newStore(t *testing.T) *cache.Store {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return cache.NewStore(cache.NewSQLiteRepository(db), logging.Discard())
}

// newTestSession builds a session with a deterministic clock and id source.
func newTestSession(t *testing.T, store *cache.Store, userID string, remote client.Client) *Session {
	t.Helper()
	s := NewSession(userID, store, remote, taskx.NewGroup(logging.Discard()), logging.Discard())

	cs := s.Contacts.(*contactService)
	n := 0
	cs.newID = func() (string, error) {
		n++
		return fmt.Sprintf("c%d", n), nil
	}
	cs.now = func() time.Time { return baseTime.Add(time.Duration(n) * time.Minute) }
	return s
}

func contact(id, name string) models.Contact {
	return models.Contact{ID: id, Name: name, Date: baseTime}
}

func ids(cs []models.Contact) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.ID
	}
	return out
}

func cachedContacts(t *testing.T, store *cache.Store, userID string) []models.Contact {
	t.Helper()
	got, _ := cache.Read(context.Background(), store.Scoped(userID), cache.KindContacts, func() []models.Contact { return []models.Contact{} })
	return got
}

func settle(t *testing.T, s *Session) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, s.Settled(ctx))
	s.Wait()
}
