package cache

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE cache (
  scope TEXT NOT NULL DEFAULT '',
  key   TEXT NOT NULL,
  value BLOB NOT NULL,
  PRIMARY KEY (scope, key)
);`

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(schema)
	require.NoError(t, err)
	return db
}

func TestSetAndGet_InsertThenGet(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "k1", []byte(`[1,2]`)))

	v, err := r.Get(ctx, "k1")
	require.NoError(t, err)
	require.Equal(t, []byte(`[1,2]`), v)
}

func TestGet_NotExists_ReturnsNilNil(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))

	v, err := r.Get(context.Background(), "absent")
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestSet_UpsertOverwritesValue(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "k", []byte("old")))
	require.NoError(t, r.Set(ctx, "k", []byte("new")))

	v, err := r.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, []byte("new"), v)
}

func TestScope_IsolatesKeys(t *testing.T) {
	root := NewSQLiteRepository(setupDB(t))
	alice := root.Scope("alice")
	bob := root.Scope("bob")
	ctx := context.Background()

	require.NoError(t, alice.Set(ctx, "contacts", []byte("a")))
	require.NoError(t, bob.Set(ctx, "contacts", []byte("b")))
	require.NoError(t, root.Set(ctx, "session", []byte("s")))

	v, err := alice.Get(ctx, "contacts")
	require.NoError(t, err)
	assert.Equal(t, []byte("a"), v)

	v, err = root.Get(ctx, "contacts")
	require.NoError(t, err)
	assert.Nil(t, v)

	m, err := bob.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string][]byte{"contacts": []byte("b")}, m)
}

func TestClear_OnlyAffectsOwnScope(t *testing.T) {
	root := NewSQLiteRepository(setupDB(t))
	alice := root.Scope("alice")
	ctx := context.Background()

	require.NoError(t, alice.Set(ctx, "a", []byte{1}))
	require.NoError(t, alice.Set(ctx, "b", []byte{2}))
	require.NoError(t, root.Set(ctx, "session", []byte{3}))
	require.NoError(t, alice.Clear(ctx))

	m, err := alice.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, m)

	v, err := root.Get(ctx, "session")
	require.NoError(t, err)
	assert.Equal(t, []byte{3}, v)
}

func TestDelete_RemovesKey_AndIsIdempotent(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "x", []byte{0x01}))
	require.NoError(t, r.Delete(ctx, "x"))

	v, err := r.Get(ctx, "x")
	require.NoError(t, err)
	require.Nil(t, v)

	require.NoError(t, r.Delete(ctx, "x"))
}

func TestRepository_DBErrorsWrapped(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db).Scope("u1")
	ctx := context.Background()
	require.NoError(t, db.Close())

	_, err := r.Get(ctx, "k")
	require.ErrorContains(t, err, "failed to get cache[u1/k]")

	err = r.Set(ctx, "k", []byte("v"))
	require.ErrorContains(t, err, "failed to set cache[u1/k]")

	err = r.Delete(ctx, "k")
	require.ErrorContains(t, err, "failed to delete cache[u1/k]")

	err = r.Clear(ctx)
	require.ErrorContains(t, err, "failed to clear cache[u1]")

	_, err = r.List(ctx)
	require.ErrorContains(t, err, "failed to list cache[u1]")
}
