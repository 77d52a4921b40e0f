package tokenstore

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/fusion-condo/fusion/internal/client/localdb"
	"github.com/fusion-condo/fusion/internal/common"
	"github.com/stretchr/testify/require"
)

func newSQLiteStore(t *testing.T) (*SQLiteStore, *sql.DB) {
	t.Helper()
	db, err := localdb.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewSQLiteStore(db), db
}

func TestStores_RoundTrip(t *testing.T) {
	sqliteStore, _ := newSQLiteStore(t)

	stores := map[string]Store{
		"memory": NewMemoryStore(),
		"sqlite": sqliteStore,
	}

	for name, s := range stores {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			got, err := s.Load(ctx)
			require.NoError(t, err)
			require.Empty(t, got, "fresh store must be empty")

			require.NoError(t, s.Save(ctx, "abc"))
			got, err = s.Load(ctx)
			require.NoError(t, err)
			require.Equal(t, "abc", got)

			require.NoError(t, s.Save(ctx, "def"))
			got, err = s.Load(ctx)
			require.NoError(t, err)
			require.Equal(t, "def", got)

			require.NoError(t, s.Remove(ctx))
			got, err = s.Load(ctx)
			require.NoError(t, err)
			require.Empty(t, got)

			require.NoError(t, s.Remove(ctx), "removing twice is fine")
		})
	}
}

func TestSQLiteStore_UsesFixedKey(t *testing.T) {
	s, db := newSQLiteStore(t)
	require.NoError(t, s.Save(context.Background(), "abc"))

	var v string
	require.NoError(t, db.QueryRow(`SELECT value FROM metadata WHERE key = ?`, common.TokenStorageKey).Scan(&v))
	require.Equal(t, "abc", v)
}

func TestSQLiteStore_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.db")

	db, err := localdb.InitDatabase(ctx, path)
	require.NoError(t, err)
	require.NoError(t, NewSQLiteStore(db).Save(ctx, "persisted"))
	require.NoError(t, db.Close())

	db, err = localdb.InitDatabase(ctx, path)
	require.NoError(t, err)
	defer db.Close()

	got, err := NewSQLiteStore(db).Load(ctx)
	require.NoError(t, err)
	require.Equal(t, "persisted", got)
}

func TestSQLiteStore_SavedAt(t *testing.T) {
	s, _ := newSQLiteStore(t)
	ctx := context.Background()
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	_, ok, err := s.SavedAt(ctx)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, s.Save(ctx, "abc"))
	got, ok, err := s.SavedAt(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.True(t, fixed.Equal(got))

	require.NoError(t, s.Remove(ctx))
	_, ok, err = s.SavedAt(ctx)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestSQLiteStore_ClosedDB(t *testing.T) {
	s, db := newSQLiteStore(t)
	require.NoError(t, db.Close())

	_, err := s.Load(context.Background())
	require.Error(t, err)
	require.Error(t, s.Save(context.Background(), "x"))
}
