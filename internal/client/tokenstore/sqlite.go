package tokenstore

import (
	"context"
	"database/sql"
	"time"

	"github.com/fusion-condo/fusion/internal/client/repositories/metadata"
	"github.com/fusion-condo/fusion/internal/common"
	"github.com/fusion-condo/fusion/internal/dbx"
)

// SQLiteStore keeps the token in the local metadata table under
// common.TokenStorageKey, together with the time it was written.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db, now: time.Now}
}

func (s *SQLiteStore) Load(ctx context.Context) (string, error) {
	token, _, err := metadata.NewSQLiteRepository(s.db).Get(ctx, common.TokenStorageKey)
	if err != nil {
		return "", err
	}
	return token, nil
}

func (s *SQLiteStore) Save(ctx context.Context, token string) error {
	savedAt := s.now().UTC().Format(time.RFC3339)
	return dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, common.TokenStorageKey, token); err != nil {
			return err
		}
		return repo.Set(ctx, common.TokenSavedAtKey, savedAt)
	})
}

func (s *SQLiteStore) Remove(ctx context.Context) error {
	return dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Delete(ctx, common.TokenStorageKey); err != nil {
			return err
		}
		return repo.Delete(ctx, common.TokenSavedAtKey)
	})
}

// SavedAt reports when the current token was stored. ok is false when no
// token is stored.
func (s *SQLiteStore) SavedAt(ctx context.Context) (t time.Time, ok bool, err error) {
	raw, found, err := metadata.NewSQLiteRepository(s.db).Get(ctx, common.TokenSavedAtKey)
	if err != nil || !found {
		return time.Time{}, false, err
	}
	t, err = time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, false, err
	}
	return t, true, nil
}
