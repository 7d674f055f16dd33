package tokenstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/branchadmin/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/branchadmin/internal/common"
	"github.com/dmitrijs2005/branchadmin/internal/dbx"
)

// SQLiteStore persists the token in the metadata table, so it survives
// restarts until logout or server rejection.
type SQLiteStore struct {
	db  *sql.DB
	key string
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db, key: common.TokenStorageKey}
}

func (s *SQLiteStore) repo(tx dbx.DBTX) metadata.Repository {
	return metadata.NewSQLiteRepository(tx)
}

func (s *SQLiteStore) Load(ctx context.Context) (string, error) {
	v, err := s.repo(s.db).Get(ctx, s.key)
	if err != nil {
		return "", fmt.Errorf("load token: %w", err)
	}
	return string(v), nil
}

func (s *SQLiteStore) Save(ctx context.Context, token string) error {
	if token == "" {
		return fmt.Errorf("%w: empty token", common.ErrValidation)
	}
	if err := s.repo(s.db).Set(ctx, s.key, []byte(token)); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context) error {
	if err := s.repo(s.db).Delete(ctx, s.key); err != nil {
		return fmt.Errorf("delete token: %w", err)
	}
	return nil
}

func (s *SQLiteStore) DeleteIf(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, nil
	}

	deleted := false
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repo(tx)
		current, err := repo.Get(ctx, s.key)
		if err != nil {
			return err
		}
		if string(current) != token {
			return nil
		}
		if err := repo.Delete(ctx, s.key); err != nil {
			return err
		}
		deleted = true
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("delete token: %w", err)
	}
	return deleted, nil
}
