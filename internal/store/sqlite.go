package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/sandesh/prepquiz/internal/logger"
)

type sqliteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a Store backed by the app_state table.
func NewSQLiteStore(db *sql.DB) Store {
	return &sqliteStore{db: db}
}

func (s *sqliteStore) Get(ctx context.Context, key string, dst any) bool {
	log := logger.FromContext(ctx).WithPrefix("store")

	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM app_state WHERE key = ?`, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("key absent: %s", key)
		return false
	}
	if err != nil {
		log.Error("failed to read key %s: %v", key, err)
		return false
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		log.Warn("corrupt document under key %s, treating as absent: %v", key, err)
		return false
	}
	return true
}

func (s *sqliteStore) Put(ctx context.Context, key string, doc any) {
	log := logger.FromContext(ctx).WithPrefix("store")

	raw, err := json.Marshal(doc)
	if err != nil {
		log.Error("failed to marshal document for key %s: %v", key, err)
		return
	}
	_, err = s.db.ExecContext(ctx, `
INSERT INTO app_state (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
`, key, string(raw))
	if err != nil {
		log.Error("failed to write key %s: %v", key, err)
	}
}

func (s *sqliteStore) Delete(ctx context.Context, key string) {
	log := logger.FromContext(ctx).WithPrefix("store")

	if _, err := s.db.ExecContext(ctx, `DELETE FROM app_state WHERE key = ?`, key); err != nil {
		log.Error("failed to delete key %s: %v", key, err)
	}
}

func (s *sqliteStore) Clear(ctx context.Context) {
	for _, key := range Keys {
		s.Delete(ctx, key)
	}
}
