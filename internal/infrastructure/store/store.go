package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"pantry-tracker/internal/pkg/common"

	"go.uber.org/zap"
)

// Collection keys. One row per logical collection, the value is a
// JSON-serialized array. Every save replaces the whole blob, so the
// effective consistency model is "the last completed save wins".
const (
	KeyItems        = "items"
	KeyCategories   = "categories"
	KeyShoppingList = "shopping_list"
)

// Store is the key-value persistence collaborator backing the inventory,
// category and shopping-list collections.
type Store struct {
	db *sqlx.DB
}

// Open opens (or creates) the backing database and ensures the schema.
func Open(dsn string) (*Store, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}

	common.LogInfo("store opened", zap.String("dsn", dsn))

	return &Store{db: db}, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS collections(
  key        TEXT PRIMARY KEY,
  data       TEXT NOT NULL,
  updated_at TEXT DEFAULT CURRENT_TIMESTAMP
);
`
	_, err := db.Exec(schema)
	return err
}

// Load reads the collection stored under key into v. A missing key leaves
// v untouched and returns found=false without an error.
func (s *Store) Load(key string, v interface{}) (bool, error) {
	var data string
	if err := s.db.Get(&data, `SELECT data FROM collections WHERE key = ?`, key); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("load %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(data), v); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

// Save serializes v and replaces the collection stored under key.
func (s *Store) Save(key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	_, err = s.db.Exec(`
		INSERT INTO collections(key, data, updated_at) VALUES(?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET data = excluded.data, updated_at = CURRENT_TIMESTAMP
	`, key, string(data))
	if err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Clear removes the collection stored under key.
func (s *Store) Clear(key string) error {
	if _, err := s.db.Exec(`DELETE FROM collections WHERE key = ?`, key); err != nil {
		return fmt.Errorf("clear %s: %w", key, err)
	}
	return nil
}

// Close closes the backing database.
func (s *Store) Close() error {
	return s.db.Close()
}
