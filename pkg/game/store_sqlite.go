package game

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore 基于 SQLite 的快照存储
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLiteStore 打开（或创建）数据库，path 为空时使用内存库
func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	if path == "" {
		path = ":memory:"
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// 内存库每个连接各自独立，只保留一个连接
	db.SetMaxOpenConns(1)

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	const schema = `CREATE TABLE IF NOT EXISTS snapshots (
		key TEXT PRIMARY KEY,
		data BLOB NOT NULL,
		updated_at INTEGER NOT NULL
	)`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Load(key string) ([]byte, error) {
	var data []byte
	err := s.db.QueryRow(`SELECT data FROM snapshots WHERE key = ?`, key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", key, err)
	}
	return data, nil
}

func (s *SQLiteStore) Save(key string, data []byte) error {
	_, err := s.db.Exec(`INSERT INTO snapshots (key, data, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		key, data, time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) Delete(key string) error {
	if _, err := s.db.Exec(`DELETE FROM snapshots WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

// Close 关闭数据库连接
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
