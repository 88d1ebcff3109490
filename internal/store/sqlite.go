package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/opeyemi/lenddesk/internal/domain"
)

const schemaVersion = 1

const createUsersTable = `
CREATE TABLE IF NOT EXISTS users (
  id TEXT PRIMARY KEY,
  record TEXT NOT NULL
);
`

// SQLiteStore keeps full user records in a local SQLite database, one row per
// id with the record stored as a JSON document. The connection is opened
// lazily on first use and reused until ClearAll or Close.
type SQLiteStore struct {
	path string

	mu sync.Mutex
	db *sql.DB
}

// NewSQLiteStore returns a store for the database file at path. The file is
// not touched until the first operation.
func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

func (s *SQLiteStore) getDB(ctx context.Context) (*sql.DB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db != nil {
		return s.db, nil
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if _, err := db.ExecContext(ctx, createUsersTable); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create users table: %w", err)
	}
	if _, err := db.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", schemaVersion)); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set schema version: %w", err)
	}

	s.db = db
	return db, nil
}

// SaveUser upserts the record keyed by its id.
func (s *SQLiteStore) SaveUser(ctx context.Context, user domain.User) error {
	if user.ID == "" {
		return errors.New("user id is required")
	}

	db, err := s.getDB(ctx)
	if err != nil {
		return err
	}

	record, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user %s: %w", user.ID, err)
	}

	query := `INSERT INTO users (id, record) VALUES (?, ?)
		ON CONFLICT(id) DO UPDATE SET record = excluded.record`
	if _, err := db.ExecContext(ctx, query, user.ID, string(record)); err != nil {
		return fmt.Errorf("upsert user %s: %w", user.ID, err)
	}
	return nil
}

// GetUser returns the stored record for id, or nil when absent.
func (s *SQLiteStore) GetUser(ctx context.Context, id string) (*domain.User, error) {
	db, err := s.getDB(ctx)
	if err != nil {
		return nil, err
	}

	var record string
	err = db.QueryRowContext(ctx, `SELECT record FROM users WHERE id = ?`, id).Scan(&record)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select user %s: %w", id, err)
	}

	var user domain.User
	if err := json.Unmarshal([]byte(record), &user); err != nil {
		return nil, fmt.Errorf("decode user %s: %w", id, err)
	}
	return &user, nil
}

// GetAllUsers returns every stored record.
func (s *SQLiteStore) GetAllUsers(ctx context.Context) ([]domain.User, error) {
	db, err := s.getDB(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `SELECT record FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("select users: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var record string
		if err := rows.Scan(&record); err != nil {
			return nil, err
		}
		var user domain.User
		if err := json.Unmarshal([]byte(record), &user); err != nil {
			return nil, fmt.Errorf("decode stored user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return users, nil
}

// ClearAll drops every stored record and closes the connection so the next
// operation starts from a fresh handle.
func (s *SQLiteStore) ClearAll(ctx context.Context) error {
	db, err := s.getDB(ctx)
	if err != nil {
		return err
	}
	if _, err := db.ExecContext(ctx, `DELETE FROM users`); err != nil {
		return fmt.Errorf("clear users: %w", err)
	}
	return s.Close()
}

// Ping verifies the database is reachable, opening it if necessary.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	db, err := s.getDB(ctx)
	if err != nil {
		return err
	}
	return db.PingContext(ctx)
}

// Close releases the underlying connection, if open.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}
