package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	bolt "go.etcd.io/bbolt"

	"github.com/opeyemi/lenddesk/internal/domain"
)

var recordsBucket = []byte("records")

// BoltStore is the flat key-value fallback. User records live under keys
// derived from their id; other concerns (session state) share the same
// bucket under their own plain keys, so user-scoped clears must not touch
// them. The file is opened lazily and reused.
type BoltStore struct {
	path string

	mu sync.Mutex
	db *bolt.DB
}

// NewBoltStore returns a store for the key-value file at path.
func NewBoltStore(path string) *BoltStore {
	return &BoltStore{path: path}
}

func (s *BoltStore) getDB() (*bolt.DB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db != nil {
		return s.db, nil
	}

	db, err := bolt.Open(s.path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("open key-value store: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(recordsBucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create records bucket: %w", err)
	}

	s.db = db
	return db, nil
}

// SaveUser serializes the record under its derived key.
func (s *BoltStore) SaveUser(_ context.Context, user domain.User) error {
	if user.ID == "" {
		return errors.New("user id is required")
	}

	db, err := s.getDB()
	if err != nil {
		return err
	}

	record, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user %s: %w", user.ID, err)
	}

	return db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(recordsBucket).Put([]byte(UserKey(user.ID)), record)
	})
}

// GetUser returns the record stored under the derived key, or nil.
func (s *BoltStore) GetUser(_ context.Context, id string) (*domain.User, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, err
	}

	var user *domain.User
	err = db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(recordsBucket).Get([]byte(UserKey(id)))
		if raw == nil {
			return nil
		}
		var u domain.User
		if err := json.Unmarshal(raw, &u); err != nil {
			return fmt.Errorf("decode user %s: %w", id, err)
		}
		user = &u
		return nil
	})
	return user, err
}

// GetAllUsers enumerates every record stored under the user key prefix.
func (s *BoltStore) GetAllUsers(_ context.Context) ([]domain.User, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, err
	}

	var users []domain.User
	err = db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(recordsBucket).Cursor()
		prefix := []byte(userKeyPrefix)
		for k, v := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, v = c.Next() {
			var u domain.User
			if err := json.Unmarshal(v, &u); err != nil {
				return fmt.Errorf("decode stored user %s: %w", k, err)
			}
			users = append(users, u)
		}
		return nil
	})
	return users, err
}

// ClearAll removes only user-prefixed keys; session entries written by other
// concerns survive. The connection is closed afterwards.
func (s *BoltStore) ClearAll(_ context.Context) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}

	err = db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(recordsBucket)
		c := b.Cursor()
		prefix := []byte(userKeyPrefix)
		var keys [][]byte
		for k, _ := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, _ = c.Next() {
			keys = append(keys, append([]byte(nil), k...))
		}
		for _, k := range keys {
			if err := b.Delete(k); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("clear user records: %w", err)
	}
	return s.Close()
}

// PutValue stores an arbitrary value under a plain key, for callers outside
// the user-record namespace (e.g. session flags).
func (s *BoltStore) PutValue(key, value string) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}
	return db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(recordsBucket).Put([]byte(key), []byte(value))
	})
}

// GetValue returns the value stored under a plain key, or "" when absent.
func (s *BoltStore) GetValue(key string) (string, error) {
	db, err := s.getDB()
	if err != nil {
		return "", err
	}

	var value string
	err = db.View(func(tx *bolt.Tx) error {
		if raw := tx.Bucket(recordsBucket).Get([]byte(key)); raw != nil {
			value = string(raw)
		}
		return nil
	})
	return value, err
}

// Close releases the underlying file handle, if open.
func (s *BoltStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}
