package store

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

// Bucket names
var (
	bucketSession = []byte("session")
	bucketPrefs   = []byte("prefs")
)

// Keys inside the session bucket
var (
	keyToken = []byte("token")
)

// StateStore persists client-side state that must survive restarts: the
// session token (a single opaque string, no multi-account support) and
// last-used UI preferences. Backed by a single-file BoltDB.
type StateStore struct {
	db *bolt.DB
}

// Open opens (or creates) the state database at path. An empty path yields a
// memory-only store that forgets everything on close.
func Open(path string) (*StateStore, error) {
	if path == "" {
		return &StateStore{}, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open state db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketSession, bucketPrefs} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &StateStore{db: db}, nil
}

func (s *StateStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Token returns the persisted session token, or "" if none is stored
func (s *StateStore) Token() string {
	if s.db == nil {
		return ""
	}
	var token string
	s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(bucketSession).Get(keyToken); v != nil {
			token = string(v)
		}
		return nil
	})
	return token
}

// SaveToken persists the session token, replacing any previous one
func (s *StateStore) SaveToken(token string) error {
	if s.db == nil {
		return nil
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketSession).Put(keyToken, []byte(token))
	})
}

// ClearToken removes the persisted session token
func (s *StateStore) ClearToken() error {
	if s.db == nil {
		return nil
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketSession).Delete(keyToken)
	})
}

// Pref returns a stored UI preference, or "" if unset
func (s *StateStore) Pref(key string) string {
	if s.db == nil {
		return ""
	}
	var value string
	s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(bucketPrefs).Get([]byte(key)); v != nil {
			value = string(v)
		}
		return nil
	})
	return value
}

// SetPref stores a UI preference
func (s *StateStore) SetPref(key, value string) error {
	if s.db == nil {
		return nil
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketPrefs).Put([]byte(key), []byte(value))
	})
}
