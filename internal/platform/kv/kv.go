// Package kv is a thin bbolt wrapper for small local state the service must
// keep across restarts. Only one bucket exists today: the learned verb
// dictionary.
package kv

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

var bucketLearnedVerbs = []byte("learned_verbs")

// Store owns a single bbolt database file.
type Store struct {
	db   *bolt.DB
	path string
}

// Open opens (or creates) the database at path, creating parent directories
// as needed. The file is locked for the lifetime of the Store.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("kv: empty path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("kv: mkdir %s: %w", filepath.Dir(path), err)
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("kv: open %s: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketLearnedVerbs)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("kv: ensure buckets: %w", err)
	}
	return &Store{db: db, path: path}, nil
}

// Path returns the database file path.
func (s *Store) Path() string { return s.path }

// Ping verifies the database is readable. Used by readiness probes.
func (s *Store) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.View(func(*bolt.Tx) error { return nil })
}

// Close releases the database file lock.
func (s *Store) Close() error { return s.db.Close() }

// Load reads the full learned verb dictionary.
func (s *Store) Load(ctx context.Context) (map[string]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make(map[string]string)
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketLearnedVerbs)
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, v []byte) error {
			out[string(k)] = string(v)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("kv: load learned verbs: %w", err)
	}
	return out, nil
}

// PutBatch upserts entries into the learned verb dictionary in one
// transaction. Existing keys keep their stored value: the in-memory layer is
// first-write-wins and the file must agree with it.
func (s *Store) PutBatch(ctx context.Context, entries map[string]string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(entries) == 0 {
		return nil
	}
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketLearnedVerbs)
		for k, v := range entries {
			if existing := b.Get([]byte(k)); existing != nil {
				continue
			}
			if err := b.Put([]byte(k), []byte(v)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("kv: put learned verbs: %w", err)
	}
	return nil
}

// Count returns the number of learned entries.
func (s *Store) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	var n int
	err := s.db.View(func(tx *bolt.Tx) error {
		if b := tx.Bucket(bucketLearnedVerbs); b != nil {
			n = b.Stats().KeyN
		}
		return nil
	})
	return n, err
}
