// Package cache stores compiled bytecode blobs keyed by a hash of
// their source text, so re-running an unchanged script skips the
// lex/parse/analyze/codegen pipeline.
package cache

import (
	"fmt"

	"go.etcd.io/bbolt"
)

var bucketName = []byte("bytecode")

// Cache is a bbolt-backed key/value store mapping a source-content
// hash to a previously compiled instruction stream.
type Cache struct {
	db *bbolt.DB
}

// Open opens (creating if absent) the cache database at path.
func Open(path string) (*Cache, error) {
	db, err := bbolt.Open(path, 0o644, nil)
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("init cache bucket: %w", err)
	}
	return &Cache{db: db}, nil
}

// Close releases the underlying database file.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Get returns the cached blob for key, and whether it was present.
func (c *Cache) Get(key []byte) ([]byte, bool, error) {
	var out []byte
	err := c.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(bucketName).Get(key)
		if v != nil {
			out = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return out, out != nil, nil
}

// Put stores blob under key, overwriting any prior entry.
func (c *Cache) Put(key, blob []byte) error {
	return c.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketName).Put(key, blob)
	})
}
