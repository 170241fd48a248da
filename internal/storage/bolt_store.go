package storage

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"
)

const (
	postBucket       = "posts"
	expiryValueBytes = 8
)

var errBucketMissing = errors.New("posts bucket missing")

// boltStore keeps post keys in BoltDB with a per-key expiry.
type boltStore struct {
	db              *bolt.DB
	now             func() time.Time
	ttl             time.Duration
	cleanupInterval time.Duration

	cleanupMu   sync.Mutex
	lastCleanup time.Time
}

func openBolt(path string, opts Options) (Store, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage directory: %w", err)
		}
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bbolt db: %w", err)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(postBucket))
		return err
	}); err != nil {
		db.Close()
		return nil, fmt.Errorf("init bucket: %w", err)
	}

	return &boltStore{
		db:              db,
		now:             opts.Now,
		ttl:             opts.PostTTL,
		cleanupInterval: opts.CleanupInterval,
		lastCleanup:     opts.Now(),
	}, nil
}

func (b *boltStore) Close() error {
	if b == nil || b.db == nil {
		return nil
	}
	return b.db.Close()
}

// SeenPost reports whether key was marked and has not expired yet.
// Expired keys are removed on read.
func (b *boltStore) SeenPost(key string) (bool, error) {
	if b == nil || b.db == nil {
		return false, nil
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return false, nil
	}

	now := b.now()
	if err := b.sweep(now); err != nil {
		return false, err
	}

	var seen bool
	err := b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(postBucket))
		if bucket == nil {
			return errBucketMissing
		}
		value := bucket.Get([]byte(key))
		if value == nil {
			return nil
		}
		if expiry, ok := decodeExpiry(value); ok && expiry.After(now) {
			seen = true
			return nil
		}
		return bucket.Delete([]byte(key))
	})
	return seen, err
}

// MarkPost records key as relayed until now+TTL.
func (b *boltStore) MarkPost(key string) error {
	if b == nil || b.db == nil {
		return nil
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("post key is empty")
	}

	now := b.now()
	if err := b.sweep(now); err != nil {
		return err
	}

	return b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(postBucket))
		if bucket == nil {
			return errBucketMissing
		}
		return bucket.Put([]byte(key), encodeExpiry(now.Add(b.ttl)))
	})
}

// sweep drops expired keys at most once per cleanup interval.
func (b *boltStore) sweep(now time.Time) error {
	b.cleanupMu.Lock()
	defer b.cleanupMu.Unlock()

	if now.Sub(b.lastCleanup) < b.cleanupInterval {
		return nil
	}

	err := b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(postBucket))
		if bucket == nil {
			return errBucketMissing
		}
		c := bucket.Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			if expiry, ok := decodeExpiry(v); ok && expiry.After(now) {
				continue
			}
			if err := c.Delete(); err != nil {
				return err
			}
		}
		return nil
	})
	if err == nil {
		b.lastCleanup = now
	}
	return err
}

// count returns the number of stored keys, expired or not.
func (b *boltStore) count() (int, error) {
	var n int
	err := b.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(postBucket))
		if bucket == nil {
			return errBucketMissing
		}
		n = bucket.Stats().KeyN
		return nil
	})
	return n, err
}

func encodeExpiry(t time.Time) []byte {
	buf := make([]byte, expiryValueBytes)
	binary.BigEndian.PutUint64(buf, uint64(t.Unix()))
	return buf
}

func decodeExpiry(value []byte) (time.Time, bool) {
	if len(value) != expiryValueBytes {
		return time.Time{}, false
	}
	unix := int64(binary.BigEndian.Uint64(value))
	if unix <= 0 {
		return time.Time{}, false
	}
	return time.Unix(unix, 0), true
}
