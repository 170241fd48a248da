// Package storage remembers which posts the relay has already delivered.
package storage

import (
	"fmt"
	"strings"
	"time"
)

// Store tracks relayed post keys.
type Store interface {
	Close() error
	SeenPost(key string) (bool, error)
	MarkPost(key string) error
}

// Options controls retention for concrete store implementations.
type Options struct {
	PostTTL         time.Duration
	CleanupInterval time.Duration
	// Now overrides the wall clock; nil means time.Now.
	Now func() time.Time
}

const (
	TypeBBolt = "bbolt"
	TypeRedis = "redis"
	TypeNone  = "none"

	defaultPostTTL         = 5 * 24 * time.Hour
	defaultCleanupInterval = 12 * time.Hour
)

// NewStore creates the configured storage backend. location is the database
// file for bbolt and host:port for redis.
func NewStore(typ, location string, opts Options) (Store, error) {
	typ = strings.TrimSpace(strings.ToLower(typ))
	opts = normalizeOptions(opts)

	switch typ {
	case "", TypeNone, "disabled":
		return noopStore{}, nil
	case TypeBBolt:
		if strings.TrimSpace(location) == "" {
			return nil, fmt.Errorf("bbolt storage requires a path")
		}
		return openBolt(location, opts)
	case TypeRedis:
		if strings.TrimSpace(location) == "" {
			return nil, fmt.Errorf("redis storage requires an address")
		}
		return openRedis(location, opts)
	default:
		return nil, fmt.Errorf("unsupported storage type %q", typ)
	}
}

func normalizeOptions(opts Options) Options {
	if opts.PostTTL <= 0 {
		opts.PostTTL = defaultPostTTL
	}
	if opts.CleanupInterval <= 0 {
		opts.CleanupInterval = defaultCleanupInterval
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return opts
}

type noopStore struct{}

func (noopStore) Close() error                  { return nil }
func (noopStore) SeenPost(string) (bool, error) { return false, nil }
func (noopStore) MarkPost(string) error         { return nil }
