// Package storage provides the object store behind the wallet file bridge.
// The backend is chosen by configuration: a local filesystem root for single
// node deployments, redis when files must be visible across replicas, and an
// in-memory store for tests.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"vouch/internal/platform/config"
)

// ErrNotFound is returned when no object exists under the requested key.
var ErrNotFound = errors.New("object not found")

// ObjectStore is the capability the file bridge needs from a backend.
type ObjectStore interface {
	// Put stores the object under key, replacing any previous content.
	Put(ctx context.Context, key string, r io.Reader) error

	// Get returns a reader over the object, or ErrNotFound.
	// The caller owns closing the returned reader.
	Get(ctx context.Context, key string) (io.ReadCloser, error)

	// Ping reports whether the backend is reachable.
	Ping(ctx context.Context) error
}

// New selects and constructs the configured backend.
func New(cfg config.Storage) (ObjectStore, error) {
	switch cfg.Backend {
	case "fs":
		return NewFSStore(cfg.FSRoot)
	case "redis":
		return NewRedisStore(cfg.RedisURL, cfg.KeyPrefix)
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
