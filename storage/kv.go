// Package storage holds the shared persistent state of the store: products,
// orders, settings and per-browser carts, kept as serialized text values in a
// key-value backend.
package storage

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrUnknownDriver is returned by Open for an unsupported backend name.
var ErrUnknownDriver = errors.New("unknown storage driver")

// KV is a string key-value backend.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Options selects and configures a backend for Open.
type Options struct {
	Driver          string
	SQLitePath      string
	MongoURI        string
	MongoDatabase   string
	MongoCollection string
}

// Open returns the backend named by opts.Driver: memory, sqlite or mongo.
func Open(ctx context.Context, opts Options) (KV, error) {
	switch opts.Driver {
	case "memory":
		return NewMemoryKV(), nil
	case "sqlite", "":
		kv, err := OpenSQLite(opts.SQLitePath)
		if err != nil {
			return nil, err
		}
		return kv, nil
	case "mongo":
		kv, err := ConnectMongo(ctx, opts.MongoURI, opts.MongoDatabase, opts.MongoCollection)
		if err != nil {
			return nil, err
		}
		return kv, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, opts.Driver)
	}
}

// MemoryKV keeps values in process memory.
type MemoryKV struct {
	mu sync.RWMutex
	m  map[string]string
}

func NewMemoryKV() *MemoryKV { return &MemoryKV{m: make(map[string]string)} }

func (s *MemoryKV) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.m[key]
	return v, ok, nil
}

func (s *MemoryKV) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = value
	return nil
}

func (s *MemoryKV) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, key)
	return nil
}

func (s *MemoryKV) Close() error { return nil }
