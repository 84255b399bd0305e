package storage

import (
	"context"
	"errors"
	"sync"
)

var errConnReset = errors.New("connection reset")

// faultyKV wraps MemoryKV with injectable failures. Like the SQLite and
// Mongo backends, it refuses to read once ctx is done.
type faultyKV struct {
	*MemoryKV

	mu       sync.Mutex
	getFails map[string]int
	setFails map[string]bool
}

func newFaultyKV() *faultyKV {
	return &faultyKV{
		MemoryKV: NewMemoryKV(),
		getFails: make(map[string]int),
		setFails: make(map[string]bool),
	}
}

// failGet makes the next n reads of key fail.
func (kv *faultyKV) failGet(key string, n int) {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	kv.getFails[key] = n
}

// failSet makes every write of key fail.
func (kv *faultyKV) failSet(key string) {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	kv.setFails[key] = true
}

func (kv *faultyKV) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	kv.mu.Lock()
	if kv.getFails[key] > 0 {
		kv.getFails[key]--
		kv.mu.Unlock()
		return "", false, errConnReset
	}
	kv.mu.Unlock()
	return kv.MemoryKV.Get(ctx, key)
}

func (kv *faultyKV) Set(ctx context.Context, key, value string) error {
	kv.mu.Lock()
	fail := kv.setFails[key]
	kv.mu.Unlock()
	if fail {
		return errConnReset
	}
	return kv.MemoryKV.Set(ctx, key, value)
}
