// Package keylock provides a registry of named mutexes so callers can
// serialize work per key instead of behind one global lock.
package keylock

import "sync"

// Registry hands out one mutex per key. Mutexes are created on first use
// and kept for the registry's lifetime; the key space here (entities) is
// small enough that no eviction is needed.
type Registry struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewRegistry constructs an empty Registry.
func NewRegistry() *Registry {
	return &Registry{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the mutex for key, creating it on first use.
func (r *Registry) Lock(key string) {
	r.get(key).Lock()
}

// Unlock releases the mutex for key. Unlocking a key that was never
// locked panics, same as sync.Mutex.
func (r *Registry) Unlock(key string) {
	r.get(key).Unlock()
}

func (r *Registry) get(key string) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()
	lock, ok := r.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		r.locks[key] = lock
	}
	return lock
}
