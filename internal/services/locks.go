package services

import "sync"

// keyedMutex serializes work per string key. Used to guard
// read-then-write sequences on a single submission's aggregate and on
// a round's progression batch.
//
// Mutexes are retained for the process lifetime: one entry per
// distinct submission or round ever locked. Removing an entry while
// another goroutine holds or waits on it would break the serialization
// guarantee, and the per-entry cost is a map slot plus a sync.Mutex.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*sync.Mutex)}
}

func (k *keyedMutex) Lock(key string) {
	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	k.mu.Unlock()
	m.Lock()
}

func (k *keyedMutex) Unlock(key string) {
	k.mu.Lock()
	m := k.locks[key]
	k.mu.Unlock()
	if m != nil {
		m.Unlock()
	}
}
