package service

import "sync"

// keyedLocks serializes mutating operations per group key. The join
// sequence is a read-modify-write across the group, membership and
// user records; two concurrent joins to the same group must not
// interleave or they could both claim the last slot.
type keyedLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newKeyedLocks() *keyedLocks {
	return &keyedLocks{locks: make(map[string]*sync.Mutex)}
}

// acquire locks the mutex for key and returns it for unlocking.
// Lock entries are never removed; groups are never deleted either.
func (l *keyedLocks) acquire(key string) *sync.Mutex {
	l.mu.Lock()
	m, ok := l.locks[key]
	if !ok {
		m = &sync.Mutex{}
		l.locks[key] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m
}
