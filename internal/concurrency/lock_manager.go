package concurrency

import (
	"sync"
)

// LockManager hands out named mutexes, used to serialize planner-state
// mutations for a single user without blocking other users.
type LockManager struct {
	locks sync.Map // key -> *sync.Mutex
}

func NewLockManager() *LockManager {
	return &LockManager{}
}

// GetLock returns the mutex for key, creating it on first use.
// Locks are never reclaimed; the key space (user ids) is small enough.
func (lm *LockManager) GetLock(key string) *sync.Mutex {
	lock, _ := lm.locks.LoadOrStore(key, &sync.Mutex{})
	return lock.(*sync.Mutex)
}
