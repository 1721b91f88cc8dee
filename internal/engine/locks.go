package engine

import (
	"sync"
	"time"

	"campusbus/internal/domain"
)

// keyedLock hands out one critical section per key (trip ID). Acquisition
// is bounded: a caller that cannot enter within the wait budget gets a
// retryable LockTimeoutError instead of blocking indefinitely.
type keyedLock struct {
	mu    sync.Mutex
	slots map[string]chan struct{}
}

func newKeyedLock() *keyedLock {
	return &keyedLock{slots: map[string]chan struct{}{}}
}

func (l *keyedLock) slot(key string) chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()
	s, ok := l.slots[key]
	if !ok {
		s = make(chan struct{}, 1)
		l.slots[key] = s
	}
	return s
}

// acquire enters the critical section for key, waiting at most wait.
// The returned release func must be called exactly once.
func (l *keyedLock) acquire(key string, wait time.Duration) (func(), error) {
	s := l.slot(key)
	select {
	case s <- struct{}{}:
		return func() { <-s }, nil
	default:
	}
	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case s <- struct{}{}:
		return func() { <-s }, nil
	case <-timer.C:
		return nil, domain.LockTimeoutError{Key: key, Wait: wait}
	}
}
