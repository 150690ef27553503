package services

import (
	"sync"
	"time"
)

const (
	MaxFamilyAccessAttempts = 5
	FamilyAccessLockout     = 30 * time.Second
)

type attemptState struct {
	failures    int
	pending     int
	lockedUntil time.Time
}

// AccessGuard counts failed family password attempts per key (client IP)
// and locks the key once the limit is reached. Attempts still being checked
// count against the limit.
type AccessGuard struct {
	mu       sync.Mutex
	attempts map[string]*attemptState
	limit    int
	lockout  time.Duration
	now      func() time.Time
}

func NewAccessGuard(limit int, lockout time.Duration) *AccessGuard {
	return &AccessGuard{
		attempts: make(map[string]*attemptState),
		limit:    limit,
		lockout:  lockout,
		now:      time.Now,
	}
}

// state returns the entry for key, clearing a lockout that has run out.
// Callers hold g.mu.
func (g *AccessGuard) state(key string) *attemptState {
	st, ok := g.attempts[key]
	if !ok {
		st = &attemptState{}
		g.attempts[key] = st
	}
	if !st.lockedUntil.IsZero() && !g.now().Before(st.lockedUntil) {
		*st = attemptState{pending: st.pending}
	}
	return st
}

// Begin reserves an attempt for key. It refuses, with the wait before the
// next try, while the key is locked or while failures plus attempts in
// flight already reach the limit. Every accepted attempt ends with exactly
// one of Fail, Reset or Release.
func (g *AccessGuard) Begin(key string) (bool, time.Duration) {
	g.mu.Lock()
	defer g.mu.Unlock()

	st := g.state(key)
	if !st.lockedUntil.IsZero() {
		return false, st.lockedUntil.Sub(g.now())
	}
	if st.failures+st.pending >= g.limit {
		return false, g.lockout
	}
	st.pending++
	return true, 0
}

// Fail settles an attempt as failed. It returns the failure count and, once
// the key is locked, how long the lock lasts.
func (g *AccessGuard) Fail(key string) (int, time.Duration) {
	g.mu.Lock()
	defer g.mu.Unlock()

	st := g.state(key)
	if st.pending > 0 {
		st.pending--
	}
	st.failures++
	if st.failures >= g.limit && st.lockedUntil.IsZero() {
		st.lockedUntil = g.now().Add(g.lockout)
	}
	if st.lockedUntil.IsZero() {
		return st.failures, 0
	}
	return st.failures, st.lockedUntil.Sub(g.now())
}

// Release settles an attempt that never reached a password check.
func (g *AccessGuard) Release(key string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	st, ok := g.attempts[key]
	if !ok {
		return
	}
	if st.pending > 0 {
		st.pending--
	}
	if st.pending == 0 && st.failures == 0 && st.lockedUntil.IsZero() {
		delete(g.attempts, key)
	}
}

// Reset clears the key after a successful attempt.
func (g *AccessGuard) Reset(key string) {
	g.mu.Lock()
	delete(g.attempts, key)
	g.mu.Unlock()
}

func (g *AccessGuard) Limit() int {
	return g.limit
}

var familyGuard = NewAccessGuard(MaxFamilyAccessAttempts, FamilyAccessLockout)

func GetFamilyAccessGuard() *AccessGuard {
	return familyGuard
}
