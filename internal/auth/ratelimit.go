package auth

import (
	"sync"
	"time"
)

// LoginLimiter locks out an IP and email pair after repeated failed logins.
// Expired records are pruned on access.
type LoginLimiter struct {
	mu          sync.Mutex
	attempts    map[string]*attemptRecord
	maxAttempts int
	window      time.Duration
	lockout     time.Duration
	now         func() time.Time
}

type attemptRecord struct {
	count        int
	firstAttempt time.Time
	lockedUntil  time.Time
}

func NewLoginLimiter(maxAttempts int, window, lockout time.Duration) *LoginLimiter {
	if maxAttempts <= 0 {
		maxAttempts = 5
	}
	if window <= 0 {
		window = 15 * time.Minute
	}
	if lockout <= 0 {
		lockout = 30 * time.Minute
	}
	return &LoginLimiter{
		attempts:    make(map[string]*attemptRecord),
		maxAttempts: maxAttempts,
		window:      window,
		lockout:     lockout,
		now:         time.Now,
	}
}

func limiterKey(ip, email string) string {
	return ip + "|" + email
}

// Allow reports whether a login attempt may proceed and, if not, how long to wait.
func (l *LoginLimiter) Allow(ip, email string) (bool, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.prune(now)

	rec, ok := l.attempts[limiterKey(ip, email)]
	if !ok {
		return true, 0
	}
	if now.Before(rec.lockedUntil) {
		return false, rec.lockedUntil.Sub(now)
	}
	return true, 0
}

func (l *LoginLimiter) RecordFailure(ip, email string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	key := limiterKey(ip, email)
	rec, ok := l.attempts[key]
	if !ok || now.Sub(rec.firstAttempt) > l.window {
		rec = &attemptRecord{firstAttempt: now}
		l.attempts[key] = rec
	}

	rec.count++
	if rec.count >= l.maxAttempts {
		rec.lockedUntil = now.Add(l.lockout)
	}
}

func (l *LoginLimiter) RecordSuccess(ip, email string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.attempts, limiterKey(ip, email))
}

func (l *LoginLimiter) prune(now time.Time) {
	for key, rec := range l.attempts {
		if now.Sub(rec.firstAttempt) > l.window && now.After(rec.lockedUntil) {
			delete(l.attempts, key)
		}
	}
}
