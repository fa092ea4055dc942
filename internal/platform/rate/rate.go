// Package rate limits requests per client key (usually the remote IP) with
// one token bucket per key. Buckets idle for longer than the expiry are dropped.
package rate

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/time/rate"
)

// DefaultExpiry is how long an idle client keeps its bucket.
const DefaultExpiry = 5 * time.Minute

// visitor holds one client's bucket.
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// KeyedLimiter implements a token bucket per key.
// It is safe for concurrent use.
type KeyedLimiter struct {
	rate   rate.Limit
	burst  int
	expiry time.Duration

	mu        sync.Mutex
	visitors  map[string]*visitor
	lastSweep time.Time
	clock     clockwork.Clock
}

// New creates a limiter allowing perSecond requests per key with the given burst.
//
// Example:
//
//	limiter := rate.New(1, 5) // 1 req/s per client, burst of 5
func New(perSecond float64, burst int) *KeyedLimiter {
	return NewWithExpiry(perSecond, burst, DefaultExpiry)
}

// NewWithExpiry is New with a custom idle expiry.
func NewWithExpiry(perSecond float64, burst int, expiry time.Duration) *KeyedLimiter {
	return NewWithClock(perSecond, burst, expiry, clockwork.NewRealClock())
}

// NewWithClock is NewWithExpiry with an explicit clock, for tests.
func NewWithClock(perSecond float64, burst int, expiry time.Duration, clock clockwork.Clock) *KeyedLimiter {
	if perSecond <= 0 {
		perSecond = 1
	}
	if burst <= 0 {
		burst = 1
	}
	if expiry <= 0 {
		expiry = DefaultExpiry
	}

	return &KeyedLimiter{
		rate:      rate.Limit(perSecond),
		burst:     burst,
		expiry:    expiry,
		visitors:  make(map[string]*visitor),
		lastSweep: clock.Now(),
		clock:     clock,
	}
}

// Allow reports whether a request for key can proceed now, consuming a token if so.
func (l *KeyedLimiter) Allow(key string) bool {
	l.mu.Lock()
	now := l.clock.Now()
	l.sweep(now)

	v, ok := l.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.rate, l.burst)}
		l.visitors[key] = v
	}
	v.lastSeen = now
	lim := v.limiter
	l.mu.Unlock()

	return lim.AllowN(now, 1)
}

// RetryAfter estimates how long key must wait for its next token.
func (l *KeyedLimiter) RetryAfter(key string) time.Duration {
	l.mu.Lock()
	v, ok := l.visitors[key]
	l.mu.Unlock()
	if !ok {
		return 0
	}

	now := l.clock.Now()
	r := v.limiter.ReserveN(now, 1)
	defer r.CancelAt(now)
	if !r.OK() {
		return 0
	}
	return r.DelayFrom(now)
}

// Len returns the number of tracked keys.
func (l *KeyedLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.visitors)
}

// Rate returns the per-key rate in requests per second.
func (l *KeyedLimiter) Rate() float64 {
	return float64(l.rate)
}

// Burst returns the per-key burst size.
func (l *KeyedLimiter) Burst() int {
	return l.burst
}

// sweep drops idle visitors, at most once per expiry window.
// Must be called with l.mu held.
func (l *KeyedLimiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < l.expiry {
		return
	}
	for key, v := range l.visitors {
		if now.Sub(v.lastSeen) >= l.expiry {
			delete(l.visitors, key)
		}
	}
	l.lastSweep = now
}
