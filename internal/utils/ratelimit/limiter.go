// Package ratelimit provides per-client request budgets for the HTTP surface.
// Buckets are golang.org/x/time/rate token buckets keyed by client identity.
package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limiter is the token bucket of a single client.
type Limiter struct {
	bucket *rate.Limiter

	// lastSeen is read by the store cleanup to evict idle clients
	lastSeen time.Time
	mu       sync.Mutex
}

// Rate controls how many requests per minute are allowed
type Rate struct {
	// RequestsPerMinute defines the sustained refill rate
	RequestsPerMinute float64

	// Burst defines the maximum size of the token bucket. Zero derives
	// ten seconds worth of requests from RequestsPerMinute.
	Burst int
}

// Limit converts the per-minute budget to a rate.Limit.
func (r Rate) Limit() rate.Limit {
	return rate.Limit(r.RequestsPerMinute / 60)
}

// BurstSize returns the configured burst or the derived default.
func (r Rate) BurstSize() int {
	if r.Burst > 0 {
		return r.Burst
	}
	burst := int(r.RequestsPerMinute / 6)
	if burst < 1 {
		burst = 1
	}
	return burst
}

// NewLimiter creates a limiter that starts with a full bucket.
func NewLimiter(r Rate) *Limiter {
	return &Limiter{
		bucket:   rate.NewLimiter(r.Limit(), r.BurstSize()),
		lastSeen: time.Now(),
	}
}

// Allow reports whether a request may proceed now and consumes a token if so.
func (l *Limiter) Allow() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lastSeen = time.Now()
	return l.bucket.Allow()
}

// RetryAfter estimates how long until the next request is allowed.
func (l *Limiter) RetryAfter() time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()
	reservation := l.bucket.Reserve()
	delay := reservation.Delay()
	reservation.Cancel()
	return delay
}

func (l *Limiter) idleSince() time.Time {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lastSeen
}
