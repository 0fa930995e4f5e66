package ratelimit

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Store manages rate limiters for multiple clients.
type Store struct {
	// limiters maps client identifiers to their rate limiters
	limiters map[string]*Limiter

	rate Rate

	// mu protects concurrent access to the limiters map
	mu sync.RWMutex

	cleanupInterval time.Duration
	idleExpiry      time.Duration

	stop     chan struct{}
	stopOnce sync.Once
}

// NewStore creates a store and starts its cleanup goroutine. Call Stop to end it.
func NewStore(r Rate, cleanupInterval, idleExpiry time.Duration) *Store {
	store := &Store{
		limiters:        make(map[string]*Limiter),
		rate:            r,
		cleanupInterval: cleanupInterval,
		idleExpiry:      idleExpiry,
		stop:            make(chan struct{}),
	}

	go store.cleanupRoutine()

	return store
}

// GetLimiter returns the limiter of clientID, creating it on first use.
func (s *Store) GetLimiter(clientID string) *Limiter {
	s.mu.RLock()
	limiter, exists := s.limiters[clientID]
	s.mu.RUnlock()

	if exists {
		return limiter
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// Another request may have created it in the meantime
	if limiter, exists = s.limiters[clientID]; exists {
		return limiter
	}
	limiter = NewLimiter(s.rate)
	s.limiters[clientID] = limiter

	return limiter
}

// Len returns the number of tracked clients.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.limiters)
}

// Stop ends the cleanup goroutine. It is safe to call more than once.
func (s *Store) Stop() {
	s.stopOnce.Do(func() { close(s.stop) })
}

func (s *Store) cleanupRoutine() {
	ticker := time.NewTicker(s.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.cleanup(time.Now())
		case <-s.stop:
			return
		}
	}
}

// cleanup removes limiters idle for longer than idleExpiry.
func (s *Store) cleanup(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, limiter := range s.limiters {
		if now.Sub(limiter.idleSince()) > s.idleExpiry {
			delete(s.limiters, id)
			removed++
		}
	}

	if removed > 0 {
		log.Debug().Int("removed", removed).Int("remaining", len(s.limiters)).Msg("Rate limiter cleanup")
	}
}
