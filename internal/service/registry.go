package service

import (
	"context"
	"sync"
	"time"

	"token-earn-bot/internal/core/domain"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Registry implements ports.PendingRegistry: an in-memory map of in-flight
// withdrawal reservations, one per user. Reservations survive only as long
// as the process; a restart drops them and users simply start over.
type Registry struct {
	mu       sync.Mutex
	pending  map[uuid.UUID]domain.Reservation
	inFlight map[uuid.UUID]struct{}

	ttl           time.Duration
	sweepInterval time.Duration
	log           zerolog.Logger
}

// NewRegistry creates an empty registry with the given reservation TTL and
// sweep interval.
func NewRegistry(ttl, sweepInterval time.Duration, log zerolog.Logger) *Registry {
	return &Registry{
		pending:       make(map[uuid.UUID]domain.Reservation),
		inFlight:      make(map[uuid.UUID]struct{}),
		ttl:           ttl,
		sweepInterval: sweepInterval,
		log:           log.With().Str("component", "pending_registry").Logger(),
	}
}

// Reserve stores r unless the user already has a reservation.
// Returns false if one exists.
func (g *Registry) Reserve(r domain.Reservation) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, exists := g.pending[r.UserID]; exists {
		return false
	}
	g.pending[r.UserID] = r
	return true
}

// Get returns the user's reservation, if any.
func (g *Registry) Get(userID uuid.UUID) (domain.Reservation, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	r, ok := g.pending[userID]
	return r, ok
}

// Acquire marks the user's reservation as executing and returns it. The
// second caller loses, so a double-tapped confirm button runs the
// transfer at most once.
func (g *Registry) Acquire(userID uuid.UUID) (domain.Reservation, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	r, ok := g.pending[userID]
	if !ok {
		return domain.Reservation{}, false
	}
	if _, executing := g.inFlight[userID]; executing {
		return domain.Reservation{}, false
	}
	g.inFlight[userID] = struct{}{}
	return r, true
}

// Cancel removes the user's reservation unless it is currently executing.
// Returns false if a confirmation holds the reservation; cancelling an
// absent reservation is a no-op and returns true.
func (g *Registry) Cancel(userID uuid.UUID) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, executing := g.inFlight[userID]; executing {
		return false
	}
	delete(g.pending, userID)
	return true
}

// Release removes the user's reservation. Releasing an absent reservation
// is a no-op.
func (g *Registry) Release(userID uuid.UUID) {
	g.mu.Lock()
	defer g.mu.Unlock()

	delete(g.pending, userID)
	delete(g.inFlight, userID)
}

// Len returns the number of in-flight reservations.
func (g *Registry) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()

	return len(g.pending)
}

// SweepExpired drops reservations older than the TTL as of now and returns
// how many were removed. Reservations mid-confirmation are left alone;
// their Release cleans them up. Expired reservations vanish silently; the
// user is not notified.
func (g *Registry) SweepExpired(now time.Time) int {
	g.mu.Lock()
	defer g.mu.Unlock()

	removed := 0
	for userID, r := range g.pending {
		if _, executing := g.inFlight[userID]; executing {
			continue
		}
		if r.ExpiredAt(now, g.ttl) {
			delete(g.pending, userID)
			removed++
		}
	}
	return removed
}

// Run sweeps expired reservations on a ticker until ctx is cancelled.
func (g *Registry) Run(ctx context.Context) {
	ticker := time.NewTicker(g.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			g.log.Info().Int("pending", g.Len()).Msg("registry sweeper stopped")
			return
		case now := <-ticker.C:
			if removed := g.SweepExpired(now); removed > 0 {
				g.log.Info().Int("removed", removed).Msg("expired withdrawal reservations swept")
			}
		}
	}
}
