package service

import (
	"sync"
	"testing"
	"time"

	"token-earn-bot/internal/core/domain"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegistry() *Registry {
	return NewRegistry(30*time.Minute, 10*time.Minute, zerolog.Nop())
}

func testReservation(userID uuid.UUID) domain.Reservation {
	return domain.Reservation{
		UserID:     userID,
		TelegramID: 111,
		Amount:     5000,
		Address:    "0x742d35cc6634c0532925a3b844bc454e4438f44e",
		CreatedAt:  time.Now().UTC(),
	}
}

func TestRegistry_ReserveAndGet(t *testing.T) {
	reg := newTestRegistry()
	userID := uuid.New()

	ok := reg.Reserve(testReservation(userID))
	require.True(t, ok)

	r, found := reg.Get(userID)
	require.True(t, found)
	assert.Equal(t, int64(5000), r.Amount)
	assert.Equal(t, 1, reg.Len())
}

func TestRegistry_Reserve_SecondAttemptRejected(t *testing.T) {
	reg := newTestRegistry()
	userID := uuid.New()

	require.True(t, reg.Reserve(testReservation(userID)))
	assert.False(t, reg.Reserve(testReservation(userID)), "second reservation for same user must fail")
	assert.Equal(t, 1, reg.Len())
}

func TestRegistry_Release_Idempotent(t *testing.T) {
	reg := newTestRegistry()
	userID := uuid.New()

	require.True(t, reg.Reserve(testReservation(userID)))
	reg.Release(userID)
	assert.Equal(t, 0, reg.Len())

	// Releasing again must not panic or affect anything.
	reg.Release(userID)
	assert.Equal(t, 0, reg.Len())

	// The user can reserve again after release.
	assert.True(t, reg.Reserve(testReservation(userID)))
}

func TestRegistry_Acquire(t *testing.T) {
	reg := newTestRegistry()
	userID := uuid.New()

	_, ok := reg.Acquire(userID)
	assert.False(t, ok, "acquire without reservation must fail")

	require.True(t, reg.Reserve(testReservation(userID)))

	r, ok := reg.Acquire(userID)
	require.True(t, ok)
	assert.Equal(t, int64(5000), r.Amount)

	_, ok = reg.Acquire(userID)
	assert.False(t, ok, "second acquire must fail while executing")

	// The reservation stays visible until released.
	_, found := reg.Get(userID)
	assert.True(t, found)
	assert.Equal(t, 1, reg.Len())

	reg.Release(userID)
	assert.Equal(t, 0, reg.Len())

	// A fresh reservation can be acquired again.
	require.True(t, reg.Reserve(testReservation(userID)))
	_, ok = reg.Acquire(userID)
	assert.True(t, ok)
}

func TestRegistry_Cancel(t *testing.T) {
	reg := newTestRegistry()
	userID := uuid.New()

	assert.True(t, reg.Cancel(userID), "cancel without reservation is a no-op")

	require.True(t, reg.Reserve(testReservation(userID)))
	assert.True(t, reg.Cancel(userID))
	assert.Equal(t, 0, reg.Len())
}

func TestRegistry_Cancel_RefusesExecuting(t *testing.T) {
	reg := newTestRegistry()
	userID := uuid.New()
	require.True(t, reg.Reserve(testReservation(userID)))

	_, ok := reg.Acquire(userID)
	require.True(t, ok)

	assert.False(t, reg.Cancel(userID), "cancel must not pull an executing reservation")
	assert.Equal(t, 1, reg.Len())

	// The executing confirmation still owns the reservation and releases it.
	reg.Release(userID)
	assert.Equal(t, 0, reg.Len())
	assert.True(t, reg.Cancel(userID))
}

func TestRegistry_ConcurrentAcquire_ExactlyOneWins(t *testing.T) {
	reg := newTestRegistry()
	userID := uuid.New()
	require.True(t, reg.Reserve(testReservation(userID)))

	const goroutines = 50
	var wg sync.WaitGroup
	wins := make(chan bool, goroutines)

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, ok := reg.Acquire(userID)
			wins <- ok
		}()
	}
	wg.Wait()
	close(wins)

	won := 0
	for ok := range wins {
		if ok {
			won++
		}
	}
	assert.Equal(t, 1, won, "exactly one concurrent acquire must win")
}

func TestRegistry_SweepExpired_SkipsExecuting(t *testing.T) {
	reg := newTestRegistry()
	now := time.Now().UTC()

	stale := testReservation(uuid.New())
	stale.CreatedAt = now.Add(-31 * time.Minute)
	require.True(t, reg.Reserve(stale))

	_, ok := reg.Acquire(stale.UserID)
	require.True(t, ok)

	// Expired but mid-confirmation: the sweeper must not pull it away.
	assert.Equal(t, 0, reg.SweepExpired(now))
	assert.Equal(t, 1, reg.Len())

	reg.Release(stale.UserID)
	assert.Equal(t, 0, reg.Len())
}

func TestRegistry_ConcurrentReserve_ExactlyOneWins(t *testing.T) {
	reg := newTestRegistry()
	userID := uuid.New()

	const goroutines = 50
	var wg sync.WaitGroup
	wins := make(chan bool, goroutines)

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			wins <- reg.Reserve(testReservation(userID))
		}()
	}
	wg.Wait()
	close(wins)

	won := 0
	for ok := range wins {
		if ok {
			won++
		}
	}
	assert.Equal(t, 1, won, "exactly one concurrent reservation must win")
	assert.Equal(t, 1, reg.Len())
}

func TestRegistry_SweepExpired(t *testing.T) {
	reg := newTestRegistry()
	now := time.Now().UTC()

	fresh := testReservation(uuid.New())
	fresh.CreatedAt = now.Add(-5 * time.Minute)
	stale := testReservation(uuid.New())
	stale.CreatedAt = now.Add(-31 * time.Minute)
	boundary := testReservation(uuid.New())
	boundary.CreatedAt = now.Add(-30 * time.Minute)

	require.True(t, reg.Reserve(fresh))
	require.True(t, reg.Reserve(stale))
	require.True(t, reg.Reserve(boundary))

	removed := reg.SweepExpired(now)
	assert.Equal(t, 2, removed)
	assert.Equal(t, 1, reg.Len())

	_, found := reg.Get(fresh.UserID)
	assert.True(t, found, "fresh reservation survives the sweep")
	_, found = reg.Get(stale.UserID)
	assert.False(t, found)
}

func TestRegistry_SweepExpired_EmptyRegistry(t *testing.T) {
	reg := newTestRegistry()
	assert.Equal(t, 0, reg.SweepExpired(time.Now()))
}
