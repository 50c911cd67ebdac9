package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfirmStore_Claim_FirstDelivery(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	store := NewConfirmStore(client)
	ctx := context.Background()

	ok, err := store.Claim(ctx, "cb-abc", 10*time.Minute)
	require.NoError(t, err)
	assert.True(t, ok, "first delivery should claim")
}

func TestConfirmStore_Claim_DuplicateDelivery(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	store := NewConfirmStore(client)
	ctx := context.Background()

	// First tap
	ok, err := store.Claim(ctx, "cb-xyz", 10*time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	// Double tap
	ok, err = store.Claim(ctx, "cb-xyz", 10*time.Minute)
	require.NoError(t, err)
	assert.False(t, ok, "duplicate delivery should not claim")
}

func TestConfirmStore_Claim_DistinctCallbacks(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	store := NewConfirmStore(client)
	ctx := context.Background()

	ok1, err := store.Claim(ctx, "cb-1", 10*time.Minute)
	require.NoError(t, err)
	assert.True(t, ok1)

	ok2, err := store.Claim(ctx, "cb-2", 10*time.Minute)
	require.NoError(t, err)
	assert.True(t, ok2, "distinct callback ids claim independently")
}

func TestConfirmStore_Claim_ExpiredClaim(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	store := NewConfirmStore(client)
	ctx := context.Background()

	ok, err := store.Claim(ctx, "cb-expire", 1*time.Second)
	require.NoError(t, err)
	assert.True(t, ok)

	// Fast-forward past TTL
	s.FastForward(2 * time.Second)

	ok, err = store.Claim(ctx, "cb-expire", 1*time.Second)
	require.NoError(t, err)
	assert.True(t, ok, "expired claim can be taken again")
}
