package cache

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ucBooking "github.com/BruksfildServices01/master-scheduler/internal/usecase/booking"
)

var _ ucBooking.AvailabilityCache = (*AvailabilityCache)(nil)

func TestKeysAreNamespacedByMasterAndVersion(t *testing.T) {
	from := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	to := from.Add(24 * time.Hour)

	assert.Equal(t, "availability:master:4:version", versionKey(4))
	assert.NotEqual(t, slotsKey(4, 0, from, to), slotsKey(4, 1, from, to))
	assert.NotEqual(t, slotsKey(4, 0, from, to), slotsKey(5, 0, from, to))
	assert.Equal(t, slotsKey(4, 2, from, to), slotsKey(4, 2, from.In(time.FixedZone("X", 3600)), to))
}

// An unreachable server surfaces errors instead of fake hits, so callers can
// fall back to the database.
func TestUnreachableRedisReportsErrors(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })

	c := NewAvailabilityCache(client, time.Minute)
	ctx := context.Background()
	from := time.Date(2030, 3, 4, 0, 0, 0, 0, time.UTC)

	slots, _, ok, err := c.GetSlots(ctx, 1, from, from.Add(24*time.Hour))
	require.Error(t, err)
	assert.False(t, ok)
	assert.Nil(t, slots)

	assert.Error(t, c.SetSlots(ctx, 1, 0, from, from.Add(24*time.Hour), nil))
	assert.Error(t, c.Invalidate(ctx, 1))
}
