package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/BruksfildServices01/master-scheduler/internal/models"
)

// AvailabilityCache keeps a master's AVAILABLE slot listings for a short
// time. Entries are namespaced by a per-master version; bumping the version
// invalidates every listing of that master at once.
type AvailabilityCache struct {
	client redis.UniversalClient
	ttl    time.Duration
}

func NewAvailabilityCache(client redis.UniversalClient, ttl time.Duration) *AvailabilityCache {
	return &AvailabilityCache{client: client, ttl: ttl}
}

func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
}

// GetSlots returns ok=false on a miss, together with the version the miss
// was observed under.
func (c *AvailabilityCache) GetSlots(
	ctx context.Context,
	masterID uint,
	from time.Time,
	to time.Time,
) ([]models.Slot, int64, bool, error) {

	version, err := c.version(ctx, masterID)
	if err != nil {
		return nil, 0, false, err
	}

	data, err := c.client.Get(ctx, slotsKey(masterID, version, from, to)).Bytes()
	if err == redis.Nil {
		return nil, version, false, nil
	}
	if err != nil {
		return nil, version, false, err
	}

	var slots []models.Slot
	if err := json.Unmarshal(data, &slots); err != nil {
		return nil, version, false, err
	}
	return slots, version, true, nil
}

// SetSlots stores a listing under the version returned by GetSlots, never
// the current one.
func (c *AvailabilityCache) SetSlots(
	ctx context.Context,
	masterID uint,
	version int64,
	from time.Time,
	to time.Time,
	slots []models.Slot,
) error {

	payload, err := json.Marshal(slots)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, slotsKey(masterID, version, from, to), payload, c.ttl).Err()
}

func (c *AvailabilityCache) Invalidate(ctx context.Context, masterID uint) error {
	return c.client.Incr(ctx, versionKey(masterID)).Err()
}

func (c *AvailabilityCache) version(ctx context.Context, masterID uint) (int64, error) {
	v, err := c.client.Get(ctx, versionKey(masterID)).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return v, err
}

func versionKey(masterID uint) string {
	return fmt.Sprintf("availability:master:%d:version", masterID)
}

func slotsKey(masterID uint, version int64, from, to time.Time) string {
	return fmt.Sprintf("availability:master:%d:v%d:%d:%d", masterID, version, from.Unix(), to.Unix())
}
