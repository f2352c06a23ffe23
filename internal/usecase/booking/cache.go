package booking

import (
	"context"
	"log"
	"time"

	"github.com/BruksfildServices01/master-scheduler/internal/models"
)

// AvailabilityCache stores AVAILABLE slot listings per master. A nil cache
// disables caching.
//
// GetSlots also returns the listing version it read under; a listing loaded
// after a miss is written back with that version, so a commit that
// invalidates in between makes the write land under a dead version.
type AvailabilityCache interface {
	GetSlots(ctx context.Context, masterID uint, from, to time.Time) (slots []models.Slot, version int64, ok bool, err error)
	SetSlots(ctx context.Context, masterID uint, version int64, from, to time.Time, slots []models.Slot) error
	Invalidate(ctx context.Context, masterID uint) error
}

// invalidate runs after commit; a failure only leaves listings stale until
// their TTL runs out.
func invalidate(ctx context.Context, cache AvailabilityCache, masterID uint) {
	if cache == nil {
		return
	}
	if err := cache.Invalidate(ctx, masterID); err != nil {
		log.Printf("[CACHE] invalidate master_id=%d error=%v", masterID, err)
	}
}
