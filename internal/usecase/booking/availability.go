package booking

import (
	"context"
	"log"
	"time"

	domain "github.com/BruksfildServices01/master-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/master-scheduler/internal/models"
)

type GetAvailabilityInput struct {
	MasterID uint

	// ServiceID 0 lists every AVAILABLE slot without run filtering.
	ServiceID uint

	// From and To bound the listing read, and the cache key with it. Slots
	// starting before NotBefore are dropped afterwards, so a moving "now"
	// does not split the cache into one entry per request.
	From      time.Time
	To        time.Time
	NotBefore time.Time
}

type Availability struct {
	Service     *models.Service `json:"service,omitempty"`
	SlotsNeeded int             `json:"slots_needed"`
	Slots       []models.Slot   `json:"slots"`
}

// GetAvailability lists the slots from which a booking of the service can
// start. It takes no locks; the result is advisory.
type GetAvailability struct {
	repo  domain.Repository
	cache AvailabilityCache
}

func NewGetAvailability(repo domain.Repository, cache AvailabilityCache) *GetAvailability {
	return &GetAvailability{repo: repo, cache: cache}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	in GetAvailabilityInput,
) (*Availability, error) {

	var service *models.Service
	if in.ServiceID != 0 {
		svc, err := uc.repo.GetService(ctx, in.ServiceID)
		if err != nil {
			return nil, err
		}
		if svc.MasterID != in.MasterID {
			return nil, domain.ErrServiceNotFound
		}
		if !svc.Active {
			return nil, domain.ErrServiceInactive
		}
		service = svc
	}

	slots, err := uc.availableSlots(ctx, in.MasterID, in.From, in.To)
	if err != nil {
		return nil, err
	}
	slots = startingFrom(slots, in.NotBefore)

	out := &Availability{
		Service:     service,
		SlotsNeeded: 1,
		Slots:       slots,
	}

	if service != nil && len(slots) > 0 {
		out.SlotsNeeded = domain.SlotsNeeded(service.Duration(), slots[0].Duration())
		out.Slots = domain.FilterBookable(slots, out.SlotsNeeded)
	}

	return out, nil
}

func (uc *GetAvailability) availableSlots(
	ctx context.Context,
	masterID uint,
	from time.Time,
	to time.Time,
) ([]models.Slot, error) {

	writeBack := false
	var version int64

	if uc.cache != nil {
		slots, v, ok, err := uc.cache.GetSlots(ctx, masterID, from, to)
		if err != nil {
			log.Printf("[CACHE] read master_id=%d error=%v", masterID, err)
		}
		if ok {
			return slots, nil
		}
		writeBack, version = err == nil, v
	}

	slots, err := uc.repo.ListAvailableSlots(ctx, masterID, from, to)
	if err != nil {
		return nil, err
	}

	if writeBack {
		if err := uc.cache.SetSlots(ctx, masterID, version, from, to, slots); err != nil {
			log.Printf("[CACHE] write master_id=%d error=%v", masterID, err)
		}
	}
	return slots, nil
}

// startingFrom drops the slots that start before t. A zero t keeps all.
func startingFrom(slots []models.Slot, t time.Time) []models.Slot {
	if t.IsZero() {
		return slots
	}

	kept := make([]models.Slot, 0, len(slots))
	for _, s := range slots {
		if !s.StartAt.Before(t) {
			kept = append(kept, s)
		}
	}
	return kept
}
