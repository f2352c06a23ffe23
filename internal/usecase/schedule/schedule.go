package schedule

import (
	"context"
	"log"
	"time"

	"github.com/BruksfildServices01/master-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/master-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/master-scheduler/internal/models"
	"github.com/BruksfildServices01/master-scheduler/internal/timezone"
)

// Invalidator drops cached availability of a master.
type Invalidator interface {
	Invalidate(ctx context.Context, masterID uint) error
}

// ======================================================
// GENERATE
// ======================================================

type GenerateSlotsInput struct {
	MasterID uint
	UserID   uint

	Date        string
	StartTime   string
	EndTime     string
	DurationMin int

	// BreakStart and BreakEnd are optional; slots overlapping the pause
	// are not created.
	BreakStart string
	BreakEnd   string
}

type GenerateSlotsResult struct {
	Requested int   `json:"requested"`
	Created   int64 `json:"created"`
}

type GenerateSlots struct {
	repo  domain.Repository
	cache Invalidator
	audit *audit.Dispatcher
}

func NewGenerateSlots(repo domain.Repository, cache Invalidator, audit *audit.Dispatcher) *GenerateSlots {
	return &GenerateSlots{repo: repo, cache: cache, audit: audit}
}

func (uc *GenerateSlots) Execute(ctx context.Context, in GenerateSlotsInput) (*GenerateSlotsResult, error) {
	profile, err := uc.repo.GetProfile(ctx, in.MasterID)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(profile.Timezone)

	slots, err := domain.GenerateDay(
		in.MasterID,
		in.Date,
		in.StartTime,
		in.EndTime,
		in.DurationMin,
		loc,
	)
	if err != nil {
		return nil, err
	}

	slots, err = domain.WithoutBreak(slots, in.Date, in.BreakStart, in.BreakEnd, loc)
	if err != nil {
		return nil, err
	}

	created, err := uc.repo.CreateSlots(ctx, slots)
	if err != nil {
		return nil, err
	}

	if created > 0 {
		invalidate(ctx, uc.cache, in.MasterID)
	}

	uc.audit.Dispatch(audit.Event{
		MasterID: in.MasterID,
		UserID:   &in.UserID,
		Action:   "slots_generated",
		Entity:   "slot",
		Metadata: map[string]any{
			"date":     in.Date,
			"duration": in.DurationMin,
			"created":  created,
		},
	})

	log.Printf("[SCHEDULE] generated master_id=%d date=%s requested=%d created=%d",
		in.MasterID, in.Date, len(slots), created)

	return &GenerateSlotsResult{Requested: len(slots), Created: created}, nil
}

// ======================================================
// LIST
// ======================================================

type ListSlots struct {
	repo domain.Repository
}

func NewListSlots(repo domain.Repository) *ListSlots {
	return &ListSlots{repo: repo}
}

// Execute lists slots starting from the beginning of today in the master's
// timezone when from is nil.
func (uc *ListSlots) Execute(
	ctx context.Context,
	masterID uint,
	from *time.Time,
	to *time.Time,
) ([]models.Slot, error) {

	start := time.Time{}
	if from != nil {
		start = *from
	} else {
		profile, err := uc.repo.GetProfile(ctx, masterID)
		if err != nil {
			return nil, err
		}
		now := timezone.NowIn(profile.Timezone)
		start = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	}

	return uc.repo.ListSlots(ctx, masterID, start, to)
}

// ======================================================
// DELETE / BLOCK / UNBLOCK
// ======================================================

type ManageSlot struct {
	repo  domain.Repository
	cache Invalidator
	audit *audit.Dispatcher
}

func NewManageSlot(repo domain.Repository, cache Invalidator, audit *audit.Dispatcher) *ManageSlot {
	return &ManageSlot{repo: repo, cache: cache, audit: audit}
}

func (uc *ManageSlot) Delete(ctx context.Context, masterID, userID, slotID uint) error {
	if err := uc.repo.DeleteAvailableSlot(ctx, masterID, slotID); err != nil {
		return err
	}

	invalidate(ctx, uc.cache, masterID)
	uc.dispatch(masterID, userID, slotID, "slot_deleted")
	return nil
}

func (uc *ManageSlot) Block(ctx context.Context, masterID, userID, slotID uint) (*models.Slot, error) {
	return uc.change(ctx, masterID, userID, slotID, models.SlotAvailable, models.SlotBlocked, "slot_blocked")
}

func (uc *ManageSlot) Unblock(ctx context.Context, masterID, userID, slotID uint) (*models.Slot, error) {
	return uc.change(ctx, masterID, userID, slotID, models.SlotBlocked, models.SlotAvailable, "slot_unblocked")
}

func (uc *ManageSlot) change(
	ctx context.Context,
	masterID, userID, slotID uint,
	from, to string,
	action string,
) (*models.Slot, error) {

	if err := domain.Transition(from, to); err != nil {
		return nil, err
	}

	slot, err := uc.repo.ChangeSlotStatus(ctx, masterID, slotID, from, to)
	if err != nil {
		return nil, err
	}

	invalidate(ctx, uc.cache, masterID)
	uc.dispatch(masterID, userID, slotID, action)
	return slot, nil
}

func (uc *ManageSlot) dispatch(masterID, userID, slotID uint, action string) {
	uc.audit.Dispatch(audit.Event{
		MasterID: masterID,
		UserID:   &userID,
		Action:   action,
		Entity:   "slot",
		EntityID: &slotID,
	})
}

func invalidate(ctx context.Context, cache Invalidator, masterID uint) {
	if cache == nil {
		return
	}
	if err := cache.Invalidate(ctx, masterID); err != nil {
		log.Printf("[CACHE] invalidate master_id=%d error=%v", masterID, err)
	}
}
