package booking

import (
	"context"
	"log"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/master-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/master-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/master-scheduler/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	MasterID  uint
	ServiceID uint
	SlotID    uint

	ClientName  string
	ClientPhone string
	Notes       string
}

// ======================================================
// USE CASE
// ======================================================

// CreateBooking reserves the anchor slot plus as many directly following
// slots as the service needs, all or nothing.
type CreateBooking struct {
	repo  domain.Repository
	cache AvailabilityCache
	audit *audit.Dispatcher

	newReference func() string
}

func NewCreateBooking(
	repo domain.Repository,
	cache AvailabilityCache,
	audit *audit.Dispatcher,
) *CreateBooking {
	return &CreateBooking{
		repo:         repo,
		cache:        cache,
		audit:        audit,
		newReference: uuid.NewString,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Booking, error) {

	// --------------------------------------------------
	// 1. Service
	// --------------------------------------------------
	service, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		return nil, err
	}
	if !service.Active {
		return nil, domain.ErrServiceInactive
	}

	// --------------------------------------------------
	// 2. Lock, resolve and reserve the run
	// --------------------------------------------------
	var created *models.Booking

	err = uc.repo.InTx(ctx, func(tx domain.Tx) error {
		anchor, err := tx.LockSlot(ctx, in.MasterID, in.SlotID)
		if err != nil {
			return err
		}
		if !anchor.IsAvailable() {
			return domain.ErrSlotUnavailable
		}
		if service.MasterID != anchor.MasterID {
			return domain.ErrOwnerMismatch
		}

		needed := domain.SlotsNeeded(service.Duration(), anchor.Duration())

		candidates := []models.Slot{*anchor}
		if needed > 1 {
			after, until := domain.ExtensionWindow(anchor, needed)

			following, err := tx.LockAvailableSlots(ctx, anchor.MasterID, after, until)
			if err != nil {
				return err
			}
			candidates = append(candidates, following...)
		}

		run, err := domain.ResolveRun(candidates, 0, needed)
		if err != nil {
			return err
		}

		b := &models.Booking{
			Reference:    uc.newReference(),
			MasterID:     anchor.MasterID,
			ServiceID:    service.ID,
			AnchorSlotID: anchor.ID,
			ClientName:   in.ClientName,
			ClientPhone:  in.ClientPhone,
			Notes:        in.Notes,
			Status:       string(domain.InitialStatus()),
		}

		if err := tx.CreateBooking(ctx, b, run); err != nil {
			return err
		}
		domain.Reserve(b.Slots)

		created = b
		return nil
	})

	if err != nil {
		if domain.IsSlotTaken(err) {
			log.Printf("[BOOKING] conflict master_id=%d slot_id=%d error=%v", in.MasterID, in.SlotID, err)

			uc.audit.Dispatch(audit.Event{
				MasterID: in.MasterID,
				Action:   "booking_conflict",
				Entity:   "slot",
				EntityID: &in.SlotID,
				Metadata: map[string]any{"service_id": in.ServiceID},
			})
		}
		return nil, err
	}

	// --------------------------------------------------
	// 3. After commit
	// --------------------------------------------------
	created.Service = *service
	invalidate(ctx, uc.cache, created.MasterID)

	uc.audit.Dispatch(audit.Event{
		MasterID: created.MasterID,
		Action:   "booking_created",
		Entity:   "booking",
		EntityID: &created.ID,
		Metadata: map[string]any{
			"reference": created.Reference,
			"slots":     len(created.Slots),
		},
	})

	log.Printf(
		"[BOOKING] created id=%d master_id=%d anchor_slot_id=%d slots=%d",
		created.ID, created.MasterID, created.AnchorSlotID, len(created.Slots),
	)

	return created, nil
}
