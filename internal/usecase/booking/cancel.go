package booking

import (
	"context"
	"log"
	"time"

	"github.com/BruksfildServices01/master-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/master-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/master-scheduler/internal/models"
)

// CancelBooking moves a CREATED booking to CANCELLED and frees its whole
// run in one unit of work.
type CancelBooking struct {
	repo  domain.Repository
	cache AvailabilityCache
	audit *audit.Dispatcher

	now func() time.Time
}

func NewCancelBooking(
	repo domain.Repository,
	cache AvailabilityCache,
	audit *audit.Dispatcher,
) *CancelBooking {
	return &CancelBooking{
		repo:  repo,
		cache: cache,
		audit: audit,
		now:   time.Now,
	}
}

// Execute cancels on behalf of the master owning the booking.
func (uc *CancelBooking) Execute(
	ctx context.Context,
	masterID uint,
	userID uint,
	bookingID uint,
) (*models.Booking, error) {

	return uc.cancel(ctx, &userID, func(tx domain.Tx) (*models.Booking, error) {
		return tx.LockBooking(ctx, masterID, bookingID)
	})
}

// ExecuteByReference cancels on behalf of the client holding the reference.
func (uc *CancelBooking) ExecuteByReference(
	ctx context.Context,
	reference string,
) (*models.Booking, error) {

	return uc.cancel(ctx, nil, func(tx domain.Tx) (*models.Booking, error) {
		return tx.LockBookingByReference(ctx, reference)
	})
}

func (uc *CancelBooking) cancel(
	ctx context.Context,
	userID *uint,
	lock func(tx domain.Tx) (*models.Booking, error),
) (*models.Booking, error) {

	var cancelled *models.Booking

	err := uc.repo.InTx(ctx, func(tx domain.Tx) error {
		b, err := lock(tx)
		if err != nil {
			return err
		}

		if err := domain.Cancel(b, uc.now()); err != nil {
			return err
		}

		if err := tx.ReleaseBooking(ctx, b); err != nil {
			return err
		}

		cancelled = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	invalidate(ctx, uc.cache, cancelled.MasterID)

	uc.audit.Dispatch(audit.Event{
		MasterID: cancelled.MasterID,
		UserID:   userID,
		Action:   "booking_cancelled",
		Entity:   "booking",
		EntityID: &cancelled.ID,
		Metadata: map[string]any{
			"reference": cancelled.Reference,
			"released":  len(cancelled.Slots),
		},
	})

	log.Printf(
		"[BOOKING] cancelled id=%d master_id=%d released=%d",
		cancelled.ID, cancelled.MasterID, len(cancelled.Slots),
	)

	if fresh, err := uc.repo.GetBooking(ctx, cancelled.MasterID, cancelled.ID); err == nil {
		return fresh, nil
	}
	return cancelled, nil
}
