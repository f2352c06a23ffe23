package booking

import (
	"context"
	"time"

	"github.com/BruksfildServices01/master-scheduler/internal/models"
)

// Repository is the storage contract of the booking engine. Reads outside
// InTx take no locks.
type Repository interface {
	// -------- Read path --------
	GetProfileBySlug(ctx context.Context, slug string) (*models.MasterProfile, error)

	// ListMasters returns every master profile ordered by display name. With
	// availableFrom set, only masters owning an AVAILABLE slot that starts at
	// or after it are returned.
	ListMasters(ctx context.Context, availableFrom *time.Time) ([]models.MasterProfile, error)

	// GetService is not scoped to a master; ownership is checked against the
	// anchor slot under lock.
	GetService(ctx context.Context, serviceID uint) (*models.Service, error)

	ListAvailableSlots(
		ctx context.Context,
		masterID uint,
		from time.Time,
		to time.Time,
	) ([]models.Slot, error)

	ListBookings(ctx context.Context, masterID uint, status Status) ([]models.Booking, error)

	GetBooking(ctx context.Context, masterID uint, bookingID uint) (*models.Booking, error)

	GetBookingByReference(ctx context.Context, reference string) (*models.Booking, error)

	// -------- Unit of work --------

	// InTx runs fn in one atomic unit of work. Locks taken through Tx are
	// held until fn returns; a non-nil error discards every change.
	InTx(ctx context.Context, fn func(tx Tx) error) error
}

// Tx is the locked view of the slot pool inside one unit of work.
type Tx interface {
	// LockSlot locks one slot of the master exclusively.
	LockSlot(ctx context.Context, masterID uint, slotID uint) (*models.Slot, error)

	// LockAvailableSlots locks the master's AVAILABLE slots starting in
	// (after, until], ordered by start ascending.
	LockAvailableSlots(
		ctx context.Context,
		masterID uint,
		after time.Time,
		until time.Time,
	) ([]models.Slot, error)

	// CreateBooking inserts b, marks the run BOOKED and links it to b in order.
	CreateBooking(ctx context.Context, b *models.Booking, run []models.Slot) error

	LockBooking(ctx context.Context, masterID uint, bookingID uint) (*models.Booking, error)

	LockBookingByReference(ctx context.Context, reference string) (*models.Booking, error)

	// ReleaseBooking persists a cancelled booking: its linked slots become
	// AVAILABLE and the links stop being active.
	ReleaseBooking(ctx context.Context, b *models.Booking) error
}
