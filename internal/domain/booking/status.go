package booking

import "github.com/BruksfildServices01/master-scheduler/internal/models"

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusCreated   Status = models.BookingCreated
	StatusCancelled Status = models.BookingCancelled
)

func (s Status) Valid() bool {
	return s == StatusCreated || s == StatusCancelled
}

// CanCancel reports whether a booking in the given status may be cancelled.
// A cancelled booking is terminal and is reported as not found.
func CanCancel(current Status) error {
	if current != StatusCreated {
		return ErrBookingNotFound
	}
	return nil
}

func InitialStatus() Status {
	return StatusCreated
}
