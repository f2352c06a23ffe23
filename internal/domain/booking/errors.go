package booking

import (
	"errors"
	"fmt"

	"github.com/BruksfildServices01/master-scheduler/internal/httperr"
)

var (
	ErrSlotUnavailable = httperr.ErrBusiness("slot_unavailable")
	ErrOwnerMismatch   = httperr.ErrBusiness("owner_mismatch")
	ErrSlotConflict    = httperr.ErrBusiness("slot_conflict")
	ErrServiceInactive = httperr.ErrBusiness("service_inactive")

	ErrSlotNotFound    = httperr.ErrBusiness("slot_not_found")
	ErrServiceNotFound = httperr.ErrBusiness("service_not_found")
	ErrBookingNotFound = httperr.ErrBusiness("booking_not_found")
	ErrMasterNotFound  = httperr.ErrBusiness("master_not_found")
)

// InsufficientRunError is returned when fewer contiguous available slots
// follow the anchor than the service needs.
type InsufficientRunError struct {
	Needed int
	Found  int
}

func (e InsufficientRunError) Error() string {
	return fmt.Sprintf("insufficient_run: needed %d, found %d", e.Needed, e.Found)
}

func IsInsufficientRun(err error) (InsufficientRunError, bool) {
	var runErr InsufficientRunError
	ok := errors.As(err, &runErr)
	return runErr, ok
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrSlotNotFound) ||
		errors.Is(err, ErrServiceNotFound) ||
		errors.Is(err, ErrBookingNotFound) ||
		errors.Is(err, ErrMasterNotFound)
}

// IsSlotTaken groups the errors a client sees as "slot just taken".
func IsSlotTaken(err error) bool {
	return errors.Is(err, ErrSlotUnavailable) || errors.Is(err, ErrSlotConflict)
}
