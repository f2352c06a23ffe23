package schedule

import (
	"github.com/BruksfildServices01/master-scheduler/internal/httperr"
	"github.com/BruksfildServices01/master-scheduler/internal/models"
)

var (
	ErrSlotNotFound = httperr.ErrBusiness("slot_not_found")

	// ErrSlotNotEditable is returned when a slot is not in the state the
	// change requires. BOOKED slots are only released by cancelling.
	ErrSlotNotEditable = httperr.ErrBusiness("slot_not_editable")
)

// Transition checks a manual status change of a slot.
func Transition(current, target string) error {
	switch {
	case current == models.SlotAvailable && target == models.SlotBlocked:
		return nil
	case current == models.SlotBlocked && target == models.SlotAvailable:
		return nil
	default:
		return ErrSlotNotEditable
	}
}
