package booking

import (
	"time"

	"github.com/BruksfildServices01/master-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Cancel moves a live booking to CANCELLED and frees every slot of its run.
func Cancel(b *models.Booking, now time.Time) error {
	if err := CanCancel(Status(b.Status)); err != nil {
		return err
	}

	b.Status = string(StatusCancelled)
	b.CancelledAt = &now
	for i := range b.Slots {
		b.Slots[i].Status = models.SlotAvailable
	}
	return nil
}

// Reserve flips every slot of a resolved run to BOOKED.
func Reserve(run []models.Slot) {
	for i := range run {
		run[i].Status = models.SlotBooked
	}
}
