package booking

import (
	"time"

	"github.com/BruksfildServices01/master-scheduler/internal/models"
)

// SlotsNeeded returns how many atomic slots of length unit cover a service
// of the given length. The result is at least 1; leftover minutes in the
// last slot are simply unused.
func SlotsNeeded(service, unit time.Duration) int {
	if unit <= 0 || service <= unit {
		return 1
	}
	return int((service + unit - 1) / unit)
}

// Contiguous reports whether next starts exactly where prev ends.
func Contiguous(prev, next *models.Slot) bool {
	return next.StartAt.Equal(prev.EndAt)
}

// ResolveRun walks candidates from anchorIndex in ascending start order and
// collects the anchor plus following slots while each one starts exactly at
// the previous member's end, is AVAILABLE and has the anchor's owner.
// The anchor's own status is the caller's concern.
func ResolveRun(candidates []models.Slot, anchorIndex, needed int) ([]models.Slot, error) {
	if anchorIndex < 0 || anchorIndex >= len(candidates) {
		return nil, InsufficientRunError{Needed: needed, Found: 0}
	}
	if needed < 1 {
		needed = 1
	}

	anchor := candidates[anchorIndex]
	run := make([]models.Slot, 0, needed)
	run = append(run, anchor)

	for i := anchorIndex + 1; i < len(candidates) && len(run) < needed; i++ {
		next := candidates[i]
		prev := run[len(run)-1]

		if !Contiguous(&prev, &next) || !next.IsAvailable() || next.MasterID != anchor.MasterID {
			break
		}
		run = append(run, next)
	}

	if len(run) < needed {
		return nil, InsufficientRunError{Needed: needed, Found: len(run)}
	}
	return run, nil
}

// ExtensionWindow is the start-time range, (after, until], in which the
// slots following the anchor of a run of the given length must start.
func ExtensionWindow(anchor *models.Slot, needed int) (after, until time.Time) {
	unit := anchor.Duration()
	return anchor.StartAt, anchor.StartAt.Add(time.Duration(needed-1) * unit)
}

// FilterBookable keeps the slots that can start a run of slotsNeeded
// contiguous slots. Input must be the ascending AVAILABLE slots of one
// master. The answer is advisory; booking re-validates under lock.
func FilterBookable(slots []models.Slot, slotsNeeded int) []models.Slot {
	if slotsNeeded <= 1 {
		return slots
	}

	bookable := make([]models.Slot, 0, len(slots))
	for i := range slots {
		streak := 1
		for j := i + 1; j < len(slots) && j < i+slotsNeeded; j++ {
			if !Contiguous(&slots[j-1], &slots[j]) {
				break
			}
			streak++
		}
		if streak >= slotsNeeded {
			bookable = append(bookable, slots[i])
		}
	}
	return bookable
}
