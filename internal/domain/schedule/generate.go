package schedule

import (
	"time"

	"github.com/BruksfildServices01/master-scheduler/internal/httperr"
	"github.com/BruksfildServices01/master-scheduler/internal/models"
)

const (
	MinSlotMinutes = 15
	MaxSlotMinutes = 480
)

var (
	ErrInvalidDate     = httperr.ErrBusiness("invalid_date")
	ErrInvalidTime     = httperr.ErrBusiness("invalid_time")
	ErrInvalidRange    = httperr.ErrBusiness("invalid_time_range")
	ErrInvalidDuration = httperr.ErrBusiness("invalid_slot_duration")
)

// GenerateDay cuts [start, end) of one calendar day in loc into back-to-back
// AVAILABLE slots of durationMin minutes. A trailing piece shorter than the
// duration is dropped.
func GenerateDay(
	masterID uint,
	date string,
	start string,
	end string,
	durationMin int,
	loc *time.Location,
) ([]models.Slot, error) {

	if durationMin < MinSlotMinutes || durationMin > MaxSlotMinutes {
		return nil, ErrInvalidDuration
	}

	if _, err := time.ParseInLocation("2006-01-02", date, loc); err != nil {
		return nil, ErrInvalidDate
	}

	dayStart, err := time.ParseInLocation("2006-01-02 15:04", date+" "+start, loc)
	if err != nil {
		return nil, ErrInvalidTime
	}
	dayEnd, err := time.ParseInLocation("2006-01-02 15:04", date+" "+end, loc)
	if err != nil {
		return nil, ErrInvalidTime
	}

	if !dayStart.Before(dayEnd) {
		return nil, ErrInvalidRange
	}

	step := time.Duration(durationMin) * time.Minute

	var slots []models.Slot
	for cur := dayStart; !cur.Add(step).After(dayEnd); cur = cur.Add(step) {
		slots = append(slots, models.Slot{
			MasterID: masterID,
			StartAt:  cur,
			EndAt:    cur.Add(step),
			Status:   models.SlotAvailable,
		})
	}
	return slots, nil
}
