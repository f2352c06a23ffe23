package schedule

import (
	"time"

	"github.com/BruksfildServices01/master-scheduler/internal/httperr"
	"github.com/BruksfildServices01/master-scheduler/internal/models"
)

var ErrInvalidBreak = httperr.ErrBusiness("invalid_break")

// WithoutBreak drops the slots that overlap the [breakStart, breakEnd) pause
// of the given day. Empty bounds mean no pause.
func WithoutBreak(
	slots []models.Slot,
	date string,
	breakStart string,
	breakEnd string,
	loc *time.Location,
) ([]models.Slot, error) {

	if breakStart == "" && breakEnd == "" {
		return slots, nil
	}

	from, err := time.ParseInLocation("2006-01-02 15:04", date+" "+breakStart, loc)
	if err != nil {
		return nil, ErrInvalidBreak
	}
	to, err := time.ParseInLocation("2006-01-02 15:04", date+" "+breakEnd, loc)
	if err != nil {
		return nil, ErrInvalidBreak
	}
	if !from.Before(to) {
		return nil, ErrInvalidBreak
	}

	kept := slots[:0]
	for _, s := range slots {
		if s.StartAt.Before(to) && s.EndAt.After(from) {
			continue
		}
		kept = append(kept, s)
	}
	return kept, nil
}
