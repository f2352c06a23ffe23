package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/master-scheduler/internal/httperr"
	"github.com/BruksfildServices01/master-scheduler/internal/models"
	"github.com/BruksfildServices01/master-scheduler/internal/timezone"
)

// storagePrecision is the smallest step PostgreSQL timestamps keep.
const storagePrecision = time.Microsecond

func locationFromProfile(p *models.MasterProfile) *time.Location {
	if p == nil {
		return timezone.Location("")
	}
	return timezone.Location(p.Timezone)
}

// startOfDay parses YYYY-MM-DD as midnight in the master's timezone.
func startOfDay(p *models.MasterProfile, date string) (time.Time, error) {
	from, _, err := timezone.DayBounds(date, locationFromProfile(p))
	return from, err
}

// endOfDay parses YYYY-MM-DD as the last instant of that day in the
// master's timezone.
func endOfDay(p *models.MasterProfile, date string) (time.Time, error) {
	_, next, err := timezone.DayBounds(date, locationFromProfile(p))
	if err != nil {
		return time.Time{}, err
	}
	return next.Add(-storagePrecision), nil
}

// dateRange reads optional from/to query dates. A missing "from" falls back
// to the start of today and a missing "to" to the end of the day window
// later, both in the master's timezone, so bounds stay whole days.
func dateRange(
	c *gin.Context,
	p *models.MasterProfile,
	now time.Time,
	window time.Duration,
) (time.Time, time.Time, bool) {

	from, err := startOfDay(p, now.In(locationFromProfile(p)).Format("2006-01-02"))
	if err != nil {
		httperr.Internal(c, "internal_error", "Unexpected error.")
		return time.Time{}, time.Time{}, false
	}
	if s := c.Query("from"); s != "" {
		d, err := startOfDay(p, s)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Use YYYY-MM-DD for 'from'.")
			return time.Time{}, time.Time{}, false
		}
		from = d
	}

	lastDay := now.Add(window).In(locationFromProfile(p)).Format("2006-01-02")
	if s := c.Query("to"); s != "" {
		lastDay = s
	}
	to, err := endOfDay(p, lastDay)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Use YYYY-MM-DD for 'to'.")
		return time.Time{}, time.Time{}, false
	}

	if to.Before(from) {
		httperr.BadRequest(c, "invalid_range", "'from' must not be after 'to'.")
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_id", "Invalid id.")
		return 0, false
	}
	return uint(id), true
}

func parseIDQuery(c *gin.Context, name string) (uint, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_"+name, "Invalid "+name+".")
		return 0, false
	}
	return uint(id), true
}
