package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/master-scheduler/internal/models"
)

var day = time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)

func slotAt(id uint, master uint, start time.Time, minutes int, status string) models.Slot {
	return models.Slot{
		ID:       id,
		MasterID: master,
		StartAt:  start,
		EndAt:    start.Add(time.Duration(minutes) * time.Minute),
		Status:   status,
	}
}

func contiguousSlots(n int, minutes int) []models.Slot {
	out := make([]models.Slot, 0, n)
	for i := 0; i < n; i++ {
		start := day.Add(time.Duration(i*minutes) * time.Minute)
		out = append(out, slotAt(uint(i+1), 1, start, minutes, models.SlotAvailable))
	}
	return out
}

func ids(slots []models.Slot) []uint {
	out := make([]uint, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.ID)
	}
	return out
}

func TestSlotsNeeded(t *testing.T) {
	cases := []struct {
		service time.Duration
		unit    time.Duration
		want    int
	}{
		{30 * time.Minute, 30 * time.Minute, 1},
		{60 * time.Minute, 30 * time.Minute, 2},
		{90 * time.Minute, 30 * time.Minute, 3},
		{45 * time.Minute, 30 * time.Minute, 2},
		{20 * time.Minute, 30 * time.Minute, 1},
		{0, 30 * time.Minute, 1},
		{60 * time.Minute, 0, 1},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, SlotsNeeded(tc.service, tc.unit), "%s / %s", tc.service, tc.unit)
	}
}

func TestResolveRun_CollectsContiguousRun(t *testing.T) {
	slots := contiguousSlots(4, 30)

	run, err := ResolveRun(slots, 0, 3)
	require.NoError(t, err)
	assert.Equal(t, []uint{1, 2, 3}, ids(run))

	for i := 1; i < len(run); i++ {
		assert.True(t, run[i].StartAt.Equal(run[i-1].EndAt))
	}
}

func TestResolveRun_FromMiddleAnchor(t *testing.T) {
	slots := contiguousSlots(4, 30)

	run, err := ResolveRun(slots, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, []uint{3, 4}, ids(run))
}

func TestResolveRun_SingleSlot(t *testing.T) {
	slots := contiguousSlots(1, 30)

	run, err := ResolveRun(slots, 0, 1)
	require.NoError(t, err)
	assert.Equal(t, []uint{1}, ids(run))
}

func TestResolveRun_StopsOnBreaks(t *testing.T) {
	cases := []struct {
		name   string
		second models.Slot
	}{
		{"gap", slotAt(2, 1, day.Add(60*time.Minute), 30, models.SlotAvailable)},
		{"overlap", slotAt(2, 1, day.Add(15*time.Minute), 30, models.SlotAvailable)},
		{"booked", slotAt(2, 1, day.Add(30*time.Minute), 30, models.SlotBooked)},
		{"blocked", slotAt(2, 1, day.Add(30*time.Minute), 30, models.SlotBlocked)},
		{"other master", slotAt(2, 2, day.Add(30*time.Minute), 30, models.SlotAvailable)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			slots := []models.Slot{
				slotAt(1, 1, day, 30, models.SlotAvailable),
				tc.second,
				slotAt(3, 1, day.Add(60*time.Minute), 30, models.SlotAvailable),
			}

			run, err := ResolveRun(slots, 0, 2)
			assert.Nil(t, run)

			runErr, ok := IsInsufficientRun(err)
			require.True(t, ok)
			assert.Equal(t, 2, runErr.Needed)
			assert.Equal(t, 1, runErr.Found)
		})
	}
}

func TestResolveRun_NotEnoughSlots(t *testing.T) {
	_, err := ResolveRun(contiguousSlots(1, 30), 0, 2)

	runErr, ok := IsInsufficientRun(err)
	require.True(t, ok)
	assert.Equal(t, InsufficientRunError{Needed: 2, Found: 1}, runErr)
}

func TestResolveRun_BadAnchorIndex(t *testing.T) {
	_, err := ResolveRun(contiguousSlots(2, 30), 5, 1)

	_, ok := IsInsufficientRun(err)
	assert.True(t, ok)
}

func TestExtensionWindow(t *testing.T) {
	anchor := slotAt(1, 1, day, 30, models.SlotAvailable)

	after, until := ExtensionWindow(&anchor, 3)
	assert.True(t, after.Equal(day))
	assert.True(t, until.Equal(day.Add(60*time.Minute)))
}

func TestFilterBookable_SingleSlotReturnsInput(t *testing.T) {
	slots := contiguousSlots(3, 30)

	got := FilterBookable(slots, 1)
	assert.Len(t, got, 3)
	assert.Equal(t, ids(slots), ids(got))
}

func TestFilterBookable_RunOfFourGivesTwoStartsOfThree(t *testing.T) {
	slots := contiguousSlots(4, 30)

	got := FilterBookable(slots, 3)
	assert.Equal(t, []uint{1, 2}, ids(got))
}

func TestFilterBookable_GapBreaksContiguity(t *testing.T) {
	slots := []models.Slot{
		slotAt(1, 1, day, 30, models.SlotAvailable),
		slotAt(2, 1, day.Add(60*time.Minute), 30, models.SlotAvailable),
	}

	got := FilterBookable(slots, 2)
	assert.Empty(t, got)
}

func TestFilterBookable_TwoIslands(t *testing.T) {
	slots := []models.Slot{
		slotAt(1, 1, day, 30, models.SlotAvailable),
		slotAt(2, 1, day.Add(30*time.Minute), 30, models.SlotAvailable),
		slotAt(3, 1, day.Add(120*time.Minute), 30, models.SlotAvailable),
		slotAt(4, 1, day.Add(150*time.Minute), 30, models.SlotAvailable),
		slotAt(5, 1, day.Add(180*time.Minute), 30, models.SlotAvailable),
	}

	got := FilterBookable(slots, 2)
	assert.Equal(t, []uint{1, 3, 4}, ids(got))
}

func TestCancel(t *testing.T) {
	b := &models.Booking{
		Status: models.BookingCreated,
		Slots:  contiguousSlots(3, 30),
	}
	Reserve(b.Slots)

	now := day.Add(time.Hour)
	require.NoError(t, Cancel(b, now))

	assert.Equal(t, models.BookingCancelled, b.Status)
	require.NotNil(t, b.CancelledAt)
	for _, s := range b.Slots {
		assert.Equal(t, models.SlotAvailable, s.Status)
	}

	assert.ErrorIs(t, Cancel(b, now), ErrBookingNotFound)
}
