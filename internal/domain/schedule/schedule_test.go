package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/master-scheduler/internal/models"
)

func TestGenerateDay(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	slots, err := GenerateDay(1, "2030-03-04", "09:00", "11:00", 30, loc)
	require.NoError(t, err)
	require.Len(t, slots, 4)

	assert.Equal(t, time.Date(2030, 3, 4, 9, 0, 0, 0, loc), slots[0].StartAt)
	assert.Equal(t, time.Date(2030, 3, 4, 11, 0, 0, 0, loc), slots[3].EndAt)
	for i := 1; i < len(slots); i++ {
		assert.True(t, slots[i].StartAt.Equal(slots[i-1].EndAt))
		assert.Equal(t, models.SlotAvailable, slots[i].Status)
	}
}

func TestGenerateDay_DropsShortTail(t *testing.T) {
	slots, err := GenerateDay(1, "2030-03-04", "09:00", "10:10", 30, time.UTC)
	require.NoError(t, err)
	assert.Len(t, slots, 2)
}

func TestGenerateDay_Rejects(t *testing.T) {
	cases := []struct {
		name     string
		date     string
		start    string
		end      string
		duration int
		want     error
	}{
		{"too short", "2030-03-04", "09:00", "10:00", 10, ErrInvalidDuration},
		{"too long", "2030-03-04", "09:00", "23:00", 481, ErrInvalidDuration},
		{"bad date", "04.03.2030", "09:00", "10:00", 30, ErrInvalidDate},
		{"bad time", "2030-03-04", "9am", "10:00", 30, ErrInvalidTime},
		{"start equals end", "2030-03-04", "10:00", "10:00", 30, ErrInvalidRange},
		{"start after end", "2030-03-04", "11:00", "10:00", 30, ErrInvalidRange},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := GenerateDay(1, tc.date, tc.start, tc.end, tc.duration, time.UTC)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestTransition(t *testing.T) {
	assert.NoError(t, Transition(models.SlotAvailable, models.SlotBlocked))
	assert.NoError(t, Transition(models.SlotBlocked, models.SlotAvailable))
	assert.ErrorIs(t, Transition(models.SlotBooked, models.SlotAvailable), ErrSlotNotEditable)
	assert.ErrorIs(t, Transition(models.SlotBooked, models.SlotBlocked), ErrSlotNotEditable)
	assert.ErrorIs(t, Transition(models.SlotBlocked, models.SlotBlocked), ErrSlotNotEditable)
}

func TestWithoutBreak(t *testing.T) {
	slots, err := GenerateDay(1, "2030-03-04", "09:00", "13:00", 60, time.UTC)
	require.NoError(t, err)

	kept, err := WithoutBreak(slots, "2030-03-04", "11:30", "12:00", time.UTC)
	require.NoError(t, err)

	require.Len(t, kept, 3)
	assert.Equal(t, 9, kept[0].StartAt.Hour())
	assert.Equal(t, 10, kept[1].StartAt.Hour())
	assert.Equal(t, 12, kept[2].StartAt.Hour())
}

func TestWithoutBreak_NoPause(t *testing.T) {
	slots, err := GenerateDay(1, "2030-03-04", "09:00", "10:00", 30, time.UTC)
	require.NoError(t, err)

	kept, err := WithoutBreak(slots, "2030-03-04", "", "", time.UTC)
	require.NoError(t, err)
	assert.Len(t, kept, 2)

	_, err = WithoutBreak(slots, "2030-03-04", "12:00", "", time.UTC)
	assert.ErrorIs(t, err, ErrInvalidBreak)

	_, err = WithoutBreak(slots, "2030-03-04", "13:00", "12:00", time.UTC)
	assert.ErrorIs(t, err, ErrInvalidBreak)
}
