package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/master-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/master-scheduler/internal/models"
)

var day = time.Date(2030, 3, 4, 9, 0, 0, 0, time.UTC)

func TestInTx_AbortDiscardsWrites(t *testing.T) {
	s := NewStore()
	slots := s.AddSlots(1, day, 30*time.Minute, 2)

	boom := errors.New("boom")
	err := s.InTx(context.Background(), func(tx domain.Tx) error {
		if _, err := tx.LockSlot(context.Background(), 1, slots[0].ID); err != nil {
			return err
		}
		b := &models.Booking{MasterID: 1, Reference: "r-1", Status: models.BookingCreated}
		if err := tx.CreateBooking(context.Background(), b, slots); err != nil {
			return err
		}
		return boom
	})

	require.ErrorIs(t, err, boom)
	assert.Equal(t, 0, s.BookingCount())
	assert.Equal(t, models.SlotAvailable, s.Slot(slots[0].ID).Status)
	assert.Equal(t, 0, s.ActiveLinks(slots[0].ID))
}

func TestInTx_CommitAppliesRunAndLinks(t *testing.T) {
	s := NewStore()
	slots := s.AddSlots(1, day, 30*time.Minute, 2)

	err := s.InTx(context.Background(), func(tx domain.Tx) error {
		if _, err := tx.LockSlot(context.Background(), 1, slots[0].ID); err != nil {
			return err
		}
		b := &models.Booking{MasterID: 1, Reference: "r-1", Status: models.BookingCreated}
		return tx.CreateBooking(context.Background(), b, slots)
	})
	require.NoError(t, err)

	for _, sl := range slots {
		assert.Equal(t, models.SlotBooked, s.Slot(sl.ID).Status)
		assert.Equal(t, 1, s.ActiveLinks(sl.ID))
	}

	got, err := s.GetBookingByReference(context.Background(), "r-1")
	require.NoError(t, err)
	require.Len(t, got.Slots, 2)
	assert.Equal(t, slots[0].ID, got.Slots[0].ID)
	assert.Equal(t, slots[1].ID, got.Slots[1].ID)
}

func TestLockSlot_WaitHonoursContext(t *testing.T) {
	s := NewStore()
	slots := s.AddSlots(1, day, 30*time.Minute, 1)

	locked := make(chan struct{})
	done := make(chan struct{})

	go func() {
		_ = s.InTx(context.Background(), func(tx domain.Tx) error {
			if _, err := tx.LockSlot(context.Background(), 1, slots[0].ID); err != nil {
				return err
			}
			close(locked)
			<-done
			return nil
		})
	}()
	<-locked
	defer close(done)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := s.InTx(ctx, func(tx domain.Tx) error {
		_, err := tx.LockSlot(ctx, 1, slots[0].ID)
		return err
	})
	assert.ErrorIs(t, err, domain.ErrSlotConflict)
}

func TestLockSlot_OtherMasterIsNotFound(t *testing.T) {
	s := NewStore()
	slots := s.AddSlots(1, day, 30*time.Minute, 1)

	err := s.InTx(context.Background(), func(tx domain.Tx) error {
		_, err := tx.LockSlot(context.Background(), 2, slots[0].ID)
		return err
	})
	assert.ErrorIs(t, err, domain.ErrSlotNotFound)
}

func TestListAvailableSlots_SkipsBookedAndOrders(t *testing.T) {
	s := NewStore()
	slots := s.AddSlots(1, day, 30*time.Minute, 3)
	s.SetSlotStatus(slots[1].ID, models.SlotBlocked)

	got, err := s.ListAvailableSlots(context.Background(), 1, day, day.Add(2*time.Hour))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, slots[0].ID, got[0].ID)
	assert.Equal(t, slots[2].ID, got[1].ID)
}
