package schedule

import (
	"context"
	"time"

	"github.com/BruksfildServices01/master-scheduler/internal/models"
)

type Repository interface {
	GetProfile(ctx context.Context, masterID uint) (*models.MasterProfile, error)

	ListSlots(ctx context.Context, masterID uint, from time.Time, to *time.Time) ([]models.Slot, error)

	// CreateSlots skips slots whose (master, start) already exists and
	// returns how many rows were inserted.
	CreateSlots(ctx context.Context, slots []models.Slot) (int64, error)

	// DeleteAvailableSlot removes an AVAILABLE slot of the master.
	DeleteAvailableSlot(ctx context.Context, masterID uint, slotID uint) error

	// ChangeSlotStatus moves a slot from one status to another under a row
	// lock and returns the updated slot.
	ChangeSlotStatus(
		ctx context.Context,
		masterID uint,
		slotID uint,
		from string,
		to string,
	) (*models.Slot, error)
}
