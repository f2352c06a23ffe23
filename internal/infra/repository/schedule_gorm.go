package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	bookingdomain "github.com/BruksfildServices01/master-scheduler/internal/domain/booking"
	domain "github.com/BruksfildServices01/master-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/master-scheduler/internal/models"
)

type ScheduleGormRepository struct {
	db *gorm.DB
}

func NewScheduleGormRepository(db *gorm.DB) *ScheduleGormRepository {
	return &ScheduleGormRepository{db: db}
}

func (r *ScheduleGormRepository) GetProfile(ctx context.Context, masterID uint) (*models.MasterProfile, error) {
	var profile models.MasterProfile
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", masterID).
		First(&profile).Error; err != nil {
		return nil, notFound(err, bookingdomain.ErrMasterNotFound)
	}
	return &profile, nil
}

func (r *ScheduleGormRepository) ListSlots(
	ctx context.Context,
	masterID uint,
	from time.Time,
	to *time.Time,
) ([]models.Slot, error) {

	q := r.db.WithContext(ctx).
		Where("master_id = ? AND start_at >= ?", masterID, from)

	if to != nil {
		q = q.Where("start_at <= ?", *to)
	}

	var slots []models.Slot
	if err := q.Order("start_at ASC").Find(&slots).Error; err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *ScheduleGormRepository) CreateSlots(ctx context.Context, slots []models.Slot) (int64, error) {
	if len(slots) == 0 {
		return 0, nil
	}

	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "master_id"}, {Name: "start_at"}},
			DoNothing: true,
		}).
		Create(&slots)

	return res.RowsAffected, res.Error
}

func (r *ScheduleGormRepository) DeleteAvailableSlot(ctx context.Context, masterID uint, slotID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		slot, err := lockOwnSlot(tx, masterID, slotID)
		if err != nil {
			return err
		}
		if !slot.IsAvailable() {
			return domain.ErrSlotNotEditable
		}
		return tx.Delete(&models.Slot{}, slot.ID).Error
	})
}

func (r *ScheduleGormRepository) ChangeSlotStatus(
	ctx context.Context,
	masterID uint,
	slotID uint,
	from string,
	to string,
) (*models.Slot, error) {

	var out *models.Slot

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		slot, err := lockOwnSlot(tx, masterID, slotID)
		if err != nil {
			return err
		}
		if slot.Status != from {
			return domain.ErrSlotNotEditable
		}

		if err := tx.Model(slot).Update("status", to).Error; err != nil {
			return err
		}
		slot.Status = to

		out = slot
		return nil
	})

	return out, err
}

func lockOwnSlot(tx *gorm.DB, masterID, slotID uint) (*models.Slot, error) {
	var slot models.Slot
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND master_id = ?", slotID, masterID).
		First(&slot).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrSlotNotFound
	}
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

var _ domain.Repository = (*ScheduleGormRepository)(nil)
