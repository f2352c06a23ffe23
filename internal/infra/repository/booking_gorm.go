package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/master-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/master-scheduler/internal/httperr"
	"github.com/BruksfildServices01/master-scheduler/internal/models"
)

// BookingGormRepository runs the booking engine on PostgreSQL under READ
// COMMITTED with pessimistic row locks (SELECT ... FOR UPDATE). The partial
// unique index on booking_slots(slot_id) WHERE active backs the locks.
type BookingGormRepository struct {
	db          *gorm.DB
	lockTimeout time.Duration
}

func NewBookingGormRepository(db *gorm.DB, lockTimeout time.Duration) *BookingGormRepository {
	return &BookingGormRepository{db: db, lockTimeout: lockTimeout}
}

// --------------------------------------------------
// Read path
// --------------------------------------------------

func (r *BookingGormRepository) GetProfileBySlug(
	ctx context.Context,
	slug string,
) (*models.MasterProfile, error) {

	var profile models.MasterProfile
	if err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&profile).Error; err != nil {
		return nil, notFound(err, domain.ErrMasterNotFound)
	}
	return &profile, nil
}

func (r *BookingGormRepository) ListMasters(
	ctx context.Context,
	availableFrom *time.Time,
) ([]models.MasterProfile, error) {

	q := r.db.WithContext(ctx).Model(&models.MasterProfile{})

	if availableFrom != nil {
		q = q.Where("EXISTS (?)",
			r.db.Model(&models.Slot{}).
				Select("1").
				Where(
					"slots.master_id = master_profiles.user_id AND slots.status = ? AND slots.start_at >= ?",
					models.SlotAvailable, *availableFrom,
				),
		)
	}

	var profiles []models.MasterProfile
	if err := q.Order("display_name ASC").Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *BookingGormRepository) GetService(
	ctx context.Context,
	serviceID uint,
) (*models.Service, error) {

	var service models.Service
	if err := r.db.WithContext(ctx).First(&service, serviceID).Error; err != nil {
		return nil, notFound(err, domain.ErrServiceNotFound)
	}
	return &service, nil
}

func (r *BookingGormRepository) ListAvailableSlots(
	ctx context.Context,
	masterID uint,
	from time.Time,
	to time.Time,
) ([]models.Slot, error) {

	var slots []models.Slot
	if err := r.db.WithContext(ctx).
		Where(
			"master_id = ? AND status = ? AND start_at >= ? AND start_at <= ?",
			masterID, models.SlotAvailable, from, to,
		).
		Order("start_at ASC").
		Find(&slots).Error; err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *BookingGormRepository) ListBookings(
	ctx context.Context,
	masterID uint,
	status domain.Status,
) ([]models.Booking, error) {

	q := r.db.WithContext(ctx).
		Preload("Service").
		Where("master_id = ?", masterID)

	if status != "" {
		q = q.Where("status = ?", string(status))
	}

	var bookings []models.Booking
	if err := q.Order("created_at DESC").Find(&bookings).Error; err != nil {
		return nil, err
	}

	if err := attachSlots(r.db.WithContext(ctx), bookings, false); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *BookingGormRepository) GetBooking(
	ctx context.Context,
	masterID uint,
	bookingID uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Service").
		Where("id = ? AND master_id = ?", bookingID, masterID).
		First(&b).Error; err != nil {
		return nil, notFound(err, domain.ErrBookingNotFound)
	}

	return r.withSlots(ctx, &b)
}

func (r *BookingGormRepository) GetBookingByReference(
	ctx context.Context,
	reference string,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Service").
		Where("reference = ?", reference).
		First(&b).Error; err != nil {
		return nil, notFound(err, domain.ErrBookingNotFound)
	}

	return r.withSlots(ctx, &b)
}

func (r *BookingGormRepository) withSlots(ctx context.Context, b *models.Booking) (*models.Booking, error) {
	list := []models.Booking{*b}
	if err := attachSlots(r.db.WithContext(ctx), list, false); err != nil {
		return nil, err
	}
	return &list[0], nil
}

// --------------------------------------------------
// Unit of work
// --------------------------------------------------

func (r *BookingGormRepository) InTx(ctx context.Context, fn func(tx domain.Tx) error) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if r.lockTimeout > 0 {
			stmt := fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", r.lockTimeout.Milliseconds())
			if err := tx.Exec(stmt).Error; err != nil {
				return err
			}
		}
		return fn(&gormTx{db: tx})
	})

	if err != nil && httperr.IsExclusionConflict(err) {
		return fmt.Errorf("%w: %v", domain.ErrSlotConflict, err)
	}
	return err
}

type gormTx struct {
	db *gorm.DB
}

func (t *gormTx) LockSlot(
	ctx context.Context,
	masterID uint,
	slotID uint,
) (*models.Slot, error) {

	var slot models.Slot
	if err := t.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND master_id = ?", slotID, masterID).
		First(&slot).Error; err != nil {
		return nil, notFound(err, domain.ErrSlotNotFound)
	}
	return &slot, nil
}

func (t *gormTx) LockAvailableSlots(
	ctx context.Context,
	masterID uint,
	after time.Time,
	until time.Time,
) ([]models.Slot, error) {

	var slots []models.Slot
	if err := t.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where(
			"master_id = ? AND status = ? AND start_at > ? AND start_at <= ?",
			masterID, models.SlotAvailable, after, until,
		).
		Order("start_at ASC").
		Find(&slots).Error; err != nil {
		return nil, err
	}
	return slots, nil
}

func (t *gormTx) CreateBooking(
	ctx context.Context,
	b *models.Booking,
	run []models.Slot,
) error {

	db := t.db.WithContext(ctx)

	if err := db.Omit(clause.Associations).Create(b).Error; err != nil {
		return err
	}

	ids := slotIDs(run)

	res := db.Model(&models.Slot{}).
		Where("id IN ? AND status = ?", ids, models.SlotAvailable).
		Update("status", models.SlotBooked)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected != int64(len(ids)) {
		return domain.ErrSlotConflict
	}

	links := make([]models.BookingSlot, 0, len(run))
	for i, s := range run {
		links = append(links, models.BookingSlot{
			BookingID: b.ID,
			SlotID:    s.ID,
			Position:  i,
			Active:    true,
		})
	}
	if err := db.Create(&links).Error; err != nil {
		return err
	}

	b.Slots = run
	return nil
}

func (t *gormTx) LockBooking(
	ctx context.Context,
	masterID uint,
	bookingID uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := t.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND master_id = ?", bookingID, masterID).
		First(&b).Error; err != nil {
		return nil, notFound(err, domain.ErrBookingNotFound)
	}
	return t.lockLinkedSlots(ctx, &b)
}

func (t *gormTx) LockBookingByReference(
	ctx context.Context,
	reference string,
) (*models.Booking, error) {

	var b models.Booking
	if err := t.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("reference = ?", reference).
		First(&b).Error; err != nil {
		return nil, notFound(err, domain.ErrBookingNotFound)
	}
	return t.lockLinkedSlots(ctx, &b)
}

// lockLinkedSlots locks the active run of b in ascending start order.
func (t *gormTx) lockLinkedSlots(ctx context.Context, b *models.Booking) (*models.Booking, error) {
	var slots []models.Slot
	if err := t.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id IN (?)",
			t.db.Model(&models.BookingSlot{}).
				Select("slot_id").
				Where("booking_id = ? AND active = ?", b.ID, true),
		).
		Order("start_at ASC").
		Find(&slots).Error; err != nil {
		return nil, err
	}

	b.Slots = slots
	return b, nil
}

func (t *gormTx) ReleaseBooking(ctx context.Context, b *models.Booking) error {
	db := t.db.WithContext(ctx)

	if ids := slotIDs(b.Slots); len(ids) > 0 {
		if err := db.Model(&models.Slot{}).
			Where("id IN ?", ids).
			Update("status", models.SlotAvailable).Error; err != nil {
			return err
		}
	}

	if err := db.Model(&models.BookingSlot{}).
		Where("booking_id = ? AND active = ?", b.ID, true).
		Update("active", false).Error; err != nil {
		return err
	}

	return db.Model(&models.Booking{}).
		Where("id = ?", b.ID).
		Updates(map[string]any{
			"status":       b.Status,
			"cancelled_at": b.CancelledAt,
		}).Error
}

// --------------------------------------------------
// Helpers
// --------------------------------------------------

// attachSlots fills Slots of every booking from booking_slots in run order.
func attachSlots(db *gorm.DB, bookings []models.Booking, onlyActive bool) error {
	if len(bookings) == 0 {
		return nil
	}

	bookingIDs := make([]uint, 0, len(bookings))
	for _, b := range bookings {
		bookingIDs = append(bookingIDs, b.ID)
	}

	q := db.Where("booking_id IN ?", bookingIDs)
	if onlyActive {
		q = q.Where("active = ?", true)
	}

	var links []models.BookingSlot
	if err := q.Order("booking_id ASC, position ASC").Find(&links).Error; err != nil {
		return err
	}
	if len(links) == 0 {
		return nil
	}

	ids := make([]uint, 0, len(links))
	for _, l := range links {
		ids = append(ids, l.SlotID)
	}

	var slots []models.Slot
	if err := db.Where("id IN ?", ids).Find(&slots).Error; err != nil {
		return err
	}

	byID := make(map[uint]models.Slot, len(slots))
	for _, s := range slots {
		byID[s.ID] = s
	}

	index := make(map[uint]int, len(bookings))
	for i, b := range bookings {
		index[b.ID] = i
	}

	for _, l := range links {
		s, ok := byID[l.SlotID]
		if !ok {
			continue
		}
		i := index[l.BookingID]
		bookings[i].Slots = append(bookings[i].Slots, s)
	}
	return nil
}

func slotIDs(slots []models.Slot) []uint {
	ids := make([]uint, 0, len(slots))
	for _, s := range slots {
		ids = append(ids, s.ID)
	}
	return ids
}

func notFound(err error, domainErr error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domainErr
	}
	return err
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
