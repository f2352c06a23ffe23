package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	domain "github.com/BruksfildServices01/master-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/master-scheduler/internal/models"
)

// Store is an in-process booking repository. A unit of work holds an
// exclusive per-master lock from its first lock call until it ends, and its
// writes become visible only on commit.
type Store struct {
	mu sync.Mutex

	gates map[uint]chan struct{}

	profiles map[uint]models.MasterProfile
	services map[uint]models.Service
	slots    map[uint]models.Slot
	bookings map[uint]models.Booking
	links    []models.BookingSlot

	nextID uint
}

func NewStore() *Store {
	return &Store{
		gates:    make(map[uint]chan struct{}),
		profiles: make(map[uint]models.MasterProfile),
		services: make(map[uint]models.Service),
		slots:    make(map[uint]models.Slot),
		bookings: make(map[uint]models.Booking),
	}
}

// ===============================
// Seeding
// ===============================

func (s *Store) AddProfile(p models.MasterProfile) models.MasterProfile {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.ID == 0 {
		p.ID = s.id()
	}
	if p.UserID == 0 {
		p.UserID = p.ID
	}
	s.profiles[p.ID] = p
	return p
}

func (s *Store) AddService(svc models.Service) models.Service {
	s.mu.Lock()
	defer s.mu.Unlock()

	if svc.ID == 0 {
		svc.ID = s.id()
	}
	s.services[svc.ID] = svc
	return svc
}

// AddSlots stores n consecutive slots of the given length starting at from.
func (s *Store) AddSlots(masterID uint, from time.Time, length time.Duration, n int) []models.Slot {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Slot, 0, n)
	for i := 0; i < n; i++ {
		start := from.Add(time.Duration(i) * length)
		slot := models.Slot{
			ID:       s.id(),
			MasterID: masterID,
			StartAt:  start,
			EndAt:    start.Add(length),
			Status:   models.SlotAvailable,
		}
		s.slots[slot.ID] = slot
		out = append(out, slot)
	}
	return out
}

func (s *Store) SetSlotStatus(slotID uint, status string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	slot := s.slots[slotID]
	slot.Status = status
	s.slots[slotID] = slot
}

func (s *Store) Slot(slotID uint) models.Slot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.slots[slotID]
}

func (s *Store) BookingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.bookings)
}

// ActiveLinks counts live bookings linked to a slot.
func (s *Store) ActiveLinks(slotID uint) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, l := range s.links {
		if l.SlotID == slotID && l.Active {
			n++
		}
	}
	return n
}

// ===============================
// Read path
// ===============================

func (s *Store) GetProfileBySlug(_ context.Context, slug string) (*models.MasterProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.profiles {
		if p.Slug == slug {
			return &p, nil
		}
	}
	return nil, domain.ErrMasterNotFound
}

func (s *Store) ListMasters(_ context.Context, availableFrom *time.Time) ([]models.MasterProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []models.MasterProfile{}
	for _, p := range s.profiles {
		if availableFrom != nil && !s.hasAvailableFrom(p.UserID, *availableFrom) {
			continue
		}
		out = append(out, p)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].DisplayName < out[j].DisplayName })
	return out, nil
}

func (s *Store) hasAvailableFrom(masterID uint, from time.Time) bool {
	for _, sl := range s.slots {
		if sl.MasterID == masterID && sl.IsAvailable() && !sl.StartAt.Before(from) {
			return true
		}
	}
	return false
}

func (s *Store) GetService(_ context.Context, serviceID uint) (*models.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	svc, ok := s.services[serviceID]
	if !ok {
		return nil, domain.ErrServiceNotFound
	}
	return &svc, nil
}

func (s *Store) ListAvailableSlots(
	_ context.Context,
	masterID uint,
	from time.Time,
	to time.Time,
) ([]models.Slot, error) {

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.filterSlots(s.slots, func(sl models.Slot) bool {
		return sl.MasterID == masterID &&
			sl.IsAvailable() &&
			!sl.StartAt.Before(from) &&
			!sl.StartAt.After(to)
	}), nil
}

func (s *Store) ListBookings(_ context.Context, masterID uint, status domain.Status) ([]models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []models.Booking{}
	for _, b := range s.bookings {
		if b.MasterID != masterID {
			continue
		}
		if status != "" && b.Status != string(status) {
			continue
		}
		out = append(out, s.hydrate(b, s.slots, s.links, false))
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (s *Store) GetBooking(_ context.Context, masterID uint, bookingID uint) (*models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[bookingID]
	if !ok || b.MasterID != masterID {
		return nil, domain.ErrBookingNotFound
	}
	h := s.hydrate(b, s.slots, s.links, false)
	return &h, nil
}

func (s *Store) GetBookingByReference(_ context.Context, reference string) (*models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, b := range s.bookings {
		if b.Reference == reference {
			h := s.hydrate(b, s.slots, s.links, false)
			return &h, nil
		}
	}
	return nil, domain.ErrBookingNotFound
}

// ===============================
// Unit of work
// ===============================

func (s *Store) InTx(ctx context.Context, fn func(tx domain.Tx) error) error {
	tx := &memTx{
		store:    s,
		held:     make(map[uint]bool),
		slots:    make(map[uint]models.Slot),
		bookings: make(map[uint]models.Booking),
	}
	defer tx.release()

	if err := fn(tx); err != nil {
		return err
	}
	return s.commit(tx)
}

func (s *Store) commit(tx *memTx) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, l := range tx.links {
		for _, existing := range s.links {
			if existing.Active && existing.SlotID == l.SlotID {
				return fmt.Errorf("%w: slot %d already linked", domain.ErrSlotConflict, l.SlotID)
			}
		}
	}

	for id, sl := range tx.slots {
		s.slots[id] = sl
	}
	for id, b := range tx.bookings {
		b.Slots = nil
		s.bookings[id] = b
	}
	for i := range s.links {
		if tx.deactivated[s.links[i].BookingID] {
			s.links[i].Active = false
		}
	}
	s.links = append(s.links, tx.links...)
	return nil
}

func (s *Store) gate(masterID uint) chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.gates[masterID]
	if !ok {
		g = make(chan struct{}, 1)
		s.gates[masterID] = g
	}
	return g
}

func (s *Store) id() uint {
	s.nextID++
	return s.nextID
}

func (s *Store) filterSlots(src map[uint]models.Slot, keep func(models.Slot) bool) []models.Slot {
	out := []models.Slot{}
	for _, sl := range src {
		if keep(sl) {
			out = append(out, sl)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartAt.Before(out[j].StartAt) })
	return out
}

func (s *Store) hydrate(
	b models.Booking,
	slots map[uint]models.Slot,
	links []models.BookingSlot,
	onlyActive bool,
) models.Booking {

	if svc, ok := s.services[b.ServiceID]; ok {
		b.Service = svc
	}

	own := []models.BookingSlot{}
	for _, l := range links {
		if l.BookingID == b.ID && (!onlyActive || l.Active) {
			own = append(own, l)
		}
	}
	sort.Slice(own, func(i, j int) bool { return own[i].Position < own[j].Position })

	b.Slots = make([]models.Slot, 0, len(own))
	for _, l := range own {
		b.Slots = append(b.Slots, slots[l.SlotID])
	}
	return b
}

// ===============================
// Tx
// ===============================

type memTx struct {
	store *Store
	held  map[uint]bool

	slots       map[uint]models.Slot
	bookings    map[uint]models.Booking
	links       []models.BookingSlot
	deactivated map[uint]bool
}

func (t *memTx) lock(ctx context.Context, masterID uint) error {
	if t.held[masterID] {
		return nil
	}

	select {
	case t.store.gate(masterID) <- struct{}{}:
		t.held[masterID] = true
		return nil
	case <-ctx.Done():
		return fmt.Errorf("%w: %v", domain.ErrSlotConflict, ctx.Err())
	}
}

func (t *memTx) release() {
	for masterID := range t.held {
		<-t.store.gate(masterID)
	}
}

// view returns the slot as this unit of work sees it.
func (t *memTx) view(slotID uint) (models.Slot, bool) {
	if sl, ok := t.slots[slotID]; ok {
		return sl, true
	}
	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	sl, ok := t.store.slots[slotID]
	return sl, ok
}

func (t *memTx) LockSlot(ctx context.Context, masterID uint, slotID uint) (*models.Slot, error) {
	if err := t.lock(ctx, masterID); err != nil {
		return nil, err
	}

	sl, ok := t.view(slotID)
	if !ok || sl.MasterID != masterID {
		return nil, domain.ErrSlotNotFound
	}
	return &sl, nil
}

func (t *memTx) LockAvailableSlots(
	ctx context.Context,
	masterID uint,
	after time.Time,
	until time.Time,
) ([]models.Slot, error) {

	if err := t.lock(ctx, masterID); err != nil {
		return nil, err
	}

	t.store.mu.Lock()
	merged := make(map[uint]models.Slot, len(t.store.slots))
	for id, sl := range t.store.slots {
		merged[id] = sl
	}
	t.store.mu.Unlock()

	for id, sl := range t.slots {
		merged[id] = sl
	}

	return t.store.filterSlots(merged, func(sl models.Slot) bool {
		return sl.MasterID == masterID &&
			sl.IsAvailable() &&
			sl.StartAt.After(after) &&
			!sl.StartAt.After(until)
	}), nil
}

func (t *memTx) CreateBooking(_ context.Context, b *models.Booking, run []models.Slot) error {
	if !t.held[b.MasterID] {
		return fmt.Errorf("create booking: master %d not locked", b.MasterID)
	}

	for _, sl := range run {
		current, ok := t.view(sl.ID)
		if !ok || !current.IsAvailable() {
			return domain.ErrSlotConflict
		}
	}

	t.store.mu.Lock()
	b.ID = t.store.id()
	t.store.mu.Unlock()

	now := time.Now()
	b.CreatedAt = now
	b.UpdatedAt = now

	for i, sl := range run {
		sl.Status = models.SlotBooked
		t.slots[sl.ID] = sl
		run[i].Status = models.SlotBooked

		t.links = append(t.links, models.BookingSlot{
			BookingID: b.ID,
			SlotID:    sl.ID,
			Position:  i,
			Active:    true,
			CreatedAt: now,
		})
	}

	b.Slots = run
	t.bookings[b.ID] = *b
	return nil
}

func (t *memTx) LockBooking(ctx context.Context, masterID uint, bookingID uint) (*models.Booking, error) {
	if err := t.lock(ctx, masterID); err != nil {
		return nil, err
	}

	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	b, ok := t.store.bookings[bookingID]
	if !ok || b.MasterID != masterID {
		return nil, domain.ErrBookingNotFound
	}
	h := t.store.hydrate(b, t.store.slots, t.store.links, true)
	return &h, nil
}

func (t *memTx) LockBookingByReference(ctx context.Context, reference string) (*models.Booking, error) {
	var masterID, bookingID uint

	t.store.mu.Lock()
	for _, b := range t.store.bookings {
		if b.Reference == reference {
			masterID, bookingID = b.MasterID, b.ID
			break
		}
	}
	t.store.mu.Unlock()

	if bookingID == 0 {
		return nil, domain.ErrBookingNotFound
	}
	return t.LockBooking(ctx, masterID, bookingID)
}

func (t *memTx) ReleaseBooking(_ context.Context, b *models.Booking) error {
	if !t.held[b.MasterID] {
		return fmt.Errorf("release booking: master %d not locked", b.MasterID)
	}

	for _, sl := range b.Slots {
		current, ok := t.view(sl.ID)
		if !ok {
			continue
		}
		current.Status = models.SlotAvailable
		t.slots[sl.ID] = current
	}

	if t.deactivated == nil {
		t.deactivated = make(map[uint]bool)
	}
	t.deactivated[b.ID] = true

	stored := *b
	stored.Slots = nil
	t.bookings[b.ID] = stored
	return nil
}

var _ domain.Repository = (*Store)(nil)
