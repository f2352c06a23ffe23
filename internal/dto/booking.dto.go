package dto

import (
	"time"

	"github.com/BruksfildServices01/master-scheduler/internal/models"
)

type SlotDTO struct {
	ID      uint      `json:"id"`
	StartAt time.Time `json:"start_at"`
	EndAt   time.Time `json:"end_at"`
	Status  string    `json:"status"`
}

type ServiceDTO struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	DurationMin int     `json:"duration_min"`
	Price       float64 `json:"price"`
}

type BookingDTO struct {
	ID        uint   `json:"id"`
	Reference string `json:"reference"`
	Status    string `json:"status"`

	MasterID uint       `json:"master_id"`
	Service  ServiceDTO `json:"service"`

	ClientName  string `json:"client_name"`
	ClientPhone string `json:"client_phone"`
	Notes       string `json:"notes,omitempty"`

	// StartAt and EndAt span the whole run.
	StartAt time.Time `json:"start_at"`
	EndAt   time.Time `json:"end_at"`
	Slots   []SlotDTO `json:"slots"`

	CreatedAt   time.Time  `json:"created_at"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
}

// BookingListDTO is the compact row of the master's booking list.
type BookingListDTO struct {
	ID          uint      `json:"id"`
	Reference   string    `json:"reference"`
	StartAt     time.Time `json:"start_at"`
	EndAt       time.Time `json:"end_at"`
	Status      string    `json:"status"`
	ClientName  string    `json:"client_name"`
	ServiceName string    `json:"service_name"`
	SlotCount   int       `json:"slot_count"`
}

func FromSlot(s models.Slot) SlotDTO {
	return SlotDTO{ID: s.ID, StartAt: s.StartAt, EndAt: s.EndAt, Status: s.Status}
}

func FromSlots(slots []models.Slot) []SlotDTO {
	out := make([]SlotDTO, 0, len(slots))
	for _, s := range slots {
		out = append(out, FromSlot(s))
	}
	return out
}

func FromBooking(b *models.Booking) BookingDTO {
	out := BookingDTO{
		ID:        b.ID,
		Reference: b.Reference,
		Status:    b.Status,
		MasterID:  b.MasterID,
		Service: ServiceDTO{
			ID:          b.Service.ID,
			Name:        b.Service.Name,
			DurationMin: b.Service.DurationMin,
			Price:       b.Service.Price,
		},
		ClientName:  b.ClientName,
		ClientPhone: b.ClientPhone,
		Notes:       b.Notes,
		Slots:       FromSlots(b.Slots),
		CreatedAt:   b.CreatedAt,
		CancelledAt: b.CancelledAt,
	}
	out.StartAt, out.EndAt = span(b.Slots)
	return out
}

func FromBookingList(bookings []models.Booking) []BookingListDTO {
	out := make([]BookingListDTO, 0, len(bookings))
	for i := range bookings {
		b := &bookings[i]
		row := BookingListDTO{
			ID:          b.ID,
			Reference:   b.Reference,
			Status:      b.Status,
			ClientName:  b.ClientName,
			ServiceName: b.Service.Name,
			SlotCount:   len(b.Slots),
		}
		row.StartAt, row.EndAt = span(b.Slots)
		out = append(out, row)
	}
	return out
}

func span(slots []models.Slot) (time.Time, time.Time) {
	if len(slots) == 0 {
		return time.Time{}, time.Time{}
	}
	return slots[0].StartAt, slots[len(slots)-1].EndAt
}
