package models

import "time"

const (
	BookingCreated   = "CREATED"
	BookingCancelled = "CANCELLED"
)

type Booking struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Reference string `gorm:"size:36;uniqueIndex;not null" json:"reference"`

	MasterID uint `gorm:"index;not null" json:"master_id"`

	ServiceID uint    `gorm:"not null" json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"service"`

	AnchorSlotID uint `gorm:"index;not null" json:"anchor_slot_id"`

	ClientName  string `gorm:"size:100;not null" json:"client_name"`
	ClientPhone string `gorm:"size:20;not null" json:"client_phone"`
	Notes       string `gorm:"type:text" json:"notes"`

	Status      string     `gorm:"size:10;not null;default:'CREATED'" json:"status"`
	CancelledAt *time.Time `json:"cancelled_at"`

	// Slots is the ordered run, filled from booking_slots by the repository.
	Slots []Slot `gorm:"-" json:"slots"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BookingSlot links a booking to one slot of its run. Active links are
// unique per slot, so a slot belongs to at most one live booking.
type BookingSlot struct {
	ID        uint `gorm:"primaryKey"`
	BookingID uint `gorm:"not null;index"`
	SlotID    uint `gorm:"not null;index"`
	Position  int  `gorm:"not null"`
	Active    bool `gorm:"not null;default:true"`

	CreatedAt time.Time
}
