package models

import "time"

const (
	SlotAvailable = "AVAILABLE"
	SlotBooked    = "BOOKED"
	SlotBlocked   = "BLOCKED"
)

// Slot is an atomic bookable unit of a master's calendar. MasterID is the
// owning user's id.
type Slot struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	MasterID uint `gorm:"not null;uniqueIndex:idx_slots_master_start,priority:1" json:"master_id"`

	StartAt time.Time `gorm:"not null;uniqueIndex:idx_slots_master_start,priority:2" json:"start_at"`
	EndAt   time.Time `gorm:"not null;check:chk_slots_end_after_start,end_at > start_at" json:"end_at"`

	Status string `gorm:"size:10;not null;default:'AVAILABLE';index" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Slot) Duration() time.Duration {
	return s.EndAt.Sub(s.StartAt)
}

func (s *Slot) IsAvailable() bool {
	return s.Status == SlotAvailable
}
