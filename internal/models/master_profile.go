package models

import "time"

// MasterProfile is the public card of a master, addressed by slug.
type MasterProfile struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"uniqueIndex;not null" json:"user_id"`

	DisplayName string `gorm:"size:100;not null" json:"display_name"`
	Slug        string `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	Phone       string `gorm:"size:20" json:"phone"`
	Bio         string `gorm:"type:text" json:"bio"`
	Timezone    string `gorm:"size:64" json:"timezone"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
