package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BlockedTime is a shop-initiated hold that occupies a slot exactly like
// an appointment would (lunch break, walk-in, day off).
type BlockedTime struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	BarberID string  `gorm:"size:36;not null;index" json:"barber_id"`
	Barber   *Barber `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"barber,omitempty"`

	Date   string `gorm:"size:10;not null;index" json:"date"`
	Time   string `gorm:"size:10;not null" json:"time"`
	Reason string `gorm:"size:255" json:"reason"`

	CreatedAt time.Time `json:"created_at"`
}

func (b *BlockedTime) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}
