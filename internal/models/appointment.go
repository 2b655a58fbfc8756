package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Appointment is a customer booking for a single slot. Date and Time are
// kept as the strings the booking form produces ("2006-01-02" and
// "3:04 PM") so they round-trip unchanged to the client; the composite
// unique index is what keeps a slot from being booked twice.
type Appointment struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	Name  string `gorm:"size:100;not null" json:"name"`
	Email string `gorm:"size:100" json:"email"`
	Phone string `gorm:"size:20;not null" json:"phone"`

	BarberID *string `gorm:"size:36;uniqueIndex:idx_slot,priority:3" json:"barber_id"`
	Barber   *Barber `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"barber,omitempty"`

	Service string `gorm:"size:100;not null" json:"service"`
	Date    string `gorm:"size:10;not null;index;uniqueIndex:idx_slot,priority:1" json:"date"`
	Time    string `gorm:"size:10;not null;uniqueIndex:idx_slot,priority:2" json:"time"`

	Notes  string `gorm:"size:500" json:"notes"`
	Source string `gorm:"size:2;default:'en'" json:"source"`

	ReminderSentAt *time.Time `json:"reminder_sent_at"`
	CreatedAt      time.Time  `json:"created_at"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
