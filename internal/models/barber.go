package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Barber struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	Name     string `gorm:"size:100;not null" json:"name"`
	Phone    string `gorm:"size:20;not null" json:"phone"`
	Email    string `gorm:"size:100" json:"email"`
	ImageURL string `gorm:"size:500" json:"image_url"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b *Barber) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

// Label is the display form the site shows in the barber picker.
func (b *Barber) Label() string {
	return fmt.Sprintf("%s - %s", b.Name, b.Phone)
}
