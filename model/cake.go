package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Cake is a catalog item. CategoryID is a soft reference: deleting a
// category clears it instead of cascading. InstagramURL is the dedup key
// for entries imported by the Instagram sync.
type Cake struct {
	ID           string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name         string    `gorm:"not null" json:"name"`
	Description  string    `gorm:"not null" json:"description"`
	Price        float64   `gorm:"not null;default:0" json:"price"`
	CategoryID   string    `gorm:"index" json:"category_id"`
	ImageURL     string    `json:"image_url"`
	InstagramURL string    `gorm:"index" json:"instagram_url"`
	Featured     bool      `gorm:"index;default:false" json:"featured"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// BeforeCreate assigns a UUID primary key
func (c *Cake) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
