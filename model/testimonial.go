package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Testimonial is a customer review shown on the storefront
type Testimonial struct {
	ID         string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	AuthorName string    `gorm:"not null" json:"author_name"`
	Content    string    `gorm:"not null" json:"content"`
	Rating     int       `gorm:"not null;default:5" json:"rating"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// BeforeCreate assigns a UUID primary key
func (t *Testimonial) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
