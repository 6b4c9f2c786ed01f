package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SyncLog records one Instagram sync run, manual or scheduled
type SyncLog struct {
	ID          string         `gorm:"type:varchar(36);primaryKey" json:"id"`
	Trigger     string         `gorm:"not null" json:"trigger"` // manual | scheduled
	Status      string         `gorm:"not null" json:"status"`  // running | completed | failed
	Imported    int            `json:"imported"`
	Skipped     int            `json:"skipped"`
	Message     string         `json:"message"`
	Metadata    datatypes.JSON `json:"metadata,omitempty"`
	StartedAt   time.Time      `json:"started_at"`
	CompletedAt *time.Time     `json:"completed_at,omitempty"`
}

// TableName pins the table name
func (SyncLog) TableName() string {
	return "sync_logs"
}

// BeforeCreate assigns a UUID primary key
func (s *SyncLog) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
