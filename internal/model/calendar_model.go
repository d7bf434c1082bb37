package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AvailabilityWindowModel struct {
	ID           string    `gorm:"type:uuid;primary_key" json:"id"`
	ResourceType string    `gorm:"type:varchar(20);not null;index:idx_window_resource" json:"resource_type"`
	ResourceID   string    `gorm:"type:uuid;not null;index:idx_window_resource" json:"resource_id"`
	Weekday      int       `gorm:"not null" json:"weekday"`
	OpenMinute   int       `gorm:"not null" json:"open_minute"`
	CloseMinute  int       `gorm:"not null" json:"close_minute"`
	CreatedAt    time.Time `json:"created_at"`
}

func (AvailabilityWindowModel) TableName() string {
	return "availability_windows"
}

func (w *AvailabilityWindowModel) BeforeCreate(tx *gorm.DB) error {
	if w.ID == "" {
		w.ID = uuid.New().String()
	}
	return nil
}

type BlockModel struct {
	ID           string    `gorm:"type:uuid;primary_key" json:"id"`
	ResourceType string    `gorm:"type:varchar(20);not null;index:idx_block_resource" json:"resource_type"`
	ResourceID   string    `gorm:"type:uuid;not null;index:idx_block_resource" json:"resource_id"`
	StartTime    time.Time `gorm:"not null" json:"start_time"`
	EndTime      time.Time `gorm:"not null" json:"end_time"`
	Reason       string    `gorm:"type:text" json:"reason,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

func (BlockModel) TableName() string {
	return "blocks"
}

func (b *BlockModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	return nil
}
