package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CommissionRecordModel struct {
	ID             string    `gorm:"type:uuid;primary_key" json:"id"`
	ProfessionalID string    `gorm:"type:uuid;not null;index" json:"professional_id"`
	BookingID      string    `gorm:"type:uuid;uniqueIndex;not null" json:"booking_id"`
	GrossAmount    int       `gorm:"not null" json:"gross_amount"`
	Rate           float64   `gorm:"not null" json:"rate"`
	Amount         int       `gorm:"not null" json:"amount"`
	Status         string    `gorm:"type:varchar(20);not null;index" json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (CommissionRecordModel) TableName() string {
	return "commission_records"
}

func (c *CommissionRecordModel) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}

type ProfessionalModel struct {
	ID          string    `gorm:"type:uuid;primary_key" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	DefaultRate float64   `gorm:"default:0" json:"default_rate"`
	IsActive    bool      `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (ProfessionalModel) TableName() string {
	return "professionals"
}

func (p *ProfessionalModel) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

type ServiceRateOverrideModel struct {
	ID             string  `gorm:"type:uuid;primary_key" json:"id"`
	ProfessionalID string  `gorm:"type:uuid;not null;uniqueIndex:idx_pro_service" json:"professional_id"`
	ServiceID      string  `gorm:"type:uuid;not null;uniqueIndex:idx_pro_service" json:"service_id"`
	Rate           float64 `gorm:"not null" json:"rate"`
}

func (ServiceRateOverrideModel) TableName() string {
	return "service_rate_overrides"
}

func (o *ServiceRateOverrideModel) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	return nil
}
