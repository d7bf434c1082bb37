package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookingModel struct {
	ID             string    `gorm:"type:uuid;primary_key" json:"id"`
	Number         string    `gorm:"type:varchar(32);uniqueIndex;not null" json:"number"`
	MemberID       string    `gorm:"type:uuid;not null;index" json:"member_id"`
	ServiceID      string    `gorm:"type:uuid;not null" json:"service_id"`
	ZoneID         string    `gorm:"type:uuid;not null;index" json:"zone_id"`
	LocationID     *string   `gorm:"type:uuid" json:"location_id,omitempty"`
	ProfessionalID *string   `gorm:"type:uuid;index" json:"professional_id,omitempty"`
	StartTime      time.Time `gorm:"not null;index" json:"start_time"`
	EndTime        time.Time `gorm:"not null;index" json:"end_time"`
	Status         string    `gorm:"type:varchar(20);not null;index" json:"status"`
	PaymentMethod  string    `gorm:"type:varchar(20);not null" json:"payment_method"`
	AmountBonos    int       `gorm:"default:0" json:"amount_bonos"`
	AmountFiat     int       `gorm:"default:0" json:"amount_fiat"`
	TransactionID  *string   `gorm:"type:uuid" json:"transaction_id,omitempty"`
	Notes          string    `gorm:"type:text" json:"notes,omitempty"`
	CancelReason   string    `gorm:"type:text" json:"cancel_reason,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (BookingModel) TableName() string {
	return "bookings"
}

func (b *BookingModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	return nil
}
