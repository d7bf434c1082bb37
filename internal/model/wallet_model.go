package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WalletModel struct {
	ID                string    `gorm:"type:uuid;primary_key" json:"id"`
	MemberID          string    `gorm:"type:uuid;uniqueIndex;not null" json:"member_id"`
	Balance           int       `gorm:"default:0" json:"balance"`
	LifetimePurchased int       `gorm:"default:0" json:"lifetime_purchased"`
	LifetimeSpent     int       `gorm:"default:0" json:"lifetime_spent"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func (WalletModel) TableName() string {
	return "wallets"
}

func (w *WalletModel) BeforeCreate(tx *gorm.DB) error {
	if w.ID == "" {
		w.ID = uuid.New().String()
	}
	return nil
}

type WalletTransactionModel struct {
	ID            string    `gorm:"type:uuid;primary_key" json:"id"`
	WalletID      string    `gorm:"type:uuid;not null;index" json:"wallet_id"`
	Type          string    `gorm:"type:varchar(20);not null" json:"type"`
	Amount        int       `gorm:"not null" json:"amount"`
	BalanceBefore int       `json:"balance_before"`
	BalanceAfter  int       `json:"balance_after"`
	ReferenceType string    `gorm:"type:varchar(20);index" json:"reference_type,omitempty"`
	ReferenceID   string    `gorm:"type:varchar(64);index" json:"reference_id,omitempty"`
	Description   string    `gorm:"type:text" json:"description,omitempty"`
	CreatedAt     time.Time `gorm:"index" json:"created_at"`
}

func (WalletTransactionModel) TableName() string {
	return "wallet_transactions"
}

func (t *WalletTransactionModel) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	return nil
}
