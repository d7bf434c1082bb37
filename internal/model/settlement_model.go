package model

import "time"

// SettlementEventModel keys on the upstream payment event id, so a replayed
// event collides on the primary key instead of double-crediting.
type SettlementEventModel struct {
	EventID     string    `gorm:"type:varchar(64);primary_key" json:"event_id"`
	Kind        string    `gorm:"type:varchar(20);not null" json:"kind"`
	MemberID    string    `gorm:"type:uuid;not null;index" json:"member_id"`
	PackageID   string    `gorm:"type:varchar(64)" json:"package_id,omitempty"`
	PaymentRef  string    `gorm:"type:varchar(128)" json:"payment_ref,omitempty"`
	ProcessedAt time.Time `json:"processed_at"`
}

func (SettlementEventModel) TableName() string {
	return "settlement_events"
}
