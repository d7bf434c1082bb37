package entity

import "time"

type SettlementKind string

const (
	SettlementKindMembership    SettlementKind = "membership"
	SettlementKindBonusPurchase SettlementKind = "bonus-purchase"
)

// SettlementEvent records one processed payment confirmation. The upstream
// event id is the primary key; replays hit the unique constraint and are
// absorbed.
type SettlementEvent struct {
	EventID     string         `json:"event_id"`
	Kind        SettlementKind `json:"kind"`
	MemberID    string         `json:"member_id"`
	PackageID   string         `json:"package_id,omitempty"`
	PaymentRef  string         `json:"payment_ref,omitempty"`
	ProcessedAt time.Time      `json:"processed_at"`
}
