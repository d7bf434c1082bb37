package entity

import (
	"fmt"
	"time"
)

type TransactionType string

const (
	TransactionTypePurchase    TransactionType = "purchase"
	TransactionTypeSpend       TransactionType = "spend"
	TransactionTypeRefund      TransactionType = "refund"
	TransactionTypeAdminCredit TransactionType = "admin_credit"
)

type ReferenceType string

const (
	ReferenceTypeBooking  ReferenceType = "booking"
	ReferenceTypePurchase ReferenceType = "purchase"
	ReferenceTypeManual   ReferenceType = "manual"
)

type Wallet struct {
	ID                string    `json:"id"`
	MemberID          string    `json:"member_id"`
	Balance           int       `json:"balance"`
	LifetimePurchased int       `json:"lifetime_purchased"`
	LifetimeSpent     int       `json:"lifetime_spent"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type Transaction struct {
	ID            string          `json:"id"`
	WalletID      string          `json:"wallet_id"`
	Type          TransactionType `json:"type"`
	Amount        int             `json:"amount"`
	BalanceBefore int             `json:"balance_before"`
	BalanceAfter  int             `json:"balance_after"`
	ReferenceType ReferenceType   `json:"reference_type,omitempty"`
	ReferenceID   string          `json:"reference_id,omitempty"`
	Description   string          `json:"description,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ReplayBalance replays transactions in creation order from zero and returns
// the resulting balance. It fails if any balance_after snapshot does not chain
// from the previous one.
func ReplayBalance(transactions []*Transaction) (int, error) {
	balance := 0
	for i, tx := range transactions {
		if tx.BalanceBefore != balance {
			return 0, fmt.Errorf("transaction %d: balance_before %d does not match running balance %d", i, tx.BalanceBefore, balance)
		}
		balance += tx.Amount
		if tx.BalanceAfter != balance {
			return 0, fmt.Errorf("transaction %d: balance_after %d does not match running balance %d", i, tx.BalanceAfter, balance)
		}
		if balance < 0 {
			return 0, fmt.Errorf("transaction %d: balance went negative (%d)", i, balance)
		}
	}
	return balance, nil
}
