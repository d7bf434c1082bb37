package entity

import "time"

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

type PaymentMethod string

const (
	PaymentMethodPrepaid PaymentMethod = "prepaid_balance"
	PaymentMethodDirect  PaymentMethod = "direct_charge"
)

// transitions is the closed set of legal status changes. Completed and
// cancelled are terminal.
var transitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:   {BookingStatusConfirmed, BookingStatusCancelled},
	BookingStatusConfirmed: {BookingStatusCompleted, BookingStatusCancelled},
}

func CanTransition(from, to BookingStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type Booking struct {
	ID             string        `json:"id"`
	Number         string        `json:"number"`
	MemberID       string        `json:"member_id"`
	ServiceID      string        `json:"service_id"`
	ZoneID         string        `json:"zone_id"`
	LocationID     string        `json:"location_id"`
	ProfessionalID string        `json:"professional_id,omitempty"`
	StartTime      time.Time     `json:"start_time"`
	EndTime        time.Time     `json:"end_time"`
	Status         BookingStatus `json:"status"`
	PaymentMethod  PaymentMethod `json:"payment_method"`
	AmountBonos    int           `json:"amount_bonos"`
	AmountFiat     int           `json:"amount_fiat"`
	TransactionID  string        `json:"transaction_id,omitempty"`
	Notes          string        `json:"notes,omitempty"`
	CancelReason   string        `json:"cancel_reason,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

// Holds reports whether the booking currently reserves its slot.
func (b *Booking) Holds() bool {
	return b.Status == BookingStatusPending || b.Status == BookingStatusConfirmed
}

// Charged reports whether bonos were taken from the member's wallet.
func (b *Booking) Charged() bool {
	return b.PaymentMethod == PaymentMethodPrepaid && b.AmountBonos > 0
}
