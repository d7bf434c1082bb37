package entity

import "time"

type CommissionStatus string

const (
	CommissionStatusPending  CommissionStatus = "pending"
	CommissionStatusApproved CommissionStatus = "approved"
	CommissionStatusPaid     CommissionStatus = "paid"
)

// CommissionRecord is the liability owed to a professional for one completed,
// charged booking. At most one record exists per booking.
type CommissionRecord struct {
	ID             string           `json:"id"`
	ProfessionalID string           `json:"professional_id"`
	BookingID      string           `json:"booking_id"`
	GrossAmount    int              `json:"gross_amount"`
	Rate           float64          `json:"rate"`
	Amount         int              `json:"amount"`
	Status         CommissionStatus `json:"status"`
	CreatedAt      time.Time        `json:"created_at"`
}

type Professional struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	DefaultRate float64   `json:"default_rate"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// ServiceRateOverride pins a commission rate for one professional on one
// specific service, beating the professional's default.
type ServiceRateOverride struct {
	ID             string  `json:"id"`
	ProfessionalID string  `json:"professional_id"`
	ServiceID      string  `json:"service_id"`
	Rate           float64 `json:"rate"`
}

// ResolveCommissionRate picks the rate for a completed booking: the
// professional-service override wins, then the professional's default, then
// the platform default.
func ResolveCommissionRate(override *ServiceRateOverride, professional *Professional, platformDefault float64) float64 {
	if override != nil {
		return override.Rate
	}
	if professional != nil && professional.DefaultRate > 0 {
		return professional.DefaultRate
	}
	return platformDefault
}

// CommissionAmount rounds half-up on the gross-times-rate product.
func CommissionAmount(gross int, rate float64) int {
	return int(float64(gross)*rate + 0.5)
}
