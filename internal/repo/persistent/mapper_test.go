package persistent

import (
	"testing"
	"time"

	"clubhub/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToBookingModel_OptionalReferencesBecomeNull(t *testing.T) {
	booking := &entity.Booking{
		ID:            "b8e6c9a2-0f1d-4e9b-9a55-1c2d3e4f5a6b",
		Number:        "BK-0001",
		MemberID:      "m-1",
		ServiceID:     "svc-1",
		ZoneID:        "zone-1",
		StartTime:     time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC),
		EndTime:       time.Date(2025, 6, 2, 11, 0, 0, 0, time.UTC),
		Status:        entity.BookingStatusPending,
		PaymentMethod: entity.PaymentMethodDirect,
		AmountFiat:    2500,
	}

	m := ToBookingModel(booking)

	// A direct-charge booking with no professional must insert NULLs, not
	// empty strings, into the uuid reference columns.
	assert.Nil(t, m.ProfessionalID)
	assert.Nil(t, m.LocationID)
	assert.Nil(t, m.TransactionID)
}

func TestToBookingModel_OptionalReferencesRoundTrip(t *testing.T) {
	booking := &entity.Booking{
		ID:             "b8e6c9a2-0f1d-4e9b-9a55-1c2d3e4f5a6b",
		Number:         "BK-0002",
		MemberID:       "m-1",
		ServiceID:      "svc-2",
		ZoneID:         "zone-1",
		LocationID:     "loc-1",
		ProfessionalID: "pro-1",
		TransactionID:  "tx-1",
		StartTime:      time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC),
		EndTime:        time.Date(2025, 6, 2, 11, 0, 0, 0, time.UTC),
		Status:         entity.BookingStatusConfirmed,
		PaymentMethod:  entity.PaymentMethodPrepaid,
		AmountBonos:    15,
	}

	m := ToBookingModel(booking)
	require.NotNil(t, m.ProfessionalID)
	assert.Equal(t, "pro-1", *m.ProfessionalID)

	back := ToBookingEntity(m)
	assert.Equal(t, booking.LocationID, back.LocationID)
	assert.Equal(t, booking.ProfessionalID, back.ProfessionalID)
	assert.Equal(t, booking.TransactionID, back.TransactionID)
}

func TestToBookingEntity_NullReferencesBecomeEmpty(t *testing.T) {
	m := ToBookingModel(&entity.Booking{
		ID:            "c1d2e3f4-5a6b-4c7d-8e9f-0a1b2c3d4e5f",
		Number:        "BK-0003",
		MemberID:      "m-2",
		ServiceID:     "svc-1",
		ZoneID:        "zone-2",
		StartTime:     time.Date(2025, 6, 3, 9, 0, 0, 0, time.UTC),
		EndTime:       time.Date(2025, 6, 3, 10, 0, 0, 0, time.UTC),
		Status:        entity.BookingStatusPending,
		PaymentMethod: entity.PaymentMethodDirect,
	})
	require.Nil(t, m.ProfessionalID)

	back := ToBookingEntity(m)
	assert.Empty(t, back.ProfessionalID)
	assert.Empty(t, back.LocationID)
	assert.Empty(t, back.TransactionID)
}
