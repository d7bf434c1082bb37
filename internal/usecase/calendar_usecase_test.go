package usecase

import (
	"context"
	"testing"
	"time"

	"clubhub/internal/entity"
	"clubhub/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCalendarRig() (*fakeCalendarRepo, *fakeBookingRepo, CalendarUseCase) {
	calRepo := newFakeCalendarRepo()
	bookings := newFakeBookingRepo(newFakeWalletRepo())
	return calRepo, bookings, NewCalendarUseCase(calRepo, bookings, logger.New())
}

func TestIsZoneAvailable_NoConstraints(t *testing.T) {
	_, _, uc := newCalendarRig()

	avail, err := uc.IsZoneAvailable(context.Background(), "zone-1", slot(10), slot(11))
	require.NoError(t, err)
	assert.True(t, avail.Available)
	assert.Empty(t, avail.Reason)
}

func TestIsZoneAvailable_DoubleBooked(t *testing.T) {
	_, bookings, uc := newCalendarRig()
	bookings.bookings["b1"] = &entity.Booking{
		ID: "b1", ZoneID: "zone-1", Status: entity.BookingStatusConfirmed,
		StartTime: slot(10), EndTime: slot(11),
	}

	avail, err := uc.IsZoneAvailable(context.Background(), "zone-1", slot(10), slot(11))
	require.NoError(t, err)
	assert.False(t, avail.Available)
	assert.Equal(t, entity.ReasonDoubleBooked, avail.Reason)

	// Cancelled bookings release the slot
	bookings.bookings["b1"].Status = entity.BookingStatusCancelled
	avail, err = uc.IsZoneAvailable(context.Background(), "zone-1", slot(10), slot(11))
	require.NoError(t, err)
	assert.True(t, avail.Available)
}

func TestIsProfessionalAvailable_Busy(t *testing.T) {
	_, bookings, uc := newCalendarRig()
	bookings.bookings["b1"] = &entity.Booking{
		ID: "b1", ZoneID: "zone-1", ProfessionalID: "pro-1",
		Status: entity.BookingStatusPending, StartTime: slot(10), EndTime: slot(11),
	}

	avail, err := uc.IsProfessionalAvailable(context.Background(), "pro-1", slot(10), slot(11))
	require.NoError(t, err)
	assert.False(t, avail.Available)
	assert.Equal(t, entity.ReasonProfessionalBusy, avail.Reason)
}

func TestIsZoneAvailable_BlockBeatsWindow(t *testing.T) {
	calRepo, _, uc := newCalendarRig()
	calRepo.windows[calKey(entity.ResourceTypeZone, "zone-1")] = []*entity.AvailabilityWindow{
		{Weekday: time.Monday, OpenMinute: 0, CloseMinute: 24 * 60},
	}
	calRepo.blocks = append(calRepo.blocks, &entity.Block{
		ResourceType: entity.ResourceTypeZone,
		ResourceID:   "zone-1",
		StartTime:    slot(9),
		EndTime:      slot(12),
	})

	avail, err := uc.IsZoneAvailable(context.Background(), "zone-1", slot(10), slot(11))
	require.NoError(t, err)
	assert.False(t, avail.Available)
	assert.Equal(t, entity.ReasonBlocked, avail.Reason)

	// Outside the block, the window applies again
	avail, err = uc.IsZoneAvailable(context.Background(), "zone-1", slot(14), slot(15))
	require.NoError(t, err)
	assert.True(t, avail.Available)
}

func TestIsZoneAvailable_OutsideHours(t *testing.T) {
	calRepo, _, uc := newCalendarRig()
	calRepo.windows[calKey(entity.ResourceTypeZone, "zone-1")] = []*entity.AvailabilityWindow{
		{Weekday: time.Monday, OpenMinute: 9 * 60, CloseMinute: 12 * 60},
	}

	avail, err := uc.IsZoneAvailable(context.Background(), "zone-1", slot(13), slot(14))
	require.NoError(t, err)
	assert.False(t, avail.Available)
	assert.Equal(t, entity.ReasonOutsideHours, avail.Reason)
}

func TestIsZoneAvailable_InvalidWindow(t *testing.T) {
	_, _, uc := newCalendarRig()

	_, err := uc.IsZoneAvailable(context.Background(), "zone-1", slot(11), slot(10))
	assert.Error(t, err)
}
