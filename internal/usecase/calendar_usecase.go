package usecase

import (
	"context"
	"fmt"
	"time"

	"clubhub/internal/entity"
	"clubhub/internal/repo/persistent"
	"clubhub/pkg/logger"
)

type CalendarUseCase interface {
	IsZoneAvailable(ctx context.Context, zoneID string, start, end time.Time) (*entity.Availability, error)
	IsProfessionalAvailable(ctx context.Context, professionalID string, start, end time.Time) (*entity.Availability, error)
}

type calendarUseCase struct {
	calendarRepo persistent.CalendarRepository
	bookingRepo  persistent.BookingRepository
	logger       *logger.Logger
}

func NewCalendarUseCase(calendarRepo persistent.CalendarRepository, bookingRepo persistent.BookingRepository, logger *logger.Logger) CalendarUseCase {
	return &calendarUseCase{
		calendarRepo: calendarRepo,
		bookingRepo:  bookingRepo,
		logger:       logger,
	}
}

func (uc *calendarUseCase) IsZoneAvailable(ctx context.Context, zoneID string, start, end time.Time) (*entity.Availability, error) {
	return uc.check(ctx, entity.ResourceTypeZone, zoneID, start, end)
}

func (uc *calendarUseCase) IsProfessionalAvailable(ctx context.Context, professionalID string, start, end time.Time) (*entity.Availability, error) {
	return uc.check(ctx, entity.ResourceTypeProfessional, professionalID, start, end)
}

// check evaluates conflicts in order: existing bookings, explicit blocks,
// then working hours. Blocks are checked before windows so an explicit block
// wins over an open window covering the same instant.
func (uc *calendarUseCase) check(ctx context.Context, resourceType entity.ResourceType, resourceID string, start, end time.Time) (*entity.Availability, error) {
	if !end.After(start) {
		return nil, fmt.Errorf("end must be after start")
	}

	var held bool
	var err error
	if resourceType == entity.ResourceTypeZone {
		held, err = uc.bookingRepo.HasZoneHold(ctx, resourceID, start, end)
	} else {
		held, err = uc.bookingRepo.HasProfessionalHold(ctx, resourceID, start, end)
	}
	if err != nil {
		uc.logger.Error("Failed to check bookings for %s %s: %v", resourceType, resourceID, err)
		return nil, fmt.Errorf("failed to check bookings: %w", err)
	}
	if held {
		reason := entity.ReasonDoubleBooked
		if resourceType == entity.ResourceTypeProfessional {
			reason = entity.ReasonProfessionalBusy
		}
		return &entity.Availability{Available: false, Reason: reason}, nil
	}

	blocks, err := uc.calendarRepo.BlocksOverlapping(ctx, resourceType, resourceID, start, end)
	if err != nil {
		uc.logger.Error("Failed to load blocks for %s %s: %v", resourceType, resourceID, err)
		return nil, fmt.Errorf("failed to load blocks: %w", err)
	}
	if len(blocks) > 0 {
		return &entity.Availability{Available: false, Reason: entity.ReasonBlocked}, nil
	}

	windows, err := uc.calendarRepo.WindowsFor(ctx, resourceType, resourceID)
	if err != nil {
		uc.logger.Error("Failed to load windows for %s %s: %v", resourceType, resourceID, err)
		return nil, fmt.Errorf("failed to load windows: %w", err)
	}
	if !entity.CoveredByWindows(windows, start, end) {
		return &entity.Availability{Available: false, Reason: entity.ReasonOutsideHours}, nil
	}

	return &entity.Availability{Available: true}, nil
}
