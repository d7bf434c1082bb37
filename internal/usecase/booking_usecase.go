package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"clubhub/internal/clients"
	"clubhub/internal/entity"
	"clubhub/internal/repo/persistent"
	"clubhub/pkg/logger"
	"clubhub/pkg/queue"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	MemberID       string
	ServiceID      string
	ZoneID         string
	LocationID     string
	ProfessionalID string
	StartTime      time.Time
	PaymentMethod  entity.PaymentMethod
	Notes          string
}

type BookingUseCase interface {
	Create(ctx context.Context, req CreateBookingRequest) (*entity.Booking, error)
	Cancel(ctx context.Context, id, actor, reason string) (*entity.Booking, error)
	Complete(ctx context.Context, id, actor string) (*entity.Booking, error)
	ConfirmPayment(ctx context.Context, id string) (*entity.Booking, error)
	Get(ctx context.Context, id string) (*entity.Booking, error)
	List(ctx context.Context, filter persistent.BookingListFilter) ([]*entity.Booking, error)
}

type bookingUseCase struct {
	bookingRepo      persistent.BookingRepository
	walletRepo       persistent.WalletRepository
	professionalRepo persistent.ProfessionalRepository
	calendar         CalendarUseCase
	members          clients.MemberDirectory
	catalog          clients.Catalog
	queueClient      *queue.Client
	platformRate     float64
	logger           *logger.Logger
	now              func() time.Time
}

func NewBookingUseCase(
	bookingRepo persistent.BookingRepository,
	walletRepo persistent.WalletRepository,
	professionalRepo persistent.ProfessionalRepository,
	calendar CalendarUseCase,
	members clients.MemberDirectory,
	catalog clients.Catalog,
	queueClient *queue.Client,
	platformRate float64,
	logger *logger.Logger,
) BookingUseCase {
	return &bookingUseCase{
		bookingRepo:      bookingRepo,
		walletRepo:       walletRepo,
		professionalRepo: professionalRepo,
		calendar:         calendar,
		members:          members,
		catalog:          catalog,
		queueClient:      queueClient,
		platformRate:     platformRate,
		logger:           logger,
		now:              time.Now,
	}
}

func newBookingNumber(t time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))[:6]
	return fmt.Sprintf("BK-%s-%s", t.Format("20060102"), suffix)
}

func (uc *bookingUseCase) Create(ctx context.Context, req CreateBookingRequest) (*entity.Booking, error) {
	member, err := uc.members.GetMember(ctx, req.MemberID)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, fmt.Errorf("member %s: %w", req.MemberID, entity.ErrNotFound)
		}
		uc.logger.Error("Failed to look up member %s: %v", req.MemberID, err)
		return nil, fmt.Errorf("failed to look up member: %w", err)
	}
	if member.Status != clients.MemberStatusActive {
		return nil, fmt.Errorf("member %s is not active: %w", req.MemberID, entity.ErrInvalidState)
	}

	service, err := uc.catalog.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, fmt.Errorf("service %s: %w", req.ServiceID, entity.ErrNotFound)
		}
		uc.logger.Error("Failed to look up service %s: %v", req.ServiceID, err)
		return nil, fmt.Errorf("failed to look up service: %w", err)
	}
	if service.RequiresProfessional && req.ProfessionalID == "" {
		return nil, fmt.Errorf("service requires a professional: %w", entity.ErrInvalidState)
	}

	start := req.StartTime
	end := start.Add(time.Duration(service.DurationMinutes) * time.Minute)

	zoneAvail, err := uc.calendar.IsZoneAvailable(ctx, req.ZoneID, start, end)
	if err != nil {
		return nil, err
	}
	if !zoneAvail.Available {
		return nil, fmt.Errorf("%s: %w", zoneAvail.Reason, entity.ErrResourceUnavailable)
	}

	if req.ProfessionalID != "" {
		proAvail, err := uc.calendar.IsProfessionalAvailable(ctx, req.ProfessionalID, start, end)
		if err != nil {
			return nil, err
		}
		if !proAvail.Available {
			return nil, fmt.Errorf("%s: %w", proAvail.Reason, entity.ErrResourceUnavailable)
		}
	}

	booking := &entity.Booking{
		ID:             uuid.New().String(),
		Number:         newBookingNumber(uc.now()),
		MemberID:       req.MemberID,
		ServiceID:      req.ServiceID,
		ZoneID:         req.ZoneID,
		LocationID:     req.LocationID,
		ProfessionalID: req.ProfessionalID,
		StartTime:      start,
		EndTime:        end,
		PaymentMethod:  req.PaymentMethod,
		Notes:          req.Notes,
	}

	switch req.PaymentMethod {
	case entity.PaymentMethodPrepaid:
		// Lazy wallet creation; the unique constraint resolves races
		if _, err := uc.walletRepo.EnsureWallet(ctx, req.MemberID); err != nil {
			uc.logger.Error("Failed to ensure wallet for member %s: %v", req.MemberID, err)
			return nil, fmt.Errorf("failed to ensure wallet: %w", err)
		}
		booking.AmountBonos = service.PriceBonos
		booking.Status = entity.BookingStatusConfirmed
	case entity.PaymentMethodDirect:
		booking.AmountFiat = service.PriceFiat
		booking.Status = entity.BookingStatusPending
	default:
		return nil, fmt.Errorf("unknown payment method %q: %w", req.PaymentMethod, entity.ErrInvalidState)
	}

	created, err := uc.createWithRetry(ctx, booking)
	if err != nil {
		return nil, err
	}

	if created.Status == entity.BookingStatusConfirmed {
		uc.publish(ctx, "booking.confirmed", created)
	}
	uc.logger.Info("Booking %s created for member %s (%s)", created.Number, created.MemberID, created.Status)
	return created, nil
}

// createWithRetry retries the atomic create exactly once on infrastructure
// failures. The booking id is assigned up front, so a retry after a commit
// that was in fact applied collides on the primary key instead of
// double-booking.
func (uc *bookingUseCase) createWithRetry(ctx context.Context, booking *entity.Booking) (*entity.Booking, error) {
	created, err := uc.bookingRepo.CreateWithCharge(ctx, booking)
	if err == nil {
		return created, nil
	}
	if isBusinessError(err) {
		return nil, err
	}

	uc.logger.Warn("Booking create failed, retrying once: %v", err)
	created, retryErr := uc.bookingRepo.CreateWithCharge(ctx, booking)
	if retryErr != nil {
		if isBusinessError(retryErr) {
			return nil, retryErr
		}
		uc.logger.Error("Booking create failed after retry: %v", retryErr)
		return nil, fmt.Errorf("failed to create booking: %w", retryErr)
	}
	return created, nil
}

func isBusinessError(err error) bool {
	return errors.Is(err, entity.ErrResourceUnavailable) ||
		errors.Is(err, entity.ErrInsufficientBalance) ||
		errors.Is(err, entity.ErrInvalidState) ||
		errors.Is(err, entity.ErrNotFound)
}

func (uc *bookingUseCase) Cancel(ctx context.Context, id, actor, reason string) (*entity.Booking, error) {
	booking, err := uc.bookingRepo.Cancel(ctx, id, actor, reason)
	if err != nil {
		if isBusinessError(err) {
			return nil, err
		}
		uc.logger.Error("Failed to cancel booking %s: %v", id, err)
		return nil, fmt.Errorf("failed to cancel booking: %w", err)
	}

	uc.publish(ctx, "booking.cancelled", booking)
	uc.logger.Info("Booking %s cancelled by %s", booking.Number, actor)
	return booking, nil
}

func (uc *bookingUseCase) Complete(ctx context.Context, id, actor string) (*entity.Booking, error) {
	booking, err := uc.bookingRepo.ByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Re-invoking complete on a finished booking is a no-op, not an error
	if booking.Status == entity.BookingStatusCompleted {
		return booking, nil
	}
	if booking.Status != entity.BookingStatusConfirmed {
		return nil, fmt.Errorf("cannot complete booking in status %s: %w", booking.Status, entity.ErrInvalidState)
	}
	if uc.now().Before(booking.EndTime) {
		return nil, fmt.Errorf("booking ends at %s: %w", booking.EndTime.Format(time.RFC3339), entity.ErrTooEarly)
	}

	rate, err := uc.resolveRate(ctx, booking)
	if err != nil {
		return nil, err
	}

	completed, _, err := uc.bookingRepo.Complete(ctx, id, rate)
	if err != nil {
		if isBusinessError(err) {
			return nil, err
		}
		uc.logger.Error("Failed to complete booking %s: %v", id, err)
		return nil, fmt.Errorf("failed to complete booking: %w", err)
	}

	uc.publish(ctx, "booking.completed", completed)
	uc.logger.Info("Booking %s completed by %s", completed.Number, actor)
	return completed, nil
}

func (uc *bookingUseCase) resolveRate(ctx context.Context, booking *entity.Booking) (float64, error) {
	if booking.ProfessionalID == "" {
		return 0, nil
	}

	override, err := uc.professionalRepo.RateOverride(ctx, booking.ProfessionalID, booking.ServiceID)
	if err != nil {
		uc.logger.Error("Failed to load rate override: %v", err)
		return 0, fmt.Errorf("failed to load rate override: %w", err)
	}

	professional, err := uc.professionalRepo.ByID(ctx, booking.ProfessionalID)
	if err != nil && !errors.Is(err, entity.ErrNotFound) {
		uc.logger.Error("Failed to load professional %s: %v", booking.ProfessionalID, err)
		return 0, fmt.Errorf("failed to load professional: %w", err)
	}

	return entity.ResolveCommissionRate(override, professional, uc.platformRate), nil
}

func (uc *bookingUseCase) ConfirmPayment(ctx context.Context, id string) (*entity.Booking, error) {
	booking, err := uc.bookingRepo.ConfirmPayment(ctx, id)
	if err != nil {
		if isBusinessError(err) {
			return nil, err
		}
		uc.logger.Error("Failed to confirm booking %s: %v", id, err)
		return nil, fmt.Errorf("failed to confirm booking: %w", err)
	}

	uc.publish(ctx, "booking.confirmed", booking)
	return booking, nil
}

func (uc *bookingUseCase) Get(ctx context.Context, id string) (*entity.Booking, error) {
	return uc.bookingRepo.ByID(ctx, id)
}

func (uc *bookingUseCase) List(ctx context.Context, filter persistent.BookingListFilter) ([]*entity.Booking, error) {
	bookings, err := uc.bookingRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Error("Failed to list bookings: %v", err)
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

func (uc *bookingUseCase) publish(ctx context.Context, routingKey string, booking *entity.Booking) {
	if uc.queueClient == nil {
		return
	}
	err := uc.queueClient.PublishBookingEvent(ctx, routingKey, map[string]interface{}{
		"booking_id":      booking.ID,
		"booking_number":  booking.Number,
		"member_id":       booking.MemberID,
		"zone_id":         booking.ZoneID,
		"professional_id": booking.ProfessionalID,
		"start":           booking.StartTime.Unix(),
		"end":             booking.EndTime.Unix(),
		"status":          string(booking.Status),
	})
	if err != nil {
		uc.logger.Warn("Failed to publish %s for booking %s: %v", routingKey, booking.Number, err)
	}
}
