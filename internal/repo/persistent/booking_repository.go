package persistent

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clubhub/internal/entity"
	"clubhub/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BookingListFilter struct {
	MemberID       string
	ProfessionalID string
	ZoneID         string
	Status         entity.BookingStatus
	From           time.Time
	To             time.Time
	Limit          int
	Offset         int
}

type BookingRepository interface {
	// CreateWithCharge reserves the slot and, for prepaid bookings, debits the
	// wallet — all inside one transaction. Either the booking row and its
	// wallet transaction both exist afterwards, or neither does.
	CreateWithCharge(ctx context.Context, b *entity.Booking) (*entity.Booking, error)
	Cancel(ctx context.Context, id, actor, reason string) (*entity.Booking, error)
	Complete(ctx context.Context, id string, rate float64) (*entity.Booking, *entity.CommissionRecord, error)
	ConfirmPayment(ctx context.Context, id string) (*entity.Booking, error)
	ByID(ctx context.Context, id string) (*entity.Booking, error)
	List(ctx context.Context, filter BookingListFilter) ([]*entity.Booking, error)
	HasZoneHold(ctx context.Context, zoneID string, start, end time.Time) (bool, error)
	HasProfessionalHold(ctx context.Context, professionalID string, start, end time.Time) (bool, error)
}

type bookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

var holdStatuses = []string{
	string(entity.BookingStatusPending),
	string(entity.BookingStatusConfirmed),
}

// lockResource takes a transaction-scoped advisory lock on the resource id.
// Row locks alone cannot stop two creates on an empty slot: with no existing
// row to lock, both would pass the overlap check and insert. The advisory
// lock serializes creates per resource, so the second transaction re-runs its
// overlap check only after the first has committed.
func lockResource(tx *gorm.DB, resourceID string) error {
	return tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", resourceID).Error
}

// lockOverlapping locks any booking that would overlap the candidate slot so
// a concurrent cancel or status change on an existing hold serializes with
// this create.
func lockOverlapping(tx *gorm.DB, column, resourceID string, start, end time.Time) (bool, error) {
	var existing model.BookingModel
	err := tx.Model(&model.BookingModel{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where(column+" = ? AND status IN ?", resourceID, holdStatuses).
		Where("start_time < ? AND end_time > ?", end, start).
		Take(&existing).Error
	if err == nil {
		return true, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return false, err
}

func (r *bookingRepository) CreateWithCharge(ctx context.Context, b *entity.Booking) (*entity.Booking, error) {
	bookingModel := ToBookingModel(b)
	if bookingModel.ID == "" {
		// Assigned up front so the wallet transaction can reference it
		bookingModel.ID = uuid.New().String()
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockResource(tx, b.ZoneID); err != nil {
			return err
		}
		if b.ProfessionalID != "" {
			if err := lockResource(tx, b.ProfessionalID); err != nil {
				return err
			}
		}

		taken, err := lockOverlapping(tx, "zone_id", b.ZoneID, b.StartTime, b.EndTime)
		if err != nil {
			return err
		}
		if taken {
			return fmt.Errorf("%s: %w", entity.ReasonDoubleBooked, entity.ErrResourceUnavailable)
		}

		if b.ProfessionalID != "" {
			taken, err := lockOverlapping(tx, "professional_id", b.ProfessionalID, b.StartTime, b.EndTime)
			if err != nil {
				return err
			}
			if taken {
				return fmt.Errorf("%s: %w", entity.ReasonProfessionalBusy, entity.ErrResourceUnavailable)
			}
		}

		if b.Charged() {
			wallet, err := lockWallet(tx, b.MemberID)
			if err != nil {
				return err
			}
			txModel, err := applyDebit(tx, wallet, b.AmountBonos, entity.ReferenceTypeBooking, bookingModel.ID, "booking "+b.Number)
			if err != nil {
				return err
			}
			bookingModel.TransactionID = &txModel.ID
		}

		return tx.Create(bookingModel).Error
	})
	if err != nil {
		return nil, err
	}

	return ToBookingEntity(bookingModel), nil
}

func (r *bookingRepository) Cancel(ctx context.Context, id, actor, reason string) (*entity.Booking, error) {
	var bookingModel model.BookingModel

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&bookingModel, "id = ?", id).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return entity.ErrNotFound
			}
			return err
		}

		status := entity.BookingStatus(bookingModel.Status)
		if !entity.CanTransition(status, entity.BookingStatusCancelled) {
			return fmt.Errorf("cannot cancel booking in status %s: %w", status, entity.ErrInvalidState)
		}

		// Refund the wallet charge; the refund and the status change commit
		// together or the booking stays confirmed.
		if bookingModel.PaymentMethod == string(entity.PaymentMethodPrepaid) && bookingModel.AmountBonos > 0 {
			wallet, err := lockWallet(tx, bookingModel.MemberID)
			if err != nil {
				return err
			}
			if _, err := applyCredit(tx, wallet, entity.TransactionTypeRefund, bookingModel.AmountBonos,
				entity.ReferenceTypeBooking, bookingModel.ID, "cancellation of booking "+bookingModel.Number); err != nil {
				return err
			}
		}

		bookingModel.Status = string(entity.BookingStatusCancelled)
		bookingModel.CancelReason = reason
		if bookingModel.CancelReason == "" {
			bookingModel.CancelReason = "cancelled by " + actor
		}
		return tx.Save(&bookingModel).Error
	})
	if err != nil {
		return nil, err
	}

	return ToBookingEntity(&bookingModel), nil
}

// Complete is idempotent: completing an already-completed booking returns it
// unchanged and never accrues a second commission.
func (r *bookingRepository) Complete(ctx context.Context, id string, rate float64) (*entity.Booking, *entity.CommissionRecord, error) {
	var bookingModel model.BookingModel
	var commissionModel *model.CommissionRecordModel

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&bookingModel, "id = ?", id).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return entity.ErrNotFound
			}
			return err
		}

		status := entity.BookingStatus(bookingModel.Status)
		if status == entity.BookingStatusCompleted {
			commissionModel, err = commissionByBookingTx(tx, bookingModel.ID)
			return err
		}
		if !entity.CanTransition(status, entity.BookingStatusCompleted) {
			return fmt.Errorf("cannot complete booking in status %s: %w", status, entity.ErrInvalidState)
		}

		gross := bookingModel.AmountBonos
		if bookingModel.PaymentMethod == string(entity.PaymentMethodDirect) {
			gross = bookingModel.AmountFiat
		}

		if bookingModel.ProfessionalID != nil && gross > 0 {
			record := &model.CommissionRecordModel{
				ProfessionalID: *bookingModel.ProfessionalID,
				BookingID:      bookingModel.ID,
				GrossAmount:    gross,
				Rate:           rate,
				Amount:         entity.CommissionAmount(gross, rate),
				Status:         string(entity.CommissionStatusPending),
			}
			// The unique index on booking_id is the idempotency guard
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "booking_id"}},
				DoNothing: true,
			}).Create(record).Error; err != nil {
				return err
			}
			commissionModel, err = commissionByBookingTx(tx, bookingModel.ID)
			if err != nil {
				return err
			}
		}

		bookingModel.Status = string(entity.BookingStatusCompleted)
		return tx.Save(&bookingModel).Error
	})
	if err != nil {
		return nil, nil, err
	}

	booking := ToBookingEntity(&bookingModel)
	if commissionModel == nil {
		return booking, nil, nil
	}
	return booking, ToCommissionEntity(commissionModel), nil
}

// ConfirmPayment settles a pending direct-charge booking. Confirming an
// already-confirmed booking is a no-op.
func (r *bookingRepository) ConfirmPayment(ctx context.Context, id string) (*entity.Booking, error) {
	var bookingModel model.BookingModel

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&bookingModel, "id = ?", id).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return entity.ErrNotFound
			}
			return err
		}

		status := entity.BookingStatus(bookingModel.Status)
		if status == entity.BookingStatusConfirmed {
			return nil
		}
		if !entity.CanTransition(status, entity.BookingStatusConfirmed) {
			return fmt.Errorf("cannot confirm booking in status %s: %w", status, entity.ErrInvalidState)
		}

		bookingModel.Status = string(entity.BookingStatusConfirmed)
		return tx.Save(&bookingModel).Error
	})
	if err != nil {
		return nil, err
	}

	return ToBookingEntity(&bookingModel), nil
}

func (r *bookingRepository) ByID(ctx context.Context, id string) (*entity.Booking, error) {
	var bookingModel model.BookingModel
	if err := r.db.WithContext(ctx).First(&bookingModel, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entity.ErrNotFound
		}
		return nil, err
	}
	return ToBookingEntity(&bookingModel), nil
}

func (r *bookingRepository) List(ctx context.Context, filter BookingListFilter) ([]*entity.Booking, error) {
	query := r.db.WithContext(ctx).Model(&model.BookingModel{})
	if filter.MemberID != "" {
		query = query.Where("member_id = ?", filter.MemberID)
	}
	if filter.ProfessionalID != "" {
		query = query.Where("professional_id = ?", filter.ProfessionalID)
	}
	if filter.ZoneID != "" {
		query = query.Where("zone_id = ?", filter.ZoneID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}
	if !filter.From.IsZero() {
		query = query.Where("end_time > ?", filter.From)
	}
	if !filter.To.IsZero() {
		query = query.Where("start_time < ?", filter.To)
	}

	query = query.Order("start_time ASC")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit).Offset(filter.Offset)
	}

	var bookingModels []model.BookingModel
	if err := query.Find(&bookingModels).Error; err != nil {
		return nil, err
	}

	bookings := make([]*entity.Booking, len(bookingModels))
	for i := range bookingModels {
		bookings[i] = ToBookingEntity(&bookingModels[i])
	}
	return bookings, nil
}

func (r *bookingRepository) HasZoneHold(ctx context.Context, zoneID string, start, end time.Time) (bool, error) {
	return r.hasHold(ctx, "zone_id", zoneID, start, end)
}

func (r *bookingRepository) HasProfessionalHold(ctx context.Context, professionalID string, start, end time.Time) (bool, error) {
	return r.hasHold(ctx, "professional_id", professionalID, start, end)
}

func (r *bookingRepository) hasHold(ctx context.Context, column, resourceID string, start, end time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.BookingModel{}).
		Where(column+" = ? AND status IN ?", resourceID, holdStatuses).
		Where("start_time < ? AND end_time > ?", end, start).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func commissionByBookingTx(tx *gorm.DB, bookingID string) (*model.CommissionRecordModel, error) {
	var record model.CommissionRecordModel
	err := tx.Where("booking_id = ?", bookingID).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}
