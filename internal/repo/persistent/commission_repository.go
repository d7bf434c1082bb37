package persistent

import (
	"context"
	"errors"
	"time"

	"clubhub/internal/entity"
	"clubhub/internal/model"

	"gorm.io/gorm"
)

type CommissionListFilter struct {
	ProfessionalID string
	Status         entity.CommissionStatus
	From           time.Time
	To             time.Time
	Limit          int
	Offset         int
}

type CommissionRepository interface {
	ByBooking(ctx context.Context, bookingID string) (*entity.CommissionRecord, error)
	List(ctx context.Context, filter CommissionListFilter) ([]*entity.CommissionRecord, error)
	UpdateStatus(ctx context.Context, id string, status entity.CommissionStatus) (*entity.CommissionRecord, error)
}

type commissionRepository struct {
	db *gorm.DB
}

func NewCommissionRepository(db *gorm.DB) CommissionRepository {
	return &commissionRepository{db: db}
}

func (r *commissionRepository) ByBooking(ctx context.Context, bookingID string) (*entity.CommissionRecord, error) {
	var record model.CommissionRecordModel
	if err := r.db.WithContext(ctx).Where("booking_id = ?", bookingID).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entity.ErrNotFound
		}
		return nil, err
	}
	return ToCommissionEntity(&record), nil
}

func (r *commissionRepository) List(ctx context.Context, filter CommissionListFilter) ([]*entity.CommissionRecord, error) {
	query := r.db.WithContext(ctx).Model(&model.CommissionRecordModel{})
	if filter.ProfessionalID != "" {
		query = query.Where("professional_id = ?", filter.ProfessionalID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}
	if !filter.From.IsZero() {
		query = query.Where("created_at >= ?", filter.From)
	}
	if !filter.To.IsZero() {
		query = query.Where("created_at < ?", filter.To)
	}

	query = query.Order("created_at ASC")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit).Offset(filter.Offset)
	}

	var recordModels []model.CommissionRecordModel
	if err := query.Find(&recordModels).Error; err != nil {
		return nil, err
	}

	records := make([]*entity.CommissionRecord, len(recordModels))
	for i := range recordModels {
		records[i] = ToCommissionEntity(&recordModels[i])
	}
	return records, nil
}

func (r *commissionRepository) UpdateStatus(ctx context.Context, id string, status entity.CommissionStatus) (*entity.CommissionRecord, error) {
	var record model.CommissionRecordModel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&record, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return entity.ErrNotFound
			}
			return err
		}
		record.Status = string(status)
		return tx.Save(&record).Error
	})
	if err != nil {
		return nil, err
	}
	return ToCommissionEntity(&record), nil
}
