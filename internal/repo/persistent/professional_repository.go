package persistent

import (
	"context"
	"errors"

	"clubhub/internal/entity"
	"clubhub/internal/model"

	"gorm.io/gorm"
)

type ProfessionalRepository interface {
	ByID(ctx context.Context, id string) (*entity.Professional, error)
	// RateOverride returns nil when no professional-service override exists.
	RateOverride(ctx context.Context, professionalID, serviceID string) (*entity.ServiceRateOverride, error)
}

type professionalRepository struct {
	db *gorm.DB
}

func NewProfessionalRepository(db *gorm.DB) ProfessionalRepository {
	return &professionalRepository{db: db}
}

func (r *professionalRepository) ByID(ctx context.Context, id string) (*entity.Professional, error) {
	var professionalModel model.ProfessionalModel
	if err := r.db.WithContext(ctx).First(&professionalModel, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entity.ErrNotFound
		}
		return nil, err
	}
	return ToProfessionalEntity(&professionalModel), nil
}

func (r *professionalRepository) RateOverride(ctx context.Context, professionalID, serviceID string) (*entity.ServiceRateOverride, error) {
	var overrideModel model.ServiceRateOverrideModel
	err := r.db.WithContext(ctx).
		Where("professional_id = ? AND service_id = ?", professionalID, serviceID).
		First(&overrideModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return ToOverrideEntity(&overrideModel), nil
}
