package persistent

import (
	"context"
	"time"

	"clubhub/internal/entity"
	"clubhub/internal/model"

	"gorm.io/gorm"
)

type CalendarRepository interface {
	WindowsFor(ctx context.Context, resourceType entity.ResourceType, resourceID string) ([]*entity.AvailabilityWindow, error)
	BlocksOverlapping(ctx context.Context, resourceType entity.ResourceType, resourceID string, start, end time.Time) ([]*entity.Block, error)
}

type calendarRepository struct {
	db *gorm.DB
}

func NewCalendarRepository(db *gorm.DB) CalendarRepository {
	return &calendarRepository{db: db}
}

func (r *calendarRepository) WindowsFor(ctx context.Context, resourceType entity.ResourceType, resourceID string) ([]*entity.AvailabilityWindow, error) {
	var windowModels []model.AvailabilityWindowModel
	err := r.db.WithContext(ctx).
		Where("resource_type = ? AND resource_id = ?", string(resourceType), resourceID).
		Order("weekday ASC, open_minute ASC").
		Find(&windowModels).Error
	if err != nil {
		return nil, err
	}

	windows := make([]*entity.AvailabilityWindow, len(windowModels))
	for i := range windowModels {
		windows[i] = ToWindowEntity(&windowModels[i])
	}
	return windows, nil
}

func (r *calendarRepository) BlocksOverlapping(ctx context.Context, resourceType entity.ResourceType, resourceID string, start, end time.Time) ([]*entity.Block, error) {
	var blockModels []model.BlockModel
	err := r.db.WithContext(ctx).
		Where("resource_type = ? AND resource_id = ?", string(resourceType), resourceID).
		Where("start_time < ? AND end_time > ?", end, start).
		Find(&blockModels).Error
	if err != nil {
		return nil, err
	}

	blocks := make([]*entity.Block, len(blockModels))
	for i := range blockModels {
		blocks[i] = ToBlockEntity(&blockModels[i])
	}
	return blocks, nil
}
