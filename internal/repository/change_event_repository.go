package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"uinify-backend/internal/model"
)

type ChangeEventRepository struct {
	db *gorm.DB
}

func NewChangeEventRepository(db *gorm.DB) *ChangeEventRepository {
	return &ChangeEventRepository{db: db}
}

func (r *ChangeEventRepository) Create(ctx context.Context, event *model.ChangeEvent) error {
	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		return fmt.Errorf("create change event failed: %w", err)
	}
	return nil
}

func (r *ChangeEventRepository) ListByEntity(ctx context.Context, entity string, entityID uint) ([]model.ChangeEvent, error) {
	events := make([]model.ChangeEvent, 0)
	err := r.db.WithContext(ctx).
		Where("entity = ? AND entity_id = ?", entity, entityID).
		Order("id ASC").
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("list change events failed: %w", err)
	}
	return events, nil
}
