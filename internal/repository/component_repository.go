package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"uinify-backend/internal/model"
)

type ComponentRepository struct {
	db *gorm.DB
}

func NewComponentRepository(db *gorm.DB) *ComponentRepository {
	return &ComponentRepository{db: db}
}

func (r *ComponentRepository) List(ctx context.Context) ([]model.Component, error) {
	components := make([]model.Component, 0)
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&components).Error; err != nil {
		return nil, fmt.Errorf("list components failed: %w", err)
	}
	return components, nil
}

// ListByUserID returns the components linked to userID through users_components.
func (r *ComponentRepository) ListByUserID(ctx context.Context, userID uint) ([]model.Component, error) {
	components := make([]model.Component, 0)
	err := r.db.WithContext(ctx).
		Joins("JOIN users_components ON users_components.component_id = components.id").
		Where("users_components.user_id = ?", userID).
		Order("components.id ASC").
		Find(&components).Error
	if err != nil {
		return nil, fmt.Errorf("list components by user failed: %w", err)
	}
	return components, nil
}

func (r *ComponentRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Component{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count components failed: %w", err)
	}
	return count, nil
}

func (r *ComponentRepository) Create(ctx context.Context, component *model.Component) error {
	if err := r.db.WithContext(ctx).Create(component).Error; err != nil {
		return fmt.Errorf("create component failed: %w", err)
	}
	return nil
}

func (r *ComponentRepository) GetByID(ctx context.Context, id uint) (*model.Component, error) {
	var component model.Component
	if err := r.db.WithContext(ctx).First(&component, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query component by id failed: %w", err)
	}
	return &component, nil
}

// Update overwrites name and content, including a nil content.
func (r *ComponentRepository) Update(ctx context.Context, component *model.Component) error {
	err := r.db.WithContext(ctx).
		Model(component).
		Select("name", "content").
		Updates(component).Error
	if err != nil {
		return fmt.Errorf("update component failed: %w", err)
	}
	return nil
}

func (r *ComponentRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&model.Component{}, id).Error; err != nil {
		return fmt.Errorf("delete component failed: %w", err)
	}
	return nil
}
