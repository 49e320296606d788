package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"uinify-backend/internal/model"
)

type UserComponentRepository struct {
	db *gorm.DB
}

func NewUserComponentRepository(db *gorm.DB) *UserComponentRepository {
	return &UserComponentRepository{db: db}
}

func (r *UserComponentRepository) Link(ctx context.Context, userID, componentID uint) error {
	link := &model.UserComponent{UserID: userID, ComponentID: componentID}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(link).Error; err != nil {
		return fmt.Errorf("link component to user failed: %w", err)
	}
	return nil
}

func (r *UserComponentRepository) ListByUserID(ctx context.Context, userID uint) ([]model.UserComponent, error) {
	links := make([]model.UserComponent, 0)
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("component_id ASC").Find(&links).Error; err != nil {
		return nil, fmt.Errorf("list links by user failed: %w", err)
	}
	return links, nil
}

func (r *UserComponentRepository) ListByComponentID(ctx context.Context, componentID uint) ([]model.UserComponent, error) {
	links := make([]model.UserComponent, 0)
	if err := r.db.WithContext(ctx).Where("component_id = ?", componentID).Order("user_id ASC").Find(&links).Error; err != nil {
		return nil, fmt.Errorf("list links by component failed: %w", err)
	}
	return links, nil
}
