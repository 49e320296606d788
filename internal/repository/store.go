package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"uinify-backend/internal/model"
)

// AutoMigrate creates the schema. Safe to run against an existing database.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.User{},
		&model.Component{},
		&model.UserComponent{},
		&model.ChangeEvent{},
	); err != nil {
		return fmt.Errorf("auto migrate tables failed: %w", err)
	}
	return nil
}

// Repositories bundles repositories that share one connection or transaction.
type Repositories struct {
	Users      *UserRepository
	Components *ComponentRepository
	Links      *UserComponentRepository
}

func newRepositories(db *gorm.DB) Repositories {
	return Repositories{
		Users:      NewUserRepository(db),
		Components: NewComponentRepository(db),
		Links:      NewUserComponentRepository(db),
	}
}

// Store hands out repositories, either bound to the pool or to a unit of work.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Repositories() Repositories {
	return newRepositories(s.db)
}

// Transaction runs fn inside one database transaction. It commits when fn
// returns nil and rolls back on error or panic.
func (s *Store) Transaction(ctx context.Context, fn func(repos Repositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(newRepositories(tx))
	})
}
