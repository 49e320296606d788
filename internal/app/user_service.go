package app

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"uinify-backend/internal/model"
	"uinify-backend/internal/pkg/password"
	"uinify-backend/internal/repository"
)

var ErrUserNotFound = errors.New("user not found")

type UserService struct {
	store  *repository.Store
	events eventEmitter
}

type CreateUserInput struct {
	Username string
	Password string
}

func NewUserService(store *repository.Store, publisher EventPublisher, log logrus.FieldLogger) *UserService {
	return &UserService{
		store:  store,
		events: eventEmitter{publisher: publisher, log: log},
	}
}

func (s *UserService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.store.Repositories().Users.List(ctx)
}

// CreateUser stores the user with a bcrypt digest of the password. A taken
// username fails on the unique index at commit.
func (s *UserService) CreateUser(ctx context.Context, input CreateUserInput) (*model.User, error) {
	digest, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username: input.Username,
		Password: digest,
	}
	err = s.store.Transaction(ctx, func(repos repository.Repositories) error {
		return repos.Users.Create(ctx, user)
	})
	if err != nil {
		return nil, err
	}

	s.events.emit(ctx, model.EntityUser, user.ID, model.ActionCreated, user)
	return user, nil
}

func (s *UserService) GetUser(ctx context.Context, id uint) (*model.User, error) {
	user, err := s.store.Repositories().Users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// DeleteUser removes the user and its ownership links. Components stay.
func (s *UserService) DeleteUser(ctx context.Context, id uint) (*model.User, error) {
	var deleted *model.User
	err := s.store.Transaction(ctx, func(repos repository.Repositories) error {
		user, err := repos.Users.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if user == nil {
			return ErrUserNotFound
		}
		if err := repos.Users.Delete(ctx, id); err != nil {
			return err
		}
		deleted = user
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.events.emit(ctx, model.EntityUser, deleted.ID, model.ActionDeleted, deleted)
	return deleted, nil
}

// ListUserComponents returns an empty list for users without components,
// including ids that match no user.
func (s *UserService) ListUserComponents(ctx context.Context, id uint) ([]model.Component, error) {
	return s.store.Repositories().Components.ListByUserID(ctx, id)
}

// Authenticate checks a username/password pair against the stored digest.
// Unknown users and wrong passwords both report false without an error.
func (s *UserService) Authenticate(ctx context.Context, username, plain string) (bool, error) {
	user, err := s.store.Repositories().Users.GetByUsername(ctx, username)
	if err != nil {
		return false, err
	}
	if user == nil {
		return false, nil
	}
	return password.Verify(plain, user.Password), nil
}
