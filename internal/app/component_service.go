package app

import (
	"context"
	"errors"
	"strconv"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"uinify-backend/internal/model"
	"uinify-backend/internal/repository"
)

var ErrComponentNotFound = errors.New("component not found")

type ComponentCache interface {
	Get(ctx context.Context, id uint) (*model.Component, bool, error)
	Set(ctx context.Context, component *model.Component) error
	Delete(ctx context.Context, id uint) error
}

type ComponentService struct {
	store  *repository.Store
	cache  ComponentCache
	events eventEmitter
	loads  singleflight.Group
	log    logrus.FieldLogger
}

type CreateComponentInput struct {
	UserID  uint
	Name    string
	Content *string
}

type UpdateComponentInput struct {
	Name    string
	Content *string
}

// NewComponentService wires the service. cache and publisher may be nil.
func NewComponentService(
	store *repository.Store,
	cache ComponentCache,
	publisher EventPublisher,
	log logrus.FieldLogger,
) *ComponentService {
	return &ComponentService{
		store:  store,
		cache:  cache,
		events: eventEmitter{publisher: publisher, log: log},
		log:    log,
	}
}

func (s *ComponentService) ListComponents(ctx context.Context) ([]model.Component, error) {
	return s.store.Repositories().Components.List(ctx)
}

// CreateComponent inserts the component and its ownership link in one
// transaction: either both rows persist or neither does.
func (s *ComponentService) CreateComponent(ctx context.Context, input CreateComponentInput) (*model.Component, error) {
	component := &model.Component{
		Name:    input.Name,
		Content: input.Content,
	}
	err := s.store.Transaction(ctx, func(repos repository.Repositories) error {
		if err := repos.Components.Create(ctx, component); err != nil {
			return err
		}
		return repos.Links.Link(ctx, input.UserID, component.ID)
	})
	if err != nil {
		return nil, err
	}

	s.events.emit(ctx, model.EntityComponent, component.ID, model.ActionCreated, component)
	return component, nil
}

func (s *ComponentService) GetComponent(ctx context.Context, id uint) (*model.Component, error) {
	if s.cache == nil {
		return s.loadComponent(ctx, id)
	}

	cached, ok, err := s.cache.Get(ctx, id)
	if err != nil {
		s.log.WithError(err).WithField("component_id", id).Warn("component cache read failed")
	}
	if ok {
		return cached, nil
	}

	// The load is shared by every waiter, so it must outlive the caller that started it.
	loadCtx := context.WithoutCancel(ctx)
	v, err, _ := s.loads.Do(strconv.FormatUint(uint64(id), 10), func() (interface{}, error) {
		component, err := s.loadComponent(loadCtx, id)
		if err != nil {
			return nil, err
		}
		if err := s.cache.Set(loadCtx, component); err != nil {
			s.log.WithError(err).WithField("component_id", id).Warn("component cache write failed")
		}
		return component, nil
	})
	if err != nil {
		return nil, err
	}
	component := *v.(*model.Component)
	return &component, nil
}

// UpdateComponent replaces both name and content.
func (s *ComponentService) UpdateComponent(ctx context.Context, id uint, input UpdateComponentInput) (*model.Component, error) {
	var updated *model.Component
	err := s.store.Transaction(ctx, func(repos repository.Repositories) error {
		component, err := repos.Components.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if component == nil {
			return ErrComponentNotFound
		}
		component.Name = input.Name
		component.Content = input.Content
		if err := repos.Components.Update(ctx, component); err != nil {
			return err
		}
		updated = component
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, id)
	s.events.emit(ctx, model.EntityComponent, id, model.ActionUpdated, updated)
	return updated, nil
}

// DeleteComponent returns the row as it was before deletion. Ownership
// links are removed by the foreign key cascade.
func (s *ComponentService) DeleteComponent(ctx context.Context, id uint) (*model.Component, error) {
	var deleted *model.Component
	err := s.store.Transaction(ctx, func(repos repository.Repositories) error {
		component, err := repos.Components.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if component == nil {
			return ErrComponentNotFound
		}
		if err := repos.Components.Delete(ctx, id); err != nil {
			return err
		}
		deleted = component
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, id)
	s.events.emit(ctx, model.EntityComponent, id, model.ActionDeleted, deleted)
	return deleted, nil
}

func (s *ComponentService) loadComponent(ctx context.Context, id uint) (*model.Component, error) {
	component, err := s.store.Repositories().Components.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if component == nil {
		return nil, ErrComponentNotFound
	}
	return component, nil
}

func (s *ComponentService) invalidate(ctx context.Context, id uint) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(context.WithoutCancel(ctx), id); err != nil {
		s.log.WithError(err).WithField("component_id", id).Warn("component cache invalidation failed")
	}
}
