package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"uinify-backend/internal/model"
)

type ComponentCache struct {
	client *redisv9.Client
	ttl    time.Duration
}

func NewComponentCache(client *redisv9.Client, ttl time.Duration) *ComponentCache {
	if ttl <= 0 {
		ttl = 60 * time.Second
	}
	return &ComponentCache{
		client: client,
		ttl:    ttl,
	}
}

// Get returns the cached component and whether the key was present.
func (c *ComponentCache) Get(ctx context.Context, id uint) (*model.Component, bool, error) {
	raw, err := c.client.Get(ctx, componentKey(id)).Bytes()
	if err == redisv9.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get component failed: %w", err)
	}

	var component model.Component
	if err := json.Unmarshal(raw, &component); err != nil {
		return nil, false, fmt.Errorf("unmarshal cached component failed: %w", err)
	}
	return &component, true, nil
}

func (c *ComponentCache) Set(ctx context.Context, component *model.Component) error {
	payload, err := json.Marshal(component)
	if err != nil {
		return fmt.Errorf("marshal component cache failed: %w", err)
	}
	if err := c.client.Set(ctx, componentKey(component.ID), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set component failed: %w", err)
	}
	return nil
}

func (c *ComponentCache) Delete(ctx context.Context, id uint) error {
	if err := c.client.Del(ctx, componentKey(id)).Err(); err != nil {
		return fmt.Errorf("redis delete component failed: %w", err)
	}
	return nil
}

func componentKey(id uint) string {
	return fmt.Sprintf("uinify:component:%d", id)
}
