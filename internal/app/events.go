package app

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sirupsen/logrus"

	"uinify-backend/internal/model"
)

type EventPublisher interface {
	Publish(ctx context.Context, event model.ChangeEvent) error
}

const publishTimeout = 2 * time.Second

// eventEmitter publishes committed changes. Failures are logged and never
// reach the caller: the write already happened.
type eventEmitter struct {
	publisher EventPublisher
	log       logrus.FieldLogger
}

func (e eventEmitter) emit(ctx context.Context, entity string, entityID uint, action string, payload any) {
	if e.publisher == nil {
		return
	}

	fields := logrus.Fields{"entity": entity, "entity_id": entityID, "action": action}
	body, err := json.Marshal(payload)
	if err != nil {
		e.log.WithError(err).WithFields(fields).Warn("marshal change event payload failed")
		return
	}

	publishCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	event := model.ChangeEvent{
		Entity:     entity,
		EntityID:   entityID,
		Action:     action,
		Payload:    string(body),
		OccurredAt: time.Now().UTC(),
	}
	if err := e.publisher.Publish(publishCtx, event); err != nil {
		e.log.WithError(err).WithFields(fields).Warn("publish change event failed")
	}
}
