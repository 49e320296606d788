package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"uinify-backend/internal/model"
)

type ChangeEventStore interface {
	Create(ctx context.Context, event *model.ChangeEvent) error
}

// ChangeEventWorker drains the change-event queue into the audit table.
type ChangeEventWorker struct {
	conn      *amqp.Connection
	store     ChangeEventStore
	queueName string
	log       logrus.FieldLogger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewChangeEventWorker(conn *amqp.Connection, store ChangeEventStore, queueName string, log logrus.FieldLogger) *ChangeEventWorker {
	return &ChangeEventWorker{
		conn:      conn,
		store:     store,
		queueName: queueName,
		log:       log.WithField("worker", "change_events"),
	}
}

func (w *ChangeEventWorker) Start(ctx context.Context) error {
	if w.cancel != nil {
		return nil
	}

	workerCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	ch, err := w.conn.Channel()
	if err != nil {
		cancel()
		return fmt.Errorf("open worker channel failed: %w", err)
	}

	_, err = ch.QueueDeclare(
		w.queueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("declare worker queue failed: %w", err)
	}

	deliveries, err := ch.Consume(
		w.queueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("consume queue failed: %w", err)
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer ch.Close()

		for {
			select {
			case <-workerCtx.Done():
				return
			case d, ok := <-deliveries:
				if !ok {
					return
				}
				if err := w.handle(workerCtx, d.Body); err != nil {
					w.log.WithError(err).Warn("drop change event")
					_ = d.Nack(false, false)
					continue
				}
				_ = d.Ack(false)
			}
		}
	}()

	return nil
}

func (w *ChangeEventWorker) handle(ctx context.Context, body []byte) error {
	var event model.ChangeEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return fmt.Errorf("decode change event failed: %w", err)
	}
	if event.Entity == "" || event.Action == "" {
		return errors.New("change event missing entity or action")
	}
	event.ID = 0

	if err := w.store.Create(ctx, &event); err != nil {
		return err
	}
	w.log.WithFields(logrus.Fields{
		"entity":    event.Entity,
		"entity_id": event.EntityID,
		"action":    event.Action,
	}).Debug("change event stored")
	return nil
}

func (w *ChangeEventWorker) Close() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
}
