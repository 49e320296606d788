package bootstrap

import (
	"context"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"uinify-backend/internal/config"
	"uinify-backend/internal/logger"
	"uinify-backend/internal/platform/database"
	rabbitmqClient "uinify-backend/internal/platform/rabbitmq"
	redisClient "uinify-backend/internal/platform/redis"
	"uinify-backend/internal/repository"
	"uinify-backend/internal/worker"
)

// App holds the process-wide handles. Redis and MQConn are nil when disabled.
type App struct {
	Config      *config.Config
	Log         *logrus.Logger
	DB          *gorm.DB
	Redis       *redis.Client
	MQConn      *amqp.Connection
	EventWorker *worker.ChangeEventWorker

	StartedAt time.Time
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config failed: %w", err)
	}
	log := logger.New(cfg.Log)

	app := &App{
		Config:    cfg,
		Log:       log,
		StartedAt: time.Now(),
	}

	app.DB, err = database.New(ctx, cfg.Database, log)
	if err != nil {
		return nil, err
	}
	if err := repository.AutoMigrate(app.DB); err != nil {
		_ = app.Close()
		return nil, err
	}
	log.WithField("driver", cfg.Database.Driver).Info("database ready")

	if cfg.Redis.Enabled {
		app.Redis, err = redisClient.New(ctx, cfg.Redis)
		if err != nil {
			_ = app.Close()
			return nil, err
		}
		log.WithField("addr", cfg.Redis.Addr).Info("redis component cache enabled")
	}

	if cfg.RabbitMQ.Enabled {
		app.MQConn, err = rabbitmqClient.New(ctx, cfg.RabbitMQ.URL, cfg.RabbitMQ.ChangeEventQueue)
		if err != nil {
			_ = app.Close()
			return nil, err
		}

		eventRepo := repository.NewChangeEventRepository(app.DB)
		app.EventWorker = worker.NewChangeEventWorker(app.MQConn, eventRepo, cfg.RabbitMQ.ChangeEventQueue, log)
		if err := app.EventWorker.Start(ctx); err != nil {
			_ = app.Close()
			return nil, fmt.Errorf("start change event worker failed: %w", err)
		}
		log.WithField("queue", cfg.RabbitMQ.ChangeEventQueue).Info("change event worker started")
	}

	return app, nil
}

func (a *App) Close() error {
	var closeErr error
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			closeErr = err
		}
	}
	if a.EventWorker != nil {
		a.EventWorker.Close()
	}
	if a.MQConn != nil {
		if err := a.MQConn.Close(); err != nil {
			closeErr = err
		}
	}
	if a.DB != nil {
		if err := database.Close(a.DB); err != nil {
			closeErr = err
		}
	}
	return closeErr
}
