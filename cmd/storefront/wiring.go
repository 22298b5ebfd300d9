package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dwikikusuma/storefront/internal/events"
	persistenceapp "github.com/dwikikusuma/storefront/internal/persistence/app"
	"github.com/dwikikusuma/storefront/internal/persistence/infra/filekv"
	"github.com/dwikikusuma/storefront/internal/persistence/infra/memkv"
	"github.com/dwikikusuma/storefront/internal/persistence/infra/postgreskv"
	"github.com/dwikikusuma/storefront/internal/persistence/infra/rediskv"
	"github.com/dwikikusuma/storefront/pkg/config"
	"github.com/dwikikusuma/storefront/pkg/postgres"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
)

func noop() {}

// openKV builds the snapshot store for cfg.Storage.Driver. An unreachable
// redis is only logged; the storefront starts degraded and retries on every
// write.
func openKV(ctx context.Context, cfg config.Config, log *slog.Logger) (persistenceapp.KV, func(), error) {
	switch cfg.Storage.Driver {
	case config.DriverMemory:
		return memkv.New(), noop, nil

	case config.DriverFile:
		kv, err := filekv.New(cfg.Storage.Dir)
		if err != nil {
			return nil, nil, fmt.Errorf("file store: %w", err)
		}
		return kv, noop, nil

	case config.DriverRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn("redis ping failed", slog.String("addr", cfg.Redis.Addr), slog.Any("err", err))
		}
		return rediskv.New(rdb, cfg.Storage.Prefix), func() { _ = rdb.Close() }, nil

	case config.DriverPostgres:
		db, err := postgres.Open(postgres.Config{
			Host:    cfg.Postgres.Host,
			Port:    cfg.Postgres.Port,
			User:    cfg.Postgres.User,
			Pass:    cfg.Postgres.Pass,
			DB:      cfg.Postgres.DB,
			SSLMode: cfg.Postgres.SSLMode,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("postgres: %w", err)
		}
		kv := postgreskv.New(db)
		if err := kv.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("postgres schema: %w", err)
		}
		return kv, func() { _ = db.Close() }, nil
	}
	return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
}

// openPublisher connects to RabbitMQ when a URL is configured and falls back
// to logging otherwise.
func openPublisher(url string, log *slog.Logger) (events.Publisher, func()) {
	if url == "" {
		return events.NewLogPublisher(log), noop
	}
	conn, err := amqp.Dial(url)
	if err != nil {
		log.Warn("rabbitmq unavailable, logging events instead", slog.Any("err", err))
		return events.NewLogPublisher(log), noop
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		log.Warn("rabbitmq channel failed, logging events instead", slog.Any("err", err))
		return events.NewLogPublisher(log), noop
	}
	pub, err := events.NewRabbitPublisher(ch)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		log.Warn("rabbitmq setup failed, logging events instead", slog.Any("err", err))
		return events.NewLogPublisher(log), noop
	}
	return pub, func() {
		_ = ch.Close()
		_ = conn.Close()
	}
}
