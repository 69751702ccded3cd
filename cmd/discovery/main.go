package main

import (
	"context"
	"net/http"
	"os"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"

	"github.com/matst80/slask-discovery/pkg/catalog"
	"github.com/matst80/slask-discovery/pkg/common"
	"github.com/matst80/slask-discovery/pkg/config"
	"github.com/matst80/slask-discovery/pkg/discovery"
	"github.com/matst80/slask-discovery/pkg/server"
	"github.com/matst80/slask-discovery/pkg/storage"
	"github.com/matst80/slask-discovery/pkg/tracking"
	"github.com/matst80/slask-discovery/pkg/types"
)

type app struct {
	cfg      *config.Config
	logger   zerolog.Logger
	conn     *amqp.Connection
	catalog  discovery.Catalog
	upsert   func(...types.Product)
	store    storage.StateStore
	tracking *tracking.RabbitTracking
}

func (a *app) connectCatalog() {
	if a.cfg.Catalog.URL != "" {
		a.catalog = catalog.NewHTTPClient(a.cfg.Catalog.URL, a.cfg.Catalog.Timeout, a.logger)
		a.logger.Info().Str("url", a.cfg.Catalog.URL).Msg("using remote catalog")
		return
	}
	mem := catalog.NewMemory(nil)
	if a.cfg.Catalog.Seed != "" {
		loaded, err := catalog.LoadMemory(a.cfg.Catalog.Seed)
		if err != nil {
			a.logger.Fatal().Err(err).Str("file", a.cfg.Catalog.Seed).Msg("failed to load catalog seed")
		}
		mem = loaded
	}
	a.catalog = mem
	a.upsert = mem.Upsert
	a.logger.Info().Msg("using in memory catalog")
}

func (a *app) connectStore() {
	if a.cfg.Redis.URL == "" {
		a.store = storage.NewMemoryStore(a.cfg.Session.TTL)
		return
	}
	rs := storage.NewRedisStore(a.cfg.Redis.URL, a.cfg.Redis.Password, a.cfg.Redis.DB, a.cfg.Country, a.cfg.Session.TTL)
	if err := rs.Ping(context.Background()); err != nil {
		a.logger.Warn().Err(err).Msg("redis not reachable, session state kept in memory")
		rs.Close()
		a.store = storage.NewMemoryStore(a.cfg.Session.TTL)
		return
	}
	a.store = rs
}

func (a *app) connectAmqp() {
	if a.cfg.Rabbit.URL == "" {
		return
	}
	conn, err := amqp.DialConfig(a.cfg.Rabbit.URL, amqp.Config{
		Properties: amqp.NewConnectionProperties(),
	})
	if err != nil {
		a.logger.Error().Err(err).Msg("failed to connect to RabbitMQ, tracking disabled")
		return
	}
	a.conn = conn
	trk, err := tracking.NewRabbitTracking(conn, a.cfg.Country, a.logger)
	if err != nil {
		a.logger.Error().Err(err).Msg("failed to declare tracking topic")
		return
	}
	a.tracking = trk
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger := zerolog.New(os.Stderr)
		logger.Fatal().Err(err).Msg("invalid configuration")
	}
	a := &app{cfg: cfg, logger: config.NewLogger(cfg.Log)}
	a.connectCatalog()
	a.connectStore()
	a.connectAmqp()

	opts := server.RegistryOptions{
		Catalog: a.catalog,
		Store:   a.store,
		Logger:  a.logger,
		Timeout: cfg.Catalog.Timeout,
		TTL:     cfg.Session.TTL,
	}
	var sessionTracker common.SessionTracker
	if a.tracking != nil {
		opts.Tracking = a.tracking
		sessionTracker = a.tracking
	}
	registry := server.NewRegistry(opts)

	if a.conn != nil {
		if err := registry.ListenForCatalogChanges(a.conn, cfg.Country, a.logger, a.upsert); err != nil {
			a.logger.Error().Err(err).Msg("failed to listen for catalog changes")
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	go registry.Run(ctx, cfg.Session.ReapInterval)

	ws := server.NewWebServer(registry, sessionTracker, a.logger)
	srv := common.NewServerWithTimeouts(&http.Server{
		Addr:    cfg.ListenAddress,
		Handler: ws.Handle(),
	}, cfg.Timeouts)

	common.RunServerWithShutdown(srv, "discovery", cfg.Timeouts, a.logger,
		func(ctx context.Context) error {
			cancel()
			registry.Close()
			return nil
		},
		func(ctx context.Context) error {
			if a.tracking != nil {
				a.tracking.Close()
			}
			if a.conn != nil {
				return a.conn.Close()
			}
			return nil
		},
		func(ctx context.Context) error {
			return a.store.Close()
		},
	)
}
