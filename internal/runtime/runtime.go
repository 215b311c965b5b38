package runtime

import (
	"context"
	"fmt"
	"time"

	"github.com/mwantia/fabric/pkg/container"
	"github.com/mwantia/gotags/internal/config"
	"github.com/mwantia/gotags/pkg/db/store"
	"github.com/mwantia/gotags/pkg/log"
	"github.com/mwantia/gotags/pkg/search"
)

// Runtime wires the logger, metadata store and search engine together
// for CLI commands. Services are registered in a fabric container so
// cleanup runs in one place on shutdown.
type Runtime struct {
	cfg *config.BaseConfig
	sc  *container.ServiceContainer
	log log.LoggerService

	store  *store.SQLiteStore
	engine *search.Engine
}

func New(ctx context.Context, cfg *config.BaseConfig) (*Runtime, error) {
	rt := &Runtime{
		cfg: cfg,
		sc:  container.NewServiceContainer(),
		log: log.NewLoggerService("gotags", cfg.Log),
	}

	if err := rt.setupServices(ctx); err != nil {
		return nil, err
	}
	return rt, nil
}

func (rt *Runtime) setupServices(ctx context.Context) error {
	st, err := store.NewSQLiteStore(store.SQLiteConfig{
		Path: rt.cfg.Metadata.SQLite.Path,
	})
	if err != nil {
		return fmt.Errorf("failed to create metadata store: %w", err)
	}
	if err := st.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect metadata store: %w", err)
	}
	if err := st.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	rt.store = st
	rt.engine = search.NewEngine(st, rt.log.Named("search"))

	// services built through the container get loggers injected via
	// their fabric:"logger" tags
	rt.sc.AddTagProcessor(log.NewLoggerTagProcessor())

	errs := container.Errors{}

	rt.log.Debug("Registering 'LoggerService'...")
	errs.Add(container.Register[log.LoggerServiceImpl](rt.sc,
		container.With[log.LoggerService](),
		container.WithInstance(rt.log)))

	rt.log.Debug("Registering 'MetadataStore'...")
	errs.Add(container.Register[store.SQLiteStore](rt.sc,
		container.With[store.MetadataStore](),
		container.WithInstance(rt.store)))

	return errs.Errors()
}

func (rt *Runtime) Logger() log.LoggerService {
	return rt.log
}

func (rt *Runtime) Store() store.MetadataStore {
	return rt.store
}

func (rt *Runtime) Engine() *search.Engine {
	return rt.engine
}

func (rt *Runtime) Config() *config.BaseConfig {
	return rt.cfg
}

// NewSession creates a session controller bound to this runtime's
// engine and history store.
func (rt *Runtime) NewSession(apply search.ResultFunc) *search.Session {
	return search.NewSession(rt.engine, rt.store, rt.log.Named("session"), apply)
}

// Close tears down registered services within the configured shutdown
// timeout.
func (rt *Runtime) Close() error {
	timeout, err := time.ParseDuration(rt.cfg.ShutdownTimeout)
	if err != nil {
		timeout = 10 * time.Second
	}

	shutdown, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := rt.sc.Cleanup(shutdown); err != nil {
		return fmt.Errorf("failed to complete service container cleanup: %w", err)
	}
	return rt.store.Close()
}
