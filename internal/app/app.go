package app

import (
	"context"
	"fmt"

	"corkcount/internal/config"
	"corkcount/internal/services"
	"corkcount/internal/store"
	"corkcount/internal/store/primary"
	"corkcount/internal/store/sqlite"

	"github.com/hibiken/asynq"
	log "github.com/sirupsen/logrus"
)

type App struct {
	Config *config.Config

	Store     store.PrimaryStore
	JobClient store.JobClient // nil when redis is not configured

	// --- Initialized Services ---
	InventoryService *services.InventoryService
	AutoTagService   *services.AutoTagService
	JobService       *services.JobService
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	app := &App{Config: cfg}

	if err := app.initStore(ctx); err != nil {
		return nil, err
	}
	if err := app.initJobClient(); err != nil {
		app.Close()
		return nil, err
	}
	app.initServices()

	log.Debug("Application initialization complete.")
	return app, nil
}

// NewWithStore builds an App around an already opened store. jc may be nil.
func NewWithStore(cfg *config.Config, ps store.PrimaryStore, jc store.JobClient) *App {
	app := &App{Config: cfg, Store: ps, JobClient: jc}
	app.initServices()
	return app
}

// RedisOpt returns the asynq connection options from config.
func (a *App) RedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     a.Config.Redis.Address,
		Password: a.Config.Redis.Password,
		DB:       a.Config.Redis.DB,
	}
}

// --- Private Helper Methods ---

func (a *App) initStore(ctx context.Context) error {
	switch a.Config.Database.Driver {
	case config.DriverPostgres:
		ps, err := primary.NewPrimaryStore(ctx, a.Config.Database.DSN)
		if err != nil {
			return fmt.Errorf("init postgres store: %w", err)
		}
		a.Store = ps
	case config.DriverSQLite:
		ss, err := sqlite.NewStore(ctx, a.Config.Database.DSN)
		if err != nil {
			return fmt.Errorf("init sqlite store: %w", err)
		}
		a.Store = ss
	default:
		return fmt.Errorf("unsupported database driver %q", a.Config.Database.Driver)
	}
	return nil
}

func (a *App) initJobClient() error {
	if !a.Config.RedisEnabled() {
		log.Debug("Redis is not configured; background jobs are disabled.")
		return nil
	}
	jc, err := store.NewAsynqJobClient(a.RedisOpt(), a.Store)
	if err != nil {
		return fmt.Errorf("init job client: %w", err)
	}
	a.JobClient = jc
	return nil
}

func (a *App) initServices() {
	cfg := a.Config
	a.InventoryService = services.NewInventoryService(a.Store, cfg.AutoTag.ApplyOnCreate)
	a.AutoTagService = services.NewAutoTagService(a.Store, services.AutoTagOptions{Concurrency: cfg.AutoTag.Concurrency})
	a.JobService = services.NewJobService(a.Store, a.JobClient)
}

// Close releases the job client and the store.
func (a *App) Close() {
	if a.JobClient != nil {
		if err := a.JobClient.Close(); err != nil {
			log.Printf("Error closing job client: %v", err)
		}
	}
	if a.Store != nil {
		a.Store.Close()
	}
}
