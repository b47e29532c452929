// Package app wires the configuration, storage, task manager and notifier
// into one session container shared by the TUI, CLI and API.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-pkgz/lgr"
	"github.com/gofrs/flock"

	"github.com/dori/zendo/internal/config"
	"github.com/dori/zendo/internal/db"
	"github.com/dori/zendo/internal/notify"
	"github.com/dori/zendo/internal/tasks"
)

// ErrLocked is returned when another writer holds the data dir lock
var ErrLocked = errors.New("another instance of zendo is already running")

// App holds the application state and dependencies
type App struct {
	Config   *config.Config
	DB       *db.DB
	Tasks    *tasks.Manager
	Notifier *notify.Notifier
	Log      lgr.L
	DataDir  string
	lockFile *flock.Flock
}

// Options control how the session is opened
type Options struct {
	// Lock takes the single-writer lock. Read-only commands skip it.
	Lock   bool
	Logger lgr.L
	// Extra manager options, e.g. a fixed clock in tests
	ManagerOptions []tasks.Option
}

// New creates a new application instance and loads the task collection
func New(ctx context.Context, cfg *config.Config, opts Options) (*App, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = lgr.NoOp
	}

	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	app := &App{
		Config:   cfg,
		DataDir:  cfg.DataDir,
		Log:      opts.Logger,
		Notifier: notify.NewNotifier(cfg.Notify.Enabled),
	}

	if opts.Lock {
		if err := app.acquireLock(); err != nil {
			return nil, err
		}
	}

	database, err := openDB(cfg, opts.Logger)
	if err != nil {
		app.releaseLock()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	app.DB = database

	mopts := append([]tasks.Option{tasks.WithLogger(opts.Logger)}, opts.ManagerOptions...)
	app.Tasks = tasks.NewManager(database, mopts...)
	app.Tasks.Load(ctx)

	return app, nil
}

func openDB(cfg *config.Config, l lgr.L) (*db.DB, error) {
	switch cfg.Storage.Driver {
	case db.DriverPostgres:
		return db.OpenPostgres(cfg.Storage.DSN, db.WithLogger(l))
	default:
		path := cfg.Storage.Path
		if path == "" {
			path = filepath.Join(cfg.DataDir, "zendo.db")
		}
		return db.Open(path, db.WithLogger(l))
	}
}

// acquireLock acquires an exclusive file lock to prevent concurrent writers
func (a *App) acquireLock() error {
	lockPath := filepath.Join(a.DataDir, "zendo.lock")
	a.lockFile = flock.New(lockPath)

	locked, err := a.lockFile.TryLock()
	if err != nil {
		return fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !locked {
		return ErrLocked
	}

	return nil
}

// releaseLock releases the file lock
func (a *App) releaseLock() {
	if a.lockFile != nil {
		a.lockFile.Unlock()
	}
}

// Close cleans up application resources
func (a *App) Close() error {
	var errs []error

	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}

	a.releaseLock()

	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}
