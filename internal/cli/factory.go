package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/aretw0/formica"
	"github.com/aretw0/formica/internal/adapters/file"
	"github.com/aretw0/formica/internal/adapters/redis"
	"github.com/aretw0/formica/internal/config"
	"github.com/aretw0/formica/internal/logging"
	"github.com/aretw0/formica/pkg/adapters/memory"
	"github.com/aretw0/formica/pkg/observability"
	"github.com/aretw0/formica/pkg/ports"
	"github.com/prometheus/client_golang/prometheus"
)

// Options are the persistent command line settings.
type Options struct {
	// Dir is the project directory. Relative config and store paths resolve against it.
	Dir string
	// ConfigPath overrides <Dir>/formica.yaml.
	ConfigPath string
	// LogLevel overrides the configured level when set.
	LogLevel string
}

// App bundles everything a command needs.
type App struct {
	Config   *config.Config
	Engine   *formica.Engine
	Logger   *slog.Logger
	Registry *prometheus.Registry

	closers []func() error
}

// Setup loads the configuration and wires logger, store, metrics and engine.
func Setup(opts Options) (*App, error) {
	dir := opts.Dir
	if dir == "" {
		dir = "."
	}
	path := opts.ConfigPath
	if path == "" {
		path = filepath.Join(dir, config.DefaultFile)
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if opts.LogLevel != "" {
		cfg.Log.Level = opts.LogLevel
	}
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	logger := logging.New(level)

	app := &App{Config: cfg, Logger: logger, Registry: prometheus.NewRegistry()}

	store, closer, err := NewStore(cfg.Store, dir)
	if err != nil {
		return nil, err
	}
	if closer != nil {
		app.closers = append(app.closers, closer)
	}

	metrics := observability.NewMetrics(app.Registry)
	hooks := metrics.Hooks()
	if level <= slog.LevelDebug {
		hooks = hooks.Merge(observability.LogHooks(logger))
	}

	engineOpts := []formica.Option{
		formica.WithSeed(cfg.Evolution.Seed),
		formica.WithStore(store),
		formica.WithLogger(logger),
		formica.WithLifecycleHooks(hooks),
	}
	// A shared Redis store may be written by several processes.
	if rs, ok := store.(*redis.Store); ok {
		engineOpts = append(engineOpts, formica.WithLocker(rs.Locker()))
	}
	app.Engine = formica.New(engineOpts...)
	logger.Debug("engine ready", "store", cfg.Store.Kind, "seed", cfg.Evolution.Seed)
	return app, nil
}

// Close releases the store connection, if any.
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c())
	}
	return errors.Join(errs...)
}

// NewStore builds the configured population store. Relative file store paths
// resolve against dir. The returned closer may be nil.
func NewStore(cfg config.StoreConfig, dir string) (ports.PopulationStore, func() error, error) {
	switch cfg.Kind {
	case config.StoreMemory:
		return memory.NewStore(), nil, nil
	case config.StoreFile, "":
		path := cfg.Path
		if path != "" && !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
		}
		if path == "" {
			path = filepath.Join(dir, ".formica", "populations")
		}
		return file.New(path), nil, nil
	case config.StoreRedis:
		store := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
			redis.WithPrefix(cfg.Redis.Prefix),
			redis.WithTTL(cfg.Redis.TTL),
		)
		return store, store.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown store kind %q", cfg.Kind)
}
