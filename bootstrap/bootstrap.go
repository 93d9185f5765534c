// Package bootstrap assembles the serve command's object graph.
package bootstrap

import (
	"context"
	"io"
	"log/slog"

	"go.uber.org/dig"

	"github.com/guileen/keyguess/config"
	"github.com/guileen/keyguess/inspect"
	"github.com/guileen/keyguess/logger"
	"github.com/guileen/keyguess/protocol/api"
	"github.com/guileen/keyguess/storage"
)

// Options are the command-line inputs to the container.
type Options struct {
	ConfigPath string
	EnvFile    string
	// LogLevel overrides the configured level when set.
	LogLevel string
	// LogWriter defaults to stderr.
	LogWriter io.Writer
}

// NewContainer provides every serve dependency.
func NewContainer(opts Options) (*dig.Container, error) {
	container := dig.New()
	constructors := []interface{}{
		func() Options { return opts },
		loadConfig,
		newLogger,
		newInspector,
		api.NewMetrics,
		newStore,
		newHandler,
		newServer,
	}
	for _, ctor := range constructors {
		if err := container.Provide(ctor); err != nil {
			return nil, err
		}
	}
	return container, nil
}

// Serve builds the container and runs the server until ctx is cancelled.
func Serve(ctx context.Context, opts Options) error {
	container, err := NewContainer(opts)
	if err != nil {
		return err
	}
	return container.Invoke(func(s *api.Server, store *storage.Store) error {
		if store != nil {
			defer store.Close()
		}
		return s.ListenAndServe(ctx)
	})
}

func loadConfig(opts Options) (*config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath, opts.EnvFile)
	if err != nil {
		return nil, err
	}
	if opts.LogLevel != "" {
		cfg.Logging.Level = opts.LogLevel
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// newLogger installs the configured logger as the package default.
func newLogger(cfg *config.Config, opts Options) *slog.Logger {
	lc := cfg.LoggerConfig()
	if opts.LogWriter != nil {
		lc.Writer = opts.LogWriter
	}
	return logger.NewLoggerFactory(lc).Install()
}

func newInspector() *inspect.Inspector {
	return inspect.New()
}

// newStore opens the configured store, or returns nil when its directory
// does not exist; the scan endpoint is then not mounted.
func newStore(cfg *config.Config, _ *slog.Logger) (*storage.Store, error) {
	if cfg.Storage.Path == "" || !config.ConfigExists(cfg.Storage.Path) {
		logger.Info("no store configured, scan endpoint disabled",
			logger.Component("bootstrap"), logger.String("path", cfg.Storage.Path))
		return nil, nil
	}
	return storage.Open(cfg.PebbleConfig())
}

func newHandler(in *inspect.Inspector, metrics *api.Metrics, store *storage.Store) *api.Handler {
	h := api.NewHandler(in, metrics)
	if store != nil {
		h.WithStore(store)
	}
	return h
}

func newServer(cfg *config.Config, h *api.Handler, metrics *api.Metrics) *api.Server {
	return api.NewServer(api.ServerConfig{
		Addr:        cfg.Addr(),
		CORSOrigins: cfg.Server.CORSOrigins,
	}, h, metrics)
}
