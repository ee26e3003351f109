package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vango-dev/vango-modal/internal/config"
	"github.com/vango-dev/vango-modal/pkg/modal"
	"github.com/vango-dev/vango-modal/pkg/server"
)

func serveCmd(flags *globalFlags) *cobra.Command {
	var (
		port    int
		host    string
		tracing bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the modal demo",
		Long: `Serve the modal demo page and its live WebSocket endpoint.

Settings are read from vango-modal.json or vango-modal.yaml when present;
flags override them.

Examples:
  vango-modal serve
  vango-modal serve --port=3000 --log-level=debug
  vango-modal serve --config=deploy/vango-modal.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}
			if host != "" {
				cfg.Server.Host = host
			}
			if tracing {
				cfg.Server.Tracing = true
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return runServe(cmd.Context(), cfg)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default from config)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from config)")
	cmd.Flags().BoolVar(&tracing, "tracing", false, "Start an OpenTelemetry span for every event")

	return cmd
}

// loadConfig reads the config named by --config, else the one in the
// working directory, else defaults. Log flags override the file.
func loadConfig(flags *globalFlags) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	switch {
	case flags.configPath != "":
		cfg, err = config.LoadFile(flags.configPath)
	case config.Exists("."):
		cfg, err = config.Load(".")
	default:
		cfg = config.New()
	}
	if err != nil {
		return nil, err
	}

	if flags.logLevel != "" {
		cfg.Log.Level = flags.logLevel
	}
	if flags.logFormat != "" {
		cfg.Log.Format = flags.logFormat
	}
	return cfg, nil
}

// serverConfig maps the file configuration onto the server's.
func serverConfig(cfg *config.Config, logger *slog.Logger) *server.ServerConfig {
	sc := server.DefaultServerConfig()
	sc.Address = cfg.Address()
	sc.Title = cfg.Server.Title
	sc.ShutdownTimeout = cfg.ShutdownTimeout()
	sc.EnableMetrics = cfg.MetricsEnabled()
	sc.EnableTracing = cfg.Server.Tracing
	sc.Logger = logger

	sc.SessionConfig.ReadTimeout = cfg.ReadTimeout()
	sc.SessionConfig.WriteTimeout = cfg.WriteTimeout()
	sc.SessionConfig.MaxMessageSize = cfg.Session.MaxMessageSize
	sc.SessionConfig.MaxEventQueue = cfg.Session.MaxEventQueue
	return sc
}

// modalOptions maps the modal section onto collector options.
func modalOptions(cfg *config.Config, logger *slog.Logger) []modal.Option {
	opts := []modal.Option{modal.WithLogger(logger)}
	if cfg.Modal.LabelledBy != "" {
		opts = append(opts, modal.WithLabelledBy(cfg.Modal.LabelledBy))
	}
	if cfg.Modal.ZIndex > 0 {
		opts = append(opts, modal.WithZIndex(cfg.Modal.ZIndex))
	}
	if cfg.Modal.Backdrop != "" {
		opts = append(opts, modal.WithBackdrop(cfg.Modal.Backdrop))
	}
	return opts
}

func runServe(ctx context.Context, cfg *config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := cfg.NewLogger(os.Stderr)
	slog.SetDefault(logger)

	srv := server.New(serverConfig(cfg, logger))
	opts := modalOptions(cfg, logger)
	srv.SetRootComponent(func() server.Component {
		return demoApp(opts...)
	})

	success("Serving on http://%s", displayAddress(cfg))
	if cfg.MetricsEnabled() {
		info("Metrics at %s", server.PathMetrics)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer stop()
		return srv.Run(ctx)
	})
	g.Go(func() error {
		reportSessions(ctx, srv, logger, 30*time.Second)
		return nil
	})
	return g.Wait()
}

// reportSessions logs the live session count every interval until ctx ends.
func reportSessions(ctx context.Context, srv *server.Server, logger *slog.Logger, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			logger.Debug("live sessions", "count", srv.SessionCount())
		}
	}
}

func displayAddress(cfg *config.Config) string {
	if cfg.Server.Host == "" {
		return "localhost" + cfg.Address()
	}
	return cfg.Address()
}
