package cmd

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/abhisek/liftlog/internal/config"
	"github.com/abhisek/liftlog/internal/engine"
	"github.com/abhisek/liftlog/internal/logging"
	"github.com/abhisek/liftlog/internal/metrics"
	"github.com/abhisek/liftlog/internal/remote"
	"github.com/abhisek/liftlog/internal/store"
)

// loadConfig reads --config, falling back to the default config location.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = config.DefaultPath()
	}
	return config.Load(path)
}

// withEngine loads config, sets up logging, opens the store, builds the
// engine and runs fn. Background uploads are drained and state is saved
// before it returns.
func withEngine(cmd *cobra.Command, fn func(ctx context.Context, cmd *cobra.Command, e *engine.Engine) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logFile := logging.Configure(logrus.StandardLogger(), logging.LoggerSetupParams{
		LogFileName:   cfg.Log.File,
		LogToStderr:   cfg.Log.Stderr,
		LogLevel:      cfg.Log.Level,
		LogFormatJSON: cfg.Log.JSON,
	})
	if logFile != nil {
		defer logFile.Close()
	}

	dbPath, err := resolveDBPath(cmd, cfg.Storage.DBPath)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	opts := []engine.Option{
		engine.WithPersister(store.NewPersister(st.SnapshotRepo(), cfg.Storage.SnapshotRetention)),
		engine.WithLocation(cfg.Location()),
		engine.WithXP(cfg.Progression.WorkoutXP, cfg.Progression.ManualLogXP),
		engine.WithLogger(logrus.WithField("component", "engine")),
	}
	if cfg.Remote.URL != "" {
		opts = append(opts, engine.WithRemote(cfg.Remote.URL, remote.WithTimeout(cfg.Remote.Timeout)))
	}

	var reg *prometheus.Registry
	if cfg.Metrics.Textfile != "" {
		reg = prometheus.NewRegistry()
		opts = append(opts, engine.WithMetrics(metrics.NewManager("liftlog", "cli", reg)))
	}

	e, err := engine.New(ctx, opts...)
	if err != nil {
		return fmt.Errorf("open engine: %w", err)
	}

	runErr := fn(ctx, cmd, e)

	if err := e.Close(context.WithoutCancel(ctx)); err != nil {
		logrus.WithError(err).Warn("final save failed")
	}
	if reg != nil {
		if err := metrics.WriteTextfile(cfg.Metrics.Textfile, reg); err != nil {
			logrus.WithError(err).Warn("writing metrics textfile failed")
		}
	}
	return runErr
}
