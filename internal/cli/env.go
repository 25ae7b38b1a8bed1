package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/sadopc/waterflow/internal/advice"
	"github.com/sadopc/waterflow/internal/config"
	"github.com/sadopc/waterflow/internal/hydration"
	"github.com/sadopc/waterflow/internal/log"
	"github.com/sadopc/waterflow/internal/store"
)

// env is everything a command needs, opened from configuration.
type env struct {
	cfg     *config.Config
	logger  *log.Logger
	store   *store.Store
	tracker *hydration.Tracker
	gateway *advice.Gateway

	logFile io.Closer
}

func openEnv(cmd *cobra.Command) (*env, error) {
	cfg := config.Load()
	if db, _ := cmd.Flags().GetString("db"); db != "" {
		cfg.DBPath = db
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e := &env{cfg: cfg}

	logFile, err := log.OpenFile(cfg.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v, logging disabled\n", err)
		e.logger = log.Discard()
	} else {
		e.logFile = logFile
		e.logger = log.New(log.Config{
			Level:     log.ParseLevel(cfg.LogLevel),
			Component: "waterflow",
			Output:    logFile,
		}).With("command", cmd.Name())
	}
	log.SetDefault(e.logger)

	s, err := store.New(cfg.DBPath)
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("open database: %w", err)
	}
	e.store = s

	e.tracker = hydration.NewTracker(s,
		hydration.WithDefaultGoal(cfg.DefaultGoal),
		hydration.WithLogger(e.logger),
	)

	gw, err := advice.NewFromConfig(cmd.Context(), cfg, e.logger)
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("advice provider: %w", err)
	}
	e.gateway = gw

	e.logger.Debug("environment ready",
		"db", cfg.DBPath,
		"provider", cfg.AdviceProvider,
	)
	return e, nil
}

func (e *env) Close() {
	if e.store != nil {
		if err := e.store.Close(); err != nil {
			e.logger.Warn("close database", "error", err)
		}
	}
	if e.logFile != nil {
		e.logFile.Close()
	}
}
