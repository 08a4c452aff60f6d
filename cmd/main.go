package main

import (
	"fmt"
	"os"
	"time"

	"simpletimer/internal/core/model"
	"simpletimer/internal/storage"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

const appName = "SimpleTimer"

type flags struct {
	configPath   string
	dataDir      string
	backend      string
	logLevel     string
	tickInterval time.Duration
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &flags{}

	root := &cobra.Command{
		Use:           "simpletimer",
		Short:         "Countdown timer with a desktop window and tray",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			config, logger, err := loadEnvironment(cmd, opts)
			if err != nil {
				return err
			}
			return runGUI(cmd.Context(), config, logger)
		},
	}

	persistent := root.PersistentFlags()
	persistent.StringVar(&opts.configPath, "config", "", "path to config.yaml (default: user config dir)")
	persistent.StringVar(&opts.dataDir, "data-dir", "", "directory holding the timer store")
	persistent.StringVar(&opts.backend, "backend", "", "store backend: bolt, yaml or memory")
	persistent.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")
	persistent.DurationVar(&opts.tickInterval, "tick-interval", 0, "wait between one-second decrements")

	root.AddCommand(newRunCommand(opts), newStatusCommand(opts))
	return root
}

// loadEnvironment merges config.yaml with flags and builds the logger.
func loadEnvironment(cmd *cobra.Command, opts *flags) (model.Config, zerolog.Logger, error) {
	config, err := storage.LoadConfig(appName, opts.configPath)
	if err != nil {
		return config, zerolog.Nop(), err
	}

	changed := cmd.Flags().Changed
	if changed("data-dir") {
		config.DataDir = opts.dataDir
	}
	if changed("backend") {
		config.Backend = opts.backend
	}
	if changed("log-level") {
		config.LogLevel = opts.logLevel
	}
	if changed("tick-interval") && opts.tickInterval > 0 {
		config.TickInterval = opts.tickInterval
	}

	config, err = storage.ResolveDataDir(appName, config)
	if err != nil {
		return config, zerolog.Nop(), err
	}

	logger := newLogger(config.LogLevel)
	logger.Debug().
		Str("backend", config.Backend).
		Str("data_dir", config.DataDir).
		Dur("tick_interval", config.TickInterval).
		Msg("configuration loaded")
	return config, logger, nil
}

func newLogger(level string) zerolog.Logger {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		parsed = zerolog.InfoLevel
	}
	writer := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}
	return zerolog.New(writer).Level(parsed).With().Timestamp().Logger()
}

func openStore(config model.Config) (storage.Store, error) {
	store, err := storage.Open(config)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return store, nil
}
