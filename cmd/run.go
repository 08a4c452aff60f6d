package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"simpletimer/internal/core/model"
	"simpletimer/internal/core/timer"
	"simpletimer/internal/platform"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type runFlags struct {
	minutes string
	seconds string
	resume  bool
}

func newRunCommand(opts *flags) *cobra.Command {
	runOpts := &runFlags{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Count down in the terminal",
		Long: `The run command counts down without a window, printing the remaining time
every second. Ctrl-C pauses the countdown and saves it; run --resume continues it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			config, logger, err := loadEnvironment(cmd, opts)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runHeadless(ctx, cmd.OutOrStdout(), config, logger, *runOpts)
		},
	}

	cmd.Flags().StringVar(&runOpts.minutes, "minutes", "00", "minutes, 0-99")
	cmd.Flags().StringVar(&runOpts.seconds, "seconds", "30", "seconds, 0-59")
	cmd.Flags().BoolVar(&runOpts.resume, "resume", false, "continue the countdown saved in the store")
	return cmd
}

func runHeadless(ctx context.Context, out io.Writer, config model.Config, logger zerolog.Logger, runOpts runFlags) error {
	lock, err := platform.LockDataDir(appName, config.DataDir)
	if err != nil {
		return err
	}
	defer func() {
		_ = lock.Release()
	}()

	store, err := openStore(config)
	if err != nil {
		return err
	}

	engine := timer.New(store, timer.Options{TickInterval: config.TickInterval}, logger)
	defer engine.Close()
	snapshots := engine.Subscribe(8)

	if runOpts.resume {
		record, err := store.ReadTimer(ctx)
		if err != nil {
			logger.Warn().Err(err).Msg("read persisted timer")
		}
		if !engine.Restore(record) || engine.Snapshot().State != model.StatePaused {
			return errors.New("no interrupted countdown to resume")
		}
		engine.Resume()
	} else {
		engine.UpdateMinutes(runOpts.minutes)
		engine.UpdateSeconds(runOpts.seconds)
		engine.Start()
		if message, set := engine.Snapshot().Error.Get(); set {
			return errors.New(message)
		}
	}

	for {
		select {
		case snapshot, ok := <-snapshots:
			if !ok {
				return nil
			}
			if snapshot.State != model.StateRunning && snapshot.State != model.StateFinished {
				continue
			}
			fmt.Fprintf(out, "%s  %s\n", snapshot.RemainingFormatted(), snapshot.State)
			if snapshot.JustFinished {
				fmt.Fprintln(out, "Time's up!")
				engine.AckFinishHandled()
				return nil
			}
		case <-ctx.Done():
			engine.Pause()
			fmt.Fprintf(out, "paused at %s\n", engine.Snapshot().RemainingFormatted())
			return nil
		}
	}
}
