package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"simpletimer/internal/storage"
	"simpletimer/internal/widget"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func newStatusCommand(opts *flags) *cobra.Command {
	var watch time.Duration

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the last persisted timer state",
		Long: `The status command reads the timer store directly, the way a home screen
widget would. It does not contact a running timer, so it can lag behind an
active countdown until the next persisted tick.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			config, logger, err := loadEnvironment(cmd, opts)
			if err != nil {
				return err
			}
			store, err := openStore(config)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if watch <= 0 {
				printStatus(cmd.Context(), out, store, logger)
				return nil
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			ticker := time.NewTicker(watch)
			defer ticker.Stop()
			for {
				printStatus(ctx, out, store, logger)
				select {
				case <-ctx.Done():
					return nil
				case <-ticker.C:
				}
			}
		},
	}

	cmd.Flags().DurationVar(&watch, "watch", 0, "refresh at this interval until interrupted")
	return cmd
}

func printStatus(ctx context.Context, out io.Writer, store storage.Store, logger zerolog.Logger) {
	view, err := widget.Refresh(ctx, store)
	if err != nil {
		logger.Warn().Err(err).Msg("read timer store")
	}
	fmt.Fprintf(out, "%s\n%s\n%s\n", view.Title, view.Remaining, view.State)
}
