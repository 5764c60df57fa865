package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/quaketrack/rbfetch/internal/domain"
)

// newFetchCmd is the offline one-shot mode: a single explicit interval,
// fetched once, with no cursor interaction and no retry.
func newFetchCmd() *cobra.Command {
	var fromFlag, toFlag string

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch a single explicit time interval and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(configPath)
			if err != nil {
				return err
			}

			fromStr := fromFlag
			if fromStr == "" {
				fromStr = a.cfg.Offline.FromTime
			}
			toStr := toFlag
			if toStr == "" {
				toStr = a.cfg.Offline.ToTime
			}

			from, err := domain.ParseTime(fromStr)
			if err != nil {
				return fmt.Errorf("invalid from time: %w", err)
			}
			to, err := domain.ParseTime(toStr)
			if err != nil {
				return fmt.Errorf("invalid to time: %w", err)
			}

			win, err := domain.NewWindow(from, to)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a.log.Info("--- Running in offline mode ---")
			if _, _, err := a.fetch.FetchStore(ctx, win); err != nil {
				a.log.Error("Offline download failed")
				return fmt.Errorf("offline download failed: %w", err)
			}

			a.log.Info("Offline download successful")
			return nil
		},
	}

	cmd.Flags().StringVar(&fromFlag, "from", "", "interval start (overrides offline.from_time)")
	cmd.Flags().StringVar(&toFlag, "to", "", "interval end (overrides offline.to_time)")

	return cmd
}
