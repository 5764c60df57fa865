package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v5"
	"github.com/spf13/cobra"

	"github.com/quaketrack/rbfetch/internal/api"
	"github.com/quaketrack/rbfetch/internal/checkpoint"
	"github.com/quaketrack/rbfetch/internal/domain"
	"github.com/quaketrack/rbfetch/internal/scheduler"
	"github.com/quaketrack/rbfetch/internal/store"
)

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the continuous download loop",
		RunE:  runLoop,
	}
}

func runLoop(cmd *cobra.Command, args []string) error {
	a, err := setup(configPath)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runID := domain.NewRunID()
	a.log.Info("Starting rbfetch %s run %s", Version, runID)

	ckpt := checkpoint.NewFileStore(a.cfg.SaveFile)

	sched := scheduler.New(a.fetch, ckpt, scheduler.Options{
		Window: time.Duration(a.cfg.Wait * float64(time.Minute)),
		Retry:  time.Duration(a.cfg.Retry * float64(time.Minute)),
		RunID:  runID,
		Stream: a.sel.String(),
	}, a.log)

	var index *store.ArchiveStore
	if a.cfg.Store.SQLitePath != "" {
		index, err = store.NewArchiveStore(a.cfg.Store.SQLitePath)
		if err != nil {
			return err
		}
		defer index.Close()
		sched.SetRecorder(index)
	}

	if a.cfg.API.Enabled {
		startAPI(ctx, a, sched, index)
	}

	err = sched.Run(ctx)
	if errors.Is(err, context.Canceled) {
		a.log.Info("Shutting down")
		return nil
	}
	return err
}

// startAPI serves the status endpoints next to the scheduler goroutine and
// shuts the listener down when the run context ends.
func startAPI(ctx context.Context, a *app, sched *scheduler.Scheduler, index *store.ArchiveStore) {
	e := echo.New()

	if index != nil {
		api.RegisterRoutes(e, a.log, sched, index)
	} else {
		// A typed nil pointer would still satisfy the interface, so pass
		// an explicit nil when the index is disabled.
		api.RegisterRoutes(e, a.log, sched, nil)
	}

	srv := &http.Server{Addr: ":" + a.cfg.API.Port, Handler: e}

	go func() {
		a.log.Info("Status API listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Error("Status API failed: %v", err)
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
}
