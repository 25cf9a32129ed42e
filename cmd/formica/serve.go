package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpAdapter "github.com/aretw0/formica/internal/adapters/http"
	"github.com/aretw0/formica/internal/config"
	"github.com/aretw0/formica/internal/presentation/tui"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Long:  `Serves the configured population store over HTTP, with Prometheus metrics on /metrics.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := setup(cmd)
			if err != nil {
				return err
			}
			defer app.Close()

			addr, _ := cmd.Flags().GetString("addr")
			ev := app.Config.Evolution
			handler := httpAdapter.NewHandler(app.Engine,
				httpAdapter.WithDefaults(httpAdapter.Defaults{
					Size:         ev.Population,
					MinLevel:     ev.MinLevel,
					MaxLevel:     ev.MaxLevel,
					MutationRate: ev.MutationRate,
					LevelLimit:   config.LevelLimit,
					SizeLimit:    config.PopulationLimit,
				}),
				httpAdapter.WithGatherer(app.Registry),
				httpAdapter.WithLogger(app.Logger),
			)

			srv := &http.Server{
				Addr:              addr,
				Handler:           handler,
				ReadHeaderTimeout: 10 * time.Second,
			}

			if isTerminal(os.Stderr) {
				tui.PrintBanner(os.Stderr)
			}

			// Channel to listen for errors coming from the listener.
			serverErrors := make(chan error, 1)
			go func() {
				app.Logger.Info("starting server", "addr", srv.Addr, "store", app.Config.Store.Kind)
				serverErrors <- srv.ListenAndServe()
			}()

			shutdown := make(chan os.Signal, 1)
			signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
			defer signal.Stop(shutdown)

			select {
			case err := <-serverErrors:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return fmt.Errorf("server error: %w", err)

			case sig := <-shutdown:
				app.Logger.Info("shutting down", "signal", sig.String())

				// Give outstanding requests a deadline for completion.
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()

				if err := srv.Shutdown(ctx); err != nil {
					app.Logger.Error("graceful shutdown did not complete", "error", err)
					return srv.Close()
				}
				app.Logger.Info("server stopped")
				return nil
			}
		},
	}
	cmd.Flags().String("addr", ":8080", "Address to listen on")
	return cmd
}
