package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bnema/plza-save-editor/internal/adapters/transport/httpapi"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd(holder *appHolder) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the save editor HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := holder.app
			if addr == "" {
				addr = app.cfg.Server.Addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			handler := httpapi.NewHandler(app.service, httpapi.Options{
				MaxUploadBytes: app.cfg.Server.MaxUploadBytes,
				Logger:         app.logger.Named("http"),
			})
			srv, err := httpapi.Start(httpapi.ServerConfig{
				Addr:        addr,
				ReadTimeout: app.cfg.Server.ReadTimeout,
				MaxConns:    app.cfg.Server.MaxConns,
				Logger:      app.logger.Named("http"),
			}, handler)
			if err != nil {
				return err
			}

			if _, err := fmt.Fprintf(cmd.OutOrStdout(), "serving on %s\n", srv.URL()); err != nil {
				return err
			}

			var serveErr error
			select {
			case <-ctx.Done():
				app.logger.Info("shutting down", zap.Error(context.Cause(ctx)))
			case serveErr = <-srv.Err():
			}

			shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(cmd.Context()), httpapi.DefaultShutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("shutdown http server: %w", err)
			}

			if serveErr != nil {
				return fmt.Errorf("serve http: %w", serveErr)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.addr)")
	return cmd
}
