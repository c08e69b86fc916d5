package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"phishguard/pkg/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the classification pipeline as a REST service",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = viper.GetString("listen_addr")
		}
		shutdownTimeout, _ := cmd.Flags().GetDuration("shutdown-timeout")

		srv := server.New(server.Config{
			Pipeline: classify,
			Logger:   logger.Desugar(),
		})

		httpServer := &http.Server{
			Addr:         addr,
			Handler:      srv,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 60 * time.Second,
			IdleTimeout:  120 * time.Second,
		}

		serverErrors := make(chan error, 1)
		go func() {
			logger.Infof("predict API listening on %s (model_loaded=%v)", addr, hasModel)
			serverErrors <- httpServer.ListenAndServe()
		}()

		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("server error: %w", err)
			}
		case sig := <-shutdown:
			logger.Infof("received %v, shutting down", sig)
			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := httpServer.Shutdown(ctx); err != nil {
				_ = httpServer.Close()
				return fmt.Errorf("graceful shutdown failed: %w", err)
			}
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default from config listen_addr)")
	serveCmd.Flags().Duration("shutdown-timeout", 10*time.Second, "graceful shutdown deadline")
}
