package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/tse155/ytblog/internal"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API for article generation",
	Long: `Starts an HTTP server exposing the article pipeline.

Endpoints:
  POST /api/generate       generate an article from a YouTube link
  GET  /api/articles       list articles for the requesting user
  GET  /api/articles/{id}  fetch a single article`,
	RunE: func(cmd *cobra.Command, args []string) error {
		applyProviderFlags(cmd, config)
		if serveAddr != "" {
			config.Addr = serveAddr
		}

		log := internal.NewLogger(config.Verbose, false)
		defer func() { _ = log.Sync() }()

		app, err := internal.NewApp(cmd.Context(), config, log)
		if err != nil {
			return err
		}
		if err := app.OpenStore(); err != nil {
			return fmt.Errorf("opening article store: %w", err)
		}
		defer app.Close()

		server := internal.NewServer(app.Pipeline(), app.Store(), log)
		httpServer := &http.Server{
			Addr:              config.Addr,
			Handler:           server.Handler(),
			ReadHeaderTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			log.Infow("http server listening", "addr", config.Addr)
			errCh <- httpServer.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		case <-cmd.Context().Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return httpServer.Shutdown(shutdownCtx)
		}
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Address to listen on (default from config)")
	rootCmd.AddCommand(serveCmd)
}
