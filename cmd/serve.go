package main

import (
	"os"
	"os/signal"
	"syscall"

	"aircon_controller/internal/handlers"
	"aircon_controller/internal/logger"
	"aircon_controller/internal/server"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve read-only status and history over HTTP",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp(false)
		if err != nil {
			return err
		}
		defer a.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if a.cfg.Log.Level != logger.DebugLevel {
			gin.SetMode(gin.ReleaseMode)
		}
		h := handlers.NewHandler(a.services, a.log, a.cfg.Server.APIKey)
		srv := server.New(a.cfg.Server.Port, h.InitRoutes())

		a.log.Infow("http_server_starting", "port", a.cfg.Server.Port, "api_key_required", a.cfg.Server.APIKey != "")
		if err := srv.Run(ctx); err != nil {
			a.log.Errorw("http_server_failed", "err", err)
			return err
		}
		a.log.Infow("http_server_stopped")
		return nil
	},
}
