package serve

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"voxi/internal/api/server"
	"voxi/internal/api/v1/routes"
	"voxi/internal/api/v1/services"
	"voxi/internal/app"
	"voxi/internal/config"
)

var (
	host string
	port string
)

func init() {
	Cmd.Flags().StringVar(&host, "host", "", "bind address (overrides VOXI_HOST)")
	Cmd.Flags().StringVar(&port, "port", "", "listen port (overrides VOXI_PORT)")
}

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start the HTTP API server

- POST /api/v1/process accepts one audio upload and returns the transcript
- GET /api/v1/transcripts lists previously processed files
- /swagger/index.html serves the API documentation`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		if err != nil {
			log.Fatalf("configuration error: %v", err)
		}
		if host != "" {
			cfg.Host = host
		}
		if port != "" {
			cfg.Port = port
		}

		application, err := app.InitializeApp(cfg)
		if err != nil {
			log.Fatalf("initialization failed: %v", err)
		}
		defer application.Close()

		container := routes.ServiceContainer{
			Process: services.NewProcessService(
				application.Pipeline,
				application.DAO,
				application.Cache,
				application.Archiver,
				application.Logger,
			),
			Transcripts:    services.NewTranscriptService(application.DAO),
			Registry:       application.Registry,
			ActiveEngines:  application.ActiveEngines(),
			MaxUploadBytes: cfg.MaxUploadBytes,
			Logger:         application.Logger,
		}

		srv := server.NewServer(server.Config{
			Host:         cfg.Host,
			Port:         cfg.Port,
			ReadTimeout:  5 * time.Minute,
			WriteTimeout: 10 * time.Minute,
			IdleTimeout:  2 * time.Minute,
			Environment:  cfg.Environment,
		}, container, application.Gatherer, application.Logger)

		if err := srv.Start(); err != nil {
			log.Fatalf("server start failed: %v", err)
		}

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Fatalf("shutdown failed: %v", err)
		}
	},
}
