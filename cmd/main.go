package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"uhoo_bridge/internal/config"
	"uhoo_bridge/internal/handlers"
	"uhoo_bridge/internal/logger"
	"uhoo_bridge/internal/registry"
	"uhoo_bridge/internal/repository"
	"uhoo_bridge/internal/repository/db"
	"uhoo_bridge/internal/server"
	"uhoo_bridge/internal/service"
	"uhoo_bridge/internal/uhoo"
)

const shutdownTimeout = 10 * time.Second

// @title                       uHoo bridge API
// @version                     1.0
// @description                 Air quality accessory published from a uHoo account.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load("configs", ".")
	if err != nil {
		log := logger.Get(logger.InfoLevel)
		var cfgErr *config.ConfigurationError
		if errors.As(err, &cfgErr) {
			log.Fatalw("missing credentials; set them in configs/config.yml or the environment",
				"missing", cfgErr.Missing, "env_prefix", config.EnvPrefix)
		}
		log.Fatalw("error reading config", "err", err)
	}
	log := logger.Get(cfg.Log.Level)
	defer func() { _ = log.Sync() }()

	sqlDB, err := db.InitDB(cfg.DB.Path)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err, "path", cfg.DB.Path)
	}
	defer func() {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	if cfg.Auth.SigningKey == "" {
		log.Warnw("auth.signing_key not set; API tokens will not survive a restart")
	}

	repos := repository.NewRepository(sqlDB)
	accessory := registry.NewAccessory(cfg.Accessory.Name)
	client := uhoo.NewClient(uhoo.Options{
		APIBaseURL:  cfg.Uhoo.APIBaseURL,
		AuthBaseURL: cfg.Uhoo.AuthBaseURL,
		Timeout:     cfg.Uhoo.Timeout,
	})
	services := service.NewService(repos, service.Deps{
		Client:    client,
		Accessory: accessory,
		Credentials: service.Credentials{
			Username: cfg.Uhoo.Username,
			Password: cfg.Uhoo.Password,
			ClientID: cfg.Uhoo.ClientID,
		},
		Auth: service.AuthOptions{
			SigningKey:  cfg.Auth.SigningKey,
			TokenTTL:    cfg.Auth.TokenTTL,
			AllowSignUp: cfg.Auth.AllowSignUp,
		},
		Log: log,
	})
	apiHandler := handlers.NewHandler(services, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go services.Poller.Run(ctx, cfg.Poll.Interval)

	srv := server.New(cfg.Port, apiHandler.InitRoutes())
	runHTTPServer(srv, log)

	waitForShutdown(cancel, srv, log)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, log *logger.Logger) {
	go func() {
		log.Infow("http_listening", "addr", srv.Addr())
		if err := srv.Run(); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown blocks until SIGINT/SIGTERM, then stops the poller and the server.
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")
	cancel()

	ctx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}
