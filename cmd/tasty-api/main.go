package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/vasiliy-maslov/tasty-ordering/internal/config"
	"github.com/vasiliy-maslov/tasty-ordering/internal/db"
	apiHttp "github.com/vasiliy-maslov/tasty-ordering/internal/handler/http"
	"github.com/vasiliy-maslov/tasty-ordering/internal/menu"
	"github.com/vasiliy-maslov/tasty-ordering/internal/order"
	"github.com/vasiliy-maslov/tasty-ordering/internal/settings"
	"github.com/vasiliy-maslov/tasty-ordering/internal/transport"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	setupLogger(cfg.App)
	log.Info().Msg("Tasty API starting...")

	connectCtx, connectCancel := context.WithTimeout(context.Background(), 10*time.Second)
	dbConn, err := db.New(connectCtx, cfg.Postgres)
	connectCancel()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer dbConn.Close()

	if err := db.Migrate(dbConn.Pool); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply migrations")
	}

	menuSvc := menu.NewService(menu.NewRepository(dbConn.DB))
	orderSvc := order.NewService(order.NewRepository(dbConn.DB))
	settingsSvc := settings.NewService(settings.NewRepository(dbConn.DB), settings.StoreSettings{
		Name:   cfg.Store.DefaultName,
		IsOpen: true,
	})

	router := transport.NewRouter(
		transport.RouterConfig{
			Logger:         log.Logger,
			AllowedOrigins: cfg.CORS.AllowedOrigins,
			DB:             dbConn,
		},
		apiHttp.NewMenuHandler(menuSvc),
		apiHttp.NewOrderHandler(orderSvc),
		apiHttp.NewSettingsHandler(settingsSvc),
	)

	server := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.App.Port).Msg("Starting HTTP server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)
	<-stopCh
	log.Info().Msg("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Shutdown failed")
	}

	log.Info().Msg("Server stopped")
}

func setupLogger(app config.AppConfig) {
	level, err := zerolog.ParseLevel(app.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if app.Env == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	} else {
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	}
	log.Logger = log.With().Str("service", app.Name).Logger()
}
