package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"

	"github.com/stockroomhq/stockroom-backend/api/routes"
	containersvc "github.com/stockroomhq/stockroom-backend/internal/containers"
	floorsvc "github.com/stockroomhq/stockroom-backend/internal/floors"
	itemsvc "github.com/stockroomhq/stockroom-backend/internal/items"
	roomsvc "github.com/stockroomhq/stockroom-backend/internal/rooms"
	"github.com/stockroomhq/stockroom-backend/pkg/config"
	"github.com/stockroomhq/stockroom-backend/pkg/db"
	"github.com/stockroomhq/stockroom-backend/pkg/env"
	"github.com/stockroomhq/stockroom-backend/pkg/logger"
	"github.com/stockroomhq/stockroom-backend/pkg/migrate"
	"github.com/stockroomhq/stockroom-backend/pkg/qr"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeAutoMigrate(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run migrations", err)
		os.Exit(1)
	}

	qrGen, err := qr.NewGenerator(cfg.Storage.QRDir())
	if err != nil {
		logg.Error(context.Background(), "failed to prepare qr output dir", err)
		os.Exit(1)
	}

	floorsRepo := floorsvc.NewRepository(dbClient.DB())
	roomsRepo := roomsvc.NewRepository(dbClient.DB())
	containersRepo := containersvc.NewRepository(dbClient.DB())
	itemsRepo := itemsvc.NewRepository(dbClient.DB())

	floorsService, err := floorsvc.NewService(floorsRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create floor service", err)
		os.Exit(1)
	}
	roomsService, err := roomsvc.NewService(roomsRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create room service", err)
		os.Exit(1)
	}
	containersService, err := containersvc.NewService(containersRepo, qrGen, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create container service", err)
		os.Exit(1)
	}
	itemsService, err := itemsvc.NewService(itemsRepo, roomsRepo, containersRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create item service", err)
		os.Exit(1)
	}

	addr := ":" + env.Get("PORT", cfg.App.Port)

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	registry := prometheus.NewRegistry()
	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, routes.Services{
			Floors:     floorsService,
			Rooms:      roomsService,
			Containers: containersService,
			Items:      itemsService,
		}, registry),
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case sig := <-stop:
		logg.Info(logg.WithField(ctx, "signal", sig.String()), "shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		var shutdownErr error
		shutdownErr = multierr.Append(shutdownErr, server.Shutdown(shutdownCtx))
		shutdownErr = multierr.Append(shutdownErr, <-errCh)
		if shutdownErr != nil {
			logg.Error(ctx, "shutdown finished with errors", shutdownErr)
			os.Exit(1)
		}
		logg.Info(ctx, "shutdown complete")
	}
}
