package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fulfillment/cmd"
	httpapi "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/telemetry"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"golang.org/x/sync/errgroup"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger := telemetry.NewLogger(os.Stderr, slog.LevelInfo)
	slog.SetDefault(logger)

	configs, err := cmd.LoadConfig(".env")
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err = run(ctx, configs, logger); err != nil {
		logger.Error("Service stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configs cmd.Config, logger *slog.Logger) error {
	shutdownTracer, err := telemetry.SetupTracer(ctx, configs.OtelEndpoint, configs.OtelServiceName)
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			logger.Warn("Tracer shutdown failed", "error", err)
		}
	}()

	gormDB, err := openDatabase(configs)
	if err != nil {
		return err
	}

	publisher, closePublisher, err := cmd.NewEventPublisher(configs, logger)
	if err != nil {
		return err
	}
	defer closePublisher()

	app := cmd.NewCompositionRoot(configs, gormDB, publisher, logger)

	identity, err := app.CreateIdentityProvider()
	if err != nil {
		return err
	}

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	return startWebServer(ctx, app, identity, configs.HTTPPort, logger)
}

func openDatabase(configs cmd.Config) (*gorm.DB, error) {
	gormDB, err := gorm.Open(gorm_postgres.Open(configs.DSN()), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if err = gormDB.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.OrderItemDTO{}); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}
	return gormDB, nil
}

func startWebServer(
	ctx context.Context,
	app cmd.CompositionRoot,
	identity ports.IdentityProvider,
	port string,
	logger *slog.Logger,
) error {
	e := echo.New()
	e.HideBanner = true
	e.Logger.SetLevel(log.WARN)
	httpapi.RegisterRoutes(e, app.CreateHTTPServer(), identity, logger)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("HTTP server listening", "port", port)
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
