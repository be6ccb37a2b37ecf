package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"foodorder/api"
	"foodorder/cmd"
	httpin "foodorder/internal/adapters/in/http"
	"foodorder/internal/adapters/out/postgres"
	"foodorder/internal/generated/servers"
	"foodorder/internal/jobs"
	"foodorder/internal/pkg/logging"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"gorm.io/gorm"
)

const shutdownTimeout = 15 * time.Second

func main() {
	configs := cmd.LoadConfig()
	if err := configs.ValidateOrchestrator(); err != nil {
		log.Fatal(err)
	}

	logger := logging.New(configs.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := postgres.Open(ctx, postgres.Config{DSN: configs.DSN(), MaxOpenConns: configs.DBMaxOpen})
	if err != nil {
		log.Fatal(err)
	}
	if err = postgres.Migrate(ctx, db, postgres.OrderSchema); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	app, err := cmd.NewCompositionRoot(configs, db, logger)
	if err != nil {
		log.Fatal(err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Warn("close composition root", "error", err)
		}
	}()

	var waker jobs.Waker
	if configs.OutboxListen {
		listener, err := postgres.NewOutboxListener(configs.DSN(), logger)
		if err != nil {
			logger.Warn("outbox listener disabled, relying on polling", "error", err)
		} else {
			defer listener.Close()
			waker = listener
		}
	}

	jobManager, err := app.CreateJobManager(waker)
	if err != nil {
		log.Fatal(err)
	}
	if err = jobManager.StartAll(); err != nil {
		log.Fatal(err)
	}
	defer jobManager.StopAll()

	e, err := newWebServer(ctx, app, db, logger)
	if err != nil {
		log.Fatal(err)
	}
	if err = serve(ctx, e, configs.HTTPPort, logger); err != nil {
		log.Fatal(err)
	}
}

func newWebServer(ctx context.Context, app *cmd.CompositionRoot, db *gorm.DB, logger *slog.Logger) (*echo.Echo, error) {
	doc, err := api.Orders(ctx)
	if err != nil {
		return nil, err
	}

	e, err := httpin.NewRouter(httpin.RouterConfig{
		Name:   "orders",
		Doc:    doc,
		Logger: logger,
		Health: pingDB(db),
	})
	if err != nil {
		return nil, err
	}
	servers.RegisterHandlers(e, app.CreateServer())
	return e, nil
}

func pingDB(db *gorm.DB) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}
}

func serve(ctx context.Context, e *echo.Echo, port string, logger *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server started", "port", port)
		errCh <- e.Start(fmt.Sprintf("0.0.0.0:%s", port))
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
