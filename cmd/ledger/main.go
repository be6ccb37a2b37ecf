package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"foodorder/api"
	"foodorder/cmd"
	httpin "foodorder/internal/adapters/in/http"
	"foodorder/internal/adapters/out/postgres"
	"foodorder/internal/generated/ledgerservers"
	"foodorder/internal/pkg/logging"

	"github.com/labstack/gommon/log"
)

func main() {
	configs := cmd.LoadConfig()
	if configs.DatabaseURL == "" {
		cmd.MustNonEmpty(configs.DBName, "DATABASE_URL or DB_NAME")
	}

	logger := logging.New(configs.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := postgres.Open(ctx, postgres.Config{DSN: configs.DSN(), MaxOpenConns: configs.DBMaxOpen})
	if err != nil {
		log.Fatal(err)
	}
	if err = postgres.Migrate(ctx, db, postgres.LedgerSchema); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	doc, err := api.Ledger(ctx)
	if err != nil {
		log.Fatal(err)
	}
	e, err := httpin.NewRouter(httpin.RouterConfig{
		Name:   "ledger",
		Doc:    doc,
		Logger: logger,
		Health: func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	})
	if err != nil {
		log.Fatal(err)
	}
	ledgerservers.RegisterHandlers(e, cmd.NewLedgerCompositionRoot(db).CreateServer())

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown", "error", err)
		}
	}()

	logger.Info("delivery ledger started", "port", configs.HTTPPort)
	if err = e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}
