package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aremolina15/minibanco-yunis/src/internal/adapter/http/controller"
	"github.com/aremolina15/minibanco-yunis/src/internal/adapter/http/middleware"
	"github.com/aremolina15/minibanco-yunis/src/internal/adapter/http/router"
	"github.com/aremolina15/minibanco-yunis/src/internal/adapter/repository/implementations"
	"github.com/aremolina15/minibanco-yunis/src/internal/adapter/repository/memory"
	"github.com/aremolina15/minibanco-yunis/src/internal/adapter/repository/repo_interfaces"
	"github.com/aremolina15/minibanco-yunis/src/internal/config"
	"github.com/aremolina15/minibanco-yunis/src/internal/logger"
	"github.com/aremolina15/minibanco-yunis/src/internal/usecase/services"
	"github.com/aremolina15/minibanco-yunis/src/migrations"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Fatalf("server: %v", err)
	}
}

func run(ctx context.Context, cfg config.Config) error {
	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	engine := services.NewTransactionEngine(store)
	authService := services.NewAuthService(store, services.AuthSettings{
		JWTSecret:     cfg.JWTSecret,
		TokenTTL:      cfg.TokenTTL,
		AdminUsername: cfg.AdminUsername,
		AdminPassword: cfg.AdminPassword,
		AdminEmail:    cfg.AdminEmail,
	})
	if err := authService.EnsureAdmin(ctx); err != nil {
		return err
	}

	handler := router.New(
		middleware.BearerAuth(authService),
		controller.NewAuthController(authService),
		controller.NewAccountController(services.NewAccountService(engine)),
		controller.NewTransferController(services.NewTransferService(engine)),
		controller.NewAdminController(services.NewAdminService(store, cfg.AdminUsername)),
	)

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("http server listening", logger.Fields{
			"addr":  cfg.HTTPAddr,
			"store": cfg.StoreDriver,
		})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("http server shutting down", nil)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func openStore(ctx context.Context, cfg config.Config) (repo_interfaces.LedgerStore, func(), error) {
	if cfg.StoreDriver == config.StoreDriverMemory {
		logger.Warn("using in-memory ledger store; data is lost on exit", nil)
		return memory.NewLedgerStore(), func() {}, nil
	}

	connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	db, err := implementations.Open(connectCtx, cfg.DatabaseDSN)
	if err != nil {
		return nil, nil, err
	}

	if err := implementations.RunMigrations(connectCtx, db, migrationSource(cfg)); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("run migrations: %w", err)
	}
	log.Println("migrations completed successfully")

	return implementations.NewLedgerStore(db), closer(db), nil
}

func migrationSource(cfg config.Config) fs.FS {
	if cfg.MigrationsDir != "" {
		return os.DirFS(cfg.MigrationsDir)
	}
	return migrations.FS
}

func closer(db *sql.DB) func() {
	return func() {
		if err := db.Close(); err != nil {
			logger.Error("close database", err, nil)
		}
	}
}
