package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rodamax/rodamax-catalog/internal/app"
	"github.com/rodamax/rodamax-catalog/internal/catalog"
	"github.com/rodamax/rodamax-catalog/internal/platform/cache"
	"github.com/rodamax/rodamax-catalog/internal/platform/db"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.NewPostgres(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect primary store", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	// Branch-store failures degrade to zero branch stock, so startup only
	// warns when the branch is unreachable.
	branchDB, err := db.NewSQLServer(cfg.BranchDSN)
	if err != nil {
		logger.Warn("branch store unavailable", slog.Any("error", err))
	} else {
		defer func() {
			if err := branchDB.Close(); err != nil {
				logger.Warn("branch store close", slog.Any("error", err))
			}
		}()
	}

	redisClient, err := cache.New(ctx, cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		logger.Warn("redis unavailable, family cache disabled", slog.Any("error", err))
		redisClient = nil
	} else {
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Warn("redis close", slog.Any("error", err))
			}
		}()
	}

	catalogCfg := catalog.DefaultConfig()

	repo := catalog.NewRepository(pool, catalogCfg)

	var branchStore catalog.BranchStore
	if branchDB != nil {
		branchStore = catalog.NewBranchRepository(branchDB)
	}
	reconciler := catalog.NewReconciler(branchStore, catalogCfg, logger)

	familyCache := catalog.NewFamilyCache(repo, redisClient, catalogCfg, cfg.FamilyCacheTTL, logger)

	catalogService := catalog.NewService(repo, reconciler, familyCache, catalogCfg, logger)
	catalogHandler := catalog.NewHandler(logger, catalogService, catalogCfg)

	router := app.NewRouter(app.RouterParams{
		Logger:         logger,
		Config:         cfg,
		CatalogHandler: catalogHandler,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
