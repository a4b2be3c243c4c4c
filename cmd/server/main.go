package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"go.uber.org/zap"

	"github.com/bwc/pos/internal/config"
	"github.com/bwc/pos/internal/repository"
	"github.com/bwc/pos/internal/repository/memory"
	"github.com/bwc/pos/internal/repository/mongodb"
	"github.com/bwc/pos/internal/repository/sheets"
	"github.com/bwc/pos/internal/scheduler"
	"github.com/bwc/pos/internal/seed"
	"github.com/bwc/pos/internal/server/handlers"
	"github.com/bwc/pos/internal/server/router"
	authsvc "github.com/bwc/pos/internal/service/auth"
	branchsvc "github.com/bwc/pos/internal/service/branches"
	catalogsvc "github.com/bwc/pos/internal/service/catalog"
	dashboardsvc "github.com/bwc/pos/internal/service/dashboard"
	inventorysvc "github.com/bwc/pos/internal/service/inventory"
	purchasesvc "github.com/bwc/pos/internal/service/purchases"
	reportingsvc "github.com/bwc/pos/internal/service/reporting"
	salesvc "github.com/bwc/pos/internal/service/sales"
	usersvc "github.com/bwc/pos/internal/service/users"
	whatsappsvc "github.com/bwc/pos/internal/service/whatsapp"
	whatsappclient "github.com/bwc/pos/pkg/clients/whatsapp"
	"github.com/bwc/pos/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Log.Level))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	loc, err := time.LoadLocation(cfg.Reporting.Timezone)
	if err != nil {
		baseLogger.Fatal("invalid reporting timezone", zap.Error(err))
	}

	store, err := openStore(context.Background(), cfg, baseLogger)
	if err != nil {
		baseLogger.Fatal("failed to init storage", zap.String("driver", cfg.Storage.Driver), zap.Error(err))
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close storage", zap.Error(err))
		}
	}()

	var sheetsRepo sheets.Repository
	if cfg.Sheets.Enabled() {
		repo, err := sheets.NewGoogleSheetRepository(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}
		sheetsRepo = repo
	} else {
		baseLogger.Warn("google sheets not configured, daily reports stay in storage only")
	}

	var messagingSvc whatsappsvc.MessagingService
	if cfg.WhatsApp.Enabled() {
		whatsClient := whatsappclient.NewClient(cfg.WhatsApp)
		messagingSvc = whatsappsvc.NewMetaWhatsAppService(cfg.WhatsApp, whatsClient, baseLogger.Named("svc.whatsapp"))
	} else {
		baseLogger.Warn("whatsapp not configured, daily reports will not be sent")
	}

	userSvc := usersvc.NewService(store, baseLogger.Named("svc.users"))
	authSvc := authsvc.NewService(userSvc, cfg.Auth, baseLogger.Named("svc.auth"))
	branchSvc := branchsvc.NewService(store, baseLogger.Named("svc.branches"))
	catalogSvc := catalogsvc.NewService(store, baseLogger.Named("svc.catalog"))
	inventorySvc := inventorysvc.NewService(store, catalogSvc, baseLogger.Named("svc.inventory"))
	saleSvc := salesvc.NewService(store, baseLogger.Named("svc.sales"))
	purchaseSvc := purchasesvc.NewService(store, baseLogger.Named("svc.purchases"))
	dashboardSvc := dashboardsvc.NewService(store, catalogSvc, inventorySvc, loc, cfg.Inventory.LowStockThreshold, baseLogger.Named("svc.dashboard"))
	reportingSvc := reportingsvc.NewService(store, sheetsRepo, loc, cfg.Inventory.LowStockThreshold, baseLogger.Named("svc.reporting"))

	if err := seed.New(store, userSvc, cfg.Seed, baseLogger.Named("seed")).Run(context.Background()); err != nil {
		baseLogger.Fatal("failed to seed reference data", zap.Error(err))
	}

	handlerLogger := baseLogger.Named("handlers")
	engine := router.New(router.Handlers{
		Auth:      handlers.NewAuthHandler(authSvc, handlerLogger),
		Branch:    handlers.NewBranchHandler(branchSvc, handlerLogger),
		Catalog:   handlers.NewCatalogHandler(catalogSvc, handlerLogger),
		User:      handlers.NewUserHandler(userSvc, handlerLogger),
		Inventory: handlers.NewInventoryHandler(inventorySvc, handlerLogger),
		Sale:      handlers.NewSaleHandler(saleSvc, handlerLogger),
		Purchase:  handlers.NewPurchaseHandler(purchaseSvc, handlerLogger),
		Dashboard: handlers.NewDashboardHandler(dashboardSvc, handlerLogger),
	}, authSvc, baseLogger.Named("router"))

	sched, err := scheduler.NewScheduler(cfg.Reporting, reportingSvc, messagingSvc, baseLogger.Named("scheduler"))
	if err != nil {
		baseLogger.Fatal("failed to init scheduler", zap.Error(err))
	}
	if err := sched.Start(); err != nil {
		baseLogger.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port), zap.String("storage", cfg.Storage.Driver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}

func openStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (repository.Store, error) {
	if cfg.Storage.Driver == config.StorageMemory {
		logger.Warn("using in-memory storage, data is lost on restart")
		return memory.NewStore(), nil
	}

	connectCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	return mongodb.NewMongoDBRepository(connectCtx, cfg.MongoDB.URI, cfg.MongoDB.DBName, logger.Named("repo.mongodb"))
}
