package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/mamadbah2/agripoulet/internal/auth"
	"github.com/mamadbah2/agripoulet/internal/config"
	"github.com/mamadbah2/agripoulet/internal/repository"
	filerepo "github.com/mamadbah2/agripoulet/internal/repository/file"
	"github.com/mamadbah2/agripoulet/internal/repository/mongodb"
	"github.com/mamadbah2/agripoulet/internal/repository/sheets"
	"github.com/mamadbah2/agripoulet/internal/scheduler"
	"github.com/mamadbah2/agripoulet/internal/server/handlers"
	"github.com/mamadbah2/agripoulet/internal/server/router"
	productionsvc "github.com/mamadbah2/agripoulet/internal/service/production"
	reportingsvc "github.com/mamadbah2/agripoulet/internal/service/reporting"
	salessvc "github.com/mamadbah2/agripoulet/internal/service/sales"
	securitysvc "github.com/mamadbah2/agripoulet/internal/service/security"
	stocksvc "github.com/mamadbah2/agripoulet/internal/service/stock"
	"github.com/mamadbah2/agripoulet/internal/store"
	"github.com/mamadbah2/agripoulet/pkg/clients/webhook"
	"github.com/mamadbah2/agripoulet/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	var repo repository.Repository
	switch cfg.Store.Backend {
	case config.BackendMongo:
		mongoRepo, err := mongodb.New(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
		if err != nil {
			baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
		}
		defer func() {
			if err := mongoRepo.Close(context.Background()); err != nil {
				baseLogger.Error("failed to close mongodb connection", zap.Error(err))
			}
		}()
		repo = mongoRepo
	case config.BackendFile:
		fileRepo, err := filerepo.New(cfg.Store.DataFilePath, baseLogger.Named("repo.file"))
		if err != nil {
			baseLogger.Fatal("failed to init file repository", zap.Error(err))
		}
		repo = fileRepo
	}

	settle := time.Duration(cfg.Store.SettleMillis) * time.Millisecond
	docStore, err := store.Open(context.Background(), repo, settle, baseLogger.Named("store"))
	if err != nil {
		baseLogger.Fatal("failed to open document store", zap.Error(err))
	}
	defer docStore.Close()

	var sheetsRepo sheets.Repository
	if cfg.Sheets.Enabled() {
		sheetsRepo, err = sheets.New(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}
		baseLogger.Info("sheet export enabled")
	} else {
		baseLogger.Info("sheet export disabled")
	}

	tokens := auth.NewJWTManager(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpirationHours)*time.Hour, cfg.JWT.Issuer)

	productionSvc := productionsvc.NewService(docStore, baseLogger.Named("svc.production"))
	stockSvc := stocksvc.NewService(docStore, baseLogger.Named("svc.stock"))
	salesSvc := salessvc.NewService(docStore, baseLogger.Named("svc.sales"))
	reportingSvc := reportingsvc.NewService(docStore, sheetsRepo, baseLogger.Named("svc.reporting"))
	securitySvc := securitysvc.NewService(docStore, tokens, baseLogger.Named("svc.security"))

	engine := router.New(router.Handlers{
		Auth:       handlers.NewAuthHandler(securitySvc, baseLogger.Named("handlers.auth")),
		Production: handlers.NewProductionHandler(productionSvc, baseLogger.Named("handlers.production")),
		Stock:      handlers.NewStockHandler(stockSvc, baseLogger.Named("handlers.stock")),
		Sales:      handlers.NewSalesHandler(salesSvc, baseLogger.Named("handlers.sales")),
		Reports:    handlers.NewReportsHandler(reportingSvc, baseLogger.Named("handlers.reports")),
	}, tokens, baseLogger.Named("router"))

	if cfg.Reminders.WebhookURL != "" {
		notifier := webhook.NewClient(cfg.Reminders.WebhookURL)
		sched, err := scheduler.New(cfg.Reminders, salesSvc, notifier, baseLogger.Named("scheduler"))
		if err != nil {
			baseLogger.Fatal("failed to init scheduler", zap.Error(err))
		}
		sched.Start()
		defer sched.Stop()
	} else {
		baseLogger.Info("credit reminders disabled, no webhook url configured")
	}

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.Server.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      corsHandler.Handler(engine),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
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
