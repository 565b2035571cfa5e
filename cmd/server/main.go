package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/juiceshop/internal/config"
	"github.com/mamadbah2/juiceshop/internal/domain/models"
	"github.com/mamadbah2/juiceshop/internal/repository/memory"
	"github.com/mamadbah2/juiceshop/internal/scheduler"
	"github.com/mamadbah2/juiceshop/internal/server/handlers"
	"github.com/mamadbah2/juiceshop/internal/server/router"
	catalogsvc "github.com/mamadbah2/juiceshop/internal/service/catalog"
	forecastsvc "github.com/mamadbah2/juiceshop/internal/service/forecast"
	notifysvc "github.com/mamadbah2/juiceshop/internal/service/notify"
	pricingsvc "github.com/mamadbah2/juiceshop/internal/service/pricing"
	reportingsvc "github.com/mamadbah2/juiceshop/internal/service/reporting"
	salessvc "github.com/mamadbah2/juiceshop/internal/service/sales"
	stocksvc "github.com/mamadbah2/juiceshop/internal/service/stock"
	whatsappclient "github.com/mamadbah2/juiceshop/pkg/clients/whatsapp"
	"github.com/mamadbah2/juiceshop/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Log.Level, cfg.Log.Format))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	loc, err := cfg.Location()
	if err != nil {
		baseLogger.Fatal("failed to resolve timezone", zap.Error(err))
	}

	store := memory.NewSeededStore(baseLogger.Named("repo.memory"))
	defer store.Close()

	currency := models.Currency{Symbol: cfg.Shop.CurrencySymbol}

	var sink notifysvc.Sink
	if cfg.WhatsApp.Enabled() {
		whatsClient := whatsappclient.NewClient(cfg.WhatsApp, baseLogger.Named("client.whatsapp"))
		sink = notifysvc.NewWhatsAppSink(whatsClient, cfg.Shop.OwnerDestination, baseLogger.Named("sink.whatsapp"))
		baseLogger.Info("whatsapp delivery enabled")
	} else {
		sink = notifysvc.NewLogSink(baseLogger.Named("sink.log"))
		baseLogger.Warn("whatsapp token missing, notifications are simulated")
	}

	notifier := notifysvc.NewService(store, sink, baseLogger.Named("svc.notify"))
	salesLedger := salessvc.NewLedger(store, loc)
	reportingSvc := reportingsvc.NewService(store, salesLedger, notifier, currency, cfg.Shop.OwnerDestination, baseLogger.Named("svc.reporting"))

	shopHandler := handlers.NewShopHandler(handlers.Services{
		Catalog:       catalogsvc.NewService(store, baseLogger.Named("svc.catalog")),
		Stock:         stocksvc.NewLedger(store, notifier, currency, baseLogger.Named("svc.stock")),
		Sales:         salesLedger,
		Pricing:       pricingsvc.NewAdvisor(store, currency, baseLogger.Named("svc.pricing")),
		Forecast:      forecastsvc.NewEngine(store, nil, loc, baseLogger.Named("svc.forecast")),
		Notifications: notifier,
		Reports:       reportingSvc,
	}, baseLogger.Named("handlers.shop"))
	engine := router.New(shopHandler, baseLogger.Named("router"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sched, err := scheduler.NewScheduler(cfg.Reporting, reportingSvc, baseLogger.Named("scheduler"))
	if err != nil {
		baseLogger.Fatal("failed to init scheduler", zap.Error(err))
	}
	if err := sched.Start(ctx); err != nil {
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
