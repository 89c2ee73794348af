package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"francoggm/paygw-wallet/internal/app/auth"
	"francoggm/paygw-wallet/internal/app/external"
	"francoggm/paygw-wallet/internal/app/gateway"
	"francoggm/paygw-wallet/internal/app/payment"
	"francoggm/paygw-wallet/internal/app/provider"
	"francoggm/paygw-wallet/internal/app/server"
	"francoggm/paygw-wallet/internal/app/server/handlers"
	"francoggm/paygw-wallet/internal/app/storage"
	"francoggm/paygw-wallet/internal/app/workers"
	"francoggm/paygw-wallet/internal/app/workers/processors"
	"francoggm/paygw-wallet/internal/config"
	"francoggm/paygw-wallet/internal/lang"
	"francoggm/paygw-wallet/internal/logger"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	// A missing .env file is fine, the environment is used as is.
	envFileErr := godotenv.Load()

	cfg := config.NewConfig()
	log := logger.New(cfg.Server.LogLevel)
	defer log.Sync()

	if envFileErr != nil {
		log.Debug("No .env file loaded", zap.Error(envFileErr))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cacheOpts := redis.Options{
		Addr:         fmt.Sprintf("%s:%s", cfg.Cache.Host, cfg.Cache.Port),
		Password:     cfg.Cache.Password,
		DB:           0,
		MinIdleConns: 10,
		PoolTimeout:  60 * time.Second,
	}

	rdb := redis.NewClient(&cacheOpts)
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatal("Failed to connect to cache", zap.String("addr", cacheOpts.Addr), zap.Error(err))
	}
	defer rdb.Close()

	// Stores
	balances := storage.NewBalanceStore(rdb)
	payments := storage.NewPaymentStore(rdb)
	payables := storage.NewPayableStore(rdb)
	entitlements := storage.NewEntitlementStore(rdb)
	sessions := storage.NewSessionStore(rdb, cfg.Server.SessionTTL)
	settings := storage.NewSettingsStore(rdb)
	events := storage.NewEventStore(rdb)

	if cfg.Gateway.WalletCurrency != "" {
		if err := settings.SetSetting(ctx, gateway.CurrencyPlugin, gateway.CurrencySetting, cfg.Gateway.WalletCurrency); err != nil {
			log.Fatal("Failed to store wallet currency", zap.Error(err))
		}
	}

	registry := newProviderRegistry(cfg, log, payables, entitlements)

	// Payment events
	paymentEventsCh := make(chan any, cfg.Workers.EventBufferSize)
	storageProcessor := processors.NewStorageProcessor(events)
	eventsPool := workers.NewWorkerPool(cfg.Workers.EventCount, false, log.Named("events"), paymentEventsCh, storageProcessor)
	eventsPool.StartWorkers(ctx)

	strs := lang.NewManager()
	processor := payment.NewProcessor(
		log.Named("payment"),
		auth.ContextPrincipal{},
		registry,
		balances,
		payments,
		strs,
		payment.WithContextValidator(auth.SystemContext{GuestUserID: cfg.Gateway.GuestUserID}),
		payment.WithEventPublisher(workers.NewQueue(log.Named("events"), paymentEventsCh)),
	)

	services := external.NewRegistry(
		external.NewProcessFunction(processor),
		external.NewGatewayInfoFunction(gateway.New(log.Named("gateway"), settings, strs), registry),
	)

	h := handlers.NewHandlers(log.Named("handlers"), rdb, events, services)
	srv := server.NewServer(cfg, log.Named("server"), h, sessions, strs)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Run()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Error("Server stopped", zap.Error(err))
		}
		stop()
	case <-ctx.Done():
		log.Info("Shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Failed to shut down server", zap.Error(err))
	}

	eventsPool.Wait()
}

func newProviderRegistry(cfg *config.Config, log *zap.Logger, payables *storage.PayableStore, entitlements *storage.EntitlementStore) *provider.Registry {
	providers := make(map[string]provider.ServiceProvider)
	for _, component := range cfg.Consumers.Local {
		providers[component] = provider.NewStoredProvider(component, cfg.Server.SiteURL, payables, entitlements)
	}
	for component, baseURL := range cfg.Consumers.Webhook {
		providers[component] = provider.NewWebhookProvider(baseURL, cfg.Consumers.RequestTimeout)
	}

	// Wallet granting components are registered even when nothing else
	// serves them, so that they are recognised and refused.
	for _, component := range cfg.Consumers.WalletGranting {
		p, ok := providers[component]
		if !ok {
			p = provider.NewStoredProvider(component, cfg.Server.SiteURL, payables, entitlements)
		}
		providers[component] = provider.WalletGrantingProvider{ServiceProvider: p}
	}

	registry := provider.NewRegistry()
	for component, p := range providers {
		registry.Register(component, p)
	}

	log.Info("Registered payment consumers",
		zap.Strings("local", cfg.Consumers.Local),
		zap.Int("webhook", len(cfg.Consumers.Webhook)),
		zap.Strings("wallet_granting", registry.WalletGrantingComponents()),
	)
	return registry
}
