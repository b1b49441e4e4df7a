package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"crowdfund/internal/adapter/repo"
	"crowdfund/internal/domain"
	"crowdfund/internal/escrow"
	"crowdfund/internal/http/handlers"
	httpapi "crowdfund/internal/http/httpapi"
	"crowdfund/internal/infra"
	"crowdfund/internal/notify"
	"crowdfund/pkg/metrics"
)

func main() {
	// .env is optional.
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx := context.Background()

	var (
		campaigns domain.CampaignRegistry
		donations domain.DonationLedger
		balances  domain.BalanceLedger
		txRunner  domain.TxRunner
	)
	if cfg.DatabaseURL != "" {
		dbpool, err := infra.NewDBPool(ctx, cfg)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect database")
		}
		defer dbpool.Close()

		if err := repo.EnsureSchema(ctx, dbpool); err != nil {
			logger.Fatal().Err(err).Msg("failed to ensure schema")
		}
		runner := infra.NewSQLRunner(dbpool, logger)
		campaigns = repo.NewPostgresCampaignRegistry(runner)
		donations = repo.NewPostgresDonationLedger(runner)
		balances = repo.NewPostgresBalanceLedger(runner)
		txRunner = repo.NewPgxTxRunner(dbpool)
	} else {
		logger.Warn().Msg("DATABASE_URL not set, using in-memory stores")
		campaigns = repo.NewMemoryCampaignRegistry()
		donations = repo.NewMemoryDonationLedger()
		balances = repo.NewMemoryBalanceLedger()
		txRunner = repo.NewMemoryTxRunner()
	}

	var notifier domain.Notifier = notify.NewLogNotifier(logger)
	if cfg.RedisURL != "" {
		redisOpts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("invalid REDIS_URL")
		}
		client := redis.NewClient(redisOpts)
		defer client.Close()
		notifier = notify.NewRedisNotifier(client)
	}

	registry := prometheus.NewRegistry()
	metrics.RegisterCollectors(registry)

	service := escrow.NewService(campaigns, donations, balances, txRunner, infra.SystemClock{}, notifier, cfg.CampaignReserve, logger)

	app := handlers.NewApp(service, logger)
	router := httpapi.NewRouter(app, httpapi.Options{
		JWTSecret:       cfg.JWTSecret,
		RateLimitPerMin: cfg.RateLimitPerMin,
		AllowedOrigins:  cfg.AllowedOrigins,
		Metrics:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		Logger:          logger,
	})

	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("escrow API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
