// main.go

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"goldenspoon-backend/internal/auth"
	"goldenspoon-backend/internal/cache"
	"goldenspoon-backend/internal/config"
	"goldenspoon-backend/internal/handlers"
	"goldenspoon-backend/internal/logger"
	"goldenspoon-backend/internal/notify"
	"goldenspoon-backend/internal/payment"
	"goldenspoon-backend/internal/service"
	"goldenspoon-backend/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	log := logger.New(cfg.Common.ServiceName, cfg.Common.LogLevel)

	// Connect to MongoDB
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	client, err := store.ConnectMongoDB(ctx, cfg.Mongo.URI)
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connect failed")
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	st := store.New(client, client.Database(cfg.Mongo.Database), cfg.Mongo.Transactions)
	if err := st.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("ensure indexes failed")
	}
	cancel()

	catalogCache := newCatalogCache(cfg.Redis, log)
	notifier, closeNotifier := newNotifier(cfg.Notify, log)
	defer closeNotifier()

	tokens := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if cfg.Razorpay.KeySecret == "" {
		log.Warn().Msg("RAZORPAY_KEY_SECRET not set, every payment verification will fail")
	}
	gateway := payment.NewRazorpayClient(cfg.Razorpay.BaseURL, cfg.Razorpay.KeyID, cfg.Razorpay.KeySecret)

	h := &handlers.Handler{
		Auth:    service.NewAuthService(st.Users, tokens, notifier, log),
		Cart:    service.NewCartService(st.Carts),
		Orders:  service.NewOrderService(st.Orders),
		Catalog: service.NewCatalogService(st.Catalog, catalogCache, log),
		Payments: service.NewPaymentCoordinator(
			gateway, cfg.Razorpay.KeySecret, cfg.Razorpay.Currency,
			st.Carts, st.Orders, st.Tx, log,
		),
		Log: log,
	}

	gin.SetMode(gin.ReleaseMode)
	router := handlers.NewRouter(h, tokens, handlers.RouterConfig{CORSOrigins: cfg.HTTP.CORSOrigins})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTP.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("http started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http failed")
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	log.Info().Msg("shutdown...")
	shCtx, shCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shCancel()
	_ = srv.Shutdown(shCtx)
}

// newCatalogCache returns a Redis-backed cache, or nil (no caching) when
// REDIS_ADDR is unset or unreachable.
func newCatalogCache(cfg config.RedisConfig, log zerolog.Logger) cache.CatalogCache {
	if cfg.Addr == "" {
		return nil
	}

	rdb := redis.NewClient(&redis.Options{Addr: cfg.Addr})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn().Err(err).Str("addr", cfg.Addr).Msg("redis unavailable, catalog cache disabled")
		_ = rdb.Close()
		return nil
	}
	return cache.NewRedisCache(rdb, cfg.CacheTTL)
}

// newNotifier publishes email jobs to RabbitMQ when RABBIT_URL is set and
// falls back to logging them otherwise.
func newNotifier(cfg config.NotifyConfig, log zerolog.Logger) (notify.Notifier, func()) {
	fallback := &notify.LogNotifier{Log: log}
	if cfg.RabbitURL == "" {
		return fallback, func() {}
	}

	conn, err := notify.Connect(cfg.RabbitURL)
	if err != nil {
		log.Warn().Err(err).Msg("rabbitmq unavailable, emails will be logged only")
		return fallback, func() {}
	}
	if err := notify.DeclareExchange(conn.Ch, cfg.Exchange); err != nil {
		log.Warn().Err(err).Str("exchange", cfg.Exchange).Msg("declare exchange failed, emails will be logged only")
		_ = conn.Close()
		return fallback, func() {}
	}
	return notify.NewRabbitNotifier(conn.Ch, cfg.Exchange, cfg.EmailFrom), func() { _ = conn.Close() }
}
