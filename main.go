package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"pkp_monitor_backend/internals/configs"
	database "pkp_monitor_backend/internals/databases"
	scheduler "pkp_monitor_backend/internals/features/users/auth/scheduler"
	helper "pkp_monitor_backend/internals/helpers"
	middlewares "pkp_monitor_backend/internals/middlewares"
	"pkp_monitor_backend/internals/middlewares/metrics"
	routes "pkp_monitor_backend/internals/route"
	routeDetails "pkp_monitor_backend/internals/route/details"
	"pkp_monitor_backend/internals/seeds"
)

func main() {
	logger := configs.InitLogger()
	defer func() { _ = logger.Sync() }()

	configs.LoadEnv()

	app := fiber.New(fiber.Config{
		// 🚀 JSON super cepat
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		DisableStartupMessage:   true,
		ErrorHandler:            helper.ErrorHandler,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          configs.GetEnvList("TRUSTED_PROXIES", []string{"0.0.0.0/0"}),
	})

	// ⚙️ recover, request-id, cors, compress, etag, logger, limiter
	middlewares.SetupMiddlewares(app)

	// 📈 registry metrics aplikasi
	registry := metrics.NewRegistry()
	app.Use(metrics.NewHTTPMetrics(registry).Middleware())

	// 🔌 DB connect + pool + warm-up
	database.ConnectDB()
	database.TunePool()
	database.WarmUpQueries()

	if configs.GetEnvBool("DB_AUTO_MIGRATE", false) {
		if err := database.AutoMigrate(database.DB); err != nil {
			zap.S().Fatalf("❌ AutoMigrate gagal: %v", err)
		}
	}

	// 🧠 Redis opsional (cache katalog)
	redisClient, err := database.ConnectRedis(context.Background())
	if err != nil {
		zap.S().Warnf("⚠️ Redis tidak tersedia, cache katalog nonaktif: %v", err)
		redisClient = nil
	}

	if configs.GetEnvBool("RUN_SEEDS", false) {
		seedCtx, cancelSeed := context.WithTimeout(context.Background(), 2*time.Minute)
		seeds.RunAllSeeds(seedCtx, database.DB)
		cancelSeed()
	}

	// ✅ Routes
	modules := routes.SetupRoutes(app, routeDetails.Deps{
		DB:       database.DB,
		Redis:    redisClient,
		Registry: registry,
	}, registry)

	// ⏱ scheduler setelah DB siap
	cleanup, err := scheduler.StartBlacklistCleanup(modules.AuthStore, scheduler.CleanupConfigFromEnv())
	if err != nil {
		zap.S().Fatalf("❌ Gagal start cleanup blacklist: %v", err)
	}

	// 🔒 Keep-Alive & timeout koneksi server
	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	port := configs.GetEnv("PORT", "3000")

	// Start server non-blocking
	go func() {
		zap.S().Infof("✅ Listening on :%s", port)
		if err := app.Listen("0.0.0.0:" + port); err != nil {
			zap.S().Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown + tutup cron, redis, pool DB
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zap.S().Info("🛑 Shutdown...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)

	<-cleanup.Stop().Done()
	if redisClient != nil {
		_ = redisClient.Close()
	}
	database.Close()
}
