package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ArowuTest/skillprize-backend/api/routes"
	"github.com/ArowuTest/skillprize-backend/internal/cache"
	"github.com/ArowuTest/skillprize-backend/internal/config"
	"github.com/ArowuTest/skillprize-backend/internal/handlers"
	"github.com/ArowuTest/skillprize-backend/internal/metrics"
	"github.com/ArowuTest/skillprize-backend/internal/repositories"
	"github.com/ArowuTest/skillprize-backend/internal/seed"
	"github.com/ArowuTest/skillprize-backend/internal/services"
	"github.com/ArowuTest/skillprize-backend/internal/storage"
	"github.com/ArowuTest/skillprize-backend/pkg/payment"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"golang.org/x/exp/slog"
)

func main() {
	// Load configuration
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	gin.SetMode(cfg.Server.GinMode)
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)})))

	ctx := context.Background()

	repos, err := storage.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open storage: %v", err)
	}
	defer func() {
		if err := repos.Close(context.Background()); err != nil {
			log.Printf("Error disconnecting from MongoDB: %v", err)
		}
	}()

	if cfg.Storage.Seed {
		created, err := seed.Seed(ctx, repos.Contests, repos.Questions, time.Now())
		if err != nil {
			log.Fatalf("Failed to seed contests: %v", err)
		}
		slog.Info("Seeded fixture contests", "created", created)
	}

	var contestRepo repositories.ContestRepository = repos.Contests
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			// The cache falls back to the repository on every redis error, so keep going
			slog.Warn("Redis unreachable, contest reads will hit the database", "addr", cfg.Redis.Addr, "error", err)
		}
		contestRepo = cache.NewContestCache(repos.Contests, rdb, cfg.Redis.ContestTTL)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.NewMetrics(reg)

	provider := newProvider(cfg)

	// Initialize Services
	quizService := services.NewQuizService(repos.Questions, contestRepo)
	contestService := services.NewContestService(contestRepo, repos.Questions)
	entryService := services.NewEntryService(repos.Entries, contestRepo, quizService, m, cfg)
	paymentService := services.NewPaymentService(entryService, repos.Payments, provider, cfg)
	authService := services.NewAuthService(repos.Users, cfg.JWT)
	adminService := services.NewAdminService(contestRepo, repos.Users, repos.Entries, repos.Payments)

	handlerDeps := routes.HandlerDependencies{
		AuthHandler:     handlers.NewAuthHandler(authService),
		ContestHandler:  handlers.NewContestHandler(contestService),
		QuestionHandler: handlers.NewQuestionHandler(quizService),
		EntryHandler:    handlers.NewEntryHandler(entryService),
		PaymentHandler:  handlers.NewPaymentHandler(paymentService),
		AdminHandler:    handlers.NewAdminHandler(adminService),
	}

	router := routes.SetupRouter(cfg, handlerDeps, m)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	slog.Info("Server starting", "port", cfg.Server.Port, "storage", cfg.Storage.Driver, "payment", provider.Name())

	// Run server in a goroutine so that it doesn't block
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown: ", err)
	}

	slog.Info("Server exiting")
}

func newProvider(cfg *config.Config) payment.Provider {
	if cfg.Payment.Provider == config.ProviderPayPal {
		return payment.NewPayPalProvider(
			cfg.Payment.PayPal.BaseURL,
			cfg.Payment.PayPal.ClientID,
			cfg.Payment.PayPal.ClientSecret,
			cfg.Payment.Currency,
		)
	}
	return payment.NewMockProvider(cfg.Payment.MockClientID, cfg.Payment.MockDelay)
}

func parseLevel(level string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return slog.LevelInfo
	}
	return l
}
