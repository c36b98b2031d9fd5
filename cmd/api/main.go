// TripThreads API server.
//
// @title        TripThreads API
// @version      1.0
// @description  Collaborative trip planning with expense splitting and debt settlement.
// @BasePath     /api/v1
package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/colin-rod/tripthreads/docs"
	"github.com/colin-rod/tripthreads/internal/balance"
	"github.com/colin-rod/tripthreads/internal/cache"
	"github.com/colin-rod/tripthreads/internal/config"
	"github.com/colin-rod/tripthreads/internal/currency"
	"github.com/colin-rod/tripthreads/internal/database"
	"github.com/colin-rod/tripthreads/internal/expense"
	"github.com/colin-rod/tripthreads/internal/expense/split"
	"github.com/colin-rod/tripthreads/internal/settlement"
	"github.com/colin-rod/tripthreads/internal/trip"
	"github.com/colin-rod/tripthreads/pkg/logging"
	mw "github.com/colin-rod/tripthreads/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	logging.Setup()
	cfg := config.Load()

	db, err := database.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("connected to database")

	// Redis is optional: with no client the balance service recomputes
	// every read instead of serving cached views.
	var balanceViews *cache.ViewCache[[]balance.UserBalance]
	if cfg.RedisAddr != "" {
		redisClient, err := cache.NewClient(cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			slog.Warn("redis unavailable, balance caching disabled", "error", err)
		} else {
			defer redisClient.Close()
			balanceViews = cache.NewViewCache[[]balance.UserBalance](redisClient, cfg.BalanceCacheTTL)
			slog.Info("connected to redis", "addr", cfg.RedisAddr)
		}
	}

	splitFactory := split.NewFactory()
	fxRates := currency.NewHTTPProvider(cfg.FxAPIURL)

	// Trip feature
	tripRepo := trip.NewRepository(db)
	tripService := trip.NewService(tripRepo)
	tripHandler := trip.NewHandler(tripService)

	// Settlement repository feeds recorded payments into balance reads,
	// so it is built before the balance service.
	settlementRepo := settlement.NewRepository(db)

	// Expense + balance features; each expense write invalidates the
	// trip's cached balance view.
	expenseRepo := expense.NewRepository(db)
	balanceService := balance.NewService(tripService, expenseRepo, settlementRepo, balanceViews)
	balanceHandler := balance.NewHandler(balanceService)

	expenseService := expense.NewService(expenseRepo, tripService, fxRates, splitFactory, balanceService)
	expenseHandler := expense.NewHandler(expenseService)

	// Settlement feature
	settlementService := settlement.NewService(settlementRepo, tripService, balanceService, settlement.NewGreedyOptimizer())
	settlementHandler := settlement.NewHandler(settlementService)

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(mw.Metrics)
	r.Use(mw.UserMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/trips", tripHandler.Routes())
		r.Mount("/expenses", expenseHandler.Routes())
		r.Mount("/balances", balanceHandler.Routes())
		r.Mount("/settlements", settlementHandler.Routes())
	})

	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	slog.Info("server starting", "port", port)
	if err := http.ListenAndServe(":"+port, r); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
