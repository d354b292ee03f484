// Package main is the entry point for the Budgetwise API server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/budgetwise/backend/config"
	"github.com/budgetwise/backend/internal/application/adapter"
	"github.com/budgetwise/backend/internal/application/usecase/auth"
	"github.com/budgetwise/backend/internal/application/usecase/budget"
	"github.com/budgetwise/backend/internal/application/usecase/summary"
	"github.com/budgetwise/backend/internal/application/usecase/transaction"
	"github.com/budgetwise/backend/internal/infra/db"
	"github.com/budgetwise/backend/internal/infra/server/router"
	"github.com/budgetwise/backend/internal/integration/adapters"
	"github.com/budgetwise/backend/internal/integration/cache"
	"github.com/budgetwise/backend/internal/integration/entrypoint/controller"
	"github.com/budgetwise/backend/internal/integration/entrypoint/middleware"
	"github.com/budgetwise/backend/internal/integration/persistence"
	"github.com/budgetwise/backend/internal/integration/persistence/model"
)

func main() {
	// Load .env file if it exists (development only)
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := config.Load()

	slog.Info("Starting Budgetwise API",
		"environment", cfg.Server.Environment,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
	)

	database, err := db.NewPostgresConnection(&cfg.Database)
	if err != nil {
		slog.Error("Database connection failed", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := database.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}()

	if err := database.AutoMigrate(
		&model.UserModel{},
		&model.RefreshTokenModel{},
		&model.TransactionModel{},
		&model.BudgetModel{},
		&model.BudgetCategoryModel{},
		&model.BudgetAlertModel{},
		&model.BudgetDefaultModel{},
	); err != nil {
		slog.Error("Failed to run database migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database migrations completed successfully")

	summaryCache := newSummaryCache(cfg.Redis.URL)

	// Repositories
	userRepo := persistence.NewUserRepository(database.DB())
	tokenRepo := persistence.NewTokenRepository(database.DB())
	transactionRepo := persistence.NewTransactionRepository(database.DB())
	budgetRepo := persistence.NewBudgetRepository(database.DB())
	summaryRepo := persistence.NewSummaryRepository(database.DB())

	// Adapters
	passwordService := adapters.NewPasswordService()
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, tokenRepo)

	// Auth use cases
	registerUseCase := auth.NewRegisterUserUseCase(userRepo, passwordService, tokenService)
	loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService)
	refreshTokenUseCase := auth.NewRefreshTokenUseCase(tokenService)
	logoutUseCase := auth.NewLogoutUserUseCase(tokenService)

	// Transaction use cases
	createTransactionUseCase := transaction.NewCreateTransactionUseCase(transactionRepo, budgetRepo, summaryCache)
	updateTransactionUseCase := transaction.NewUpdateTransactionUseCase(transactionRepo, budgetRepo, summaryCache)
	deleteTransactionUseCase := transaction.NewDeleteTransactionUseCase(transactionRepo, budgetRepo, summaryCache)
	listTransactionsUseCase := transaction.NewListTransactionsUseCase(transactionRepo)

	// Budget use cases
	getOrCreateBudgetUseCase := budget.NewGetOrCreateBudgetUseCase(budgetRepo, transactionRepo, userRepo)
	setCategoryLimitsUseCase := budget.NewSetCategoryLimitsUseCase(budgetRepo, transactionRepo, userRepo)
	setSingleCategoryUseCase := budget.NewSetSingleCategoryLimitUseCase(budgetRepo, userRepo)
	getAlertsUseCase := budget.NewGetAlertsUseCase(budgetRepo)
	markAlertReadUseCase := budget.NewMarkAlertReadUseCase(budgetRepo)
	getYearSummaryUseCase := budget.NewGetYearSummaryUseCase(budgetRepo)
	getDefaultsUseCase := budget.NewGetDefaultsUseCase(budgetRepo, userRepo)
	setDefaultsUseCase := budget.NewSetDefaultsUseCase(budgetRepo, userRepo)

	// Summary use cases
	getSummaryUseCase := summary.NewGetUserSummaryUseCase(summaryRepo, summaryCache)
	getBreakdownUseCase := summary.NewGetCategoryBreakdownUseCase(summaryRepo, summaryCache)
	getMonthlyUseCase := summary.NewGetMonthlyDataUseCase(summaryRepo, summaryCache)

	// Controllers and middleware
	healthController := controller.NewHealthController(database.HealthCheck)
	authController := controller.NewAuthController(registerUseCase, loginUseCase, refreshTokenUseCase, logoutUseCase)
	transactionController := controller.NewTransactionController(
		createTransactionUseCase,
		updateTransactionUseCase,
		deleteTransactionUseCase,
		listTransactionsUseCase,
	)
	budgetController := controller.NewBudgetController(
		getOrCreateBudgetUseCase,
		setCategoryLimitsUseCase,
		setSingleCategoryUseCase,
		getAlertsUseCase,
		markAlertReadUseCase,
		getYearSummaryUseCase,
		getDefaultsUseCase,
		setDefaultsUseCase,
	)
	summaryController := controller.NewSummaryController(getSummaryUseCase, getBreakdownUseCase, getMonthlyUseCase)
	loginRateLimiter := middleware.NewRateLimiter()
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	r := router.NewRouter(
		healthController,
		authController,
		transactionController,
		budgetController,
		summaryController,
		loginRateLimiter,
		authMiddleware,
	)
	engine := r.Setup(cfg.Server.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		slog.Info("Server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited properly")
}

// newSummaryCache connects to redis, falling back to a no-op cache so the
// API keeps serving summaries (uncached) when redis is unavailable.
func newSummaryCache(redisURL string) adapter.SummaryCache {
	if redisURL == "" {
		slog.Warn("No redis URL configured, summary caching disabled")
		return cache.NewNoopSummaryCache()
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		slog.Warn("Invalid redis URL, summary caching disabled", "error", err)
		return cache.NewNoopSummaryCache()
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		slog.Warn("Redis unreachable, summary caching disabled", "error", err)
		return cache.NewNoopSummaryCache()
	}

	slog.Info("Redis connection established")
	return cache.NewRedisSummaryCache(client)
}
