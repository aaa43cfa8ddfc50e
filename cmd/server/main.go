package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"

	"github.com/elizi/goldtool/internal/db"
	"github.com/elizi/goldtool/internal/handlers"
	"github.com/elizi/goldtool/internal/logger"
	"github.com/elizi/goldtool/internal/repositories"
	"github.com/elizi/goldtool/internal/services"
)

func main() {
	_ = godotenv.Load()

	zlog, err := logger.New()
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer zlog.Sync()

	// Database connection: postgres by default, sqlite for local development
	var database *db.DB
	if os.Getenv("DB_DRIVER") == "sqlite" {
		database, err = db.ConnectSQLite(getEnv("DB_PATH", "goldtool.db"))
	} else {
		database, err = db.Connect(db.NewConfig())
	}
	if err != nil {
		zlog.Fatal("failed to connect to database", zap.Error(err))
	}
	defer database.Close()

	if err := database.Migrate(); err != nil {
		zlog.Fatal("failed to migrate schema", zap.Error(err))
	}
	zlog.Info("database ready")

	// Repositories
	modelRepo := repositories.NewModelRepository(database)
	productRepo := repositories.NewProductRepository(database)
	customerRepo := repositories.NewCustomerRepository(database)
	orderRepo := repositories.NewOrderRepository(database)
	goldPriceRepo := repositories.NewGoldPriceRepository(database)
	activityRepo := repositories.NewActivityLogRepository(database)

	// Services
	feed := services.NewTruncgilFeedProvider()
	goldPriceService := services.NewGoldPriceService(feed, goldPriceRepo, zlog)
	if err := goldPriceService.Restore(context.Background()); err != nil {
		zlog.Warn("failed to restore persisted gold price state", zap.Error(err))
	}
	calculationService := services.NewCalculationService(productRepo, modelRepo, goldPriceService, zlog)
	modelService := services.NewModelService(modelRepo, zlog)
	productService := services.NewProductService(productRepo, modelRepo, zlog)
	customerService := services.NewCustomerService(customerRepo, orderRepo, zlog)
	orderService := services.NewOrderService(orderRepo, customerRepo, zlog)
	activityService := services.NewActivityLogService(activityRepo, zlog)

	// Handlers
	goldPriceHandler := handlers.NewGoldPriceHandler(goldPriceService)
	calculationHandler := handlers.NewCalculationHandler(calculationService)
	modelHandler := handlers.NewModelHandler(modelService)
	productHandler := handlers.NewProductHandler(productService)
	customerHandler := handlers.NewCustomerHandler(customerService)
	orderHandler := handlers.NewOrderHandler(orderService)
	activityHandler := handlers.NewActivityLogHandler(activityService)

	r := mux.NewRouter()
	r.Use(handlers.RequestLogger(zlog))
	r.Use(handlers.ActivityRecorder(activityService))

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"status":  "healthy",
			"service": "goldtool-backend",
		})
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()

	// Gold price
	api.HandleFunc("/gold-price", goldPriceHandler.HandleStatus).Methods(http.MethodGet)
	api.HandleFunc("/gold-price/refresh", goldPriceHandler.HandleRefresh).Methods(http.MethodPost)
	api.HandleFunc("/gold-price/manual", goldPriceHandler.HandleSetManual).Methods(http.MethodPut)
	api.HandleFunc("/gold-price/manual", goldPriceHandler.HandleClearManual).Methods(http.MethodDelete)

	// Calculations
	api.HandleFunc("/calculations/weight", calculationHandler.HandleWeight).Methods(http.MethodPost)
	api.HandleFunc("/calculations/quote", calculationHandler.HandleQuote).Methods(http.MethodPost)
	api.HandleFunc("/calculations/scrap", calculationHandler.HandleScrap).Methods(http.MethodPost)
	api.HandleFunc("/calculations/history", calculationHandler.HandleHistory).
		Methods(http.MethodGet, http.MethodDelete)
	api.HandleFunc("/calculations/scrap-history", calculationHandler.HandleScrapHistory).
		Methods(http.MethodGet, http.MethodDelete)

	// Catalog
	api.HandleFunc("/models", modelHandler.HandleList).Methods(http.MethodGet)
	api.HandleFunc("/models", modelHandler.HandleCreate).Methods(http.MethodPost)
	api.HandleFunc("/models/{id}", modelHandler.HandleGet).Methods(http.MethodGet)
	api.HandleFunc("/models/{id}", modelHandler.HandleUpdate).Methods(http.MethodPut)
	api.HandleFunc("/models/{id}", modelHandler.HandleDelete).Methods(http.MethodDelete)

	api.HandleFunc("/products", productHandler.HandleList).Methods(http.MethodGet)
	api.HandleFunc("/products", productHandler.HandleCreate).Methods(http.MethodPost)
	api.HandleFunc("/products/resolve", productHandler.HandleResolve).Methods(http.MethodGet)
	api.HandleFunc("/products/{id}", productHandler.HandleGet).Methods(http.MethodGet)
	api.HandleFunc("/products/{id}", productHandler.HandleUpdate).Methods(http.MethodPut)
	api.HandleFunc("/products/{id}", productHandler.HandleDelete).Methods(http.MethodDelete)

	// Customers
	api.HandleFunc("/customers", customerHandler.HandleList).Methods(http.MethodGet)
	api.HandleFunc("/customers", customerHandler.HandleCreate).Methods(http.MethodPost)
	api.HandleFunc("/customers/{id}", customerHandler.HandleGet).Methods(http.MethodGet)
	api.HandleFunc("/customers/{id}", customerHandler.HandleUpdate).Methods(http.MethodPut)
	api.HandleFunc("/customers/{id}", customerHandler.HandleDelete).Methods(http.MethodDelete)

	// Orders
	api.HandleFunc("/orders", orderHandler.HandleList).Methods(http.MethodGet)
	api.HandleFunc("/orders", orderHandler.HandleCreate).Methods(http.MethodPost)
	api.HandleFunc("/orders/statistics", orderHandler.HandleStatistics).Methods(http.MethodGet)
	api.HandleFunc("/orders/{id}", orderHandler.HandleGet).Methods(http.MethodGet)
	api.HandleFunc("/orders/{id}/status", orderHandler.HandleUpdateStatus).Methods(http.MethodPut)
	api.HandleFunc("/orders/{id}", orderHandler.HandleDelete).Methods(http.MethodDelete)

	// Activity log
	api.HandleFunc("/activity-logs", activityHandler.HandleList).Methods(http.MethodGet)

	// Swagger UI
	r.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	port := getEnv("PORT", "8080")
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      handlers.CORS(r),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		zlog.Info("server listening", zap.String("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zlog.Fatal("server failed", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zlog.Error("graceful shutdown failed", zap.Error(err))
	}
	zlog.Info("server stopped")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
