package main

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"database/sql"

	"github.com/finsight/forecast-service/internal/config"
	"github.com/finsight/forecast-service/internal/forecast"
	"github.com/finsight/forecast-service/internal/handler"
	"github.com/finsight/forecast-service/internal/integrations/cbr"
	"github.com/finsight/forecast-service/internal/middleware"
	"github.com/finsight/forecast-service/internal/mlmodel"
	"github.com/finsight/forecast-service/internal/repository"
	"github.com/finsight/forecast-service/internal/service"
	"github.com/finsight/forecast-service/internal/utils/email"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	// Initialize database
	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}

	// Load model artifacts; the service starts either way and reports
	// model_loaded=false until a load succeeds
	handle := mlmodel.NewHandle(cfg.ModelPath, cfg.EncodersPath, logger)
	if err := handle.Load(); err != nil {
		logger.Errorf("Model artifacts not loaded, predictions unavailable: %v", err)
	}

	// Schedule nightly artifact reload so retrained models are picked up
	// without a restart
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.ReloadSchedule, func() {
		if err := handle.Load(); err != nil {
			logger.Errorf("Scheduled model reload failed: %v", err)
		}
	}); err != nil {
		logger.Fatalf("Failed to schedule model reload: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Initialize layers
	repo := repository.NewRepository(db)
	engine := forecast.NewEngine(handle, logger)
	rates := cbr.NewClient(cfg, logger)
	alerts := email.NewSender(cfg, logger)
	svc := service.NewService(repo, engine, rates, alerts, logger, cfg)
	h := handler.NewHandler(svc, handle, logger)

	// Setup router
	r := mux.NewRouter()
	r.Use(middleware.RequestLogger(logger))
	// Public routes
	r.HandleFunc("/health", h.Health).Methods("GET")
	r.HandleFunc("/register", h.Register).Methods("POST")
	r.HandleFunc("/login", h.Login).Methods("POST")
	// Protected routes
	authRouter := r.PathPrefix("/").Subrouter()
	authRouter.Use(middleware.AuthMiddleware(cfg))
	authRouter.HandleFunc("/predict/weekly", h.PredictWeekly).Methods("POST")
	authRouter.HandleFunc("/predict/daily", h.PredictDaily).Methods("POST")
	authRouter.HandleFunc("/predictions/history", h.History).Methods("GET")

	corsWrapper := cors.New(cors.Options{
		AllowedOrigins: strings.Split(cfg.AllowedOrigins, ","),
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	})

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      corsWrapper.Handler(r),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	logger.Infof("Starting server on %s", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("Server failed: %v", err)
	}
}
