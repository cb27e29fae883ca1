package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "pgnest-backend/internal/api/http"
	"pgnest-backend/internal/config"
	"pgnest-backend/internal/logger"
	"pgnest-backend/internal/repository/postgres"
	"pgnest-backend/internal/security"
	"pgnest-backend/internal/service"
	"pgnest-backend/internal/storage"

	_ "github.com/lib/pq"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting PGNest backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AdminTokenExpiry, cfg.JWT.MemberTokenExpiry)
	authMiddleware := httpapi.NewAuthMiddleware(tokenManager)

	// Initialize Storage
	fileStore, err := storage.NewLocalStorage(cfg.Storage.UploadDir)
	if err != nil {
		logger.Error("Failed to initialize storage", "error", err)
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	logger.Info("Local storage initialized", "upload_dir", cfg.Storage.UploadDir)

	// Initialize Email Service
	emailSvc := service.NewEmailService(cfg.Email.APIKey, cfg.Email.From, cfg.Email.FromName)

	// Initialize Services
	authSvc := service.NewAuthService(store.AdminRepository, store.MemberRepository, tokenManager)
	regSvc := service.NewRegistrationService(
		store.RegisteredMemberRepository,
		store.MemberRepository,
		store.RoomRepository,
		store.PGRepository,
		emailSvc,
		cfg.Billing.OverdueGraceDays,
	)
	memberSvc := service.NewMemberService(store.MemberRepository, store.RoomRepository, store.PGRepository)
	paymentSvc := service.NewPaymentService(
		store.PaymentRepository,
		store.MemberRepository,
		store.RoomRepository,
		store.PGRepository,
		emailSvc,
		cfg.Billing.OverdueGraceDays,
	)
	leavingSvc := service.NewLeavingRequestService(
		store.LeavingRequestRepository,
		store.MemberRepository,
		store.PaymentRepository,
		store.PGRepository,
		emailSvc,
	)
	expenseSvc := service.NewExpenseService(store.ExpenseRepository, store.StatsRepository, store.PGRepository)
	dashboardSvc := service.NewDashboardService(
		store.MemberRepository,
		store.PaymentRepository,
		store.ExpenseRepository,
		store.StatsRepository,
		paymentSvc,
	)
	reportSvc := service.NewReportService(
		store.MemberRepository,
		store.PaymentRepository,
		store.ExpenseRepository,
		paymentSvc,
	)
	roomSvc := service.NewRoomService(store.RoomRepository, store.PGRepository)

	// Initialize HTTP handlers
	handlers := httpapi.Handlers{
		Auth:         httpapi.NewAuthHandler(authSvc),
		Registration: httpapi.NewRegistrationHandler(regSvc, fileStore, cfg.Storage.MaxFileSize),
		Member:       httpapi.NewMemberHandler(memberSvc),
		Payment:      httpapi.NewPaymentHandler(paymentSvc, fileStore, cfg.Storage.MaxFileSize),
		Leaving:      httpapi.NewLeavingHandler(leavingSvc),
		Expense:      httpapi.NewExpenseHandler(expenseSvc),
		Dashboard:    httpapi.NewDashboardHandler(dashboardSvc),
		Report:       httpapi.NewReportHandler(reportSvc),
		Room:         httpapi.NewRoomHandler(roomSvc),
		File:         httpapi.NewFileHandler(fileStore),
	}

	router := httpapi.NewRouter(handlers, authMiddleware)

	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	// Start HTTP server
	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", "error", err)
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}
	logger.Info("Server stopped")
}
