package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/segmentio/kafka-go"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/fintrack/fintrackd/internal/handlers"
	"github.com/fintrack/fintrackd/internal/jwt"
	"github.com/fintrack/fintrackd/internal/logger"
	"github.com/fintrack/fintrackd/internal/middlewares"
	"github.com/fintrack/fintrackd/internal/reminder"
	"github.com/fintrack/fintrackd/internal/repositories"
	"github.com/fintrack/fintrackd/internal/services"
	"github.com/fintrack/fintrackd/internal/storage"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

// @title fintrackd API
// @version 1.0.0
// @description Backend for the personal finance tracker app
// @host localhost:8080
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	printBuildInfo()
	configPath := parseFlags()

	appHost, appPort, dbPath, backupDir, logLevel,
		jwtSecret, jwtExpSecond,
		kafkaBrokers, kafkaTopic,
		err := parseConfig(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(context.Background(),
		appHost, appPort, dbPath, backupDir, logLevel,
		jwtSecret, jwtExpSecond,
		kafkaBrokers, kafkaTopic,
	); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Starting service version %s, commit %s, build %s\n", buildVersion, buildCommit, buildDate)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

// parseConfig loads environment variables from a file and returns all
// application, database, JWT, and Kafka configuration.
func parseConfig(path string) (
	appHost, appPort, dbPath, backupDir, logLevel string,
	jwtSecretKey string, jwtExpSecond int,
	kafkaBrokers []string, kafkaTopic string,
	err error,
) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}

	// Application config
	appHost = getEnv("APP_HOST", "localhost")
	appPort = getEnv("APP_PORT", "8080")
	logLevel = getEnv("APP_LOG_LEVEL", "info")

	// Storage config
	dbPath = getEnv("DB_PATH", "finance.db")
	backupDir = getEnv("BACKUP_DIR", "backups")

	// JWT config
	jwtSecretKey = getEnv("JWT_SECRET_KEY", "my_super_secret_key")
	if jwtExpSecond, err = strconv.Atoi(getEnv("JWT_EXP_SECOND", "3600")); err != nil {
		return
	}

	// Kafka config; no brokers disables budget-alert publishing
	if brokers := getEnv("KAFKA_BROKERS", ""); brokers != "" {
		kafkaBrokers = strings.Split(brokers, ",")
	}
	kafkaTopic = getEnv("KAFKA_BUDGET_ALERTS_TOPIC", "budget-alerts")

	return
}

// run initializes the logger, database, Kafka writer, reminder scheduler,
// and HTTP server. It sets up routes, applies middleware, and handles
// graceful shutdown.
func run(ctx context.Context,
	appHost, appPort, dbPath, backupDir, logLevel string,
	jwtSecretKey string, jwtExpSecond int,
	kafkaBrokers []string, kafkaTopic string,
) error {
	// Initialize logger
	if err := logger.Initialize(logLevel); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	defer logger.Log.Sync()
	logger.Log.Infof("Logger initialized with level %s", logLevel)

	// Open the embedded database
	db, err := storage.Open(ctx, dbPath)
	if err != nil {
		logger.Log.Fatal("database open error:", err)
	}
	defer db.Close()

	// Budget-alert Kafka writer, optional
	var kafkaWriter services.KafkaWriter
	if len(kafkaBrokers) > 0 {
		w := &kafka.Writer{
			Addr:     kafka.TCP(kafkaBrokers...),
			Topic:    kafkaTopic,
			Balancer: &kafka.LeastBytes{},
		}
		defer w.Close()
		kafkaWriter = w
		logger.Log.Infof("Budget alerts published to %s", kafkaTopic)
	}

	// Initialize JWT service
	jwt := jwt.New(jwtSecretKey, time.Duration(jwtExpSecond)*time.Second)

	// Initialize repositories
	userReadRepo := repositories.NewUserReadRepository(db)
	userWriteRepo := repositories.NewUserWriteRepository(db)
	txnReadRepo := repositories.NewTransactionReadRepository(db)
	txnWriteRepo := repositories.NewTransactionWriteRepository(db)
	budgetReadRepo := repositories.NewBudgetReadRepository(db)
	budgetWriteRepo := repositories.NewBudgetWriteRepository(db)
	prefReadRepo := repositories.NewPreferenceReadRepository(db)
	prefWriteRepo := repositories.NewPreferenceWriteRepository(db)
	feedbackReadRepo := repositories.NewFeedbackReadRepository(db)
	feedbackWriteRepo := repositories.NewFeedbackWriteRepository(db)

	listCache, err := repositories.NewListCache()
	if err != nil {
		logger.Log.Fatal("cache init error:", err)
	}
	cachedTxnReadRepo := repositories.NewCachedTransactionReadRepository(txnReadRepo, listCache)

	// Reminder scheduler
	scheduler := reminder.New(reminder.LogNotifier{})
	defer scheduler.Stop()

	// Initialize services
	authService := services.NewAuthService(userReadRepo, userWriteRepo, jwt)
	budgetService := services.NewBudgetService(budgetReadRepo, budgetWriteRepo, cachedTxnReadRepo)
	alertService := services.NewAlertService(budgetService, kafkaWriter)
	txnService := services.NewTransactionService(cachedTxnReadRepo, txnWriteRepo, cachedTxnReadRepo, alertService)
	reportService := services.NewReportService(cachedTxnReadRepo)
	prefService := services.NewPreferenceService(prefReadRepo, prefWriteRepo, scheduler)
	feedbackService := services.NewFeedbackService(feedbackReadRepo, feedbackWriteRepo)
	backupService := services.NewBackupService(cachedTxnReadRepo, txnWriteRepo, cachedTxnReadRepo, backupDir)

	// Re-register stored reminders
	prefs, err := prefReadRepo.GetAll(ctx)
	if err != nil {
		logger.Log.Fatal("reminder restore error:", err)
	}
	scheduler.Restore(prefs)

	// Setup router
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware(logger.Log))

	// Public routes
	r.Post("/register", handlers.NewRegisterHandler(authService))
	r.Post("/login", handlers.NewLoginHandler(authService))

	// Protected routes with JWT middleware
	r.Group(func(r chi.Router) {
		r.Use(middlewares.AuthMiddleware(jwt))
		r.Post("/transactions", handlers.NewCreateTransactionHandler(txnService, jwt))
		r.Get("/transactions", handlers.NewListTransactionsHandler(txnService, jwt))
		r.Get("/transactions/{id}", handlers.NewGetTransactionHandler(txnService, jwt))
		r.Put("/transactions/{id}", handlers.NewUpdateTransactionHandler(txnService, jwt))
		r.Delete("/transactions/{id}", handlers.NewDeleteTransactionHandler(txnService, jwt))
		r.Post("/transactions/export", handlers.NewExportHandler(backupService, jwt))
		r.Post("/transactions/import", handlers.NewImportHandler(backupService, jwt))
		r.Get("/budget", handlers.NewBudgetSummaryHandler(budgetService, jwt))
		r.Put("/budget", handlers.NewSetBudgetHandler(budgetService, jwt))
		r.Get("/reports/categories", handlers.NewCategoryReportHandler(reportService, jwt))
		r.Get("/preferences", handlers.NewGetPreferencesHandler(prefService, jwt))
		r.Put("/preferences/reminder", handlers.NewSetReminderHandler(prefService, jwt))
		r.Put("/preferences/currency", handlers.NewSetCurrencyHandler(prefService, jwt))
		r.Post("/feedback", handlers.NewCreateFeedbackHandler(feedbackService, jwt))
		r.Get("/feedback", handlers.NewListFeedbackHandler(feedbackService, jwt))
	})

	// The UI loads doc.json generated by the swag CLI from the handler
	// annotations; until `swag init` has produced a docs package the
	// spec pane stays empty.
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://%s:%s/swagger/doc.json", appHost, appPort)),
	))

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", appHost, appPort),
		Handler: r,
	}

	// Graceful shutdown
	errChan := make(chan error, 1)
	ctxShutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	go func() {
		logger.Log.Infof("HTTP server listening on %s:%s", appHost, appPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	select {
	case <-ctxShutdown.Done():
		logger.Log.Info("Shutdown signal received, stopping HTTP server...")
	case serveErr := <-errChan:
		return serveErr
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorw("HTTP server shutdown error", "error", err)
	}

	logger.Log.Info("HTTP server stopped gracefully")
	return nil
}
