package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"health-consultancy-api/config"
	deliveryHttp "health-consultancy-api/internal/delivery/http"
	"health-consultancy-api/internal/delivery/http/handler"
	"health-consultancy-api/internal/delivery/http/middleware"
	"health-consultancy-api/internal/infrastructure/database"
	"health-consultancy-api/internal/infrastructure/seed"
	"health-consultancy-api/internal/repository"
	"health-consultancy-api/internal/service"
	"health-consultancy-api/internal/usecase"
	"health-consultancy-api/pkg/validator"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	Log         *logrus.Logger
	DB          *gorm.DB
	DoctorLocks *service.DoctorLockService
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg

	// Setup logger
	app.Log = setupLogger(cfg.Log)
	app.Log.Info("Configuration loaded successfully")

	// Open the store and load doctors and seeded appointments
	db, err := NewStore(context.Background(), cfg, app.Log)
	if err != nil {
		return nil, err
	}
	app.DB = db

	httpHandler, locks := NewHandler(cfg, app.Log, db)
	app.DoctorLocks = locks

	app.Server = &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.App.Port),
		Handler: httpHandler,
	}

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger(cfg config.LogConfig) *logrus.Logger {
	log := logrus.StandardLogger()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	return log
}

// NewStore opens the database and writes the seed into it
func NewStore(ctx context.Context, cfg *config.Config, log *logrus.Logger) (*gorm.DB, error) {
	db, err := database.NewSQLiteConnection(cfg.DB, log)
	if err != nil {
		return nil, err
	}

	data, err := seed.Load(cfg.Seed.File)
	if err != nil {
		return nil, fmt.Errorf("failed to load seed data: %w", err)
	}
	if err := data.Insert(ctx, db); err != nil {
		return nil, fmt.Errorf("failed to seed database: %w", err)
	}
	log.Infof("Seed loaded: %d doctors, %d appointments", len(data.Doctors), len(data.Appointments))

	return db, nil
}

// NewHandler wires repositories, usecases, handlers and middleware into the HTTP handler.
// The returned lock service must be stopped by the caller.
func NewHandler(cfg *config.Config, log *logrus.Logger, db *gorm.DB) (http.Handler, *service.DoctorLockService) {
	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize repositories
	doctorRepo := repository.NewDoctorRepository(db)
	appointmentRepo := repository.NewAppointmentRepository(db)

	// Initialize services
	doctorLocks := service.NewDoctorLockService(log, cfg.Booking.LockIdleTimeout)

	// Initialize usecases
	doctorUsecase := usecase.NewDoctorUsecase(log, doctorRepo, appointmentRepo)
	bookingUsecase := usecase.NewBookingUsecase(log, doctorRepo, appointmentRepo, doctorLocks)

	// Initialize handlers
	doctorHandler := handler.NewDoctorHandler(doctorUsecase)
	bookingHandler := handler.NewBookingHandler(bookingUsecase, customValidator)

	// Initialize middleware
	loggerMiddleware := middleware.NewLoggerMiddleware(log)
	corsMiddleware := middleware.NewCORSMiddleware(cfg.CORS.AllowedOrigins)

	// Initialize router
	router := deliveryHttp.NewRouter(doctorHandler, bookingHandler, loggerMiddleware, corsMiddleware)

	return router.Setup(), doctorLocks
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		app.Log.Infof("Server is running on PORT %s", app.Config.App.Port)
		app.Log.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			app.Log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	app.Log.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), app.Config.App.ShutdownTimeout)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		app.Log.Errorf("Server forced to shutdown: %v", err)
	}

	app.Close()

	app.Log.Info("Server shutdown complete")
}

// Close releases background resources
func (app *App) Close() {
	if app.DoctorLocks != nil {
		app.DoctorLocks.Stop()
	}
	if app.DB != nil {
		if sqlDB, err := app.DB.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				app.Log.Errorf("Failed to close database: %v", err)
			}
		}
	}
}
