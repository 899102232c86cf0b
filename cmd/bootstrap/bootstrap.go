package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"doctor-booking/config"
	deliveryHttp "doctor-booking/internal/delivery/http"
	"doctor-booking/internal/delivery/http/handler"
	"doctor-booking/internal/delivery/http/middleware"
	domainRepo "doctor-booking/internal/domain/repository"
	"doctor-booking/internal/infrastructure/database"
	"doctor-booking/internal/repository"
	"doctor-booking/internal/repository/mongodb"
	"doctor-booking/internal/service"
	"doctor-booking/internal/usecase"
	"doctor-booking/pkg/metrics"
	"doctor-booking/pkg/validator"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	Log         *logrus.Logger
	DB          *gorm.DB
	MongoClient *mongo.Client
	Server      *http.Server
}

// stores is the set of record stores backing the usecases
type stores struct {
	doctors      domainRepo.DoctorRepository
	appointments domainRepo.AppointmentRepository
	auditLogs    domainRepo.AuditLogRepository
}

// New creates a new App instance with all dependencies initialized
func New(configPath string) (*App, error) {
	app := &App{}

	// Load configuration
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg

	// Setup logger
	log, err := setupLogger(cfg.Log)
	if err != nil {
		return nil, err
	}
	app.Log = log
	log.Info("Configuration loaded successfully")

	// Initialize the record store
	st, err := app.connectStores(cfg)
	if err != nil {
		return nil, err
	}
	log.Infof("Record store %q connected successfully", cfg.DB.Driver)

	// Initialize all layers
	app.Server = initializeServer(cfg, log, st)

	return app, nil
}

// setupLogger configures a JSON logrus logger on stdout
func setupLogger(cfg config.LogConfig) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	log := logrus.StandardLogger()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)
	log.SetLevel(level)
	return log, nil
}

func (app *App) connectStores(cfg *config.Config) (*stores, error) {
	switch cfg.DB.Driver {
	case config.DriverMongo:
		client, db, err := database.NewMongoConnection(cfg.Mongo)
		if err != nil {
			return nil, err
		}
		app.MongoClient = client

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := mongodb.EnsureIndexes(ctx, db); err != nil {
			return nil, fmt.Errorf("failed to create MongoDB indexes: %w", err)
		}

		return &stores{
			doctors:      mongodb.NewDoctorRepository(db),
			appointments: mongodb.NewAppointmentRepository(db),
			auditLogs:    mongodb.NewAuditLogRepository(db),
		}, nil

	default:
		db, err := database.NewPostgresConnection(cfg.DB, cfg.App.IsDevelopment())
		if err != nil {
			return nil, err
		}
		app.DB = db

		return &stores{
			doctors:      repository.NewDoctorRepository(db),
			appointments: repository.NewAppointmentRepository(db),
			auditLogs:    repository.NewAuditLogRepository(db),
		}, nil
	}
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, log *logrus.Logger, st *stores) *http.Server {
	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize services
	auditService := service.NewAuditService(log, st.auditLogs)

	// Initialize usecases
	doctorUsecase := usecase.NewDoctorUsecase(log, st.doctors, auditService)
	doctorQueryUsecase := usecase.NewDoctorQueryUsecase(log, st.doctors)
	appointmentUsecase := usecase.NewAppointmentUsecase(log, st.appointments, st.doctors, auditService)
	auditLogUsecase := usecase.NewAuditLogUsecase(log, st.auditLogs)

	// Initialize handlers
	doctorHandler := handler.NewDoctorHandler(doctorUsecase, doctorQueryUsecase, customValidator)
	appointmentHandler := handler.NewAppointmentHandler(appointmentUsecase, customValidator)
	auditLogHandler := handler.NewAuditLogHandler(auditLogUsecase, customValidator)

	// Initialize middleware
	corsMiddleware := middleware.NewCORSMiddleware(cfg.App.CORSOrigin)

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New("doctor_booking")
	}

	// Initialize router
	router := deliveryHttp.NewRouter(log, doctorHandler, appointmentHandler, auditLogHandler, corsMiddleware, m)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:              serverAddr,
		Handler:           httpRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		app.Log.Infof("Server starting on port %s", app.Config.App.Port)
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
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		app.Log.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close(ctx)

	app.Log.Info("Server shutdown complete")
}

// Close closes the record store connections
func (app *App) Close(ctx context.Context) {
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	if app.MongoClient != nil {
		if err := app.MongoClient.Disconnect(ctx); err != nil {
			app.Log.Warnf("Failed to disconnect MongoDB: %+v", err)
		}
	}
}
