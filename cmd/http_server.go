package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/adrianhartanto/timebill/internal"
	"github.com/adrianhartanto/timebill/internal/auth"
	authpg "github.com/adrianhartanto/timebill/internal/auth/postgres"
	"github.com/adrianhartanto/timebill/internal/client"
	clientpg "github.com/adrianhartanto/timebill/internal/client/postgres"
	"github.com/adrianhartanto/timebill/internal/core/events"
	"github.com/adrianhartanto/timebill/internal/engagement"
	engagementpg "github.com/adrianhartanto/timebill/internal/engagement/postgres"
	"github.com/adrianhartanto/timebill/internal/invoice"
	invoicepg "github.com/adrianhartanto/timebill/internal/invoice/postgres"
	"github.com/adrianhartanto/timebill/internal/timelog"
	timelogpg "github.com/adrianhartanto/timebill/internal/timelog/postgres"
	"github.com/adrianhartanto/timebill/internal/transport/rest"
	"github.com/adrianhartanto/timebill/pkg/logger"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config *internal.Config
	DB     *sqlx.DB
	Router *chi.Mux
	Logger *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("received signal, shutting down", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	cfg, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(os.Getenv("APP_ENV"))
	log := logger.LoggerWrapper()

	db, err := initDB(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// GORM rides on the already-pooled pgx connection.
	gormDB, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: db.DB}), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize gorm: %w", err)
	}

	eventBus := events.NewEventBus(log)
	eventBus.Subscribe(events.EventTypeInvoiceCreated, func(ctx context.Context, ev events.Event) error {
		log.Info("invoice created event", "event_id", ev.EventID(), "payload", ev.Payload())
		return nil
	})
	eventBus.Subscribe(events.EventTypeInvoiceStatusChanged, func(ctx context.Context, ev events.Event) error {
		log.Info("invoice status changed event", "event_id", ev.EventID(), "payload", ev.Payload())
		return nil
	})

	userRepo := authpg.NewUserRepository(gormDB)
	clientRepo := clientpg.NewClientRepository(gormDB)
	engagementRepo := engagementpg.NewEngagementRepository(gormDB)
	timeLogRepo := timelogpg.NewTimeLogRepository(gormDB)
	invoiceRepo := invoicepg.NewInvoiceRepository(gormDB, cfg.Billing.InvoiceNumberPrefix)

	tokenGen := auth.NewJWTTokenGenerator(
		cfg.Security.AccessTokenSecret,
		cfg.Security.RefreshTokenSecret,
		cfg.Security.AccessTokenDuration,
		cfg.Security.RefreshTokenDuration,
	)

	authService := auth.NewService(userRepo, tokenGen, log)
	clientService := client.NewService(clientRepo, log)
	engagementService := engagement.NewService(engagementRepo, cfg.Billing.DefaultNetTermsDays, log)
	timeLogService := timelog.NewService(timeLogRepo, engagementRepo, log)
	invoiceService := invoice.NewService(
		invoiceRepo,
		engagementRepo,
		clientRepo,
		timeLogRepo,
		cfg.Billing.NumberRetryAttempts,
		log,
	).WithEvents(eventBus)

	router := chi.NewRouter()
	rest.RegisterAllRoutes(
		router,
		db.DB,
		cfg.Server.AllowedOrigins,
		auth.NewHandler(authService),
		client.NewHandler(clientService),
		engagement.NewHandler(engagementService),
		timelog.NewHandler(timeLogService),
		invoice.NewHandler(invoiceService),
		log,
	)

	return &Dependencies{
		Config: cfg,
		DB:     db,
		Router: router,
		Logger: log,
	}, nil
}

func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}
