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

	"github.com/declarafacil/fiscal-tracker/internal"
	"github.com/declarafacil/fiscal-tracker/internal/auth"
	authPostgres "github.com/declarafacil/fiscal-tracker/internal/auth/postgres"
	"github.com/declarafacil/fiscal-tracker/internal/category"
	categoryPostgres "github.com/declarafacil/fiscal-tracker/internal/category/postgres"
	"github.com/declarafacil/fiscal-tracker/internal/dashboard"
	dashboardPostgres "github.com/declarafacil/fiscal-tracker/internal/dashboard/postgres"
	"github.com/declarafacil/fiscal-tracker/internal/docvalidation"
	docvalidationPostgres "github.com/declarafacil/fiscal-tracker/internal/docvalidation/postgres"
	"github.com/declarafacil/fiscal-tracker/internal/expense"
	expensePostgres "github.com/declarafacil/fiscal-tracker/internal/expense/postgres"
	"github.com/declarafacil/fiscal-tracker/internal/fiscalrule"
	fiscalrulePostgres "github.com/declarafacil/fiscal-tracker/internal/fiscalrule/postgres"
	"github.com/declarafacil/fiscal-tracker/internal/summary"
	"github.com/declarafacil/fiscal-tracker/internal/transport/rest"
	"github.com/declarafacil/fiscal-tracker/internal/transport/swagger"
	"github.com/declarafacil/fiscal-tracker/internal/user"
	userPostgres "github.com/declarafacil/fiscal-tracker/internal/user/postgres"
	"github.com/declarafacil/fiscal-tracker/pkg/logger"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
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
	Config  *internal.Config
	DB      *sqlx.DB
	GormDB  *gorm.DB
	Router  *chi.Mux
	Monitor *rest.Monitor
	Logger  *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	monitorCtx, stopMonitor := context.WithCancel(context.Background())
	deps.Monitor.Start(monitorCtx)

	setupRoutes(deps)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("received signal, shutting down", "signal", sig)
		stopMonitor()
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("database close error", "error", err)
		}
	case err := <-serverErrChan:
		stopMonitor()
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("server stopped")
}

func setupRoutes(deps *Dependencies) {
	cfg := deps.Config
	lg := deps.Logger

	tokenGen := auth.NewJWTTokenGenerator(
		cfg.Security.AccessTokenSecret,
		cfg.Security.RefreshTokenSecret,
		cfg.Security.AccessTokenDuration,
		cfg.Security.RefreshTokenDuration,
	)

	authRepo := authPostgres.NewAuthRepository(deps.GormDB)
	authService := auth.NewService(authRepo, tokenGen)
	authHandler := auth.NewHandler(authService)

	userRepo := userPostgres.NewUserRepository(deps.GormDB)
	userService := user.NewService(userRepo, lg)
	userHandler := user.NewHandler(userService)

	categoryRepo := categoryPostgres.NewCategoryRepository(deps.GormDB)
	categoryService := category.NewService(categoryRepo, lg)
	categoryHandler := category.NewHandler(categoryService)

	ruleRepo := fiscalrulePostgres.NewFiscalRuleRepository(deps.GormDB)
	ruleService := fiscalrule.NewService(ruleRepo, lg)
	ruleHandler := fiscalrule.NewHandler(ruleService)

	expenseRepo := expensePostgres.NewExpenseRepository(deps.GormDB)
	expenseService := expense.NewService(expenseRepo, lg)
	expenseHandler := expense.NewHandler(expenseService)

	validationRepo := docvalidationPostgres.NewValidationRepository(deps.GormDB)
	validationService := docvalidation.NewService(validationRepo, lg)
	validationHandler := docvalidation.NewHandler(validationService)

	summaryService := summary.NewService(categoryRepo, ruleRepo, expenseRepo, lg)
	summaryHandler := summary.NewHandler(summaryService)

	dashboardRepo := dashboardPostgres.NewDashboardRepository(deps.GormDB)
	dashboardService := dashboard.NewService(dashboardRepo, lg)
	dashboardHandler := dashboard.NewHandler(dashboardService)

	rest.RegisterAllRoutes(deps.Router, deps.Monitor, rest.Handlers{
		Auth:          authHandler,
		User:          userHandler,
		Category:      categoryHandler,
		FiscalRule:    ruleHandler,
		Expense:       expenseHandler,
		DocValidation: validationHandler,
		Summary:       summaryHandler,
		Dashboard:     dashboardHandler,
	}, lg)
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(config.Env)
	lg := logger.LoggerWrapper()

	// A broken API document should fail startup, not render garbage later.
	if _, err := swagger.LoadAndValidate(context.Background(), "./api/openapi.yml"); err != nil {
		return nil, fmt.Errorf("openapi document: %w", err)
	}

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := gorm.Open(gormPostgres.New(gormPostgres.Config{
		Conn: db.DB,
	}), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize gorm: %w", err)
	}

	return &Dependencies{
		Config:  config,
		Logger:  lg,
		DB:      db,
		GormDB:  gormDB,
		Router:  chi.NewRouter(),
		Monitor: rest.NewMonitor(db.DB, config.Database.HealthCheckInterval, lg),
	}, nil
}

// initDB opens the pgx-backed pool shared by sqlx and gorm.
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}
