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

	"github.com/frahmantamala/expense-tracking/internal"
	"github.com/frahmantamala/expense-tracking/internal/audit"
	"github.com/frahmantamala/expense-tracking/internal/auth"
	"github.com/frahmantamala/expense-tracking/internal/bank"
	"github.com/frahmantamala/expense-tracking/internal/category"
	categorypg "github.com/frahmantamala/expense-tracking/internal/category/postgres"
	"github.com/frahmantamala/expense-tracking/internal/contact"
	contactpg "github.com/frahmantamala/expense-tracking/internal/contact/postgres"
	"github.com/frahmantamala/expense-tracking/internal/department"
	departmentpg "github.com/frahmantamala/expense-tracking/internal/department/postgres"
	"github.com/frahmantamala/expense-tracking/internal/employee"
	employeepg "github.com/frahmantamala/expense-tracking/internal/employee/postgres"
	"github.com/frahmantamala/expense-tracking/internal/expense"
	expensepg "github.com/frahmantamala/expense-tracking/internal/expense/postgres"
	"github.com/frahmantamala/expense-tracking/internal/expensefile"
	expensefilepg "github.com/frahmantamala/expense-tracking/internal/expensefile/postgres"
	"github.com/frahmantamala/expense-tracking/internal/payment"
	paymentpg "github.com/frahmantamala/expense-tracking/internal/payment/postgres"
	"github.com/frahmantamala/expense-tracking/internal/paymentmethod"
	paymentmethodpg "github.com/frahmantamala/expense-tracking/internal/paymentmethod/postgres"
	"github.com/frahmantamala/expense-tracking/internal/report"
	"github.com/frahmantamala/expense-tracking/internal/transport"
	"github.com/frahmantamala/expense-tracking/internal/transport/rest"
	userpg "github.com/frahmantamala/expense-tracking/internal/user/postgres"
	"github.com/frahmantamala/expense-tracking/pkg/logger"
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
	deps.Logger.Info("Starting HTTP server", "address", addr)

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
		deps.Logger.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("Server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("Database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("Server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	cfg, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(cfg.Observability.Logging.Level, cfg.Observability.Logging.Format)
	lg := logger.LoggerWrapper()

	db, err := initDB(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: db.DB}), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize ORM: %w", err)
	}

	router := chi.NewRouter()
	if err := wire(cfg, db, gormDB, router, lg); err != nil {
		return nil, err
	}

	return &Dependencies{
		Config: cfg,
		DB:     db,
		Router: router,
		Logger: lg,
	}, nil
}

// wire builds the full dependency graph: repositories over gorm, the audit
// store as the single commit path, services, and HTTP handlers.
func wire(cfg *internal.Config, db *sqlx.DB, gormDB *gorm.DB, router *chi.Mux, lg *slog.Logger) error {
	committer := audit.NewStore(gormDB)

	categoryRepo := categorypg.NewCategoryRepository(gormDB)
	methodRepo := paymentmethodpg.NewPaymentMethodRepository(gormDB)
	departmentRepo := departmentpg.NewDepartmentRepository(gormDB)
	contactRepo := contactpg.NewContactRepository(gormDB)
	expenseRepo := expensepg.NewExpenseRepository(gormDB)
	fileRepo := expensefilepg.NewExpenseFileRepository(gormDB)
	paymentRepo := paymentpg.NewPaymentRepository(gormDB)
	userRepo := userpg.NewUserRepository(gormDB)
	employeeRepo := employeepg.NewEmployeeRepository(gormDB)

	var bankClient bank.Client
	if cfg.Payment.BankAPIURL == "" {
		bankClient = bank.NewMockClient(lg)
	} else {
		bankClient = bank.NewHTTPClient(cfg.Payment.BankAPIURL, cfg.Payment.APIKey, cfg.Payment.Timeout, lg)
	}
	processor := payment.NewProcessor(bankClient, lg)

	categorySvc := category.NewService(categoryRepo, committer, lg)
	methodSvc := paymentmethod.NewService(methodRepo, committer, lg)
	departmentSvc := department.NewService(departmentRepo, committer, lg)

	owners := employee.NewOwnerChecker(employeeRepo, departmentRepo)
	contactSvc := contact.NewService(contactRepo, owners, committer, lg)

	employeeSvc := employee.NewService(employeeRepo, userRepo, departmentRepo, contactSvc, departmentSvc, committer, lg)

	fileSvc := expensefile.NewService(fileRepo, expense.NewStatusGateway(expenseRepo), committer, lg)

	expenseSvc := expense.NewService(
		expenseRepo,
		expense.NewReferences(categoryRepo, methodRepo),
		processor,
		fileSvc,
		employeeSvc,
		committer,
		cfg.Payment.RequireBankSuccess,
		lg,
	)

	reportSvc := report.NewService(db, lg)

	privateKey, err := cfg.Security.GetPrivateKey()
	if err != nil {
		return fmt.Errorf("failed to load JWT private key: %w", err)
	}
	publicKey, err := cfg.Security.GetPublicKey()
	if err != nil {
		return fmt.Errorf("failed to load JWT public key: %w", err)
	}
	tokens := auth.NewTokenGenerator(privateKey, publicKey, cfg.Security.AccessTokenDuration)
	authSvc := auth.NewService(userRepo, employeeRepo, tokens, lg)

	base := transport.NewBaseHandler(lg)
	handlers := rest.Handlers{
		Auth:          auth.NewHandler(base, authSvc),
		Expense:       expense.NewHandler(base, expenseSvc),
		ExpenseFile:   expensefile.NewHandler(base, fileSvc),
		Payment:       payment.NewHandler(base, paymentRepo),
		Category:      category.NewHandler(base, categorySvc),
		PaymentMethod: paymentmethod.NewHandler(base, methodSvc),
		Department:    department.NewHandler(base, departmentSvc),
		Contact:       contact.NewHandler(base, contactSvc),
		Employee:      employee.NewHandler(base, employeeSvc),
		Report:        report.NewHandler(base, reportSvc),
	}

	rest.RegisterAllRoutes(router, db.DB, handlers, lg)
	return nil
}

// initDB initializes the database connection
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
