package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/splitr-dev/splitr-api/internal/api/handler"
	"github.com/splitr-dev/splitr-api/internal/api/middleware"
	"github.com/splitr-dev/splitr-api/internal/core/domain"
	"github.com/splitr-dev/splitr-api/internal/core/ports"
)

// Deps carries everything the router needs wired in.
type Deps struct {
	Auth        ports.AuthService
	Expenses    ports.ExpenseService
	Settlements ports.SettlementService
	Balances    ports.BalanceService
	Groups      ports.GroupService
	Contacts    ports.ContactService

	MongoClient *mongo.Client
	Redis       *redis.Client
	JWTSecret   string
	Logger      zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddleware("splitr"))

	authMiddleware := middleware.Auth(deps.JWTSecret)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	expenseHandler := handler.NewExpenseHandler(deps.Expenses)
	settlementHandler := handler.NewSettlementHandler(deps.Settlements)
	balanceHandler := handler.NewBalanceHandler(deps.Balances)
	groupHandler := handler.NewGroupHandler(deps.Groups)
	contactHandler := handler.NewContactHandler(deps.Contacts)
	reminderHandler := handler.NewReminderHandler(deps.Balances)
	healthHandler := handler.NewHealthHandler(deps.MongoClient, deps.Redis)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Authenticated API ---
	v1 := e.Group("/v1", authMiddleware)

	v1.PUT("/users/me", authHandler.UpdateProfile)

	v1.POST("/expenses", expenseHandler.Create)
	v1.DELETE("/expenses/:id", expenseHandler.Delete)
	v1.GET("/expenses/between/:user_id", expenseHandler.Between)

	v1.POST("/settlements", settlementHandler.Create)

	v1.GET("/balances", balanceHandler.Get)
	v1.GET("/balances/spending", balanceHandler.Spending)

	v1.POST("/groups", groupHandler.Create)
	v1.GET("/groups", groupHandler.List)
	v1.GET("/groups/:id/expenses", groupHandler.Expenses)

	v1.GET("/contacts", contactHandler.List)
	v1.GET("/contacts/search", contactHandler.Search)

	// The full-ledger debt scan exposes other users' positions; operators only.
	v1.GET("/reminders/debts", reminderHandler.Debts, middleware.RBAC(domain.RoleAdmin))

	// --- Probes and metrics (no auth required) ---
	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthHandler.Readiness)     // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
