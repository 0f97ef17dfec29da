package api

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/khata/ledger-api/internal/api/handler"
	"github.com/khata/ledger-api/internal/api/middleware"
	"github.com/khata/ledger-api/internal/core/domain"
	"github.com/khata/ledger-api/internal/core/service"
	"github.com/khata/ledger-api/internal/core/token"
	mongorepo "github.com/khata/ledger-api/internal/infrastructure/db/mongo"
	redisstore "github.com/khata/ledger-api/internal/infrastructure/db/redis"
	"github.com/khata/ledger-api/internal/infrastructure/mail"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, codec *token.Codec, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())

	// --- Dependencies ---
	accountRepo := mongorepo.NewAccountRepository(db)
	partyRepo := mongorepo.NewPartyRepository(db)
	productRepo := mongorepo.NewProductRepository(db)
	categoryRepo := mongorepo.NewCategoryRepository(db)

	verificationStore := redisstore.NewVerificationStore(rdb)
	mailer := mail.NewLogSender(log)

	verificationService := service.NewVerificationService(accountRepo, verificationStore, mailer, log)
	authService := service.NewAuthService(accountRepo, codec, verificationService, mailer, log)
	accountService := service.NewAccountService(accountRepo, log)
	partyService := service.NewPartyService(partyRepo, log)
	productService := service.NewProductService(productRepo, categoryRepo, log)
	categoryService := service.NewCategoryService(categoryRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	verificationHandler := handler.NewVerificationHandler(verificationService, authService)
	accountHandler := handler.NewAccountHandler(accountService)
	partyHandler := handler.NewPartyHandler(partyService)
	productHandler := handler.NewProductHandler(productService)
	categoryHandler := handler.NewCategoryHandler(categoryService)

	// The bearer gate runs before every handler; requests without a token
	// pass through unauthenticated and are stopped at RequireAuth instead.
	e.Use(middleware.Authenticate(codec, accountRepo))

	// --- Auth and verification (public) ---
	auth := e.Group("/api/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/forgot-password", authHandler.ForgotPassword)
	auth.POST("/reset-password", authHandler.ResetPassword)

	email := e.Group("/api/email")
	email.POST("/verify", verificationHandler.Verify)
	email.POST("/resend", verificationHandler.Resend)

	// --- Protected resources ---
	protected := e.Group("/api", middleware.RequireAuth())

	protected.GET("/me", handler.Me)

	users := protected.Group("/users")
	users.POST("", accountHandler.Create, middleware.RequireRole(domain.RoleAdmin))
	users.GET("", accountHandler.List, middleware.RequireRole(domain.RoleAdmin))
	users.GET("/search", accountHandler.Search, middleware.RequireRole(domain.RoleAdmin))
	users.GET("/:id", accountHandler.Get)
	users.PUT("/:id", accountHandler.Update)
	users.DELETE("/:id", accountHandler.Delete, middleware.RequireRole(domain.RoleAdmin))

	party := protected.Group("/party")
	party.POST("", partyHandler.Create)
	party.GET("", partyHandler.List)
	party.GET("/search", partyHandler.Search)
	party.GET("/:id", partyHandler.Get)
	party.PUT("/:id", partyHandler.Update)
	party.DELETE("/:id", partyHandler.Delete)

	product := protected.Group("/product")
	product.POST("", productHandler.Create)
	product.GET("", productHandler.List)

	category := product.Group("/category")
	category.POST("", categoryHandler.Create)
	category.GET("", categoryHandler.List)
	category.GET("/:id", categoryHandler.Get)
	category.PUT("/:id", categoryHandler.Update)
	category.DELETE("/:id", categoryHandler.Delete)

	product.GET("/:id", productHandler.Get)
	product.PUT("/:id", productHandler.Update)
	product.DELETE("/:id", productHandler.Delete)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	return e
}
