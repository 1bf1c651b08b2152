package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/eventura/marketplace-system/docs"
	"github.com/eventura/marketplace-system/internal/api/handler"
	"github.com/eventura/marketplace-system/internal/api/middleware"
	"github.com/eventura/marketplace-system/internal/core/domain"
	"github.com/eventura/marketplace-system/internal/core/ports"
	"github.com/eventura/marketplace-system/internal/core/service"
	"github.com/eventura/marketplace-system/internal/infrastructure/config"
	mongorepo "github.com/eventura/marketplace-system/internal/infrastructure/db/mongo"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// The notification service and the notifier are constructed by the caller
// because the dispatcher's worker lifecycle belongs to main.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config,
	notificationSvc ports.NotificationService, notifier ports.Notifier, log zerolog.Logger) *echo.Echo {

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("marketplace"))

	// --- Repositories ---
	userRepo := mongorepo.NewUserRepository(db)
	requestRepo := mongorepo.NewRequestRepository(db)
	pitchRepo := mongorepo.NewPitchRepository(db)
	paymentRepo := mongorepo.NewPaymentRepository(db)
	connectionRepo := mongorepo.NewConnectionRepository(db)
	reviewRepo := mongorepo.NewReviewRepository(db)
	providerRepo := mongorepo.NewProviderRepository(db)

	// --- Services ---
	authSvc := service.NewAuthService(userRepo, notifier, cfg.JWTSecret, cfg.JWTTTL, log)
	userSvc := service.NewUserService(userRepo, requestRepo, pitchRepo, paymentRepo, notifier, log)
	requestSvc := service.NewRequestService(requestRepo, userRepo, notifier, log)
	pitchSvc := service.NewPitchService(pitchRepo, requestRepo, userRepo, notifier, log)
	paymentSvc := service.NewPaymentService(paymentRepo, requestRepo, userRepo, notifier, log)
	connectionSvc := service.NewConnectionService(connectionRepo, userRepo, notifier, log)
	reviewSvc := service.NewReviewService(reviewRepo, requestRepo, log)
	providerSvc := service.NewProviderService(providerRepo, notifier, log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authSvc)
	userHandler := handler.NewUserHandler(userSvc)
	requestHandler := handler.NewRequestHandler(requestSvc, pitchSvc, paymentSvc)
	pitchHandler := handler.NewPitchHandler(pitchSvc)
	paymentHandler := handler.NewPaymentHandler(paymentSvc)
	connectionHandler := handler.NewConnectionHandler(connectionSvc)
	reviewHandler := handler.NewReviewHandler(reviewSvc)
	providerHandler := handler.NewProviderHandler(providerSvc)
	notificationHandler := handler.NewNotificationHandler(notificationSvc)

	auth := middleware.Auth(cfg.JWTSecret)
	clientOnly := middleware.RBAC(domain.RoleClient)
	providerOnly := middleware.RBAC(domain.RoleProvider)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Auth routes ---
	e.POST("/v1/auth/register", authHandler.Register)
	e.POST("/v1/auth/login", authHandler.Login)

	v1 := e.Group("/v1", auth)

	// --- Users ---
	v1.GET("/users/me", userHandler.Me)
	v1.PATCH("/users/me", userHandler.UpdateMe)
	v1.DELETE("/users/me", userHandler.DeleteMe)
	v1.GET("/users", userHandler.List, adminOnly)
	v1.GET("/users/:id", userHandler.Get, adminOnly)
	v1.PATCH("/users/:id/status", userHandler.UpdateStatus, adminOnly)
	v1.DELETE("/users/:id", userHandler.HardDelete, adminOnly)

	// --- Service requests ---
	v1.POST("/requests", requestHandler.Create, clientOnly)
	v1.GET("/requests", requestHandler.List)
	v1.GET("/requests/mine", requestHandler.ListMine, clientOnly)
	v1.GET("/requests/:id", requestHandler.Get)
	v1.POST("/requests/:id/assign", requestHandler.Assign, clientOnly)
	v1.PATCH("/requests/:id/budget", requestHandler.UpdateBudget, clientOnly)
	v1.PATCH("/requests/:id/status", requestHandler.UpdateStatus)
	v1.DELETE("/requests/:id", requestHandler.Delete)
	v1.GET("/requests/:id/pitches", requestHandler.ListPitches)
	v1.GET("/requests/:id/payment", requestHandler.CurrentPayment)

	// --- Pitches ---
	v1.POST("/pitches", pitchHandler.Create, providerOnly)
	v1.GET("/pitches/mine", pitchHandler.ListMine, providerOnly)
	v1.GET("/pitches/:id", pitchHandler.Get)
	v1.PATCH("/pitches/:id/status", pitchHandler.UpdateStatus, clientOnly)
	v1.DELETE("/pitches/:id", pitchHandler.Withdraw, providerOnly)

	// --- Payments ---
	v1.POST("/payments", paymentHandler.Create, clientOnly)
	v1.GET("/payments", paymentHandler.List)
	v1.GET("/payments/:id", paymentHandler.Get)
	v1.PATCH("/payments/:id/status", paymentHandler.UpdateStatus, clientOnly)

	// --- Direct connections ---
	v1.POST("/connections", connectionHandler.Create, clientOnly)
	v1.GET("/connections", connectionHandler.List)
	v1.GET("/connections/:id", connectionHandler.Get)
	v1.POST("/connections/:id/accept", connectionHandler.Accept, providerOnly)
	v1.POST("/connections/:id/reject", connectionHandler.Reject, providerOnly)
	v1.DELETE("/connections/:id", connectionHandler.Delete, clientOnly)

	// --- Reviews ---
	v1.POST("/reviews", reviewHandler.Create, clientOnly)
	v1.GET("/reviews/:id", reviewHandler.Get)

	// --- Provider profiles, portfolios, documents ---
	v1.POST("/providers/profile", providerHandler.CreateProfile, providerOnly)
	v1.PATCH("/providers/profile", providerHandler.UpdateProfile, providerOnly)
	v1.GET("/providers/profile", providerHandler.GetOwnProfile, providerOnly)
	v1.GET("/providers", providerHandler.ListProfiles)
	v1.POST("/providers/portfolios", providerHandler.CreatePortfolio, providerOnly)
	v1.DELETE("/providers/portfolios/:id", providerHandler.DeletePortfolio, providerOnly)
	v1.POST("/providers/documents", providerHandler.UploadDocument, providerOnly)
	v1.GET("/providers/documents", providerHandler.ListDocuments, providerOnly)
	v1.PATCH("/providers/documents/:id/status", providerHandler.ModerateDocument, adminOnly)
	v1.GET("/providers/:id", providerHandler.GetProfile)
	v1.GET("/providers/:id/portfolios", providerHandler.ListPortfolios)
	v1.GET("/providers/:id/reviews", reviewHandler.ListForProvider)

	// --- Notifications ---
	v1.GET("/notifications", notificationHandler.List)
	v1.GET("/notifications/unread-count", notificationHandler.UnreadCount)
	v1.PATCH("/notifications/:id/read", notificationHandler.MarkRead)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)

	// --- Observability and docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
