package http

import (
	"context"
	stdhttp "net/http"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"bouncer-service/internal/auth"
	"bouncer-service/internal/config"
	"bouncer-service/internal/http/handler"
	"bouncer-service/internal/http/middleware"
	"bouncer-service/internal/repository/postgres"
)

const (
	jsonKeyStatus    = "status"
	jsonKeyService   = "service"
	statusOK         = "ok"
	serviceName      = "bouncer-service"
	requestBodyLimit = "1M"
)

type ServerDependencies struct {
	Config         *config.Config
	Logger         zerolog.Logger
	UserRepo       *postgres.UserRepository
	RoleRepo       *postgres.RoleRepository
	Permissions    handler.PermissionSource
	Tokens         *auth.TokenService
	AuthMiddleware *auth.Middleware
	RBACMiddleware *auth.RBACMiddleware
	AvatarSigner   handler.AvatarURLSigner
	AuditLog       handler.AuditRecorder
	AuditReader    handler.AuditReader
}

type Server struct {
	echo *echo.Echo
	deps *ServerDependencies
}

func NewServer(deps *ServerDependencies) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.HTTPErrorHandler = CustomHTTPErrorHandler

	e.Server.ReadTimeout = deps.Config.Server.ReadTimeout
	e.Server.WriteTimeout = deps.Config.Server.WriteTimeout

	// Request ID middleware (first, so all logs have request ID)
	e.Use(middleware.RequestID())
	e.Use(middleware.SecurityHeaders())
	e.Use(middleware.RequestLogger(deps.Logger))
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.BodyLimit(requestBodyLimit))

	// The two-gate pipeline: every request is authenticated, then checked
	// against the route permission table. Exempt paths skip both gates.
	// The global limiter sits between the gates so it can key by the
	// authenticated user; exempt traffic still falls back to the client IP.
	e.Use(deps.AuthMiddleware.Authenticate())
	globalRateLimiter := middleware.NewGlobalRateLimiter()
	e.Use(globalRateLimiter.Middleware())
	e.Use(deps.RBACMiddleware.Authorize())

	strictRateLimiter := middleware.NewStrictRateLimiter()

	authHandler := handler.NewAuthHandler(deps.UserRepo, deps.RoleRepo, deps.Permissions, deps.Tokens, deps.AuditLog)
	userHandler := handler.NewUserHandler(deps.UserRepo, deps.RoleRepo, deps.AvatarSigner)
	adminHandler := handler.NewAdminHandler(deps.UserRepo, deps.RoleRepo, deps.AuditReader)

	e.GET("/", root)
	e.GET("/health", healthCheck)

	// Credential endpoints carry a stricter rate limit
	authGroup := e.Group("/api/auth", strictRateLimiter.Middleware())
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	authGroup.POST("/refresh", authHandler.Refresh)
	authGroup.POST("/logout", authHandler.Logout)

	users := e.Group("/api/users")
	users.GET("/profile", userHandler.GetProfile)
	users.PUT("/profile", userHandler.UpdateProfile)
	users.POST("/profile/avatar-url", userHandler.AvatarUploadURL)

	admin := e.Group("/api/admin")
	admin.GET("/users", adminHandler.ListUsers)
	admin.GET("/audit-events", adminHandler.ListAuditEvents)

	return &Server{
		echo: e,
		deps: deps,
	}
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func root(c echo.Context) error {
	return c.JSON(stdhttp.StatusOK, map[string]string{
		jsonKeyService: serviceName,
		jsonKeyStatus:  statusOK,
	})
}

func healthCheck(c echo.Context) error {
	return c.JSON(stdhttp.StatusOK, map[string]string{
		jsonKeyStatus: statusOK,
	})
}
