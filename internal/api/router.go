package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/storerating/store-rating/internal/api/handler"
	"github.com/storerating/store-rating/internal/api/middleware"
	"github.com/storerating/store-rating/internal/core/domain"
	"github.com/storerating/store-rating/internal/core/ports"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Auth      ports.AuthService
	Stores    ports.StoreService
	Admin     ports.AdminService
	Revoker   ports.TokenRevoker
	Checks    map[string]handler.Check
	JWTSecret string
	Origins   []string
	Log       zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORSWithConfig(corsConfig(d.Origins)))
	e.Use(echoprometheus.NewMiddleware("storerating"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(d.Auth)
	storeHandler := handler.NewStoreHandler(d.Stores)
	adminHandler := handler.NewAdminHandler(d.Admin)
	passthrough := handler.NewPassthroughHandler()
	requireAuth := middleware.Auth(d.JWTSecret, d.Revoker)

	// --- Legacy endpoints ---
	e.GET("/", passthrough.Hello)
	e.POST("/api", passthrough.Echo)

	// --- Auth routes ---
	auth := e.Group("/auth")
	auth.POST("/signup", authHandler.SignUp)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout, requireAuth)
	auth.PUT("/password", authHandler.ChangePassword, requireAuth)

	// --- Store routes ---
	stores := e.Group("/stores", requireAuth)
	stores.GET("", storeHandler.List)
	stores.PUT("/:id/rating", storeHandler.Rate, middleware.RBAC(domain.RoleEndUser))

	// --- Admin routes ---
	admin := e.Group("/admin", requireAuth, middleware.RBAC(domain.RoleAdministrator))
	admin.GET("/dashboard", adminHandler.Dashboard)
	admin.GET("/users", adminHandler.ListUsers)
	admin.POST("/users", adminHandler.AddUser)
	admin.GET("/stores", adminHandler.ListStores)
	admin.POST("/stores", adminHandler.AddStore)
	admin.GET("/ratings", adminHandler.ListRatings)

	// --- Health probes, metrics and docs (no auth required) ---
	e.GET("/health", handler.NewHealthHandler().Liveness)
	e.GET("/health/ready", handler.NewReadinessHandler(d.Checks).Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

func corsConfig(origins []string) echomiddleware.CORSConfig {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return echomiddleware.CORSConfig{
		AllowOrigins: origins,
		AllowMethods: []string{
			http.MethodGet, http.MethodHead, http.MethodPut,
			http.MethodPatch, http.MethodPost, http.MethodDelete,
		},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
	}
}
