package handler

import (
	"token-earn-bot/internal/adapter/http/middleware"
	"token-earn-bot/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	Gateway        ports.WalletGateway
	WithdrawalRepo ports.WithdrawalRepository
	Registry       ports.PendingRegistry
	HealthCheckers []ports.HealthChecker
	AdminToken     string
	Mode           string // gin mode: debug, release, test
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	if deps.Mode != "" {
		gin.SetMode(deps.Mode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	// Health check (deep: verifies PostgreSQL, Redis and the chain RPC)
	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	// Operator routes, static bearer token
	adminHandler := NewAdminHandler(deps.Gateway, deps.WithdrawalRepo, deps.Registry)
	admin := r.Group("/admin", middleware.AdminAuth(deps.AdminToken, deps.Logger))
	{
		admin.GET("/wallet", adminHandler.WalletStatus)
		admin.GET("/withdrawals/stats", adminHandler.WithdrawalStats)
	}

	return r
}
