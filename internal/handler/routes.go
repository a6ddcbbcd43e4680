package handler

import (
	"github.com/dafibh/mortgagefree/mortgagefree-backend/internal/middleware"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// Handlers groups every API handler
type Handlers struct {
	Plan      *PlanHandler
	Dashboard *DashboardHandler
	Settings  *SettingsHandler
	WebSocket *WebSocketHandler
	OpenAPI   *OpenAPIHandler
}

// RegisterRoutes sets up all API routes
func RegisterRoutes(e *echo.Echo, rateLimiter *middleware.RateLimiter, h Handlers) {
	// API docs
	e.GET("/openapi.json", h.OpenAPI.ServeOpenAPI3Spec)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// API version 1
	api := e.Group("/api/v1")

	// Live updates (not rate limited)
	api.GET("/ws", h.WebSocket.HandleWS)

	// Plan calculations
	plan := api.Group("/plan")
	plan.Use(middleware.RateLimitMiddleware(rateLimiter))
	plan.POST("/payment", h.Plan.FixedPayment)
	plan.POST("/simulate", h.Plan.Simulate)
	plan.POST("/compare", h.Plan.Compare)
	plan.POST("/target-overpayment", h.Plan.TargetOverpayment)

	// Dashboard for the stored settings
	dashboard := api.Group("/dashboard")
	dashboard.Use(middleware.RateLimitMiddleware(rateLimiter))
	dashboard.GET("", h.Dashboard.GetDashboard)
	dashboard.GET("/report.pdf", h.Dashboard.GetReport)

	// Settings record
	settings := api.Group("/settings")
	settings.Use(middleware.RateLimitMiddleware(rateLimiter))
	settings.GET("", h.Settings.GetSettings)
	settings.PUT("", h.Settings.PutSettings)
}
