// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"fieldops/internal/delivery/http/middleware"
	"fieldops/internal/delivery/http/router/handler"
	"fieldops/internal/domain/entity"
)

type RouterParams struct {
	fx.In

	AuthHandler       *handler.AuthHandler
	CredentialHandler *handler.CredentialHandler
	ActivityHandler   *handler.ActivityHandler
	AnalyticsHandler  *handler.AnalyticsHandler
	AuthMiddleware    *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler       *handler.AuthHandler
	credentialHandler *handler.CredentialHandler
	activityHandler   *handler.ActivityHandler
	analyticsHandler  *handler.AnalyticsHandler
	authMiddleware    *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:       params.AuthHandler,
		credentialHandler: params.CredentialHandler,
		activityHandler:   params.ActivityHandler,
		analyticsHandler:  params.AnalyticsHandler,
		authMiddleware:    params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/signup", r.authHandler.Signup)
		authGroup.POST("/login", r.authHandler.Login)

		// Registered only when the identity provider mints its own
		// credentials; Firebase clients obtain tokens out of band.
		if r.credentialHandler.Enabled() {
			authGroup.POST("/register", r.credentialHandler.Register)
			authGroup.POST("/credentials", r.credentialHandler.IssueCredential)
		}
	}

	// Session routes for any signed-in user
	meGroup := e.Group("/me")
	meGroup.Use(r.authMiddleware.Authenticate)
	{
		meGroup.GET("", r.authHandler.Me)
		meGroup.GET("/profile", r.authHandler.Profile)
		meGroup.POST("/logout", r.authHandler.Logout)
		meGroup.GET("/stats", r.analyticsHandler.MyStats)
	}

	// Catalog is readable by any signed-in user
	catalogGroup := e.Group("/catalog")
	catalogGroup.Use(r.authMiddleware.Authenticate)
	{
		catalogGroup.GET("/products", r.analyticsHandler.Catalog)
	}

	// Field officer routes
	fieldGroup := e.Group("/field")
	fieldGroup.Use(r.authMiddleware.Authenticate)
	fieldGroup.Use(r.authMiddleware.RequireRoles(entity.RoleFieldOfficer))
	{
		fieldGroup.POST("/meetings", r.activityHandler.LogMeeting)
		fieldGroup.GET("/meetings", r.activityHandler.ListMeetings)
		fieldGroup.POST("/samples", r.activityHandler.RecordSample)
		fieldGroup.GET("/samples", r.activityHandler.ListSamples)
		fieldGroup.POST("/sales", r.activityHandler.RecordSale)
		fieldGroup.GET("/sales", r.activityHandler.ListSales)

		fieldGroup.POST("/days", r.activityHandler.StartDay)
		fieldGroup.GET("/days", r.activityHandler.ListDailyLogs)
		fieldGroup.GET("/days/current", r.activityHandler.CurrentDay)
		fieldGroup.POST("/days/:id/end", r.activityHandler.EndDay)
		fieldGroup.POST("/days/locations", r.activityHandler.AppendLocation)

		fieldGroup.GET("/stats/monthly", r.analyticsHandler.MyMonthlySeries)
		fieldGroup.GET("/stats/categories", r.analyticsHandler.MyCategoryDistribution)
		fieldGroup.GET("/stats/products", r.analyticsHandler.MyProductSales)
	}

	// Distributor routes
	distributorGroup := e.Group("/distributor")
	distributorGroup.Use(r.authMiddleware.Authenticate)
	distributorGroup.Use(r.authMiddleware.RequireRoles(entity.RoleDistributor))
	{
		distributorGroup.POST("/sales", r.activityHandler.RecordSale)
		distributorGroup.GET("/sales", r.activityHandler.ListSales)
		distributorGroup.POST("/samples", r.activityHandler.RecordSample)
		distributorGroup.GET("/samples", r.activityHandler.ListSamples)
		distributorGroup.GET("/stats/monthly", r.analyticsHandler.MyMonthlySeries)
		distributorGroup.GET("/stats/products", r.analyticsHandler.MyProductSales)
		distributorGroup.GET("/stats/samples", r.analyticsHandler.MySampleInventory)
	}

	// Admin routes
	adminGroup := e.Group("/admin")
	adminGroup.Use(r.authMiddleware.Authenticate)
	adminGroup.Use(r.authMiddleware.RequireRoles(entity.RoleAdmin))
	{
		adminGroup.GET("/overview", r.analyticsHandler.Overview)
		adminGroup.GET("/states", r.analyticsHandler.StateRollups)
		adminGroup.GET("/stats/monthly", r.analyticsHandler.MonthlySeries)
		adminGroup.GET("/stats/categories", r.analyticsHandler.CategoryDistribution)
		adminGroup.GET("/stats/products", r.analyticsHandler.ProductSales)
		adminGroup.GET("/stats/samples", r.analyticsHandler.SampleInventory)
		adminGroup.GET("/users/:id/stats", r.analyticsHandler.UserStats)

		adminGroup.GET("/meetings", r.activityHandler.ListAllMeetings)
		adminGroup.GET("/samples", r.activityHandler.ListAllSamples)
		adminGroup.GET("/sales", r.activityHandler.ListAllSales)
		adminGroup.GET("/days", r.activityHandler.ListAllDailyLogs)
	}
}
