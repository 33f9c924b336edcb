package routes

import (
	"net/http"
	"time"

	"worknook/handlers"
	"worknook/middleware"
	"worknook/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers registration and login endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/register/client", hb.RegisterClientHandler)
		api.POST("/register/worker", hb.RegisterWorkerHandler)
		api.POST("/login", hb.LoginHandler)
	}
}

// RegisterUserRoutes registers account and worker directory endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users")
	{
		// Public directory endpoints.
		api.GET("/workers", hb.ListWorkersHandler)
		api.GET("/workers/:id", hb.GetWorkerHandler)

		// Protected routes (require authentication).
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(hb.Identity))
		protected.GET("/me", hb.GetMeHandler)
		protected.PUT("/me", hb.UpdateMeHandler)
	}
}

// RegisterServiceRoutes registers the service listing catalogue endpoints.
func RegisterServiceRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/services")
	{
		// Browsing is public.
		api.GET("", hb.ListServicesHandler)
		api.GET("/:id", hb.GetServiceHandler)

		// Mutations require an authenticated worker.
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(hb.Identity), middleware.RequireWorker())
		protected.POST("", hb.CreateServiceHandler)
		protected.PUT("/:id", hb.UpdateServiceHandler)
		protected.DELETE("/:id", hb.DeleteServiceHandler)
	}
}

// RegisterBookingRoutes registers the booking lifecycle endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		api.Use(middleware.AuthMiddleware(hb.Identity))
		api.POST("", middleware.RequireClient(), hb.CreateBookingHandler)
		api.GET("", middleware.RequireClient(), hb.ListMyBookingsHandler)
		api.GET("/assigned", middleware.RequireWorker(), hb.ListAssignedBookingsHandler)
		api.PUT("/:id/status", middleware.RequireWorker(), hb.UpdateBookingStatusHandler)
		api.POST("/:id/rate", middleware.RequireClient(), hb.RateBookingHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, utils.GetHealthStatus())
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware())
	r.Use(utils.ErrorHandler())

	RegisterAuthRoutes(r, hb)
	RegisterUserRoutes(r, hb)
	RegisterServiceRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterHealthRoute(r)
}
