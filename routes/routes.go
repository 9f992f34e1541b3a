package routes

import (
	"net/http"
	"time"

	"pristine/handlers"
	"pristine/middleware"
	"pristine/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Handlers bundles every handler the router needs.
type Handlers struct {
	Auth          *handlers.AuthHandler
	Catalog       *handlers.CatalogHandler
	Wizard        *handlers.WizardHandler
	Booking       *handlers.BookingHandler
	Payment       *handlers.PaymentHandler
	Admin         *handlers.AdminHandler
	Notifications *handlers.NotificationHandler
}

// RegisterAuthRoutes registers account endpoints.
func RegisterAuthRoutes(r *gin.Engine, h *Handlers) {
	api := r.Group("/api/auth")
	{
		api.POST("/register", h.Auth.Register)
		api.POST("/login", h.Auth.Login)

		// Protected routes (require authentication)
		api.Use(middleware.JWTAuthMiddleware())
		api.GET("/me", h.Auth.Me)
		api.POST("/logout", h.Auth.Logout)
		api.PUT("/profile", h.Auth.UpdateProfile)
	}
}

// RegisterCatalogRoutes registers the public service catalog.
func RegisterCatalogRoutes(r *gin.Engine, h *Handlers) {
	api := r.Group("/api/services")
	{
		api.GET("", h.Catalog.ListServices)
		api.GET("/:id", h.Catalog.GetService)
	}
}

// RegisterWizardRoutes sets up the endpoints for the booking wizard.
func RegisterWizardRoutes(r *gin.Engine, h *Handlers) {
	wizardGroup := r.Group("/api/booking/wizard")
	{
		wizardGroup.Use(middleware.JWTAuthMiddleware())
		wizardGroup.POST("", h.Wizard.Start)
		wizardGroup.GET("/:sessionID", h.Wizard.Get)
		wizardGroup.PUT("/:sessionID/service", h.Wizard.SelectService)
		wizardGroup.PUT("/:sessionID/details", h.Wizard.SubmitDetails)
		wizardGroup.POST("/:sessionID/payment", h.Wizard.SubmitPayment)
		wizardGroup.POST("/:sessionID/back", h.Wizard.Back)
		wizardGroup.DELETE("/:sessionID", h.Wizard.Cancel)
	}
}

// RegisterBookingRoutes registers the customer's own booking endpoints.
func RegisterBookingRoutes(r *gin.Engine, h *Handlers) {
	bookingGroup := r.Group("/api/bookings")
	{
		bookingGroup.Use(middleware.JWTAuthMiddleware())
		bookingGroup.GET("", h.Booking.ListMine)
		bookingGroup.GET("/:id", h.Booking.Get)
		bookingGroup.PUT("/:id", h.Booking.Update)
		bookingGroup.DELETE("/:id", h.Booking.Cancel)
		bookingGroup.POST("/:id/reviews", h.Booking.Review)
	}
}

// RegisterPaymentRoutes registers the gateway return endpoints. These are hit
// by a redirected browser, so they carry no auth token.
func RegisterPaymentRoutes(r *gin.Engine, h *Handlers) {
	paymentGroup := r.Group("/api/payments")
	{
		paymentGroup.GET("/paypal/return", h.Payment.PayPalReturn)
		paymentGroup.GET("/paypal/cancel", h.Payment.PayPalCancel)
	}
}

// RegisterNotificationRoutes registers the in-app notification endpoints.
func RegisterNotificationRoutes(r *gin.Engine, h *Handlers) {
	api := r.Group("/api/notifications")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.GET("", h.Notifications.List)
		api.PUT("/:id/read", h.Notifications.MarkRead)
	}
}

// RegisterAdminRoutes sets up endpoints for admin operations.
func RegisterAdminRoutes(r *gin.Engine, h *Handlers) {
	adminGroup := r.Group("/api/admin")
	{
		adminGroup.Use(middleware.JWTAuthAdminMiddleware())
		adminGroup.GET("/bookings", h.Admin.ListBookings)
		adminGroup.PUT("/bookings/:id/assign", h.Admin.AssignCleaner)
		adminGroup.PUT("/bookings/:id/cancel", h.Admin.CancelBooking)

		adminGroup.GET("/cleaners", h.Admin.ListCleaners)
		adminGroup.POST("/cleaners", h.Admin.CreateCleaner)
		adminGroup.PUT("/cleaners/:id", h.Admin.UpdateCleaner)
		adminGroup.DELETE("/cleaners/:id", h.Admin.DeactivateCleaner)

		adminGroup.GET("/services", h.Catalog.ListAllServices)
		adminGroup.POST("/services", h.Catalog.CreateService)
		adminGroup.PUT("/services/:id", h.Catalog.UpdateService)
		adminGroup.DELETE("/services/:id", h.Catalog.DeleteService)

		adminGroup.PUT("/payments/:id/verify-cash", h.Payment.VerifyCash)
		adminGroup.POST("/payments/:id/refund", h.Payment.Refund)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":   "ok",
			"message":  "Hi, I'm Pristine",
			"services": utils.GetHealthStatus(),
		})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, h *Handlers) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware())

	RegisterHealthRoute(r)
	RegisterAuthRoutes(r, h)
	RegisterCatalogRoutes(r, h)
	RegisterWizardRoutes(r, h)
	RegisterBookingRoutes(r, h)
	RegisterPaymentRoutes(r, h)
	RegisterNotificationRoutes(r, h)
	RegisterAdminRoutes(r, h)
}
