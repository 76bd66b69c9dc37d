package routes

import (
	"github.com/gin-gonic/gin"

	"shearbook/handlers"
	"shearbook/middleware"
)

// RegisterRoutes wires all endpoints onto the router.
func RegisterRoutes(
	r *gin.Engine,
	bookingHandler *handlers.BookingHandler,
	shopHandler *handlers.ShopHandler,
	feedHandler *handlers.FeedHandler,
) {
	auth := r.Group("/api/auth")
	{
		auth.POST("/register", shopHandler.RegisterOwner)
		auth.POST("/login", shopHandler.Login)
	}

	// Public marketplace surface.
	shops := r.Group("/api/shops")
	{
		shops.GET("/:id", shopHandler.GetShop)
		shops.GET("/:id/employees", shopHandler.ListEmployees)
		shops.GET("/:id/slots", bookingHandler.Availability)
		shops.GET("/:id/feed", feedHandler.Subscribe)
	}

	// Owner-only shop management.
	manage := r.Group("/api/shops", middleware.OwnerAuthMiddleware())
	{
		manage.POST("", shopHandler.CreateShop)
		manage.PUT("/:id/hours", shopHandler.SetHours)
		manage.PUT("/:id/employees/:employeeId/schedule", shopHandler.SetEmployeeSchedule)
		manage.POST("/:id/registration-tokens", shopHandler.CreateToken)
		manage.GET("/:id/notifications", shopHandler.ListNotifications)
		manage.GET("/:id/stats", shopHandler.DailyStats)
	}

	registration := r.Group("/api/registration")
	{
		registration.POST("/redeem", shopHandler.RedeemToken)
	}

	bookings := r.Group("/api/bookings")
	{
		bookings.POST("", bookingHandler.Reserve)
		bookings.POST("/:id/cancel", bookingHandler.Cancel)
	}

	staff := r.Group("/api/bookings", middleware.OwnerAuthMiddleware())
	{
		staff.POST("/:id/complete", bookingHandler.Complete)
		staff.GET("/:id/invoice", bookingHandler.InvoicePDF)
	}
}
