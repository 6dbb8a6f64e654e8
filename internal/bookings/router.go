package bookings

import "github.com/gin-gonic/gin"

// SetupBookingRoutes configures checkout and booking history routes
func SetupBookingRoutes(rg *gin.RouterGroup, controller *Controller) {
	rg.POST("/checkout", controller.Checkout)

	bookings := rg.Group("/bookings")
	{
		bookings.GET("", controller.GetBookings)
		bookings.GET("/:id", controller.GetBooking)
		bookings.GET("/:id/qrcode", controller.GetQRCode)
		bookings.POST("/:id/cancel", controller.CancelBooking)
	}
}
