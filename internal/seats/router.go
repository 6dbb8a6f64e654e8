package seats

import "github.com/gin-gonic/gin"

// SetupSeatRoutes configures seat inventory and selection routes
func SetupSeatRoutes(rg *gin.RouterGroup, controller *Controller) {
	rg.GET("/sessions/:id/seats", controller.GetSessionSeats)

	selections := rg.Group("/selections")
	{
		selections.POST("", controller.OpenAttempt)
		selections.GET("/:id", controller.GetAttempt)
		selections.POST("/:id/toggle", controller.Toggle)
		selections.DELETE("/:id", controller.ClearAttempt)
	}
}
