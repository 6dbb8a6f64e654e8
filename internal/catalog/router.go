package catalog

import "github.com/gin-gonic/gin"

// SetupCatalogRoutes configures movie and session browsing routes
func SetupCatalogRoutes(rg *gin.RouterGroup, controller *Controller) {
	movies := rg.Group("/movies")
	{
		movies.GET("", controller.GetMovies)
		movies.GET("/:id", controller.GetMovie)
		movies.GET("/:id/sessions", controller.GetMovieSessions)
	}

	sessions := rg.Group("/sessions")
	{
		sessions.GET("", controller.GetSessions)
		sessions.GET("/:id", controller.GetSession)
	}
}
