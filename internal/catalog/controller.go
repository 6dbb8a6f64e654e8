package catalog

import (
	"net/http"

	"cinebook/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// GetMovies handles GET /api/v1/movies
func (c *Controller) GetMovies(ctx *gin.Context) {
	movies, err := c.service.GetMovies(ctx.Request.Context())
	if err != nil {
		response.Error(ctx, http.StatusBadGateway, "Failed to fetch movies", err.Error())
		return
	}

	response.Success(ctx, http.StatusOK, "Movies retrieved successfully", movies)
}

// GetMovie handles GET /api/v1/movies/:id
func (c *Controller) GetMovie(ctx *gin.Context) {
	movie, err := c.service.GetMovieByID(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		response.Error(ctx, http.StatusNotFound, "Movie not found", err.Error())
		return
	}

	response.Success(ctx, http.StatusOK, "Movie retrieved successfully", movie)
}

// GetSessions handles GET /api/v1/sessions
func (c *Controller) GetSessions(ctx *gin.Context) {
	sessions, err := c.service.GetSessions(ctx.Request.Context())
	if err != nil {
		response.Error(ctx, http.StatusBadGateway, "Failed to fetch sessions", err.Error())
		return
	}

	response.Success(ctx, http.StatusOK, "Sessions retrieved successfully", sessions)
}

// GetSession handles GET /api/v1/sessions/:id
func (c *Controller) GetSession(ctx *gin.Context) {
	session, err := c.service.GetSessionByID(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		response.Error(ctx, http.StatusNotFound, "Session not found", err.Error())
		return
	}

	response.Success(ctx, http.StatusOK, "Session retrieved successfully", session)
}

// GetMovieSessions handles GET /api/v1/movies/:id/sessions
func (c *Controller) GetMovieSessions(ctx *gin.Context) {
	sessions, err := c.service.GetSessionsByMovieID(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		response.Error(ctx, http.StatusBadGateway, "Failed to fetch sessions", err.Error())
		return
	}

	response.Success(ctx, http.StatusOK, "Sessions retrieved successfully", sessions)
}
