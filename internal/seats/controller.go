package seats

import (
	"errors"
	"net/http"

	"cinebook/internal/catalog"
	"cinebook/internal/shared/config"
	"cinebook/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
	catalog catalog.Service
	cfg     *config.Config
}

func NewController(service Service, catalogService catalog.Service, cfg *config.Config) *Controller {
	return &Controller{service: service, catalog: catalogService, cfg: cfg}
}

// GetSessionSeats handles GET /api/v1/sessions/:id/seats
func (c *Controller) GetSessionSeats(ctx *gin.Context) {
	inventory, err := c.service.GetInventory(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		response.Error(ctx, http.StatusBadGateway, "Failed to load seat inventory", err.Error())
		return
	}

	// Optional attempt context marks already-selected seats in the map.
	var attempt *Attempt
	if attemptID := ctx.Query("attempt_id"); attemptID != "" {
		attempt, err = c.service.GetAttempt(ctx.Request.Context(), attemptID)
		if err != nil && !errors.Is(err, ErrSelectionNotFound) {
			response.Error(ctx, http.StatusInternalServerError, "Failed to load attempt", err.Error())
			return
		}
	}

	response.Success(ctx, http.StatusOK, "Seats retrieved successfully", NewInventoryResponse(inventory, attempt))
}

// OpenAttempt handles POST /api/v1/selections
func (c *Controller) OpenAttempt(ctx *gin.Context) {
	var req OpenAttemptRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	attempt, err := c.service.OpenAttempt(ctx.Request.Context(), req.SessionID)
	if err != nil {
		response.Error(ctx, http.StatusNotFound, "Failed to open booking attempt", err.Error())
		return
	}

	response.Success(ctx, http.StatusCreated, "Booking attempt opened", c.attemptResponse(ctx, attempt))
}

// GetAttempt handles GET /api/v1/selections/:id
func (c *Controller) GetAttempt(ctx *gin.Context) {
	attempt, err := c.service.GetAttempt(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		c.respondSelectionError(ctx, err)
		return
	}

	response.Success(ctx, http.StatusOK, "Selection retrieved successfully", c.attemptResponse(ctx, attempt))
}

// Toggle handles POST /api/v1/selections/:id/toggle
func (c *Controller) Toggle(ctx *gin.Context) {
	var req ToggleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	attempt, err := c.service.Toggle(ctx.Request.Context(), ctx.Param("id"), req.SeatID)
	if err != nil {
		c.respondSelectionError(ctx, err)
		return
	}

	response.Success(ctx, http.StatusOK, "Selection updated", c.attemptResponse(ctx, attempt))
}

// ClearAttempt handles DELETE /api/v1/selections/:id
func (c *Controller) ClearAttempt(ctx *gin.Context) {
	if err := c.service.ClearAttempt(ctx.Request.Context(), ctx.Param("id")); err != nil {
		c.respondSelectionError(ctx, err)
		return
	}

	response.Success(ctx, http.StatusOK, "Selection cleared", nil)
}

// attemptResponse prices the attempt against its session. A directory outage
// degrades to a zero-priced breakdown rather than failing the selection read.
func (c *Controller) attemptResponse(ctx *gin.Context, attempt *Attempt) AttemptResponse {
	var basePrice float64
	if session, err := c.catalog.GetSessionByID(ctx.Request.Context(), attempt.Selection.SessionID); err == nil {
		basePrice = session.Price
	}

	inventory, err := c.service.GetInventory(ctx.Request.Context(), attempt.Selection.SessionID)
	if err != nil {
		inventory = &Inventory{SessionID: attempt.Selection.SessionID}
	}

	return NewAttemptResponse(attempt, inventory, basePrice, c.cfg.Booking.PremiumMultiplier)
}

func (c *Controller) respondSelectionError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrSelectionNotFound):
		response.Error(ctx, http.StatusNotFound, "Booking attempt not found or expired", err.Error())
	case errors.Is(err, ErrSeatNotFound):
		response.Error(ctx, http.StatusNotFound, "Seat not found in session inventory", err.Error())
	case errors.Is(err, ErrSeatUnavailable):
		response.Error(ctx, http.StatusConflict, "Seat is not available", err.Error())
	case errors.Is(err, ErrSelectionLimitExceeded):
		response.Error(ctx, http.StatusConflict, "Selection limit reached", err.Error())
	default:
		response.Error(ctx, http.StatusInternalServerError, "Selection operation failed", err.Error())
	}
}
