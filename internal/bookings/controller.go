package bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"cinebook/internal/seats"
	"cinebook/internal/shared/middleware"
	"cinebook/internal/shared/utils/response"
)

const defaultQRSize = 256

type Controller struct {
	service   Service
	validator *validator.Validate
}

func NewController(service Service) *Controller {
	return &Controller{
		service:   service,
		validator: validator.New(),
	}
}

// Checkout handles POST /api/v1/checkout
func (ctrl *Controller) Checkout(c *gin.Context) {
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	if err := ctrl.validator.Struct(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Validation failed", err.Error())
		return
	}

	userID := middleware.UserID(c)
	result, err := ctrl.service.Checkout(c.Request.Context(), userID, req)
	if err != nil {
		var validationErrs ValidationErrors
		switch {
		case errors.Is(err, seats.ErrSelectionNotFound):
			response.Error(c, http.StatusNotFound, "Booking attempt not found or expired", nil)
		case errors.As(err, &validationErrs):
			response.Error(c, http.StatusUnprocessableEntity, "Booking validation failed", validationErrs)
		case errors.Is(err, ErrEmptySelection):
			response.Error(c, http.StatusUnprocessableEntity, "Booking validation failed",
				ValidationErrors{"seats": "at least one seat must be selected"})
		default:
			response.Error(c, http.StatusBadGateway, "Failed to submit booking", err.Error())
		}
		return
	}

	status := http.StatusCreated
	if result.Replayed {
		status = http.StatusOK
	}
	response.Success(c, status, "Booking confirmed successfully", result)
}

// GetBookings handles GET /api/v1/bookings
func (ctrl *Controller) GetBookings(c *gin.Context) {
	userID := middleware.UserID(c)
	bookings, err := ctrl.service.GetUserBookings(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusBadGateway, "Failed to fetch bookings", err.Error())
		return
	}

	response.Success(c, http.StatusOK, "Bookings retrieved successfully", BookingListResponse{
		Bookings: bookings,
		Count:    len(bookings),
	})
}

// GetBooking handles GET /api/v1/bookings/:id
func (ctrl *Controller) GetBooking(c *gin.Context) {
	userID := middleware.UserID(c)
	booking, err := ctrl.service.GetBooking(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotOwner) {
			response.Error(c, http.StatusForbidden, "Access denied", nil)
			return
		}
		response.Error(c, http.StatusNotFound, "Booking not found", err.Error())
		return
	}

	response.Success(c, http.StatusOK, "Booking retrieved successfully", booking)
}

// GetQRCode handles GET /api/v1/bookings/:id/qrcode
func (ctrl *Controller) GetQRCode(c *gin.Context) {
	size := defaultQRSize
	if raw := c.Query("size"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 64 || parsed > 1024 {
			response.Error(c, http.StatusBadRequest, "Invalid QR code size", nil)
			return
		}
		size = parsed
	}

	userID := middleware.UserID(c)
	image, err := ctrl.service.GetQRCode(c.Request.Context(), userID, c.Param("id"), size)
	if err != nil {
		if errors.Is(err, ErrNotOwner) {
			response.Error(c, http.StatusForbidden, "Access denied", nil)
			return
		}
		response.Error(c, http.StatusNotFound, "Booking not found", err.Error())
		return
	}

	c.Data(http.StatusOK, "image/png", image)
}

// CancelBooking handles POST /api/v1/bookings/:id/cancel
func (ctrl *Controller) CancelBooking(c *gin.Context) {
	userID := middleware.UserID(c)
	err := ctrl.service.CancelBooking(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrRecordNotFound):
			response.Error(c, http.StatusNotFound, "Booking not found", nil)
		case errors.Is(err, ErrNotOwner):
			response.Error(c, http.StatusForbidden, "Access denied", nil)
		case errors.Is(err, ErrAlreadyCancelled):
			response.Error(c, http.StatusConflict, "Booking is already cancelled", nil)
		default:
			response.Error(c, http.StatusInternalServerError, "Failed to cancel booking", err.Error())
		}
		return
	}

	response.Success(c, http.StatusOK, "Booking cancelled successfully", nil)
}
