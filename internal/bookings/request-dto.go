package bookings

// CheckoutRequest submits a booking attempt with the customer's details.
type CheckoutRequest struct {
	AttemptID     string `json:"attempt_id" binding:"required" validate:"required"`
	CustomerName  string `json:"customer_name" binding:"required" validate:"required,min=2"`
	CustomerEmail string `json:"customer_email" binding:"required" validate:"required,email"`
}
