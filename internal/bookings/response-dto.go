package bookings

// CheckoutResponse wraps the stored booking with assembly diagnostics.
type CheckoutResponse struct {
	Booking      Booking `json:"booking"`
	DroppedSeats int     `json:"dropped_seats,omitempty"`
	Replayed     bool    `json:"replayed,omitempty"`
}

// BookingListResponse is the user's booking history.
type BookingListResponse struct {
	Bookings []Booking `json:"bookings"`
	Count    int       `json:"count"`
}
