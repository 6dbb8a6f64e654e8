package seats

// OpenAttemptRequest starts a booking attempt for a session.
type OpenAttemptRequest struct {
	SessionID string `json:"session_id" binding:"required"`
}

// ToggleRequest flips one seat's selected state within an attempt.
type ToggleRequest struct {
	SeatID string `json:"seat_id" binding:"required"`
}
