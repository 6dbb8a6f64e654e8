package notifications

import (
	"encoding/json"
	"time"
)

// Event types published to the booking event stream.
const (
	EventBookingConfirmed = "booking.confirmed"
	EventBookingCancelled = "booking.cancelled"
)

// BookingEvent is the message published to Kafka when a booking changes
// state. Consumers (analytics, CRM sync) are outside this service.
type BookingEvent struct {
	Type       string    `json:"type"`
	BookingID  string    `json:"booking_id"`
	UserID     string    `json:"user_id"`
	SessionID  string    `json:"session_id"`
	MovieTitle string    `json:"movie_title"`
	Seats      string    `json:"seats"`
	TotalPrice float64   `json:"total_price"`
	OccurredAt time.Time `json:"occurred_at"`
}

func (e *BookingEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// PartitionKey routes all events for one booking to the same partition so
// confirmation and cancellation stay ordered.
func (e *BookingEvent) PartitionKey() string {
	return e.BookingID
}
