package bookings

import "time"

// Booking statuses as stored by the external booking store.
const (
	StatusConfirmed = "confirmed"
	StatusPending   = "pending"
	StatusCancelled = "cancelled"
)

// Booking is the wire model of the external booking store. Field names are
// the store's contract and must stay camelCase.
type Booking struct {
	ID            string  `json:"id,omitempty"`
	UserID        string  `json:"userId"`
	SessionID     string  `json:"sessionId"`
	MovieID       string  `json:"movieId"`
	Seats         string  `json:"seats"`
	TotalPrice    float64 `json:"totalPrice"`
	Status        string  `json:"status"`
	BookingDate   string  `json:"bookingDate"`
	QRCode        string  `json:"qrCode"`
	CustomerName  string  `json:"customerName"`
	CustomerEmail string  `json:"customerEmail"`
}

// BookingRecord is the local mirror of a submitted booking. It carries the
// session schedule and movie title so cancellation bookkeeping and session
// reminders work without re-querying the collaborators.
type BookingRecord struct {
	ID            uint    `gorm:"primaryKey" json:"id"`
	ExternalID    string  `gorm:"uniqueIndex;size:64;not null" json:"external_id"`
	AttemptID     string  `gorm:"index;size:64" json:"attempt_id"`
	UserID        string  `gorm:"index;size:64;not null" json:"user_id"`
	SessionID     string  `gorm:"size:64;not null" json:"session_id"`
	MovieID       string  `gorm:"size:64" json:"movie_id"`
	MovieTitle    string  `gorm:"size:255" json:"movie_title"`
	SessionDate   string  `gorm:"size:32" json:"session_date"`
	SessionTime   string  `gorm:"size:16" json:"session_time"`
	Seats         string  `gorm:"size:255;not null" json:"seats"`
	TotalPrice    float64 `gorm:"not null" json:"total_price"`
	Status        string  `gorm:"size:16;not null" json:"status"`
	QRCode        string  `gorm:"size:64" json:"qr_code"`
	CustomerName  string  `gorm:"size:255" json:"customer_name"`
	CustomerEmail string  `gorm:"size:255" json:"customer_email"`
	BookingDate   time.Time  `json:"booking_date"`
	CancelledAt   *time.Time `json:"cancelled_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// TableName overrides the default table name
func (BookingRecord) TableName() string {
	return "bookings"
}

// IsCancelled checks if the booking has been cancelled
func (r *BookingRecord) IsCancelled() bool {
	return r.Status == StatusCancelled
}

// SessionStart parses the mirrored session schedule. The zero time and false
// are returned when the schedule fields are missing or malformed.
func (r *BookingRecord) SessionStart() (time.Time, bool) {
	start, err := time.Parse("2006-01-02 15:04", r.SessionDate+" "+r.SessionTime)
	if err != nil {
		return time.Time{}, false
	}
	return start, true
}
