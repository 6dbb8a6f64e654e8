package webhooks

// BookingConfirmationPayload is posted to the confirmation endpoint after a
// booking is accepted by the store. Field names are part of the downstream
// workflow contract.
type BookingConfirmationPayload struct {
	BookingID     string  `json:"bookingId"`
	UserID        string  `json:"userId"`
	CustomerName  string  `json:"customerName"`
	CustomerEmail string  `json:"customerEmail"`
	MovieTitle    string  `json:"movieTitle"`
	SessionDate   string  `json:"sessionDate"`
	SessionTime   string  `json:"sessionTime"`
	Seats         string  `json:"seats"`
	TotalPrice    float64 `json:"totalPrice"`
	QRCode        string  `json:"qrCode"`
	BookingDate   string  `json:"bookingDate"`
	Status        string  `json:"status"`
}

// SessionReminderPayload is posted ahead of a session's start time.
type SessionReminderPayload struct {
	UserEmail    string `json:"userEmail"`
	MovieTitle   string `json:"movieTitle"`
	SessionDate  string `json:"sessionDate"`
	SessionTime  string `json:"sessionTime"`
	ReminderType string `json:"reminderType"`
}

// ReminderTypeSession is the only reminder type currently emitted.
const ReminderTypeSession = "session_reminder"

// AuditLogPayload mirrors the confirmation payload for the spreadsheet audit
// trail, plus the event that produced the row.
type AuditLogPayload struct {
	Event         string  `json:"event"`
	BookingID     string  `json:"bookingId"`
	UserID        string  `json:"userId"`
	CustomerName  string  `json:"customerName"`
	CustomerEmail string  `json:"customerEmail"`
	MovieTitle    string  `json:"movieTitle"`
	Seats         string  `json:"seats"`
	TotalPrice    float64 `json:"totalPrice"`
	BookingDate   string  `json:"bookingDate"`
	Status        string  `json:"status"`
}

// CancellationPayload is posted when a booking is cancelled.
type CancellationPayload struct {
	BookingID     string `json:"bookingId"`
	UserID        string `json:"userId"`
	CustomerEmail string `json:"customerEmail"`
	MovieTitle    string `json:"movieTitle"`
	Seats         string `json:"seats"`
	CancelledAt   string `json:"cancelledAt"`
}
