package bookings

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"cinebook/internal/catalog"
	"cinebook/internal/pricing"
	"cinebook/internal/seats"
)

// ErrEmptySelection signals a checkout attempt whose selection resolved to
// zero seats.
var ErrEmptySelection = errors.New("no seats selected")

// Assembly is the outcome of turning a booking attempt into a submittable
// booking. Dropped counts selected seat ids that no longer resolve against
// the inventory; they are excluded rather than failing the whole checkout.
type Assembly struct {
	Booking Booking
	Dropped int
}

// Assemble builds the booking payload from a resolved attempt. It is pure:
// all inputs are passed in and now supplies the clock. Seats keep their
// selection order in both the label string and the price total.
func Assemble(
	attempt *seats.Attempt,
	inventory *seats.Inventory,
	session *catalog.Session,
	movie *catalog.Movie,
	customer CustomerDetails,
	userID string,
	premiumMultiplier float64,
	now time.Time,
) (*Assembly, error) {
	byID := make(map[string]seats.Seat, len(inventory.Seats))
	for _, seat := range inventory.Seats {
		byID[seat.ID] = seat
	}

	labels := make([]string, 0, len(attempt.Selection.SeatIDs))
	seatTypes := make([]pricing.SeatType, 0, len(attempt.Selection.SeatIDs))
	dropped := 0

	for _, seatID := range attempt.Selection.SeatIDs {
		seat, ok := byID[seatID]
		if !ok {
			dropped++
			continue
		}
		labels = append(labels, seat.Label())
		seatTypes = append(seatTypes, pricing.ParseSeatType(seat.Type))
	}

	if len(labels) == 0 {
		return nil, ErrEmptySelection
	}

	total := pricing.Round2(pricing.TotalWithMultiplier(seatTypes, session.Price, premiumMultiplier))

	booking := Booking{
		UserID:        userID,
		SessionID:     session.ID,
		MovieID:       movie.ID,
		Seats:         strings.Join(labels, ","),
		TotalPrice:    total,
		Status:        StatusConfirmed,
		BookingDate:   now.UTC().Format(time.RFC3339),
		QRCode:        generateQRReference(now),
		CustomerName:  strings.TrimSpace(customer.Name),
		CustomerEmail: strings.TrimSpace(customer.Email),
	}

	return &Assembly{Booking: booking, Dropped: dropped}, nil
}

// generateQRReference produces the booking's scannable reference. The
// downstream QR workflow expects the BOOKING-<millis> shape.
func generateQRReference(now time.Time) string {
	return fmt.Sprintf("BOOKING-%d", now.UnixMilli())
}
