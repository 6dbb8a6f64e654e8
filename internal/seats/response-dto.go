package seats

import "cinebook/internal/pricing"

// SeatView decorates a seat with its selected flag for the seat map.
type SeatView struct {
	Seat
	Selected bool `json:"selected"`
}

// RowView is one display row of the seat map.
type RowView struct {
	Row   string     `json:"row"`
	Seats []SeatView `json:"seats"`
}

// InventoryResponse is the grouped seat map for a session.
type InventoryResponse struct {
	SessionID string    `json:"session_id"`
	Synthetic bool      `json:"synthetic"`
	Rows      []RowView `json:"rows"`
}

// SelectedSeat is one line of a selection's price breakdown.
type SelectedSeat struct {
	SeatID string  `json:"seat_id"`
	Label  string  `json:"label"`
	Type   string  `json:"type"`
	Price  float64 `json:"price"`
}

// AttemptResponse is the API shape of a booking attempt.
type AttemptResponse struct {
	AttemptID  string         `json:"attempt_id"`
	SessionID  string         `json:"session_id"`
	State      SelectionState `json:"state"`
	SeatCount  int            `json:"seat_count"`
	Seats      []SelectedSeat `json:"seats"`
	TotalPrice float64        `json:"total_price"`
}

// NewInventoryResponse builds the grouped seat map, marking seats selected by
// the given attempt (nil for an anonymous view).
func NewInventoryResponse(inventory *Inventory, attempt *Attempt) InventoryResponse {
	rows := GroupByRow(inventory.Seats)
	viewRows := make([]RowView, 0, len(rows))
	for _, row := range rows {
		views := make([]SeatView, 0, len(row.Seats))
		for _, seat := range row.Seats {
			view := SeatView{Seat: seat}
			if attempt != nil {
				view.Selected = attempt.Selection.Contains(seat.ID)
			}
			views = append(views, view)
		}
		viewRows = append(viewRows, RowView{Row: row.Row, Seats: views})
	}

	return InventoryResponse{
		SessionID: inventory.SessionID,
		Synthetic: inventory.Synthetic,
		Rows:      viewRows,
	}
}

// NewAttemptResponse prices the attempt's selection against the session's
// base price, in insertion order. Ids missing from the inventory are skipped,
// mirroring the assembler's drop policy.
func NewAttemptResponse(attempt *Attempt, inventory *Inventory, basePrice, premiumMultiplier float64) AttemptResponse {
	selected := make([]SelectedSeat, 0, attempt.Selection.Count())
	var total float64

	for _, id := range attempt.Selection.SeatIDs {
		seat, ok := findSeat(inventory.Seats, id)
		if !ok {
			continue
		}
		price := pricing.SeatPriceWithMultiplier(basePrice, pricing.ParseSeatType(seat.Type), premiumMultiplier)
		selected = append(selected, SelectedSeat{
			SeatID: seat.ID,
			Label:  seat.Label(),
			Type:   seat.Type,
			Price:  pricing.Round2(price),
		})
		total += price
	}

	return AttemptResponse{
		AttemptID:  attempt.ID,
		SessionID:  attempt.Selection.SessionID,
		State:      attempt.Selection.State(),
		SeatCount:  len(selected),
		Seats:      selected,
		TotalPrice: pricing.Round2(total),
	}
}
