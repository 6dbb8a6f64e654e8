package seats

import "errors"

// DefaultMaxSeats is the selection cap per booking attempt.
const DefaultMaxSeats = 10

// Selection errors. Both leave the selection unchanged.
var (
	// ErrSeatUnavailable signals a toggle on an occupied seat.
	ErrSeatUnavailable = errors.New("seat is not available")

	// ErrSelectionLimitExceeded signals an add-attempt on a full selection.
	ErrSelectionLimitExceeded = errors.New("selection limit exceeded")
)

// SelectionState describes where a selection sits in its lifecycle.
type SelectionState string

const (
	SelectionEmpty     SelectionState = "empty"
	SelectionSelecting SelectionState = "selecting"
	SelectionFull      SelectionState = "full"
)

// Selection is the in-progress set of seats a user intends to book, scoped to
// one session's inventory. Ids keep insertion order; order is preserved for
// display but never affects the price. This is plain in-memory state; one
// client owns one attempt, so no locking is involved.
type Selection struct {
	SessionID string   `json:"session_id"`
	SeatIDs   []string `json:"seat_ids"`
	Limit     int      `json:"limit"`
}

// NewSelection creates an empty selection for a session. A non-positive limit
// falls back to DefaultMaxSeats.
func NewSelection(sessionID string, limit int) *Selection {
	if limit <= 0 {
		limit = DefaultMaxSeats
	}
	return &Selection{SessionID: sessionID, Limit: limit}
}

// Toggle flips the selected state of a seat. Occupied seats are refused with
// ErrSeatUnavailable no matter the current selection state; adding past the
// cap is refused with ErrSelectionLimitExceeded. Removal of an available seat
// is always allowed.
func (s *Selection) Toggle(seat Seat) error {
	if !seat.IsAvailable() {
		return ErrSeatUnavailable
	}

	if idx := s.indexOf(seat.ID); idx >= 0 {
		s.SeatIDs = append(s.SeatIDs[:idx], s.SeatIDs[idx+1:]...)
		return nil
	}

	if len(s.SeatIDs) >= s.Limit {
		return ErrSelectionLimitExceeded
	}

	s.SeatIDs = append(s.SeatIDs, seat.ID)
	return nil
}

// Clear resets the selection to empty from any state.
func (s *Selection) Clear() {
	s.SeatIDs = nil
}

// Contains reports whether the seat id is currently selected.
func (s *Selection) Contains(seatID string) bool {
	return s.indexOf(seatID) >= 0
}

// Count returns the number of selected seats.
func (s *Selection) Count() int {
	return len(s.SeatIDs)
}

// State returns the current lifecycle state.
func (s *Selection) State() SelectionState {
	switch {
	case len(s.SeatIDs) == 0:
		return SelectionEmpty
	case len(s.SeatIDs) >= s.Limit:
		return SelectionFull
	default:
		return SelectionSelecting
	}
}

func (s *Selection) indexOf(seatID string) int {
	for i, id := range s.SeatIDs {
		if id == seatID {
			return i
		}
	}
	return -1
}
