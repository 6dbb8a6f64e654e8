package seats

import (
	"fmt"
	"sort"
)

// Seat statuses as served by the inventory collaborator.
const (
	StatusAvailable = "available"
	StatusOccupied  = "occupied"
)

// Seat is one seat of a session's inventory. Seats are scoped to exactly one
// session; (sessionId, row, number) is unique within it. The client never
// mutates seats; the only exception is the re-keying fallback in the service.
type Seat struct {
	ID        string `json:"id"`
	SessionID string `json:"sessionId"`
	Row       string `json:"row"`
	Number    int    `json:"number"`
	Type      string `json:"type"`
	Status    string `json:"status"`
}

// IsAvailable reports whether the seat can be selected.
func (s Seat) IsAvailable() bool {
	return s.Status == StatusAvailable
}

// Label returns the display token, e.g. "A1".
func (s Seat) Label() string {
	return fmt.Sprintf("%s%d", s.Row, s.Number)
}

// Row groups seats of one physical row for display.
type Row struct {
	Row   string `json:"row"`
	Seats []Seat `json:"seats"`
}

// GroupByRow arranges seats for display: rows lexicographically ascending,
// seats within a row by number ascending.
func GroupByRow(seats []Seat) []Row {
	byRow := make(map[string][]Seat)
	for _, seat := range seats {
		byRow[seat.Row] = append(byRow[seat.Row], seat)
	}

	rows := make([]Row, 0, len(byRow))
	for name, rowSeats := range byRow {
		sort.Slice(rowSeats, func(i, j int) bool {
			return rowSeats[i].Number < rowSeats[j].Number
		})
		rows = append(rows, Row{Row: name, Seats: rowSeats})
	}

	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Row < rows[j].Row
	})
	return rows
}
