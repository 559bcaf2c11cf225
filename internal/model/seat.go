package model

import "time"

// Seat statuses.  "Occupied" is reserved for check-in and is never set
// by the booking workflow; only a direct seat update can reach it.
const (
	SeatAvailable = "Available"
	SeatReserved  = "Reserved"
	SeatOccupied  = "Occupied"
)

// Seat is a bookable unit belonging to exactly one trip.  Status is
// flipped by the booking workflow: Reserved on booking, Available on
// cancellation.
type Seat struct {
	ID         uint64    `json:"id"`          // seats.id
	TripID     uint64    `json:"trip_id"`     // seats.trip_id
	SeatNumber uint32    `json:"seat_number"` // seats.seat_number
	Status     string    `json:"status"`      // seats.status: Available | Reserved | Occupied
	CreatedAt  time.Time `json:"created_at"`
}

// ValidSeatStatus reports whether s is one of the defined seat statuses.
func ValidSeatStatus(s string) bool {
	return s == SeatAvailable || s == SeatReserved || s == SeatOccupied
}
