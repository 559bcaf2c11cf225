package model

import "time"

// Reservation statuses.  Every reservation starts as Pending.  The
// cancel workflow moves it to Cancel.  "Used" is meant for check-in and
// is never set by any current operation.
const (
	ReservationPending = "Pending"
	ReservationUsed    = "Used"
	ReservationCancel  = "Cancel"
)

// Reservation binds a user to a seat on a trip.
type Reservation struct {
	ID        uint64    `json:"id"`      // reservations.id
	UserID    uint64    `json:"user_id"` // reservations.user_id
	TripID    uint64    `json:"trip_id"` // reservations.trip_id
	SeatID    uint64    `json:"seat_id"` // reservations.seat_id
	Status    string    `json:"status"`  // reservations.status: Pending | Used | Cancel
	CreatedAt time.Time `json:"created_at"`
}

// ValidReservationStatus reports whether s is a defined reservation status.
func ValidReservationStatus(s string) bool {
	return s == ReservationPending || s == ReservationUsed || s == ReservationCancel
}
