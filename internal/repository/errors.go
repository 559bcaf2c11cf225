// Package repository implements data access for users, trips, seats and
// reservations over database/sql.  Lookup misses are reported through
// per-entity sentinel errors so handlers can emit distinct not-found
// messages.
package repository

import "errors"

var (
	// ErrEmailExists is returned when registering an e-mail address
	// that is already taken.
	ErrEmailExists = errors.New("email already exists")

	// ErrUserNotFound is returned when a user lookup yields no rows.
	ErrUserNotFound = errors.New("user not found")

	// ErrTripNotFound is returned when a trip lookup yields no rows.
	ErrTripNotFound = errors.New("trip not found")

	// ErrSeatNotFound is returned when a seat lookup yields no rows.
	ErrSeatNotFound = errors.New("seat not found")

	// ErrReservationNotFound is returned when a reservation lookup
	// yields no rows.
	ErrReservationNotFound = errors.New("reservation not found")
)
