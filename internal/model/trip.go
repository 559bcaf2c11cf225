package model

import "time"

// Trip is a scheduled journey between two stations.  A trip owns a set
// of seats (one-to-many by seat.trip_id).  Price is stored in cents.
type Trip struct {
	ID               uint64    `json:"id"`                // trips.id
	Label            string    `json:"label"`             // trips.label, e.g. "Paris-Lyon"
	DepartureStation string    `json:"departure_station"` // trips.departure_station
	ArrivalStation   string    `json:"arrival_station"`   // trips.arrival_station
	DepartureTime    time.Time `json:"departure_time"`    // trips.departure_time
	ArrivalTime      time.Time `json:"arrival_time"`      // trips.arrival_time
	Price            uint32    `json:"price"`             // trips.price, cents
	CreatedAt        time.Time `json:"created_at"`
}
