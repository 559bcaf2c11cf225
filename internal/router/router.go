// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/gkidjo/train-booking-api/internal/handler"
	"github.com/gkidjo/train-booking-api/internal/middleware"
)

// Handlers bundles every handler the route table needs.
type Handlers struct {
	Auth        *handler.AuthHandler
	Trip        *handler.TripHandler
	Seat        *handler.SeatHandler
	Reservation *handler.ReservationHandler
}

// Register wires the full route table on the provided Echo instance.
// Most of the surface is public; only reservation creation and
// cancellation require a valid token.
func Register(e *echo.Echo, h Handlers, jwtSecret string) {
	e.GET("/healthz", handler.Health)

	api := e.Group("/api")

	// Identity.  Registration lives at /api/user, login under
	// /api/auth, mirroring the split between account creation and
	// session issuance.
	api.POST("/user", h.Auth.Register)
	api.POST("/auth/login", h.Auth.Login)

	// Trip catalog.
	api.POST("/trips", h.Trip.Create)
	api.GET("/trips", h.Trip.List)
	api.GET("/trips/:id", h.Trip.Get)
	api.PUT("/trips/:id", h.Trip.Update)
	api.DELETE("/trips/:id", h.Trip.Delete)
	api.GET("/trip/:id/seats", h.Trip.SeatsByTrip)

	// Seat inventory.  The static "available" segment is registered
	// before the :id routes match it.
	api.POST("/seats", h.Seat.Create)
	api.GET("/seats", h.Seat.List)
	api.GET("/seats/available/:id", h.Seat.Available)
	api.GET("/seats/:id", h.Seat.Get)
	api.PUT("/seats/:id", h.Seat.Update)
	api.DELETE("/seats/:id", h.Seat.Delete)

	// Reservation ledger.
	authed := middleware.JWTAuth(jwtSecret)
	api.POST("/reservations", h.Reservation.Create, authed)
	api.GET("/reservations", h.Reservation.List)
	api.GET("/reservations/:id", h.Reservation.Get)
	api.POST("/reservations/user/:id", h.Reservation.ListByUser)
	api.PUT("/reservations/cancel/:id", h.Reservation.Cancel, authed)
	api.PUT("/reservations/:id", h.Reservation.Update)
	api.DELETE("/reservations/:id", h.Reservation.Delete)
}
