package handler

import (
	"context"
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/gkidjo/train-booking-api/internal/booking"
	"github.com/gkidjo/train-booking-api/internal/middleware"
	"github.com/gkidjo/train-booking-api/internal/model"
	"github.com/gkidjo/train-booking-api/internal/repository"
	"github.com/gkidjo/train-booking-api/internal/response"
)

// ReservationLedger is the slice of the reservation repository the CRUD
// endpoints need.
type ReservationLedger interface {
	GetByID(ctx context.Context, id uint64) (*model.Reservation, error)
	List(ctx context.Context) ([]model.Reservation, error)
	ListByUser(ctx context.Context, userID uint64) ([]model.Reservation, error)
	SetStatus(ctx context.Context, id uint64, status string) error
	Delete(ctx context.Context, id uint64) error
}

// ReservationHandler serves the reservation ledger.  The create and
// cancel paths go through the booking workflow; the rest of the CRUD
// surface hits the ledger directly.
type ReservationHandler struct {
	Reservations ReservationLedger
	Booking      *booking.Service
}

func NewReservationHandler(reservations ReservationLedger, svc *booking.Service) *ReservationHandler {
	if reservations == nil || svc == nil {
		panic("nil dependency passed to NewReservationHandler")
	}
	return &ReservationHandler{Reservations: reservations, Booking: svc}
}

type createReservationReq struct {
	TripID uint64 `json:"trip_id"`
	UserID uint64 `json:"user_id"`
	SeatID uint64 `json:"seat_id"`
}

// Create handles POST /api/reservations.  The request carries the
// user_id the reservation is booked for; it is not required to match
// the authenticated caller.
func (h *ReservationHandler) Create(c echo.Context) error {
	var req createReservationReq
	if err := c.Bind(&req); err != nil {
		return response.Error(c, response.InvalidData, "invalid request body")
	}
	if req.TripID == 0 || req.UserID == 0 || req.SeatID == 0 {
		return response.Error(c, response.InvalidData, "trip_id, user_id and seat_id are required")
	}

	if _, err := h.Booking.Create(c.Request().Context(), req.TripID, req.UserID, req.SeatID); err != nil {
		switch {
		case errors.Is(err, booking.ErrSeatNotFound):
			return response.Error(c, response.NotFound, "Sorry seat not found")
		case errors.Is(err, booking.ErrTripNotFound):
			return response.Error(c, response.NotFound, "Sorry trip not found")
		case errors.Is(err, booking.ErrUserNotFound):
			return response.Error(c, response.NotFound, "Sorry user not found")
		}
		return response.Error(c, response.Exception, "Add reservation failed")
	}
	// The record is not echoed back; clients fetch it separately.
	return response.JSON(c, echo.Map{"message": "Mail envoyé"})
}

// Get handles GET /api/reservations/:id.
func (h *ReservationHandler) Get(c echo.Context) error {
	id, ok := paramID(c)
	if !ok {
		return response.Error(c, response.InvalidData, "invalid reservation id")
	}
	res, err := h.Reservations.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return response.Error(c, response.NotFound, "Sorry reservation not found")
		}
		return response.Error(c, response.Exception, "")
	}
	return response.JSON(c, echo.Map{"reservation": res})
}

// List handles GET /api/reservations.
func (h *ReservationHandler) List(c echo.Context) error {
	items, err := h.Reservations.List(c.Request().Context())
	if err != nil {
		return response.Error(c, response.Exception, "")
	}
	return response.List(c, items)
}

// ListByUser handles POST /api/reservations/user/:id.  An unknown user
// id yields an empty list, not an error.
func (h *ReservationHandler) ListByUser(c echo.Context) error {
	id, ok := paramID(c)
	if !ok {
		return response.Error(c, response.InvalidData, "invalid user id")
	}
	items, err := h.Reservations.ListByUser(c.Request().Context(), id)
	if err != nil {
		return response.Error(c, response.Exception, "")
	}
	return response.List(c, items)
}

type updateReservationReq struct {
	Status string `json:"status"`
}

// Update handles PUT /api/reservations/:id.  The write changes only
// the ledger row; the referenced seat keeps its current status.
func (h *ReservationHandler) Update(c echo.Context) error {
	id, ok := paramID(c)
	if !ok {
		return response.Error(c, response.InvalidData, "invalid reservation id")
	}
	var req updateReservationReq
	if err := c.Bind(&req); err != nil {
		return response.Error(c, response.InvalidData, "invalid request body")
	}
	if !model.ValidReservationStatus(req.Status) {
		return response.Error(c, response.InvalidData, "unknown reservation status")
	}

	if err := h.Reservations.SetStatus(c.Request().Context(), id, req.Status); err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return response.Error(c, response.NotFound, "Sorry reservation not found")
		}
		return response.Error(c, response.Exception, "")
	}
	return response.JSON(c, echo.Map{"message": "Reservation updated"})
}

// Cancel handles PUT /api/reservations/cancel/:id.  Only the owner of
// the reservation may cancel it.
func (h *ReservationHandler) Cancel(c echo.Context) error {
	id, ok := paramID(c)
	if !ok {
		return response.Error(c, response.InvalidData, "invalid reservation id")
	}
	callerID, ok := middleware.UserID(c)
	if !ok {
		return response.Error(c, response.NotAuthenticated, "Missing auth token")
	}

	err := h.Booking.Cancel(c.Request().Context(), id, callerID)
	if err != nil {
		switch {
		case errors.Is(err, booking.ErrReservationNotFound):
			return response.Error(c, response.NotFound, "Sorry reservation not found")
		case errors.Is(err, booking.ErrNotOwner):
			return response.Error(c, response.InsufficientRights, "You cannot cancel this reservation")
		case errors.Is(err, booking.ErrCancellationFailed):
			return response.Error(c, response.Exception, "Cancelled reservation failed")
		}
		return response.Error(c, response.Exception, "")
	}
	return response.JSON(c, echo.Map{"message": "Billet cancel"})
}

// Delete handles DELETE /api/reservations/:id.  The referenced seat is
// not released.
func (h *ReservationHandler) Delete(c echo.Context) error {
	id, ok := paramID(c)
	if !ok {
		return response.Error(c, response.InvalidData, "invalid reservation id")
	}
	if err := h.Reservations.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return response.Error(c, response.NotFound, "Sorry reservation not found")
		}
		return response.Error(c, response.Exception, "")
	}
	return response.JSON(c, echo.Map{"message": "Reservation successfully deleted"})
}
