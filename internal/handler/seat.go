package handler

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/gkidjo/train-booking-api/internal/model"
	"github.com/gkidjo/train-booking-api/internal/repository"
	"github.com/gkidjo/train-booking-api/internal/response"
)

// SeatHandler serves the seat inventory.
type SeatHandler struct {
	Seats *repository.SeatRepo
}

func NewSeatHandler(seats *repository.SeatRepo) *SeatHandler {
	if seats == nil {
		panic("nil repository passed to NewSeatHandler")
	}
	return &SeatHandler{Seats: seats}
}

type createSeatReq struct {
	TripID     uint64 `json:"trip_id"`
	SeatNumber uint32 `json:"seat_number"`
	Status     string `json:"status"`
}

// Create handles POST /api/seats.  The trip reference is not verified
// and duplicate seat numbers per trip are accepted.
func (h *SeatHandler) Create(c echo.Context) error {
	var req createSeatReq
	if err := c.Bind(&req); err != nil {
		return response.Error(c, response.InvalidData, "invalid request body")
	}
	if req.TripID == 0 || req.SeatNumber == 0 {
		return response.Error(c, response.InvalidData, "trip_id and seat_number are required")
	}
	if req.Status == "" {
		req.Status = model.SeatAvailable
	}
	if !model.ValidSeatStatus(req.Status) {
		return response.Error(c, response.InvalidData, "unknown seat status")
	}

	seat := &model.Seat{TripID: req.TripID, SeatNumber: req.SeatNumber, Status: req.Status}
	if err := h.Seats.Create(c.Request().Context(), seat); err != nil {
		return response.Error(c, response.Exception, "Add seat failed")
	}
	return response.JSON(c, echo.Map{
		"data": echo.Map{
			"message": "Seat successfully created",
			"seat":    seat,
		},
	})
}

// Get handles GET /api/seats/:id.
func (h *SeatHandler) Get(c echo.Context) error {
	id, ok := paramID(c)
	if !ok {
		return response.Error(c, response.InvalidData, "invalid seat id")
	}
	seat, err := h.Seats.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrSeatNotFound) {
			return response.Error(c, response.NotFound, "Sorry seat not found")
		}
		return response.Error(c, response.Exception, "")
	}
	return response.JSON(c, echo.Map{"seat": seat})
}

// List handles GET /api/seats.
func (h *SeatHandler) List(c echo.Context) error {
	seats, err := h.Seats.List(c.Request().Context())
	if err != nil {
		return response.Error(c, response.Exception, "")
	}
	return response.List(c, seats)
}

// Available handles GET /api/seats/available/:id, where :id is a trip
// id.
func (h *SeatHandler) Available(c echo.Context) error {
	id, ok := paramID(c)
	if !ok {
		return response.Error(c, response.InvalidData, "invalid trip id")
	}
	seats, err := h.Seats.ListAvailableByTrip(c.Request().Context(), id)
	if err != nil {
		return response.Error(c, response.Exception, "")
	}
	return response.List(c, seats)
}

type updateSeatReq struct {
	SeatNumber *uint32 `json:"seat_number"`
	Status     *string `json:"status"`
}

// Update handles PUT /api/seats/:id.  The write is an unconditional
// overwrite: last writer wins, with no coupling to the reservation
// ledger.  A status-only body goes through the workflow's status entry
// point.
func (h *SeatHandler) Update(c echo.Context) error {
	id, ok := paramID(c)
	if !ok {
		return response.Error(c, response.InvalidData, "invalid seat id")
	}
	var req updateSeatReq
	if err := c.Bind(&req); err != nil {
		return response.Error(c, response.InvalidData, "invalid request body")
	}
	if req.SeatNumber == nil && req.Status == nil {
		return response.Error(c, response.InvalidData, "seat_number or status is required")
	}
	if req.Status != nil && !model.ValidSeatStatus(*req.Status) {
		return response.Error(c, response.InvalidData, "unknown seat status")
	}

	ctx := c.Request().Context()
	var err error
	if req.SeatNumber == nil {
		err = h.Seats.UpdateStatus(ctx, id, *req.Status)
	} else {
		seat, getErr := h.Seats.GetByID(ctx, id)
		if getErr != nil {
			err = getErr
		} else {
			status := seat.Status
			if req.Status != nil {
				status = *req.Status
			}
			err = h.Seats.Update(ctx, id, *req.SeatNumber, status)
		}
	}
	if err != nil {
		if errors.Is(err, repository.ErrSeatNotFound) {
			return response.Error(c, response.NotFound, "Sorry seat not found")
		}
		return response.Error(c, response.Exception, "")
	}

	updated, err := h.Seats.GetByID(ctx, id)
	if err != nil {
		return response.Error(c, response.Exception, "")
	}
	return response.JSON(c, echo.Map{
		"message": "Seat successfully updated",
		"data":    echo.Map{"seat": updated},
	})
}

// Delete handles DELETE /api/seats/:id.
func (h *SeatHandler) Delete(c echo.Context) error {
	id, ok := paramID(c)
	if !ok {
		return response.Error(c, response.InvalidData, "invalid seat id")
	}
	if err := h.Seats.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrSeatNotFound) {
			return response.Error(c, response.NotFound, "Sorry seat not found")
		}
		return response.Error(c, response.Exception, "")
	}
	return response.JSON(c, echo.Map{"message": "Seat successfully deleted"})
}
