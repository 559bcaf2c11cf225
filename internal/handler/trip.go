package handler

import (
	"errors"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/gkidjo/train-booking-api/internal/model"
	"github.com/gkidjo/train-booking-api/internal/repository"
	"github.com/gkidjo/train-booking-api/internal/response"
)

// TripHandler serves the trip catalog.
type TripHandler struct {
	Trips *repository.TripRepo
	Seats *repository.SeatRepo
}

func NewTripHandler(trips *repository.TripRepo, seats *repository.SeatRepo) *TripHandler {
	if trips == nil || seats == nil {
		panic("nil repository passed to NewTripHandler")
	}
	return &TripHandler{Trips: trips, Seats: seats}
}

// paramID parses the :id path parameter shared by all entity handlers.
func paramID(c echo.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	return id, err == nil && id != 0
}

type createTripReq struct {
	Label            string    `json:"label"`
	DepartureStation string    `json:"departure_station"`
	ArrivalStation   string    `json:"arrival_station"`
	DepartureTime    time.Time `json:"departure_time"`
	ArrivalTime      time.Time `json:"arrival_time"`
	Price            *uint32   `json:"price"`
}

// Create handles POST /api/trips.  All fields are required; no
// ordering or positivity checks are applied beyond presence.
func (h *TripHandler) Create(c echo.Context) error {
	var req createTripReq
	if err := c.Bind(&req); err != nil {
		return response.Error(c, response.InvalidData, "invalid request body")
	}
	if req.Label == "" || req.DepartureStation == "" || req.ArrivalStation == "" ||
		req.DepartureTime.IsZero() || req.ArrivalTime.IsZero() || req.Price == nil {
		return response.Error(c, response.InvalidData, "all trip fields are required")
	}

	trip := &model.Trip{
		Label:            req.Label,
		DepartureStation: req.DepartureStation,
		ArrivalStation:   req.ArrivalStation,
		DepartureTime:    req.DepartureTime,
		ArrivalTime:      req.ArrivalTime,
		Price:            *req.Price,
	}
	if err := h.Trips.Create(c.Request().Context(), trip); err != nil {
		return response.Error(c, response.Exception, "Add trip failed")
	}
	return response.JSON(c, echo.Map{
		"data": echo.Map{
			"message": "Trip successfully created",
			"trip":    trip,
		},
	})
}

// Get handles GET /api/trips/:id.
func (h *TripHandler) Get(c echo.Context) error {
	id, ok := paramID(c)
	if !ok {
		return response.Error(c, response.InvalidData, "invalid trip id")
	}
	trip, err := h.Trips.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrTripNotFound) {
			return response.Error(c, response.NotFound, "Sorry trip not found")
		}
		return response.Error(c, response.Exception, "")
	}
	return response.JSON(c, echo.Map{"trip": trip})
}

// List handles GET /api/trips.
func (h *TripHandler) List(c echo.Context) error {
	trips, err := h.Trips.List(c.Request().Context())
	if err != nil {
		return response.Error(c, response.Exception, "")
	}
	return response.List(c, trips)
}

type updateTripReq struct {
	Label            *string    `json:"label"`
	DepartureStation *string    `json:"departure_station"`
	ArrivalStation   *string    `json:"arrival_station"`
	DepartureTime    *time.Time `json:"departure_time"`
	ArrivalTime      *time.Time `json:"arrival_time"`
	Price            *uint32    `json:"price"`
}

// Update handles PUT /api/trips/:id with a partial body; omitted
// fields keep their current value.
func (h *TripHandler) Update(c echo.Context) error {
	id, ok := paramID(c)
	if !ok {
		return response.Error(c, response.InvalidData, "invalid trip id")
	}
	var req updateTripReq
	if err := c.Bind(&req); err != nil {
		return response.Error(c, response.InvalidData, "invalid request body")
	}

	patch := repository.TripPatch{
		Label:            req.Label,
		DepartureStation: req.DepartureStation,
		ArrivalStation:   req.ArrivalStation,
		DepartureTime:    req.DepartureTime,
		ArrivalTime:      req.ArrivalTime,
		Price:            req.Price,
	}
	if err := h.Trips.Update(c.Request().Context(), id, patch); err != nil {
		if errors.Is(err, repository.ErrTripNotFound) {
			return response.Error(c, response.NotFound, "Sorry trip not found")
		}
		return response.Error(c, response.Exception, "")
	}
	updated, err := h.Trips.GetByID(c.Request().Context(), id)
	if err != nil {
		return response.Error(c, response.Exception, "")
	}
	return response.JSON(c, echo.Map{
		"message": "Trip successfully updated",
		"data":    echo.Map{"trip": updated},
	})
}

// Delete handles DELETE /api/trips/:id.  Seats and reservations of the
// trip are not removed.
func (h *TripHandler) Delete(c echo.Context) error {
	id, ok := paramID(c)
	if !ok {
		return response.Error(c, response.InvalidData, "invalid trip id")
	}
	if err := h.Trips.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrTripNotFound) {
			return response.Error(c, response.NotFound, "Sorry trip not found")
		}
		return response.Error(c, response.Exception, "")
	}
	return response.JSON(c, echo.Map{"message": "Trip successfully deleted"})
}

// SeatsByTrip handles GET /api/trip/:id/seats.
func (h *TripHandler) SeatsByTrip(c echo.Context) error {
	id, ok := paramID(c)
	if !ok {
		return response.Error(c, response.InvalidData, "invalid trip id")
	}
	seats, err := h.Seats.ListByTrip(c.Request().Context(), id)
	if err != nil {
		return response.Error(c, response.Exception, "")
	}
	return response.List(c, seats)
}
