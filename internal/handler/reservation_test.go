package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gkidjo/train-booking-api/internal/booking"
	"github.com/gkidjo/train-booking-api/internal/model"
	"github.com/gkidjo/train-booking-api/internal/repository"
)

// Stub stores backing the booking workflow in handler tests.

type stubUsers struct {
	u   *model.User
	err error
}

func (s stubUsers) GetByID(context.Context, uint64) (*model.User, error) { return s.u, s.err }

type stubTrips struct {
	t   *model.Trip
	err error
}

func (s stubTrips) GetByID(context.Context, uint64) (*model.Trip, error) { return s.t, s.err }

type stubSeats struct {
	s   *model.Seat
	err error
}

func (s stubSeats) GetByID(context.Context, uint64) (*model.Seat, error) { return s.s, s.err }

// stubLedger implements both the workflow store and the CRUD ledger.
type stubLedger struct {
	res     *model.Reservation
	getErr  error
	created *model.Reservation
}

func (s *stubLedger) GetByID(context.Context, uint64) (*model.Reservation, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.res, nil
}

func (s *stubLedger) List(context.Context) ([]model.Reservation, error)               { return nil, nil }
func (s *stubLedger) ListByUser(context.Context, uint64) ([]model.Reservation, error) { return nil, nil }
func (s *stubLedger) SetStatus(context.Context, uint64, string) error                 { return nil }
func (s *stubLedger) Delete(context.Context, uint64) error                            { return nil }

func (s *stubLedger) CreateAndReserveSeat(_ context.Context, r *model.Reservation) error {
	r.ID = 1
	r.Status = model.ReservationPending
	s.created = r
	return nil
}

func (s *stubLedger) CancelAndReleaseSeat(context.Context, uint64, uint64) error {
	if s.res != nil {
		s.res.Status = model.ReservationCancel
	}
	return nil
}

func newReservationHandler(users stubUsers, trips stubTrips, seats stubSeats, ledger *stubLedger) *ReservationHandler {
	svc := booking.NewService(users, trips, seats, ledger, nil)
	return NewReservationHandler(ledger, svc)
}

func bookedFixtures() (stubUsers, stubTrips, stubSeats, *stubLedger) {
	return stubUsers{u: &model.User{ID: 5, Email: "alice@example.com"}},
		stubTrips{t: &model.Trip{ID: 3, Label: "Paris-Lyon"}},
		stubSeats{s: &model.Seat{ID: 7, TripID: 3, Status: model.SeatAvailable}},
		&stubLedger{}
}

func TestCreateReservationResponseShape(t *testing.T) {
	users, trips, seats, ledger := bookedFixtures()
	h := newReservationHandler(users, trips, seats, ledger)

	c, rec := postJSON(t, `{"trip_id":3,"user_id":5,"seat_id":7}`)
	require.NoError(t, h.Create(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, float64(0), body["_code"])
	assert.Equal(t, "Mail envoyé", body["message"])
	// Only the message comes back; the record is fetched separately.
	assert.NotContains(t, body, "data")
	assert.Len(t, body, 2)

	require.NotNil(t, ledger.created)
	assert.Equal(t, uint64(5), ledger.created.UserID)
	assert.Equal(t, uint64(7), ledger.created.SeatID)
}

func TestCreateReservationUnknownSeat(t *testing.T) {
	users, trips, _, ledger := bookedFixtures()
	h := newReservationHandler(users, trips, stubSeats{err: repository.ErrSeatNotFound}, ledger)

	c, rec := postJSON(t, `{"trip_id":3,"user_id":5,"seat_id":7}`)
	require.NoError(t, h.Create(c))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, float64(32), body["_code"])
	assert.Equal(t, "Sorry seat not found", body["message"])
	assert.Nil(t, ledger.created)
}

func TestCreateReservationUnknownUser(t *testing.T) {
	_, trips, seats, ledger := bookedFixtures()
	h := newReservationHandler(stubUsers{err: repository.ErrUserNotFound}, trips, seats, ledger)

	c, rec := postJSON(t, `{"trip_id":3,"user_id":5,"seat_id":7}`)
	require.NoError(t, h.Create(c))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, float64(32), body["_code"])
	assert.Equal(t, "Sorry user not found", body["message"])
	assert.Nil(t, ledger.created)
}

func cancelContext(t *testing.T, reservationID string, callerID uint64) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPut, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(reservationID)
	c.Set("user_id", callerID)
	return c, rec
}

func TestCancelReservationOwner(t *testing.T) {
	users, trips, seats, ledger := bookedFixtures()
	ledger.res = &model.Reservation{ID: 42, UserID: 5, TripID: 3, SeatID: 7, Status: model.ReservationPending}
	h := newReservationHandler(users, trips, seats, ledger)

	c, rec := cancelContext(t, "42", 5)
	require.NoError(t, h.Cancel(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, float64(0), body["_code"])
	assert.Equal(t, "Billet cancel", body["message"])
	assert.Equal(t, model.ReservationCancel, ledger.res.Status)
}

func TestCancelReservationNotOwner(t *testing.T) {
	users, trips, seats, ledger := bookedFixtures()
	ledger.res = &model.Reservation{ID: 42, UserID: 5, TripID: 3, SeatID: 7, Status: model.ReservationPending}
	h := newReservationHandler(users, trips, seats, ledger)

	c, rec := cancelContext(t, "42", 99)
	require.NoError(t, h.Cancel(c))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, float64(19), body["_code"])
	assert.Equal(t, "You cannot cancel this reservation", body["message"])
	assert.Equal(t, model.ReservationPending, ledger.res.Status)
}

func TestCancelReservationUnknown(t *testing.T) {
	users, trips, seats, ledger := bookedFixtures()
	ledger.getErr = repository.ErrReservationNotFound
	h := newReservationHandler(users, trips, seats, ledger)

	c, rec := cancelContext(t, "42", 5)
	require.NoError(t, h.Cancel(c))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, float64(32), body["_code"])
	assert.Equal(t, "Sorry reservation not found", body["message"])
}
