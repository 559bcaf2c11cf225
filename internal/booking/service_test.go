package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/gkidjo/train-booking-api/internal/model"
	"github.com/gkidjo/train-booking-api/internal/queue"
	"github.com/gkidjo/train-booking-api/internal/repository"
)

// Mock stores

type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) GetByID(ctx context.Context, id uint64) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

type MockTripStore struct {
	mock.Mock
}

func (m *MockTripStore) GetByID(ctx context.Context, id uint64) (*model.Trip, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Trip), args.Error(1)
}

type MockSeatStore struct {
	mock.Mock
}

func (m *MockSeatStore) GetByID(ctx context.Context, id uint64) (*model.Seat, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Seat), args.Error(1)
}

type MockReservationStore struct {
	mock.Mock
}

func (m *MockReservationStore) GetByID(ctx context.Context, id uint64) (*model.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Reservation), args.Error(1)
}

func (m *MockReservationStore) CreateAndReserveSeat(ctx context.Context, r *model.Reservation) error {
	args := m.Called(ctx, r)
	if args.Error(0) == nil && r != nil {
		r.ID = 999 // simulate DB insert
		r.Status = model.ReservationPending
	}
	return args.Error(0)
}

func (m *MockReservationStore) CancelAndReleaseSeat(ctx context.Context, id, seatID uint64) error {
	args := m.Called(ctx, id, seatID)
	return args.Error(0)
}

// chanPublisher captures the async notification so tests can wait for it.
type chanPublisher struct {
	events chan queue.ReservationEmailEvent
}

func newChanPublisher() *chanPublisher {
	return &chanPublisher{events: make(chan queue.ReservationEmailEvent, 1)}
}

func (p *chanPublisher) PublishReservationEmail(_ context.Context, ev queue.ReservationEmailEvent) error {
	p.events <- ev
	return nil
}

func (p *chanPublisher) wait(t *testing.T) queue.ReservationEmailEvent {
	t.Helper()
	select {
	case ev := <-p.events:
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("no notification published")
		return queue.ReservationEmailEvent{}
	}
}

func fixtures() (*MockUserStore, *MockTripStore, *MockSeatStore, *MockReservationStore) {
	return new(MockUserStore), new(MockTripStore), new(MockSeatStore), new(MockReservationStore)
}

func TestCreate_BooksSeatAndNotifies(t *testing.T) {
	users, trips, seats, reservations := fixtures()
	pub := newChanPublisher()
	svc := NewService(users, trips, seats, reservations, pub)

	seats.On("GetByID", mock.Anything, uint64(7)).
		Return(&model.Seat{ID: 7, TripID: 3, SeatNumber: 12, Status: model.SeatAvailable}, nil)
	trips.On("GetByID", mock.Anything, uint64(3)).
		Return(&model.Trip{ID: 3, Label: "Paris-Lyon"}, nil)
	users.On("GetByID", mock.Anything, uint64(5)).
		Return(&model.User{ID: 5, Email: "alice@example.com"}, nil)
	reservations.On("CreateAndReserveSeat", mock.Anything, mock.MatchedBy(func(r *model.Reservation) bool {
		return r.UserID == 5 && r.TripID == 3 && r.SeatID == 7
	})).Return(nil)

	res, err := svc.Create(context.Background(), 3, 5, 7)

	assert.NoError(t, err)
	assert.Equal(t, uint64(999), res.ID)
	assert.Equal(t, model.ReservationPending, res.Status)

	ev := pub.wait(t)
	assert.Equal(t, queue.KindConfirmed, ev.Kind)
	assert.Equal(t, "alice@example.com", ev.Email)
	assert.Equal(t, "Paris-Lyon", ev.TripLabel)
	reservations.AssertExpectations(t)
}

func TestCreate_UnknownSeatWritesNothing(t *testing.T) {
	users, trips, seats, reservations := fixtures()
	svc := NewService(users, trips, seats, reservations, nil)

	seats.On("GetByID", mock.Anything, uint64(7)).Return(nil, ErrSeatNotFound)

	res, err := svc.Create(context.Background(), 3, 5, 7)

	assert.ErrorIs(t, err, ErrSeatNotFound)
	assert.Nil(t, res)
	reservations.AssertNotCalled(t, "CreateAndReserveSeat", mock.Anything, mock.Anything)
}

func TestCreate_UnknownUserWritesNothing(t *testing.T) {
	users, trips, seats, reservations := fixtures()
	svc := NewService(users, trips, seats, reservations, nil)

	seats.On("GetByID", mock.Anything, uint64(7)).
		Return(&model.Seat{ID: 7, TripID: 3}, nil)
	trips.On("GetByID", mock.Anything, uint64(3)).
		Return(&model.Trip{ID: 3}, nil)
	users.On("GetByID", mock.Anything, uint64(5)).Return(nil, ErrUserNotFound)

	_, err := svc.Create(context.Background(), 3, 5, 7)

	assert.ErrorIs(t, err, ErrUserNotFound)
	reservations.AssertNotCalled(t, "CreateAndReserveSeat", mock.Anything, mock.Anything)
}

func TestCreate_RepositoryMissSurfacesAsNotFound(t *testing.T) {
	// The real stores return the repository sentinels; each one must
	// match the workflow sentinel the handlers switch on.
	users, trips, seats, reservations := fixtures()
	svc := NewService(users, trips, seats, reservations, nil)

	seats.On("GetByID", mock.Anything, uint64(7)).Return(nil, repository.ErrSeatNotFound)

	_, err := svc.Create(context.Background(), 3, 5, 7)
	assert.ErrorIs(t, err, ErrSeatNotFound)
	reservations.AssertNotCalled(t, "CreateAndReserveSeat", mock.Anything, mock.Anything)
}

func TestCreate_RepositoryTripMissSurfacesAsNotFound(t *testing.T) {
	users, trips, seats, reservations := fixtures()
	svc := NewService(users, trips, seats, reservations, nil)

	seats.On("GetByID", mock.Anything, uint64(7)).
		Return(&model.Seat{ID: 7, TripID: 3}, nil)
	trips.On("GetByID", mock.Anything, uint64(3)).Return(nil, repository.ErrTripNotFound)

	_, err := svc.Create(context.Background(), 3, 5, 7)
	assert.ErrorIs(t, err, ErrTripNotFound)
}

func TestCreate_RepositoryUserMissSurfacesAsNotFound(t *testing.T) {
	users, trips, seats, reservations := fixtures()
	svc := NewService(users, trips, seats, reservations, nil)

	seats.On("GetByID", mock.Anything, uint64(7)).
		Return(&model.Seat{ID: 7, TripID: 3}, nil)
	trips.On("GetByID", mock.Anything, uint64(3)).
		Return(&model.Trip{ID: 3}, nil)
	users.On("GetByID", mock.Anything, uint64(5)).Return(nil, repository.ErrUserNotFound)

	_, err := svc.Create(context.Background(), 3, 5, 7)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestCancel_RepositoryMissSurfacesAsNotFound(t *testing.T) {
	users, trips, seats, reservations := fixtures()
	svc := NewService(users, trips, seats, reservations, nil)

	reservations.On("GetByID", mock.Anything, uint64(42)).
		Return(nil, repository.ErrReservationNotFound)

	err := svc.Cancel(context.Background(), 42, 5)
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestCreate_NilPublisherDoesNotBlock(t *testing.T) {
	users, trips, seats, reservations := fixtures()
	svc := NewService(users, trips, seats, reservations, nil)

	seats.On("GetByID", mock.Anything, uint64(7)).
		Return(&model.Seat{ID: 7, TripID: 3}, nil)
	trips.On("GetByID", mock.Anything, uint64(3)).
		Return(&model.Trip{ID: 3}, nil)
	users.On("GetByID", mock.Anything, uint64(5)).
		Return(&model.User{ID: 5}, nil)
	reservations.On("CreateAndReserveSeat", mock.Anything, mock.Anything).Return(nil)

	res, err := svc.Create(context.Background(), 3, 5, 7)

	assert.NoError(t, err)
	assert.NotNil(t, res)
}

func TestCancel_OwnerReleasesSeatAndNotifies(t *testing.T) {
	users, trips, seats, reservations := fixtures()
	pub := newChanPublisher()
	svc := NewService(users, trips, seats, reservations, pub)

	reservations.On("GetByID", mock.Anything, uint64(42)).
		Return(&model.Reservation{ID: 42, UserID: 5, TripID: 3, SeatID: 7, Status: model.ReservationPending}, nil).Once()
	trips.On("GetByID", mock.Anything, uint64(3)).
		Return(&model.Trip{ID: 3, Label: "Paris-Lyon"}, nil)
	users.On("GetByID", mock.Anything, uint64(5)).
		Return(&model.User{ID: 5, Email: "alice@example.com"}, nil)
	reservations.On("CancelAndReleaseSeat", mock.Anything, uint64(42), uint64(7)).Return(nil)
	reservations.On("GetByID", mock.Anything, uint64(42)).
		Return(&model.Reservation{ID: 42, UserID: 5, TripID: 3, SeatID: 7, Status: model.ReservationCancel}, nil).Once()

	err := svc.Cancel(context.Background(), 42, 5)

	assert.NoError(t, err)
	ev := pub.wait(t)
	assert.Equal(t, queue.KindCancelled, ev.Kind)
	assert.Equal(t, uint64(42), ev.ReservationID)
	reservations.AssertExpectations(t)
}

func TestCancel_NonOwnerRejected(t *testing.T) {
	users, trips, seats, reservations := fixtures()
	svc := NewService(users, trips, seats, reservations, nil)

	reservations.On("GetByID", mock.Anything, uint64(42)).
		Return(&model.Reservation{ID: 42, UserID: 5, TripID: 3, SeatID: 7}, nil)

	err := svc.Cancel(context.Background(), 42, 99)

	assert.ErrorIs(t, err, ErrNotOwner)
	reservations.AssertNotCalled(t, "CancelAndReleaseSeat", mock.Anything, mock.Anything, mock.Anything)
}

func TestCancel_UnknownReservation(t *testing.T) {
	users, trips, seats, reservations := fixtures()
	svc := NewService(users, trips, seats, reservations, nil)

	reservations.On("GetByID", mock.Anything, uint64(42)).Return(nil, ErrReservationNotFound)

	err := svc.Cancel(context.Background(), 42, 5)

	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestCancel_StatusDidNotStick(t *testing.T) {
	users, trips, seats, reservations := fixtures()
	svc := NewService(users, trips, seats, reservations, nil)

	reservations.On("GetByID", mock.Anything, uint64(42)).
		Return(&model.Reservation{ID: 42, UserID: 5, TripID: 3, SeatID: 7, Status: model.ReservationPending}, nil).Once()
	trips.On("GetByID", mock.Anything, uint64(3)).Return(&model.Trip{ID: 3}, nil)
	users.On("GetByID", mock.Anything, uint64(5)).Return(&model.User{ID: 5}, nil)
	reservations.On("CancelAndReleaseSeat", mock.Anything, uint64(42), uint64(7)).Return(nil)
	reservations.On("GetByID", mock.Anything, uint64(42)).
		Return(&model.Reservation{ID: 42, UserID: 5, TripID: 3, SeatID: 7, Status: model.ReservationPending}, nil).Once()

	err := svc.Cancel(context.Background(), 42, 5)

	assert.ErrorIs(t, err, ErrCancellationFailed)
}
