// Package booking orchestrates the reservation create/cancel workflow
// across the identity, trip, seat and reservation stores, with an
// e-mail notification fired on both paths.
package booking

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/gkidjo/train-booking-api/internal/model"
	"github.com/gkidjo/train-booking-api/internal/queue"
	"github.com/gkidjo/train-booking-api/internal/repository"
)

// Workflow errors.  Handlers map these to response codes.  The
// not-found values alias the repository sentinels so errors coming out
// of the real stores match them directly.
var (
	ErrUserNotFound        = repository.ErrUserNotFound
	ErrTripNotFound        = repository.ErrTripNotFound
	ErrSeatNotFound        = repository.ErrSeatNotFound
	ErrReservationNotFound = repository.ErrReservationNotFound
	ErrNotOwner            = errors.New("reservation belongs to another user")
	ErrCancellationFailed  = errors.New("cancellation did not stick")
)

// UserStore resolves users referenced by reservations.
type UserStore interface {
	GetByID(ctx context.Context, id uint64) (*model.User, error)
}

// TripStore resolves trips referenced by reservations.
type TripStore interface {
	GetByID(ctx context.Context, id uint64) (*model.Trip, error)
}

// SeatStore resolves seats referenced by reservations.
type SeatStore interface {
	GetByID(ctx context.Context, id uint64) (*model.Seat, error)
}

// ReservationStore persists the ledger.  The two workflow methods
// couple the ledger write and the seat-status flip atomically.
type ReservationStore interface {
	GetByID(ctx context.Context, id uint64) (*model.Reservation, error)
	CreateAndReserveSeat(ctx context.Context, r *model.Reservation) error
	CancelAndReleaseSeat(ctx context.Context, id, seatID uint64) error
}

// EventPublisher hands the notification to the mail queue.
type EventPublisher interface {
	PublishReservationEmail(ctx context.Context, ev queue.ReservationEmailEvent) error
}

// Service runs the booking workflow.  A nil publisher disables
// notifications (e.g. when no broker is configured).
type Service struct {
	users        UserStore
	trips        TripStore
	seats        SeatStore
	reservations ReservationStore
	publisher    EventPublisher
}

func NewService(users UserStore, trips TripStore, seats SeatStore, reservations ReservationStore, publisher EventPublisher) *Service {
	if users == nil || trips == nil || seats == nil || reservations == nil {
		panic("nil store passed to booking.NewService")
	}
	return &Service{
		users:        users,
		trips:        trips,
		seats:        seats,
		reservations: reservations,
		publisher:    publisher,
	}
}

// notFound normalizes a store error to the matching sentinel, so a
// wrapped lookup miss still surfaces as the sentinel itself.
func notFound(err, sentinel error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sentinel) {
		return sentinel
	}
	return err
}

// Create books a seat: it verifies the seat, trip and user exist,
// persists a Pending reservation together with the Reserved seat flip,
// and fires the confirmation mail.  The caller's identity is checked
// upstream by the JWT middleware; the reservation is created for the
// userID given in the request, whoever the caller is.
func (s *Service) Create(ctx context.Context, tripID, userID, seatID uint64) (*model.Reservation, error) {
	seat, err := s.seats.GetByID(ctx, seatID)
	if err != nil {
		return nil, notFound(err, ErrSeatNotFound)
	}
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return nil, notFound(err, ErrTripNotFound)
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, notFound(err, ErrUserNotFound)
	}

	res := &model.Reservation{
		UserID: user.ID,
		TripID: trip.ID,
		SeatID: seat.ID,
	}
	if err := s.reservations.CreateAndReserveSeat(ctx, res); err != nil {
		return nil, err
	}

	s.notify(queue.ReservationEmailEvent{
		Kind:          queue.KindConfirmed,
		ReservationID: res.ID,
		UserID:        user.ID,
		Email:         user.Email,
		TripLabel:     trip.Label,
		OccurredAt:    time.Now().UTC().Format(time.RFC3339),
	})
	return res, nil
}

// Cancel reverses a booking on behalf of callerID.  Only the
// reservation's owner may cancel; the reservation moves to Cancel, the
// seat returns to Available, and the cancellation mail is fired.
func (s *Service) Cancel(ctx context.Context, reservationID, callerID uint64) error {
	res, err := s.reservations.GetByID(ctx, reservationID)
	if err != nil {
		return notFound(err, ErrReservationNotFound)
	}
	if res.UserID != callerID {
		return ErrNotOwner
	}
	trip, err := s.trips.GetByID(ctx, res.TripID)
	if err != nil {
		return notFound(err, ErrTripNotFound)
	}
	user, err := s.users.GetByID(ctx, res.UserID)
	if err != nil {
		return notFound(err, ErrUserNotFound)
	}

	if err := s.reservations.CancelAndReleaseSeat(ctx, res.ID, res.SeatID); err != nil {
		return notFound(err, ErrReservationNotFound)
	}
	// Re-read to verify the cancellation observably stuck.  The write
	// is unconditional, but this documents the contract.
	check, err := s.reservations.GetByID(ctx, res.ID)
	if err != nil {
		return notFound(err, ErrReservationNotFound)
	}
	if check.Status != model.ReservationCancel {
		return ErrCancellationFailed
	}

	s.notify(queue.ReservationEmailEvent{
		Kind:          queue.KindCancelled,
		ReservationID: res.ID,
		UserID:        user.ID,
		Email:         user.Email,
		TripLabel:     trip.Label,
		OccurredAt:    time.Now().UTC().Format(time.RFC3339),
	})
	return nil
}

// notify hands the event to the publisher without blocking the request
// and without surfacing failures: delivery errors are logged inside the
// publisher and dropped here.
func (s *Service) notify(ev queue.ReservationEmailEvent) {
	if s.publisher == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.publisher.PublishReservationEmail(ctx, ev); err != nil {
			zap.L().Warn("booking: notification dropped",
				zap.String("kind", ev.Kind),
				zap.Uint64("reservation_id", ev.ReservationID),
			)
		}
	}()
}
