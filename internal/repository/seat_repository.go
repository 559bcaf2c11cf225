package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gkidjo/train-booking-api/internal/model"
)

// SeatRepo provides access to the seats table.
type SeatRepo struct{ db *sql.DB }

func NewSeatRepo(db *sql.DB) *SeatRepo { return &SeatRepo{db: db} }

const seatCols = "id, trip_id, seat_number, status, created_at"

// Create inserts a seat.  The trip reference is taken as-is: there is
// no check that the trip exists, and duplicate seat numbers per trip
// are permitted.
func (r *SeatRepo) Create(ctx context.Context, s *model.Seat) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO seats (trip_id, seat_number, status) VALUES (?,?,?)",
		s.TripID, s.SeatNumber, s.Status)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	return nil
}

// GetByID fetches a seat by id.
func (r *SeatRepo) GetByID(ctx context.Context, id uint64) (*model.Seat, error) {
	var s model.Seat
	err := r.db.QueryRowContext(ctx,
		"SELECT "+seatCols+" FROM seats WHERE id=?", id).
		Scan(&s.ID, &s.TripID, &s.SeatNumber, &s.Status, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSeatNotFound
		}
		return nil, err
	}
	return &s, nil
}

// List returns every seat in the inventory.
func (r *SeatRepo) List(ctx context.Context) ([]model.Seat, error) {
	return r.query(ctx, "SELECT "+seatCols+" FROM seats ORDER BY trip_id, seat_number")
}

// ListByTrip returns all seats of a trip ordered by seat number.
func (r *SeatRepo) ListByTrip(ctx context.Context, tripID uint64) ([]model.Seat, error) {
	return r.query(ctx,
		"SELECT "+seatCols+" FROM seats WHERE trip_id=? ORDER BY seat_number", tripID)
}

// ListAvailableByTrip returns the trip's seats whose status is Available.
func (r *SeatRepo) ListAvailableByTrip(ctx context.Context, tripID uint64) ([]model.Seat, error) {
	return r.query(ctx,
		"SELECT "+seatCols+" FROM seats WHERE trip_id=? AND status=? ORDER BY seat_number",
		tripID, model.SeatAvailable)
}

// Update overwrites seat_number and status.  Last writer wins; there is
// no optimistic-concurrency check.
func (r *SeatRepo) Update(ctx context.Context, id uint64, seatNumber uint32, status string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE seats SET seat_number=?, status=? WHERE id=?", seatNumber, status, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// UpdateStatus unconditionally overwrites the seat status.  Last
// writer wins; there is no optimistic-concurrency check.
func (r *SeatRepo) UpdateStatus(ctx context.Context, id uint64, status string) error {
	res, err := r.db.ExecContext(ctx, "UPDATE seats SET status=? WHERE id=?", status, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// A no-op write (already at the target status) is fine; only a
		// missing row is an error.
		var one int
		err := r.db.QueryRowContext(ctx, "SELECT 1 FROM seats WHERE id=?", id).Scan(&one)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrSeatNotFound
		}
		return err
	}
	return nil
}

// Delete removes a seat.
func (r *SeatRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM seats WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrSeatNotFound
	}
	return nil
}

func (r *SeatRepo) query(ctx context.Context, q string, args ...any) ([]model.Seat, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Seat
	for rows.Next() {
		var s model.Seat
		if err := rows.Scan(&s.ID, &s.TripID, &s.SeatNumber, &s.Status, &s.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	return result, rows.Err()
}
