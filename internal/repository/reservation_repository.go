package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gkidjo/train-booking-api/internal/model"
)

// ReservationRepo provides access to the reservations table and owns
// the two atomic booking-workflow writes that touch the seat inventory
// alongside the ledger.
type ReservationRepo struct{ db *sql.DB }

func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

const reservationCols = "id, user_id, trip_id, seat_id, status, created_at"

// GetByID fetches a reservation by id.
func (r *ReservationRepo) GetByID(ctx context.Context, id uint64) (*model.Reservation, error) {
	var v model.Reservation
	err := r.db.QueryRowContext(ctx,
		"SELECT "+reservationCols+" FROM reservations WHERE id=?", id).
		Scan(&v.ID, &v.UserID, &v.TripID, &v.SeatID, &v.Status, &v.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	return &v, nil
}

// List returns every reservation in the ledger.
func (r *ReservationRepo) List(ctx context.Context) ([]model.Reservation, error) {
	return r.query(ctx, "SELECT "+reservationCols+" FROM reservations ORDER BY id")
}

// ListByUser returns the reservations belonging to a user.
func (r *ReservationRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Reservation, error) {
	return r.query(ctx,
		"SELECT "+reservationCols+" FROM reservations WHERE user_id=? ORDER BY id", userID)
}

// CreateAndReserveSeat inserts a Pending reservation and flips the
// referenced seat to Reserved in a single transaction, so the ledger
// and the inventory cannot diverge on a crash between the two writes.
// On success the reservation's ID and status are populated.
func (r *ReservationRepo) CreateAndReserveSeat(ctx context.Context, v *model.Reservation) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx,
		"INSERT INTO reservations (user_id, trip_id, seat_id, status) VALUES (?,?,?,?)",
		v.UserID, v.TripID, v.SeatID, model.ReservationPending)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		"UPDATE seats SET status=? WHERE id=?", model.SeatReserved, v.SeatID); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	v.ID = uint64(id)
	v.Status = model.ReservationPending
	return nil
}

// CancelAndReleaseSeat marks the reservation as cancelled and flips the
// seat back to Available in a single transaction.  Returns
// ErrReservationNotFound when the id does not match any row.
func (r *ReservationRepo) CancelAndReleaseSeat(ctx context.Context, id, seatID uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx,
		"UPDATE reservations SET status=? WHERE id=?", model.ReservationCancel, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var one int
		if err := tx.QueryRowContext(ctx,
			"SELECT 1 FROM reservations WHERE id=?", id).Scan(&one); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrReservationNotFound
			}
			return err
		}
	}
	if _, err := tx.ExecContext(ctx,
		"UPDATE seats SET status=? WHERE id=?", model.SeatAvailable, seatID); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// SetStatus overwrites the reservation status without touching the
// seat.  Used by the generic update endpoint, which deliberately
// bypasses seat-status synchronization.
func (r *ReservationRepo) SetStatus(ctx context.Context, id uint64, status string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE reservations SET status=? WHERE id=?", status, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var one int
		err := r.db.QueryRowContext(ctx,
			"SELECT 1 FROM reservations WHERE id=?", id).Scan(&one)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrReservationNotFound
		}
		return err
	}
	return nil
}

// Delete removes a reservation.  The referenced seat is left untouched.
func (r *ReservationRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM reservations WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrReservationNotFound
	}
	return nil
}

func (r *ReservationRepo) query(ctx context.Context, q string, args ...any) ([]model.Reservation, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Reservation
	for rows.Next() {
		var v model.Reservation
		if err := rows.Scan(&v.ID, &v.UserID, &v.TripID, &v.SeatID, &v.Status, &v.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, v)
	}
	return result, rows.Err()
}
