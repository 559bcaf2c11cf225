package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/gkidjo/train-booking-api/internal/model"
)

// TripRepo provides access to the trips table.
type TripRepo struct{ db *sql.DB }

func NewTripRepo(db *sql.DB) *TripRepo { return &TripRepo{db: db} }

const tripCols = "id, label, departure_station, arrival_station, departure_time, arrival_time, price, created_at"

func scanTrip(row interface{ Scan(...any) error }) (*model.Trip, error) {
	var t model.Trip
	err := row.Scan(&t.ID, &t.Label, &t.DepartureStation, &t.ArrivalStation,
		&t.DepartureTime, &t.ArrivalTime, &t.Price, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTripNotFound
		}
		return nil, err
	}
	return &t, nil
}

// Create inserts a trip.  On success the trip's ID is populated.
func (r *TripRepo) Create(ctx context.Context, t *model.Trip) error {
	const q = `INSERT INTO trips (label, departure_station, arrival_station, departure_time, arrival_time, price)
	           VALUES (?,?,?,?,?,?)`
	res, err := r.db.ExecContext(ctx, q,
		t.Label, t.DepartureStation, t.ArrivalStation, t.DepartureTime, t.ArrivalTime, t.Price)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = uint64(id)
	return nil
}

// GetByID fetches a trip by id.
func (r *TripRepo) GetByID(ctx context.Context, id uint64) (*model.Trip, error) {
	return scanTrip(r.db.QueryRowContext(ctx,
		"SELECT "+tripCols+" FROM trips WHERE id=?", id))
}

// List returns all trips ordered by departure time.
func (r *TripRepo) List(ctx context.Context) ([]model.Trip, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+tripCols+" FROM trips ORDER BY departure_time")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Trip
	for rows.Next() {
		var t model.Trip
		if err := rows.Scan(&t.ID, &t.Label, &t.DepartureStation, &t.ArrivalStation,
			&t.DepartureTime, &t.ArrivalTime, &t.Price, &t.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	return result, rows.Err()
}

// TripPatch carries the optional fields of a partial trip update.  Nil
// fields keep their current value.
type TripPatch struct {
	Label            *string
	DepartureStation *string
	ArrivalStation   *string
	DepartureTime    *time.Time
	ArrivalTime      *time.Time
	Price            *uint32
}

// Update applies a partial update.  Returns ErrTripNotFound when the id
// does not match any row.
func (r *TripRepo) Update(ctx context.Context, id uint64, p TripPatch) error {
	const q = `UPDATE trips SET
	           label             = COALESCE(?, label),
	           departure_station = COALESCE(?, departure_station),
	           arrival_station   = COALESCE(?, arrival_station),
	           departure_time    = COALESCE(?, departure_time),
	           arrival_time      = COALESCE(?, arrival_time),
	           price             = COALESCE(?, price)
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q,
		p.Label, p.DepartureStation, p.ArrivalStation, p.DepartureTime, p.ArrivalTime, p.Price, id)
	if err != nil {
		return err
	}
	// RowsAffected is 0 both for a miss and for a no-op update; only a
	// miss should surface as not-found.
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a trip.  Seats and reservations referencing it are
// left in place; there is no cascade.
func (r *TripRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM trips WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrTripNotFound
	}
	return nil
}
