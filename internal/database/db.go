package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// Open connects to MySQL and verifies the connection.
func Open(user, pass, host, port, name string) (*sql.DB, error) {
	auth := user
	if pass != "" {
		auth = fmt.Sprintf("%s:%s", user, pass)
	}
	// parseTime=true -> DATETIME -> time.Time | loc=UTC keeps times consistent
	dsn := fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		auth, host, port, name)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	return db, nil
}

// schema lists the tables the API needs.  Statements are idempotent so
// EnsureSchema can run on every startup.  Seats carry no foreign key to
// trips and reservations carry none to seats: referential checks happen
// in the handlers, and deletes never cascade.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		firstname     VARCHAR(100)  NOT NULL,
		lastname      VARCHAR(100)  NOT NULL,
		email         VARCHAR(255)  NOT NULL UNIQUE,
		password_hash VARCHAR(255)  NOT NULL,
		created_at    DATETIME      NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS trips (
		id                BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		label             VARCHAR(255)    NOT NULL,
		departure_station VARCHAR(255)    NOT NULL,
		arrival_station   VARCHAR(255)    NOT NULL,
		departure_time    DATETIME        NOT NULL,
		arrival_time      DATETIME        NOT NULL,
		price             INT UNSIGNED    NOT NULL,
		created_at        DATETIME        NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS seats (
		id          BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		trip_id     BIGINT UNSIGNED NOT NULL,
		seat_number INT UNSIGNED    NOT NULL,
		status      VARCHAR(20)     NOT NULL DEFAULT 'Available',
		created_at  DATETIME        NOT NULL DEFAULT CURRENT_TIMESTAMP,
		INDEX idx_seats_trip (trip_id)
	)`,
	`CREATE TABLE IF NOT EXISTS reservations (
		id         BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		user_id    BIGINT UNSIGNED NOT NULL,
		trip_id    BIGINT UNSIGNED NOT NULL,
		seat_id    BIGINT UNSIGNED NOT NULL,
		status     VARCHAR(20)     NOT NULL DEFAULT 'Pending',
		created_at DATETIME        NOT NULL DEFAULT CURRENT_TIMESTAMP,
		INDEX idx_reservations_user (user_id)
	)`,
}

// EnsureSchema creates any missing tables.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
