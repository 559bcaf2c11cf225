// Package queue moves reservation e-mail work off the request path.
// Handlers publish events to a durable RabbitMQ queue; a background
// consumer delivers the mail.
package queue

// Event kinds carried by ReservationEmailEvent.
const (
	KindConfirmed = "confirmed"
	KindCancelled = "cancelled"
)

// EmailQueueName is the durable queue holding pending notifications.
const EmailQueueName = "reservation.emails"

// ReservationEmailEvent is published when a reservation is created or
// cancelled.  It carries everything the consumer needs to compose the
// message without querying the database.
type ReservationEmailEvent struct {
	Kind          string `json:"kind"` // confirmed | cancelled
	ReservationID uint64 `json:"reservation_id"`
	UserID        uint64 `json:"user_id"`
	Email         string `json:"email"`
	TripLabel     string `json:"trip_label"`
	OccurredAt    string `json:"occurred_at"` // RFC 3339
}
