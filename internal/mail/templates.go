package mail

import "fmt"

// Notification subjects and bodies.  The service mails its travellers
// in French.
const (
	SubjectConfirmation = "Réservation de billet"
	SubjectCancellation = "Annulation de billet"
)

// ConfirmationBody builds the booking-confirmation message for a trip.
func ConfirmationBody(tripLabel string) string {
	return fmt.Sprintf("Votre billet a été bien enregistré.\nTrajet: %s", tripLabel)
}

// CancellationBody builds the cancellation message for a trip.
func CancellationBody(tripLabel string) string {
	return fmt.Sprintf("Votre billet a été annulé.\nTrajet: %s", tripLabel)
}
