package appointment

import (
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain/payment"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Apply runs action on ap, stamping the matching timestamp field.
func Apply(ap *models.Appointment, action Action, now time.Time) error {
	next, err := Target(Status(ap.Status), action)
	if err != nil {
		return err
	}

	ap.Status = string(next)

	switch next {
	case StatusConfirmed:
		ap.ConfirmedAt = &now
	case StatusCompleted:
		ap.CompletedAt = &now
	case StatusCancelled:
		ap.CancelledAt = &now
	case StatusPending:
		ap.ConfirmedAt = nil
		ap.CompletedAt = nil
		ap.CancelledAt = nil
	}
	return nil
}

func SetPaymentStatus(ap *models.Appointment, status payment.Status) {
	ap.PaymentStatus = string(status)
}
