package payment

import (
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type Status string

const (
	StatusPending Status = "pending"
	StatusPaid    Status = "paid"
	StatusOverdue Status = "overdue"
)

// OpenStatuses are still awaiting settlement.
var OpenStatuses = []string{string(StatusPending), string(StatusOverdue)}

const (
	ProviderStaticPix   = "static_pix"
	ProviderMercadoPago = "mercadopago"
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusPaid, StatusOverdue:
		return Status(s), nil
	}
	return "", httperr.ErrBusiness("invalid_payment_status")
}

// MarkPaid settles a pending or overdue payment.
func MarkPaid(p *models.Payment, now time.Time) error {
	switch Status(p.Status) {
	case StatusPending, StatusOverdue:
	default:
		return httperr.ErrBusiness("invalid_state")
	}
	p.Status = string(StatusPaid)
	p.PaidAt = &now
	return nil
}

// MarkOverdue flags a pending payment whose due date is before now.
// It reports whether the payment changed.
func MarkOverdue(p *models.Payment, now time.Time) bool {
	if Status(p.Status) != StatusPending || !p.DueDate.Before(now) {
		return false
	}
	p.Status = string(StatusOverdue)
	return true
}
