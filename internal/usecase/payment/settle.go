package payment

import (
	"context"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/payment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/metrics"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

type Settle struct {
	repo    domain.Repository
	audit   audit.Recorder
	metrics *metrics.Metrics
}

func NewSettle(
	repo domain.Repository,
	audit audit.Recorder,
	m *metrics.Metrics,
) *Settle {
	return &Settle{
		repo:    repo,
		audit:   audit,
		metrics: m,
	}
}

// MarkPaid settles the payment and mirrors the status on its appointment.
func (uc *Settle) MarkPaid(
	ctx context.Context,
	actorID *uint,
	paymentID uint,
) (*models.Payment, error) {

	settings, err := uc.repo.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	var p *models.Payment

	err = uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		got, err := tx.GetPayment(ctx, paymentID)
		if err != nil {
			return httperr.ErrBusiness("payment_not_found")
		}
		p = got

		if err := domain.MarkPaid(p, timezone.NowIn(settings.Timezone)); err != nil {
			return err
		}
		if err := tx.UpdatePayment(ctx, p); err != nil {
			return err
		}

		return mirrorOnAppointment(ctx, tx, p, domain.StatusPaid)
	})
	if err != nil {
		return nil, err
	}

	uc.metrics.PaymentSettled(string(domain.StatusPaid), 1)

	uc.audit.Dispatch(audit.Event{
		UserID:   actorID,
		Action:   "payment_paid",
		Entity:   "payment",
		EntityID: &p.ID,
	})

	return p, nil
}

// SweepOverdue flags every pending payment whose due date has passed.
// It returns how many payments changed.
func (uc *Settle) SweepOverdue(ctx context.Context, actorID *uint) (int, error) {
	settings, err := uc.repo.GetSettings(ctx)
	if err != nil {
		return 0, err
	}
	now := timezone.NowIn(settings.Timezone)

	changed := 0

	err = uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		due, err := tx.ListPendingDueBefore(ctx, now)
		if err != nil {
			return err
		}

		for i := range due {
			p := &due[i]
			if !domain.MarkOverdue(p, now) {
				continue
			}
			if err := tx.UpdatePayment(ctx, p); err != nil {
				return err
			}
			if err := mirrorOnAppointment(ctx, tx, p, domain.StatusOverdue); err != nil {
				return err
			}
			changed++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	uc.metrics.PaymentSettled(string(domain.StatusOverdue), changed)

	if changed > 0 {
		uc.audit.Dispatch(audit.Event{
			UserID:   actorID,
			Action:   "payments_overdue",
			Entity:   "payment",
			Metadata: map[string]any{"count": changed},
		})
	}

	return changed, nil
}

func mirrorOnAppointment(
	ctx context.Context,
	tx domain.Repository,
	p *models.Payment,
	status domain.Status,
) error {
	if p.AppointmentID == nil {
		return nil
	}

	ap, err := tx.GetAppointment(ctx, *p.AppointmentID)
	if err != nil {
		// appointment removed since the charge was issued
		return nil
	}

	appointment.SetPaymentStatus(ap, status)
	return tx.UpdateAppointment(ctx, ap)
}
