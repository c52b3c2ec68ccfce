package payment

import (
	"context"
	"fmt"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/access"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/payment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/metrics"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type ChargeAppointment struct {
	repo    domain.Repository
	audit   audit.Recorder
	metrics *metrics.Metrics
}

func NewChargeAppointment(
	repo domain.Repository,
	audit audit.Recorder,
	m *metrics.Metrics,
) *ChargeAppointment {
	return &ChargeAppointment{
		repo:    repo,
		audit:   audit,
		metrics: m,
	}
}

// Execute issues a PIX charge for the appointment's effective price.
func (uc *ChargeAppointment) Execute(
	ctx context.Context,
	actor access.Actor,
	appointmentID uint,
) (*models.Payment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil || (!actor.IsAdmin() && ap.StaffID != actor.UserID) {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}
	if ap.Status == string(appointment.StatusCancelled) {
		return nil, httperr.ErrBusiness("invalid_state")
	}
	if domain.Status(ap.PaymentStatus) == domain.StatusPaid {
		return nil, httperr.ErrBusiness("already_paid")
	}

	open, err := uc.repo.HasOpenAppointmentPayment(ctx, ap.ID)
	if err != nil {
		return nil, err
	}
	if open {
		return nil, httperr.ErrBusiness("payment_already_issued")
	}

	settings, err := uc.repo.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	// A missing or inactive staff profile just falls back to the business key.
	staff, _ := uc.repo.GetStaff(ctx, ap.StaffID)

	key, err := ResolveKey(staff, settings)
	if err != nil {
		return nil, err
	}

	staffID := ap.StaffID
	p, err := issue(ctx, uc.repo, settings, charge{
		key:           key,
		amount:        ap.EffectivePrice(),
		description:   fmt.Sprintf("%s #%d", ap.Service.Name, ap.ID),
		dueDate:       ap.StartTime,
		txPrefix:      domain.PrefixAppointment,
		appointmentID: &ap.ID,
		clientID:      ap.ClientID,
		staffID:       &staffID,
	})
	if err != nil {
		return nil, err
	}

	uc.metrics.PaymentIssued("appointment", p.Provider)

	uc.audit.Dispatch(audit.Event{
		UserID:   &actor.UserID,
		Action:   "payment_issued",
		Entity:   "payment",
		EntityID: &p.ID,
		Metadata: map[string]any{"appointment_id": ap.ID, "amount": p.Amount},
	})

	return p, nil
}
