package appointment

import (
	"context"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/access"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/payment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/metrics"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

type ChangeStatus struct {
	repo    domain.Repository
	audit   audit.Recorder
	metrics *metrics.Metrics
}

func NewChangeStatus(
	repo domain.Repository,
	audit audit.Recorder,
	m *metrics.Metrics,
) *ChangeStatus {
	return &ChangeStatus{
		repo:    repo,
		audit:   audit,
		metrics: m,
	}
}

func (uc *ChangeStatus) Execute(
	ctx context.Context,
	actor access.Actor,
	appointmentID uint,
	action domain.Action,
) (*models.Appointment, error) {

	settings, err := uc.repo.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	ap, err := loadForActor(ctx, uc.repo, actor, appointmentID)
	if err != nil {
		return nil, err
	}

	wasActive := domain.Status(ap.Status).IsActive()

	now := timezone.NowIn(settings.Timezone)
	if err := domain.Apply(ap, action, now); err != nil {
		return nil, err
	}

	// Back on the agenda: the slot may have been booked meanwhile.
	if !wasActive && domain.Status(ap.Status).IsActive() {
		if err := uc.repo.AssertNoTimeConflict(ctx, ap.StaffID, ap.StartTime, ap.EndTime); err != nil {
			return nil, err
		}
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		if httperr.IsExclusionConflict(err) {
			return nil, httperr.ErrBusiness("time_conflict")
		}
		return nil, err
	}

	uc.metrics.StatusChanged(ap.Status)

	uc.audit.Dispatch(audit.Event{
		UserID:   &actor.UserID,
		Action:   "appointment_" + string(action),
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{"status": ap.Status},
	})

	return ap, nil
}

// ======================================================
// PAYMENT STATUS
// ======================================================

type SetPaymentStatus struct {
	repo  domain.Repository
	audit audit.Recorder
}

func NewSetPaymentStatus(
	repo domain.Repository,
	audit audit.Recorder,
) *SetPaymentStatus {
	return &SetPaymentStatus{
		repo:  repo,
		audit: audit,
	}
}

func (uc *SetPaymentStatus) Execute(
	ctx context.Context,
	actor access.Actor,
	appointmentID uint,
	status string,
) (*models.Appointment, error) {

	ps, err := payment.ParseStatus(status)
	if err != nil {
		return nil, err
	}

	ap, err := loadForActor(ctx, uc.repo, actor, appointmentID)
	if err != nil {
		return nil, err
	}

	domain.SetPaymentStatus(ap, ps)

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actor.UserID,
		Action:   "appointment_payment_status",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{"payment_status": ap.PaymentStatus},
	})

	return ap, nil
}

// Admins reach every agenda; staff only their own.
func loadForActor(
	ctx context.Context,
	repo domain.Repository,
	actor access.Actor,
	appointmentID uint,
) (*models.Appointment, error) {

	var (
		ap  *models.Appointment
		err error
	)
	if actor.IsAdmin() {
		ap, err = repo.GetAppointment(ctx, appointmentID)
	} else {
		ap, err = repo.GetAppointmentForStaff(ctx, appointmentID, actor.UserID)
	}
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}
	return ap, nil
}
