package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/metrics"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	ActorID uint
	StaffID uint

	Client    domain.ClientIdentification
	ServiceID uint

	Date  string
	Time  string
	Price *float64
	Notes string

	RecurrenceType    string
	RecurrenceDays    []int
	RecurrenceEndDate string

	// Set by request approval: the slot must also fit the staff schedule.
	RequireWorkingHours bool
}

type CreateAppointmentOutput struct {
	Appointment *models.Appointment `json:"appointment"`
	Occurrences int                 `json:"occurrences"`
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo                domain.Repository
	audit               audit.Recorder
	metrics             *metrics.Metrics
	maxRecurrenceMonths int
}

func NewCreateAppointment(
	repo domain.Repository,
	audit audit.Recorder,
	m *metrics.Metrics,
	maxRecurrenceMonths int,
) *CreateAppointment {
	if maxRecurrenceMonths <= 0 {
		maxRecurrenceMonths = 12
	}
	return &CreateAppointment{
		repo:                repo,
		audit:               audit,
		metrics:             m,
		maxRecurrenceMonths: maxRecurrenceMonths,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*CreateAppointmentOutput, error) {

	if in.Client == nil {
		return nil, httperr.ErrBusiness("client_required")
	}

	settings, err := uc.repo.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Data / hora no timezone do salão
	// --------------------------------------------------
	start, err := timezone.ParseDateTime(settings.Timezone, in.Date, in.Time)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	if in.Price != nil && *in.Price < 0 {
		return nil, httperr.ErrBusiness("invalid_price")
	}

	// --------------------------------------------------
	// Recorrência
	// --------------------------------------------------
	rec, err := uc.parseRecurrence(settings.Timezone, start, in)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Profissional / serviço / cliente
	// --------------------------------------------------
	if _, err := uc.repo.GetStaff(ctx, in.StaffID); err != nil {
		return nil, httperr.ErrBusiness("staff_not_found")
	}

	service, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	if reg, ok := in.Client.(domain.Registered); ok {
		if _, err := uc.repo.GetClient(ctx, reg.ClientID); err != nil {
			return nil, httperr.ErrBusiness("client_not_found")
		}
	}

	end := start.Add(time.Duration(service.DurationMin) * time.Minute)

	if in.RequireWorkingHours {
		wh, err := uc.repo.GetWorkingHours(ctx, in.StaffID, int(start.Weekday()))
		if err != nil || !domain.IsWithinWorkingHours(wh, start, end) {
			return nil, httperr.ErrBusiness("outside_working_hours")
		}
	}

	seed := &models.Appointment{
		StaffID:       in.StaffID,
		ServiceID:     service.ID,
		StartTime:     start,
		EndTime:       end,
		Price:         in.Price,
		PaymentStatus: "pending",
		Status:        string(domain.InitialStatus()),
		Notes:         in.Notes,
	}
	domain.SetClient(seed, in.Client)
	rec.ApplyTo(seed)

	// --------------------------------------------------
	// Seed + ocorrências na mesma transação
	// --------------------------------------------------
	var occurrences []models.Appointment

	err = uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		if err := tx.AssertNoTimeConflict(ctx, in.StaffID, start, end); err != nil {
			return err
		}

		if err := tx.CreateAppointment(ctx, seed); err != nil {
			return err
		}

		occurrences = domain.Expand(seed, rec)
		return tx.CreateAppointments(ctx, occurrences)
	})
	if err != nil {
		if httperr.IsExclusionConflict(err) {
			return nil, httperr.ErrBusiness("time_conflict")
		}
		if httperr.IsBusiness(err, "time_conflict") {
			uc.audit.Dispatch(audit.Event{
				UserID: &in.ActorID,
				Action: "appointment_conflict",
				Entity: "appointment",
				Metadata: map[string]any{
					"staff_id": in.StaffID,
					"start":    start,
					"end":      end,
				},
			})
		}
		return nil, err
	}

	seed.Service = *service
	uc.metrics.AppointmentsCreated(len(occurrences))

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.ActorID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &seed.ID,
		Metadata: map[string]any{
			"recurrence":  seed.RecurrenceType,
			"occurrences": len(occurrences),
		},
	})

	return &CreateAppointmentOutput{
		Appointment: seed,
		Occurrences: len(occurrences),
	}, nil
}

// parseRecurrence turns the form's end date into an inclusive end-of-day
// bound and caps it at maxRecurrenceMonths after the seed.
func (uc *CreateAppointment) parseRecurrence(
	tz string,
	start time.Time,
	in CreateAppointmentInput,
) (domain.Recurrence, error) {

	var endDate *time.Time
	if in.RecurrenceEndDate != "" {
		d, err := timezone.ParseDate(tz, in.RecurrenceEndDate)
		if err != nil {
			return domain.Recurrence{}, httperr.ErrBusiness("invalid_recurrence_end_date")
		}
		eod := timezone.EndOfDay(d)

		limit := timezone.EndOfDay(timezone.AddMonthsClamped(start, uc.maxRecurrenceMonths))
		if eod.After(limit) {
			eod = limit
		}
		endDate = &eod
	}

	return domain.ParseRecurrence(in.RecurrenceType, in.RecurrenceDays, endDate)
}
