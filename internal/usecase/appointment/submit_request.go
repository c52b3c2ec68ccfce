package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

const (
	RequestPending  = "pending"
	RequestApproved = "approved"
	RequestRejected = "rejected"
)

type SubmitRequestOutput struct {
	Draft   booking.Draft              `json:"draft"`
	Request *models.AppointmentRequest `json:"request,omitempty"`
}

// SubmitRequest drives the client booking wizard. Each call validates the
// fields filled so far and moves the draft one step; the confirm step
// persists a pending request for staff review.
type SubmitRequest struct {
	repo  domain.Repository
	audit audit.Recorder
}

func NewSubmitRequest(
	repo domain.Repository,
	audit audit.Recorder,
) *SubmitRequest {
	return &SubmitRequest{
		repo:  repo,
		audit: audit,
	}
}

func (uc *SubmitRequest) Execute(
	ctx context.Context,
	userID uint,
	draft booking.Draft,
) (*SubmitRequestOutput, error) {

	client, err := uc.repo.GetClientByUserID(ctx, userID)
	if err != nil {
		return nil, httperr.ErrBusiness("client_profile_not_found")
	}

	if err := draft.Advance(); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Serviço
	// --------------------------------------------------
	service, err := uc.repo.GetService(ctx, draft.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	if draft.Step == booking.StepStaff {
		return &SubmitRequestOutput{Draft: draft}, nil
	}

	// --------------------------------------------------
	// Profissional
	// --------------------------------------------------
	if _, err := uc.repo.GetStaff(ctx, draft.StaffID); err != nil {
		return nil, httperr.ErrBusiness("staff_not_found")
	}

	if draft.Step == booking.StepSlot {
		return &SubmitRequestOutput{Draft: draft}, nil
	}

	// --------------------------------------------------
	// Horário: antecedência mínima + expediente
	// --------------------------------------------------
	settings, err := uc.repo.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	start, err := timezone.ParseDateTime(settings.Timezone, draft.Date, draft.Time)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	now := timezone.NowIn(settings.Timezone)
	if start.Before(now.Add(time.Duration(settings.MinAdvanceMinutes) * time.Minute)) {
		return nil, httperr.ErrBusiness("too_soon")
	}

	end := start.Add(time.Duration(service.DurationMin) * time.Minute)

	wh, err := uc.repo.GetWorkingHours(ctx, draft.StaffID, int(start.Weekday()))
	if err != nil || !domain.IsWithinWorkingHours(wh, start, end) {
		return nil, httperr.ErrBusiness("outside_working_hours")
	}

	if draft.Step == booking.StepConfirm {
		return &SubmitRequestOutput{Draft: draft}, nil
	}

	// --------------------------------------------------
	// Pedido
	// --------------------------------------------------
	req := &models.AppointmentRequest{
		ClientID:       client.ID,
		StaffID:        draft.StaffID,
		ServiceID:      service.ID,
		RequestedStart: start,
		Notes:          draft.Notes,
		Status:         RequestPending,
	}

	if err := uc.repo.CreateRequest(ctx, req); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "appointment_requested",
		Entity:   "appointment_request",
		EntityID: &req.ID,
	})

	return &SubmitRequestOutput{Draft: draft, Request: req}, nil
}
