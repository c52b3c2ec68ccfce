package appointment

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/access"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

// ReviewRequest approves or rejects a client's pending request. Approval
// books it through CreateAppointment as a registered-client appointment.
type ReviewRequest struct {
	repo   domain.Repository
	create *CreateAppointment
	audit  audit.Recorder
}

func NewReviewRequest(
	repo domain.Repository,
	create *CreateAppointment,
	audit audit.Recorder,
) *ReviewRequest {
	return &ReviewRequest{
		repo:   repo,
		create: create,
		audit:  audit,
	}
}

func (uc *ReviewRequest) Approve(
	ctx context.Context,
	actor access.Actor,
	requestID uint,
) (*models.AppointmentRequest, error) {

	req, err := uc.pending(ctx, actor, requestID)
	if err != nil {
		return nil, err
	}

	settings, err := uc.repo.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	local := req.RequestedStart.In(timezone.Location(settings.Timezone))

	out, err := uc.create.Execute(ctx, CreateAppointmentInput{
		ActorID:             actor.UserID,
		StaffID:             req.StaffID,
		Client:              domain.Registered{ClientID: req.ClientID},
		ServiceID:           req.ServiceID,
		Date:                local.Format("2006-01-02"),
		Time:                local.Format("15:04"),
		Notes:               req.Notes,
		RequireWorkingHours: true,
	})
	if err != nil {
		return nil, err
	}

	req.Status = RequestApproved
	req.AppointmentID = &out.Appointment.ID
	req.ReviewedBy = &actor.UserID

	if err := uc.repo.UpdateRequest(ctx, req); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actor.UserID,
		Action:   "appointment_request_approved",
		Entity:   "appointment_request",
		EntityID: &req.ID,
		Metadata: map[string]any{"appointment_id": out.Appointment.ID},
	})

	return req, nil
}

func (uc *ReviewRequest) Reject(
	ctx context.Context,
	actor access.Actor,
	requestID uint,
	reason string,
) (*models.AppointmentRequest, error) {

	req, err := uc.pending(ctx, actor, requestID)
	if err != nil {
		return nil, err
	}

	req.Status = RequestRejected
	req.RejectReason = strings.TrimSpace(reason)
	req.ReviewedBy = &actor.UserID

	if err := uc.repo.UpdateRequest(ctx, req); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actor.UserID,
		Action:   "appointment_request_rejected",
		Entity:   "appointment_request",
		EntityID: &req.ID,
	})

	return req, nil
}

func (uc *ReviewRequest) pending(
	ctx context.Context,
	actor access.Actor,
	requestID uint,
) (*models.AppointmentRequest, error) {

	req, err := uc.repo.GetRequest(ctx, requestID)
	if err != nil {
		return nil, httperr.ErrBusiness("request_not_found")
	}
	if !actor.IsAdmin() && req.StaffID != actor.UserID {
		return nil, httperr.ErrBusiness("request_not_found")
	}
	if req.Status != RequestPending {
		return nil, httperr.ErrBusiness("invalid_state")
	}
	return req, nil
}

// ======================================================
// LIST
// ======================================================

type ListRequests struct {
	repo domain.Repository
}

func NewListRequests(repo domain.Repository) *ListRequests {
	return &ListRequests{repo: repo}
}

// Staff see their own queue; admins see every request.
func (uc *ListRequests) Execute(
	ctx context.Context,
	actor access.Actor,
	status string,
) ([]models.AppointmentRequest, error) {

	var staffID *uint
	if !actor.IsAdmin() {
		id := actor.UserID
		staffID = &id
	}
	return uc.repo.ListRequests(ctx, staffID, status)
}
