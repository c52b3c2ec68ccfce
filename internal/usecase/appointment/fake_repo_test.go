package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

var errNotFound = errors.New("record not found")

// memRepo is an in-memory domain.Repository. Transactions run inline.
type memRepo struct {
	settings     models.BusinessSettings
	services     map[uint]*models.Service
	staff        map[uint]*models.User
	clients      map[uint]*models.Client
	workingHours map[uint]map[int]*models.WorkingHours

	appointments []models.Appointment
	requests     []models.AppointmentRequest
}

func newMemRepo() *memRepo {
	return &memRepo{
		settings: models.BusinessSettings{
			ID:                1,
			Name:              "Styllus",
			Timezone:          "America/Sao_Paulo",
			MinAdvanceMinutes: 120,
		},
		services:     map[uint]*models.Service{},
		staff:        map[uint]*models.User{},
		clients:      map[uint]*models.Client{},
		workingHours: map[uint]map[int]*models.WorkingHours{},
	}
}

func (r *memRepo) Transaction(ctx context.Context, fn func(tx domain.Repository) error) error {
	snapshot := append([]models.Appointment(nil), r.appointments...)
	if err := fn(r); err != nil {
		r.appointments = snapshot
		return err
	}
	return nil
}

func (r *memRepo) GetSettings(context.Context) (*models.BusinessSettings, error) {
	s := r.settings
	return &s, nil
}

func (r *memRepo) GetService(_ context.Context, id uint) (*models.Service, error) {
	if s, ok := r.services[id]; ok && s.Active {
		cp := *s
		return &cp, nil
	}
	return nil, errNotFound
}

func (r *memRepo) GetStaff(_ context.Context, id uint) (*models.User, error) {
	if u, ok := r.staff[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, errNotFound
}

func (r *memRepo) GetClient(_ context.Context, id uint) (*models.Client, error) {
	if c, ok := r.clients[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, errNotFound
}

func (r *memRepo) GetClientByUserID(_ context.Context, userID uint) (*models.Client, error) {
	for _, c := range r.clients {
		if c.UserID != nil && *c.UserID == userID {
			cp := *c
			return &cp, nil
		}
	}
	return nil, errNotFound
}

func (r *memRepo) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	ap.ID = uint(len(r.appointments) + 1)
	r.appointments = append(r.appointments, *ap)
	return nil
}

func (r *memRepo) CreateAppointments(ctx context.Context, aps []models.Appointment) error {
	for i := range aps {
		if err := r.CreateAppointment(ctx, &aps[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *memRepo) AssertNoTimeConflict(_ context.Context, staffID uint, start, end time.Time) error {
	for _, ap := range r.appointments {
		active := ap.Status == string(domain.StatusPending) || ap.Status == string(domain.StatusConfirmed)
		if ap.StaffID == staffID && active && ap.StartTime.Before(end) && ap.EndTime.After(start) {
			return httperr.ErrBusiness("time_conflict")
		}
	}
	return nil
}

func (r *memRepo) GetAppointment(_ context.Context, id uint) (*models.Appointment, error) {
	for _, ap := range r.appointments {
		if ap.ID == id {
			cp := ap
			return &cp, nil
		}
	}
	return nil, errNotFound
}

func (r *memRepo) GetAppointmentForStaff(ctx context.Context, id, staffID uint) (*models.Appointment, error) {
	ap, err := r.GetAppointment(ctx, id)
	if err != nil || ap.StaffID != staffID {
		return nil, errNotFound
	}
	return ap, nil
}

func (r *memRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	for i := range r.appointments {
		if r.appointments[i].ID == ap.ID {
			r.appointments[i] = *ap
			return nil
		}
	}
	return errNotFound
}

func (r *memRepo) ListOccurrences(_ context.Context, parentID uint) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.ParentAppointmentID != nil && *ap.ParentAppointmentID == parentID {
			out = append(out, ap)
		}
	}
	return out, nil
}

func (r *memRepo) GetWorkingHours(_ context.Context, staffID uint, weekday int) (*models.WorkingHours, error) {
	if wh, ok := r.workingHours[staffID][weekday]; ok {
		return wh, nil
	}
	return nil, errNotFound
}

func (r *memRepo) ListAppointmentsForDay(_ context.Context, staffID uint, start, end time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.StaffID == staffID && ap.StartTime.Before(end) && ap.EndTime.After(start) &&
			(ap.Status == string(domain.StatusPending) || ap.Status == string(domain.StatusConfirmed)) {
			out = append(out, ap)
		}
	}
	return out, nil
}

func (r *memRepo) ListAppointmentsForPeriod(_ context.Context, staffID *uint, start, end time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range r.appointments {
		if staffID != nil && ap.StaffID != *staffID {
			continue
		}
		if !ap.StartTime.Before(start) && ap.StartTime.Before(end) {
			out = append(out, ap)
		}
	}
	return out, nil
}

func (r *memRepo) CreateRequest(_ context.Context, req *models.AppointmentRequest) error {
	req.ID = uint(len(r.requests) + 1)
	r.requests = append(r.requests, *req)
	return nil
}

func (r *memRepo) GetRequest(_ context.Context, id uint) (*models.AppointmentRequest, error) {
	for _, req := range r.requests {
		if req.ID == id {
			cp := req
			return &cp, nil
		}
	}
	return nil, errNotFound
}

func (r *memRepo) UpdateRequest(_ context.Context, req *models.AppointmentRequest) error {
	for i := range r.requests {
		if r.requests[i].ID == req.ID {
			r.requests[i] = *req
			return nil
		}
	}
	return errNotFound
}

func (r *memRepo) ListRequests(_ context.Context, staffID *uint, status string) ([]models.AppointmentRequest, error) {
	var out []models.AppointmentRequest
	for _, req := range r.requests {
		if staffID != nil && req.StaffID != *staffID {
			continue
		}
		if status != "" && req.Status != status {
			continue
		}
		out = append(out, req)
	}
	return out, nil
}

var _ domain.Repository = (*memRepo)(nil)

// overlapRejectingRepo fails updates the way the Postgres exclusion constraint
// does when a concurrent booking took the slot.
type overlapRejectingRepo struct {
	*memRepo
}

func (r *overlapRejectingRepo) UpdateAppointment(context.Context, *models.Appointment) error {
	return &pgconn.PgError{Code: "23P01", ConstraintName: "appointments_no_overlap"}
}
