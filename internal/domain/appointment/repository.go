package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type Repository interface {
	// -------- Transaction --------
	Transaction(
		ctx context.Context,
		fn func(tx Repository) error,
	) error

	// -------- Settings / catalogue --------
	GetSettings(ctx context.Context) (*models.BusinessSettings, error)

	GetService(
		ctx context.Context,
		serviceID uint,
	) (*models.Service, error)

	GetStaff(
		ctx context.Context,
		staffID uint,
	) (*models.User, error)

	// -------- Client --------
	GetClient(
		ctx context.Context,
		clientID uint,
	) (*models.Client, error)

	GetClientByUserID(
		ctx context.Context,
		userID uint,
	) (*models.Client, error)

	// -------- Appointment (create / conflict) --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	CreateAppointments(
		ctx context.Context,
		aps []models.Appointment,
	) error

	AssertNoTimeConflict(
		ctx context.Context,
		staffID uint,
		start time.Time,
		end time.Time,
	) error

	// -------- Appointment (state change) --------
	GetAppointment(
		ctx context.Context,
		appointmentID uint,
	) (*models.Appointment, error)

	GetAppointmentForStaff(
		ctx context.Context,
		appointmentID uint,
		staffID uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	ListOccurrences(
		ctx context.Context,
		parentID uint,
	) ([]models.Appointment, error)

	// -------- Availability --------
	GetWorkingHours(
		ctx context.Context,
		staffID uint,
		weekday int,
	) (*models.WorkingHours, error)

	ListAppointmentsForDay(
		ctx context.Context,
		staffID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	ListAppointmentsForPeriod(
		ctx context.Context,
		staffID *uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	// -------- Requests --------
	CreateRequest(
		ctx context.Context,
		req *models.AppointmentRequest,
	) error

	GetRequest(
		ctx context.Context,
		requestID uint,
	) (*models.AppointmentRequest, error)

	UpdateRequest(
		ctx context.Context,
		req *models.AppointmentRequest,
	) error

	ListRequests(
		ctx context.Context,
		staffID *uint,
		status string,
	) ([]models.AppointmentRequest, error)
}
