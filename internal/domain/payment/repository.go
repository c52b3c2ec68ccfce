package payment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// Filter narrows payment listings. Zero values leave a bound open.
type Filter struct {
	Status string
	From   time.Time
	To     time.Time
}

type Repository interface {
	GetSettings(ctx context.Context) (*models.BusinessSettings, error)

	GetClient(
		ctx context.Context,
		clientID uint,
	) (*models.Client, error)

	GetStaff(
		ctx context.Context,
		staffID uint,
	) (*models.User, error)

	GetAppointment(
		ctx context.Context,
		appointmentID uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	GetSubscription(
		ctx context.Context,
		subscriptionID uint,
	) (*models.Subscription, error)

	CreateSubscription(
		ctx context.Context,
		sub *models.Subscription,
	) error

	ListSubscriptions(
		ctx context.Context,
		status string,
	) ([]models.Subscription, error)

	UpdateSubscription(
		ctx context.Context,
		sub *models.Subscription,
	) error

	CreatePayment(
		ctx context.Context,
		p *models.Payment,
	) error

	GetPayment(
		ctx context.Context,
		paymentID uint,
	) (*models.Payment, error)

	UpdatePayment(
		ctx context.Context,
		p *models.Payment,
	) error

	ListPayments(
		ctx context.Context,
		f Filter,
	) ([]models.Payment, error)

	// HasOpenAppointmentPayment reports a pending or overdue charge for the appointment.
	HasOpenAppointmentPayment(
		ctx context.Context,
		appointmentID uint,
	) (bool, error)

	ListPendingDueBefore(
		ctx context.Context,
		before time.Time,
	) ([]models.Payment, error)

	Transaction(
		ctx context.Context,
		fn func(tx Repository) error,
	) error
}
