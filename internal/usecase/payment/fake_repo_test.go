package payment

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/payment"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

var errNotFound = errors.New("record not found")

type memRepo struct {
	settings      models.BusinessSettings
	staff         map[uint]*models.User
	clients       map[uint]*models.Client
	appointments  map[uint]*models.Appointment
	subscriptions map[uint]*models.Subscription
	payments      []models.Payment
}

func newMemRepo() *memRepo {
	return &memRepo{
		settings: models.BusinessSettings{
			ID:           1,
			Timezone:     "America/Sao_Paulo",
			MerchantName: "Styllus",
			MerchantCity: "Sao Paulo",
		},
		staff:         map[uint]*models.User{},
		clients:       map[uint]*models.Client{},
		appointments:  map[uint]*models.Appointment{},
		subscriptions: map[uint]*models.Subscription{},
	}
}

func (r *memRepo) Transaction(ctx context.Context, fn func(tx domain.Repository) error) error {
	snapshot := append([]models.Payment(nil), r.payments...)
	if err := fn(r); err != nil {
		r.payments = snapshot
		return err
	}
	return nil
}

func (r *memRepo) GetSettings(context.Context) (*models.BusinessSettings, error) {
	s := r.settings
	return &s, nil
}

func (r *memRepo) GetClient(_ context.Context, id uint) (*models.Client, error) {
	if c, ok := r.clients[id]; ok {
		cp := *c
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

func (r *memRepo) GetAppointment(_ context.Context, id uint) (*models.Appointment, error) {
	if ap, ok := r.appointments[id]; ok {
		cp := *ap
		return &cp, nil
	}
	return nil, errNotFound
}

func (r *memRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	cp := *ap
	r.appointments[ap.ID] = &cp
	return nil
}

func (r *memRepo) GetSubscription(_ context.Context, id uint) (*models.Subscription, error) {
	if s, ok := r.subscriptions[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, errNotFound
}

func (r *memRepo) CreateSubscription(_ context.Context, sub *models.Subscription) error {
	sub.ID = uint(len(r.subscriptions) + 1)
	cp := *sub
	r.subscriptions[sub.ID] = &cp
	return nil
}

func (r *memRepo) ListSubscriptions(_ context.Context, status string) ([]models.Subscription, error) {
	var out []models.Subscription
	for _, s := range r.subscriptions {
		if status == "" || s.Status == status {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *memRepo) UpdateSubscription(_ context.Context, sub *models.Subscription) error {
	cp := *sub
	r.subscriptions[sub.ID] = &cp
	return nil
}

func (r *memRepo) CreatePayment(_ context.Context, p *models.Payment) error {
	p.ID = uint(len(r.payments) + 1)
	r.payments = append(r.payments, *p)
	return nil
}

func (r *memRepo) GetPayment(_ context.Context, id uint) (*models.Payment, error) {
	for _, p := range r.payments {
		if p.ID == id {
			cp := p
			return &cp, nil
		}
	}
	return nil, errNotFound
}

func (r *memRepo) UpdatePayment(_ context.Context, p *models.Payment) error {
	for i := range r.payments {
		if r.payments[i].ID == p.ID {
			r.payments[i] = *p
			return nil
		}
	}
	return errNotFound
}

func (r *memRepo) ListPayments(_ context.Context, f domain.Filter) ([]models.Payment, error) {
	var out []models.Payment
	for _, p := range r.payments {
		if f.Status != "" && p.Status != f.Status {
			continue
		}
		if !f.From.IsZero() && p.DueDate.Before(f.From) {
			continue
		}
		if !f.To.IsZero() && !p.DueDate.Before(f.To) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *memRepo) HasOpenAppointmentPayment(_ context.Context, appointmentID uint) (bool, error) {
	for _, p := range r.payments {
		open := p.Status == string(domain.StatusPending) || p.Status == string(domain.StatusOverdue)
		if open && p.AppointmentID != nil && *p.AppointmentID == appointmentID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memRepo) ListPendingDueBefore(_ context.Context, before time.Time) ([]models.Payment, error) {
	var out []models.Payment
	for _, p := range r.payments {
		if p.Status == string(domain.StatusPending) && p.DueDate.Before(before) {
			out = append(out, p)
		}
	}
	return out, nil
}

var _ domain.Repository = (*memRepo)(nil)

// uniqueRejectingRepo fails every insert with a unique violation on constraint,
// the way a concurrent insert surfaces from Postgres.
type uniqueRejectingRepo struct {
	*memRepo
	constraint string
}

func (r *uniqueRejectingRepo) CreatePayment(context.Context, *models.Payment) error {
	return &pgconn.PgError{Code: "23505", ConstraintName: r.constraint}
}

// fakeGateway answers with a fixed status.
type fakeGateway struct {
	status  domain.Status
	charged []GatewayChargeInput
}

func (g *fakeGateway) CreatePixCharge(_ context.Context, in GatewayChargeInput) (*GatewayCharge, error) {
	g.charged = append(g.charged, in)
	return &GatewayCharge{ExternalID: "mp-123", Status: "pending", QRCode: "000201..."}, nil
}

func (g *fakeGateway) ChargeStatus(context.Context, string) (domain.Status, error) {
	return g.status, nil
}
