package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/payment"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type PaymentGormRepository struct {
	db       *gorm.DB
	settings *SettingsStore
}

func NewPaymentGormRepository(db *gorm.DB, settings *SettingsStore) *PaymentGormRepository {
	return &PaymentGormRepository{db: db, settings: settings}
}

func (r *PaymentGormRepository) Transaction(
	ctx context.Context,
	fn func(tx domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PaymentGormRepository{db: tx, settings: r.settings})
	})
}

func (r *PaymentGormRepository) GetSettings(ctx context.Context) (*models.BusinessSettings, error) {
	return r.settings.Get(ctx)
}

func (r *PaymentGormRepository) GetClient(
	ctx context.Context,
	clientID uint,
) (*models.Client, error) {

	var client models.Client
	if err := r.db.WithContext(ctx).First(&client, clientID).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *PaymentGormRepository) GetStaff(
	ctx context.Context,
	staffID uint,
) (*models.User, error) {
	return getStaff(ctx, r.db, staffID)
}

// --------------------------------------------------
// Appointment / subscription
// --------------------------------------------------

func (r *PaymentGormRepository) GetAppointment(
	ctx context.Context,
	appointmentID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Service").
		Preload("Client").
		First(&ap, appointmentID).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *PaymentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ?", ap.ID).
		Update("payment_status", ap.PaymentStatus).Error
}

func (r *PaymentGormRepository) GetSubscription(
	ctx context.Context,
	subscriptionID uint,
) (*models.Subscription, error) {

	var sub models.Subscription
	if err := r.db.WithContext(ctx).
		Preload("Client").
		First(&sub, subscriptionID).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *PaymentGormRepository) CreateSubscription(
	ctx context.Context,
	sub *models.Subscription,
) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(sub).Error
}

func (r *PaymentGormRepository) ListSubscriptions(
	ctx context.Context,
	status string,
) ([]models.Subscription, error) {

	q := r.db.WithContext(ctx).Preload("Client")
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var out []models.Subscription
	if err := q.Order("next_billing_date ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PaymentGormRepository) UpdateSubscription(
	ctx context.Context,
	sub *models.Subscription,
) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(sub).Error
}

// --------------------------------------------------
// Payment
// --------------------------------------------------

func (r *PaymentGormRepository) CreatePayment(
	ctx context.Context,
	p *models.Payment,
) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PaymentGormRepository) GetPayment(
	ctx context.Context,
	paymentID uint,
) (*models.Payment, error) {

	var p models.Payment
	if err := r.db.WithContext(ctx).First(&p, paymentID).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PaymentGormRepository) UpdatePayment(
	ctx context.Context,
	p *models.Payment,
) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *PaymentGormRepository) ListPayments(
	ctx context.Context,
	f domain.Filter,
) ([]models.Payment, error) {

	q := r.db.WithContext(ctx)
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if !f.From.IsZero() {
		q = q.Where("due_date >= ?", f.From)
	}
	if !f.To.IsZero() {
		q = q.Where("due_date < ?", f.To)
	}

	var out []models.Payment
	if err := q.Order("due_date ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PaymentGormRepository) HasOpenAppointmentPayment(
	ctx context.Context,
	appointmentID uint,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Where("appointment_id = ? AND status IN ?", appointmentID, domain.OpenStatuses).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PaymentGormRepository) ListPendingDueBefore(
	ctx context.Context,
	before time.Time,
) ([]models.Payment, error) {

	var out []models.Payment
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("status = ? AND due_date < ?", string(domain.StatusPending), before).
		Order("due_date ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Compile-time check
var _ domain.Repository = (*PaymentGormRepository)(nil)
