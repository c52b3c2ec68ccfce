package payment

import (
	"context"
	"fmt"
	"strings"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/payment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/metrics"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateSubscriptionInput struct {
	ActorID      uint
	ClientID     uint
	PlanName     string
	MonthlyPrice float64
	StartDate    string // YYYY-MM-DD
}

// ======================================================
// USE CASE
// ======================================================

type Subscriptions struct {
	repo    domain.Repository
	audit   audit.Recorder
	metrics *metrics.Metrics
}

func NewSubscriptions(
	repo domain.Repository,
	audit audit.Recorder,
	m *metrics.Metrics,
) *Subscriptions {
	return &Subscriptions{
		repo:    repo,
		audit:   audit,
		metrics: m,
	}
}

func (uc *Subscriptions) Create(
	ctx context.Context,
	in CreateSubscriptionInput,
) (*models.Subscription, error) {

	plan := strings.TrimSpace(in.PlanName)
	if plan == "" {
		return nil, httperr.ErrBusiness("plan_name_required")
	}
	if in.MonthlyPrice <= 0 {
		return nil, httperr.ErrBusiness("invalid_amount")
	}

	if _, err := uc.repo.GetClient(ctx, in.ClientID); err != nil {
		return nil, httperr.ErrBusiness("client_not_found")
	}

	settings, err := uc.repo.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	start, err := timezone.ParseDate(settings.Timezone, in.StartDate)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	sub := &models.Subscription{
		ClientID:        in.ClientID,
		PlanName:        plan,
		MonthlyPrice:    in.MonthlyPrice,
		Status:          domain.SubscriptionActive,
		StartDate:       start,
		NextBillingDate: start,
	}

	if err := uc.repo.CreateSubscription(ctx, sub); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.ActorID,
		Action:   "subscription_created",
		Entity:   "subscription",
		EntityID: &sub.ID,
	})

	return sub, nil
}

func (uc *Subscriptions) List(ctx context.Context, status string) ([]models.Subscription, error) {
	return uc.repo.ListSubscriptions(ctx, status)
}

func (uc *Subscriptions) Cancel(
	ctx context.Context,
	actorID uint,
	subscriptionID uint,
) (*models.Subscription, error) {

	settings, err := uc.repo.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	sub, err := uc.repo.GetSubscription(ctx, subscriptionID)
	if err != nil {
		return nil, httperr.ErrBusiness("subscription_not_found")
	}

	if err := domain.CancelSubscription(sub, timezone.NowIn(settings.Timezone)); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateSubscription(ctx, sub); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "subscription_cancelled",
		Entity:   "subscription",
		EntityID: &sub.ID,
	})

	return sub, nil
}

// Charge issues the payment for the current billing date on the business key
// and moves the subscription to the next month.
func (uc *Subscriptions) Charge(
	ctx context.Context,
	actorID uint,
	subscriptionID uint,
) (*models.Payment, error) {

	settings, err := uc.repo.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	key, err := ResolveKey(nil, settings)
	if err != nil {
		return nil, err
	}

	var p *models.Payment

	err = uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		sub, err := tx.GetSubscription(ctx, subscriptionID)
		if err != nil {
			return httperr.ErrBusiness("subscription_not_found")
		}
		if sub.Status != domain.SubscriptionActive {
			return httperr.ErrBusiness("invalid_state")
		}

		clientID := sub.ClientID
		p, err = issue(ctx, tx, settings, charge{
			key:            key,
			amount:         sub.MonthlyPrice,
			description:    fmt.Sprintf("%s %s", sub.PlanName, sub.NextBillingDate.Format("01/2006")),
			dueDate:        sub.NextBillingDate,
			txPrefix:       domain.PrefixSubscription,
			subscriptionID: &sub.ID,
			clientID:       &clientID,
		})
		if err != nil {
			return err
		}

		domain.AdvanceBilling(sub)
		return tx.UpdateSubscription(ctx, sub)
	})
	if err != nil {
		return nil, err
	}

	uc.metrics.PaymentIssued("subscription", p.Provider)

	uc.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "payment_issued",
		Entity:   "payment",
		EntityID: &p.ID,
		Metadata: map[string]any{"subscription_id": subscriptionID, "amount": p.Amount},
	})

	return p, nil
}
