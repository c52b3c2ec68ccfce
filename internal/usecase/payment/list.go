package payment

import (
	"context"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/payment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

type ListPayments struct {
	repo domain.Repository
}

func NewListPayments(repo domain.Repository) *ListPayments {
	return &ListPayments{repo: repo}
}

// Execute filters by status and by due date in [from, to]. Dates are
// YYYY-MM-DD in the business timezone; empty means unbounded.
func (uc *ListPayments) Execute(
	ctx context.Context,
	status string,
	from string,
	to string,
) ([]models.Payment, error) {

	f := domain.Filter{}

	if status != "" {
		s, err := domain.ParseStatus(status)
		if err != nil {
			return nil, err
		}
		f.Status = string(s)
	}

	if from != "" || to != "" {
		settings, err := uc.repo.GetSettings(ctx)
		if err != nil {
			return nil, err
		}
		if from != "" {
			d, err := timezone.ParseDate(settings.Timezone, from)
			if err != nil {
				return nil, httperr.ErrBusiness("invalid_date")
			}
			f.From = d
		}
		if to != "" {
			d, err := timezone.ParseDate(settings.Timezone, to)
			if err != nil {
				return nil, httperr.ErrBusiness("invalid_date")
			}
			f.To = d.AddDate(0, 0, 1)
		}
		if !f.From.IsZero() && !f.To.IsZero() && !f.From.Before(f.To) {
			return nil, httperr.ErrBusiness("invalid_period")
		}
	}

	return uc.repo.ListPayments(ctx, f)
}

// Summary totals the listed payments by status.
func (uc *ListPayments) Summary(
	ctx context.Context,
	from string,
	to string,
) (domain.Summary, error) {

	payments, err := uc.Execute(ctx, "", from, to)
	if err != nil {
		return domain.Summary{}, err
	}
	return domain.Summarize(payments), nil
}

func (uc *ListPayments) Get(ctx context.Context, paymentID uint) (*models.Payment, error) {
	p, err := uc.repo.GetPayment(ctx, paymentID)
	if err != nil {
		return nil, httperr.ErrBusiness("payment_not_found")
	}
	return p, nil
}
