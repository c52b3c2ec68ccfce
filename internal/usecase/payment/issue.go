package payment

import (
	"context"
	"strings"
	"time"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/payment"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/pix"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// ResolveKey picks the recipient PIX key: the staff member's own key when
// set, else the business key. Neither set is a configuration error.
func ResolveKey(staff *models.User, settings *models.BusinessSettings) (string, error) {
	if staff != nil {
		if k := strings.TrimSpace(staff.PixKey); k != "" {
			return k, nil
		}
	}
	if settings != nil {
		if k := strings.TrimSpace(settings.PixKey); k != "" {
			return k, nil
		}
	}
	return "", pix.ErrMissingKey
}

type charge struct {
	key         string
	amount      float64
	description string
	dueDate     time.Time
	txPrefix    string

	subscriptionID *uint
	appointmentID  *uint
	clientID       *uint
	staffID        *uint
}

// issue encodes the static PIX code once and stores it with the payment.
func issue(
	ctx context.Context,
	repo domain.Repository,
	settings *models.BusinessSettings,
	c charge,
) (*models.Payment, error) {

	if err := pix.ValidateAmount(c.amount); err != nil {
		return nil, err
	}
	if c.amount == 0 {
		return nil, pix.ErrInvalidAmount
	}

	txid := domain.NewTxID(c.txPrefix)

	code, err := pix.Encode(pix.Payload{
		Key:          c.key,
		Amount:       c.amount,
		MerchantName: settings.MerchantName,
		MerchantCity: settings.MerchantCity,
		TxID:         txid,
	})
	if err != nil {
		return nil, err
	}

	p := &models.Payment{
		SubscriptionID: c.subscriptionID,
		AppointmentID:  c.appointmentID,
		ClientID:       c.clientID,
		StaffID:        c.staffID,
		Description:    c.description,
		Amount:         c.amount,
		Status:         string(domain.StatusPending),
		DueDate:        c.dueDate,
		TxID:           txid,
		PixKey:         c.key,
		PixCode:        code,
		Provider:       domain.ProviderStaticPix,
	}

	if err := repo.CreatePayment(ctx, p); err != nil {
		switch {
		case httperr.ConstraintOf(err) == models.OpenAppointmentPaymentIndex:
			return nil, httperr.ErrBusiness("payment_already_issued")
		case httperr.IsUniqueViolation(err):
			return nil, httperr.ErrBusiness("duplicate_txid")
		}
		return nil, err
	}
	return p, nil
}
