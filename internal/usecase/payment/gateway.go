package payment

import (
	"context"
	"fmt"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/payment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type GatewayChargeInput struct {
	Amount            float64
	Description       string
	PayerEmail        string
	ExternalReference string
}

type GatewayCharge struct {
	ExternalID string `json:"external_id"`
	Status     string `json:"status"`
	QRCode     string `json:"qr_code"`
}

// Gateway is a hosted PIX provider that reports settlement on its own.
type Gateway interface {
	CreatePixCharge(ctx context.Context, in GatewayChargeInput) (*GatewayCharge, error)
	ChargeStatus(ctx context.Context, externalID string) (domain.Status, error)
}

type GatewayOutput struct {
	Payment *models.Payment `json:"payment"`
	Charge  *GatewayCharge  `json:"gateway"`
}

type GatewaySync struct {
	repo    domain.Repository
	gateway Gateway
	settle  *Settle
	audit   audit.Recorder
}

func NewGatewaySync(
	repo domain.Repository,
	gateway Gateway,
	settle *Settle,
	audit audit.Recorder,
) *GatewaySync {
	return &GatewaySync{
		repo:    repo,
		gateway: gateway,
		settle:  settle,
		audit:   audit,
	}
}

// Register mirrors an issued payment on the gateway. The stored static code
// stays untouched; the gateway's own code is returned alongside.
func (uc *GatewaySync) Register(
	ctx context.Context,
	actorID uint,
	paymentID uint,
) (*GatewayOutput, error) {

	if uc.gateway == nil {
		return nil, httperr.ErrBusiness("gateway_disabled")
	}

	p, err := uc.repo.GetPayment(ctx, paymentID)
	if err != nil {
		return nil, httperr.ErrBusiness("payment_not_found")
	}
	if domain.Status(p.Status) == domain.StatusPaid {
		return nil, httperr.ErrBusiness("already_paid")
	}
	if p.ExternalID != "" {
		return nil, httperr.ErrBusiness("gateway_already_registered")
	}

	var email string
	if p.ClientID != nil {
		if c, err := uc.repo.GetClient(ctx, *p.ClientID); err == nil {
			email = c.Email
		}
	}

	ch, err := uc.gateway.CreatePixCharge(ctx, GatewayChargeInput{
		Amount:            p.Amount,
		Description:       p.Description,
		PayerEmail:        email,
		ExternalReference: p.TxID,
	})
	if err != nil {
		return nil, fmt.Errorf("gateway charge: %w", err)
	}

	p.ExternalID = ch.ExternalID
	p.Provider = domain.ProviderMercadoPago

	if err := uc.repo.UpdatePayment(ctx, p); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "payment_gateway_registered",
		Entity:   "payment",
		EntityID: &p.ID,
		Metadata: map[string]any{"external_id": ch.ExternalID},
	})

	return &GatewayOutput{Payment: p, Charge: ch}, nil
}

// Sync pulls the provider status and settles the payment when approved.
func (uc *GatewaySync) Sync(
	ctx context.Context,
	actorID uint,
	paymentID uint,
) (*models.Payment, error) {

	if uc.gateway == nil {
		return nil, httperr.ErrBusiness("gateway_disabled")
	}

	p, err := uc.repo.GetPayment(ctx, paymentID)
	if err != nil {
		return nil, httperr.ErrBusiness("payment_not_found")
	}
	if p.ExternalID == "" {
		return nil, httperr.ErrBusiness("gateway_not_registered")
	}

	status, err := uc.gateway.ChargeStatus(ctx, p.ExternalID)
	if err != nil {
		return nil, fmt.Errorf("gateway status: %w", err)
	}

	if status != domain.StatusPaid || domain.Status(p.Status) == domain.StatusPaid {
		return p, nil
	}

	return uc.settle.MarkPaid(ctx, &actorID, p.ID)
}
