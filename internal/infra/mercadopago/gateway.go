package mercadopago

import (
	"context"
	"fmt"
	"strconv"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/payment"
	usecase "github.com/BruksfildServices01/salon-scheduler/internal/usecase/payment"
)

const pixMethod = "pix"

// Gateway creates PIX charges on Mercado Pago and reads back their status.
type Gateway struct {
	client payment.Client
}

func New(accessToken string) (*Gateway, error) {
	cfg, err := config.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("mercadopago config: %w", err)
	}
	return &Gateway{client: payment.NewClient(cfg)}, nil
}

func (g *Gateway) CreatePixCharge(
	ctx context.Context,
	in usecase.GatewayChargeInput,
) (*usecase.GatewayCharge, error) {

	req := payment.Request{
		TransactionAmount: in.Amount,
		PaymentMethodID:   pixMethod,
		Description:       in.Description,
		ExternalReference: in.ExternalReference,
		Payer: &payment.PayerRequest{
			Email: in.PayerEmail,
		},
	}

	res, err := g.client.Create(ctx, req)
	if err != nil {
		return nil, err
	}

	return &usecase.GatewayCharge{
		ExternalID: strconv.Itoa(res.ID),
		Status:     res.Status,
		QRCode:     res.PointOfInteraction.TransactionData.QRCode,
	}, nil
}

func (g *Gateway) ChargeStatus(ctx context.Context, externalID string) (domain.Status, error) {
	id, err := strconv.Atoi(externalID)
	if err != nil {
		return "", fmt.Errorf("invalid external id %q: %w", externalID, err)
	}

	res, err := g.client.Get(ctx, id)
	if err != nil {
		return "", err
	}
	return MapStatus(res.Status), nil
}

// MapStatus folds Mercado Pago payment states into ours. Only "approved"
// settles; refusals stay pending so staff can charge again.
func MapStatus(s string) domain.Status {
	switch s {
	case "approved":
		return domain.StatusPaid
	default:
		return domain.StatusPending
	}
}

var _ usecase.Gateway = (*Gateway)(nil)
