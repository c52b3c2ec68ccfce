package mercadopago

import (
	"testing"

	"github.com/stretchr/testify/assert"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/payment"
)

func TestMapStatus(t *testing.T) {
	cases := map[string]domain.Status{
		"approved":   domain.StatusPaid,
		"pending":    domain.StatusPending,
		"in_process": domain.StatusPending,
		"rejected":   domain.StatusPending,
		"":           domain.StatusPending,
	}
	for in, want := range cases {
		assert.Equal(t, want, MapStatus(in), in)
	}
}
