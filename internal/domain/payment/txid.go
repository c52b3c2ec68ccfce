package payment

import (
	"strings"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain/pix"
)

const (
	PrefixSubscription = "SUB"
	PrefixAppointment  = "APT"
)

// NewTxID returns an alphanumeric reference label such as "SUB3F9A0C1D7E2B".
func NewTxID(prefix string) string {
	id := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	txid := prefix + id
	if len(txid) > pix.MaxTxIDLength {
		txid = txid[:pix.MaxTxIDLength]
	}
	return txid
}
