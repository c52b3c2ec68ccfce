package payment

import (
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

const (
	SubscriptionActive    = "active"
	SubscriptionCancelled = "cancelled"
)

// AdvanceBilling moves NextBillingDate one month forward. Months are counted
// from StartDate so a subscription started on the 31st keeps billing on the
// last day of shorter months without drifting.
func AdvanceBilling(sub *models.Subscription) {
	start, next := sub.StartDate, sub.NextBillingDate.In(sub.StartDate.Location())

	n := (next.Year()-start.Year())*12 + int(next.Month()-start.Month())
	sub.NextBillingDate = timezone.AddMonthsClamped(start, n+1)
}

func CancelSubscription(sub *models.Subscription, now time.Time) error {
	if sub.Status != SubscriptionActive {
		return httperr.ErrBusiness("invalid_state")
	}
	sub.Status = SubscriptionCancelled
	sub.CancelledAt = &now
	return nil
}
