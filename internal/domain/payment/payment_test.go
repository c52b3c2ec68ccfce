package payment

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

func TestMarkPaid(t *testing.T) {
	now := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

	p := &models.Payment{Status: string(StatusOverdue)}
	require.NoError(t, MarkPaid(p, now))
	assert.Equal(t, string(StatusPaid), p.Status)
	require.NotNil(t, p.PaidAt)

	err := MarkPaid(p, now)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
}

func TestMarkOverdue(t *testing.T) {
	now := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

	late := &models.Payment{Status: string(StatusPending), DueDate: now.Add(-time.Hour)}
	assert.True(t, MarkOverdue(late, now))
	assert.Equal(t, string(StatusOverdue), late.Status)

	onTime := &models.Payment{Status: string(StatusPending), DueDate: now.Add(time.Hour)}
	assert.False(t, MarkOverdue(onTime, now))

	paid := &models.Payment{Status: string(StatusPaid), DueDate: now.Add(-time.Hour)}
	assert.False(t, MarkOverdue(paid, now))
}

func TestNewTxID(t *testing.T) {
	a := NewTxID(PrefixSubscription)
	b := NewTxID(PrefixSubscription)

	assert.Regexp(t, regexp.MustCompile(`^SUB[0-9A-F]{22}$`), a)
	assert.NotEqual(t, a, b)
}

func TestParseStatus(t *testing.T) {
	s, err := ParseStatus("overdue")
	require.NoError(t, err)
	assert.Equal(t, StatusOverdue, s)

	_, err = ParseStatus("void")
	assert.Error(t, err)
}

func TestSummarize(t *testing.T) {
	s := Summarize([]models.Payment{
		{Status: "paid", Amount: 49.9},
		{Status: "paid", Amount: 0.2},
		{Status: "pending", Amount: 80},
		{Status: "overdue", Amount: 120.5},
		{Status: "unknown", Amount: 999},
	})

	assert.Equal(t, Totals{Count: 2, Amount: 50.1}, s.Paid)
	assert.Equal(t, Totals{Count: 1, Amount: 80}, s.Pending)
	assert.Equal(t, Totals{Count: 1, Amount: 120.5}, s.Overdue)
	assert.Equal(t, Totals{Count: 4, Amount: 250.6}, s.Total)
}

func TestAdvanceBillingAnchorsOnStartDate(t *testing.T) {
	start := time.Date(2027, 1, 31, 9, 0, 0, 0, time.UTC)
	sub := &models.Subscription{StartDate: start, NextBillingDate: start}

	var got []string
	for i := 0; i < 3; i++ {
		AdvanceBilling(sub)
		got = append(got, sub.NextBillingDate.Format("2006-01-02"))
	}

	assert.Equal(t, []string{"2027-02-28", "2027-03-31", "2027-04-30"}, got)
}

func TestCancelSubscription(t *testing.T) {
	now := time.Date(2027, 2, 1, 0, 0, 0, 0, time.UTC)
	sub := &models.Subscription{Status: SubscriptionActive}

	require.NoError(t, CancelSubscription(sub, now))
	assert.Equal(t, SubscriptionCancelled, sub.Status)
	assert.Equal(t, now, *sub.CancelledAt)

	assert.Error(t, CancelSubscription(sub, now))
}
