package payment

import (
	"math"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type Totals struct {
	Count  int     `json:"count"`
	Amount float64 `json:"amount"`
}

type Summary struct {
	Pending Totals `json:"pending"`
	Paid    Totals `json:"paid"`
	Overdue Totals `json:"overdue"`
	Total   Totals `json:"total"`
}

// Summarize totals payments by status. Amounts are rounded to cents.
func Summarize(payments []models.Payment) Summary {
	var s Summary
	for _, p := range payments {
		var bucket *Totals
		switch Status(p.Status) {
		case StatusPending:
			bucket = &s.Pending
		case StatusPaid:
			bucket = &s.Paid
		case StatusOverdue:
			bucket = &s.Overdue
		default:
			continue
		}
		bucket.Count++
		bucket.Amount += p.Amount
		s.Total.Count++
		s.Total.Amount += p.Amount
	}

	for _, t := range []*Totals{&s.Pending, &s.Paid, &s.Overdue, &s.Total} {
		t.Amount = math.Round(t.Amount*100) / 100
	}
	return s
}
