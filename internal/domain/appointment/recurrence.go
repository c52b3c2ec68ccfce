package appointment

import (
	"slices"
	"strings"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

type RecurrenceType string

const (
	RecurrenceNone        RecurrenceType = "none"
	RecurrenceWeekly      RecurrenceType = "weekly"
	RecurrenceBiweekly    RecurrenceType = "biweekly"
	RecurrenceTwiceWeekly RecurrenceType = "twice_weekly"
	RecurrenceMonthly     RecurrenceType = "monthly"
)

// Recurrence describes how a seed appointment repeats.
// Days (0=Sunday..6=Saturday) only matter for twice_weekly.
// EndDate is inclusive.
type Recurrence struct {
	Type    RecurrenceType
	Days    []int
	EndDate time.Time
}

// ParseRecurrence validates the form fields. Only structural problems are
// errors; an end date before the seed or an empty weekday set simply expand
// to nothing.
func ParseRecurrence(typ string, days []int, endDate *time.Time) (Recurrence, error) {
	t := RecurrenceType(strings.ToLower(strings.TrimSpace(typ)))
	if t == "" {
		t = RecurrenceNone
	}

	switch t {
	case RecurrenceNone:
		return Recurrence{Type: RecurrenceNone}, nil
	case RecurrenceWeekly, RecurrenceBiweekly, RecurrenceTwiceWeekly, RecurrenceMonthly:
	default:
		return Recurrence{}, httperr.ErrBusiness("invalid_recurrence_type")
	}

	if endDate == nil || endDate.IsZero() {
		return Recurrence{}, httperr.ErrBusiness("recurrence_end_date_required")
	}

	r := Recurrence{Type: t, EndDate: *endDate}
	if t == RecurrenceTwiceWeekly {
		r.Days = normalizeDays(days)
	}
	return r, nil
}

// RecurrenceOf reads the descriptor stored on an appointment row.
func RecurrenceOf(ap *models.Appointment) Recurrence {
	r := Recurrence{Type: RecurrenceType(ap.RecurrenceType)}
	if r.Type == "" {
		r.Type = RecurrenceNone
	}
	if ap.RecurrenceEndDate != nil {
		r.EndDate = *ap.RecurrenceEndDate
	}
	r.Days = normalizeDays(ap.RecurrenceDays)
	return r
}

// ApplyTo stores the descriptor on the appointment row.
func (r Recurrence) ApplyTo(ap *models.Appointment) {
	ap.RecurrenceType = string(r.Type)
	ap.RecurrenceDays = nil
	ap.RecurrenceEndDate = nil

	if r.Type == RecurrenceNone || r.Type == "" {
		ap.RecurrenceType = string(RecurrenceNone)
		return
	}
	if len(r.Days) > 0 {
		ap.RecurrenceDays = slices.Clone(r.Days)
	}
	end := r.EndDate
	ap.RecurrenceEndDate = &end
}

// Occurrences returns every date after start produced by repeatedly applying
// the step function, up to and including EndDate.
func (r Recurrence) Occurrences(start time.Time) []time.Time {
	if r.Type == RecurrenceNone || r.Type == "" || !r.EndDate.After(start) {
		return nil
	}

	days := normalizeDays(r.Days)
	if r.Type == RecurrenceTwiceWeekly && len(days) == 0 {
		return nil
	}

	var out []time.Time
	cursor := start
	for n := 1; ; n++ {
		next, ok := r.step(start, cursor, n, days)
		if !ok || next.After(r.EndDate) {
			return out
		}
		out = append(out, next)
		cursor = next
	}
}

// step computes the nth occurrence. Monthly steps are anchored on start so
// a clamped short month does not drag the following months' day back.
func (r Recurrence) step(start, cursor time.Time, n int, days []int) (time.Time, bool) {
	switch r.Type {
	case RecurrenceWeekly:
		return cursor.AddDate(0, 0, 7), true
	case RecurrenceBiweekly:
		return cursor.AddDate(0, 0, 14), true
	case RecurrenceMonthly:
		return timezone.AddMonthsClamped(start, n), true
	case RecurrenceTwiceWeekly:
		current := int(cursor.Weekday())
		for _, d := range days {
			if d > current {
				return cursor.AddDate(0, 0, d-current), true
			}
		}
		return cursor.AddDate(0, 0, 7-current+days[0]), true
	}
	return time.Time{}, false
}

// Expand builds the generated copies of seed. Each copy keeps every
// non-temporal field of the seed, moves StartTime/EndTime to the occurrence
// and points back to the seed through ParentAppointmentID.
func Expand(seed *models.Appointment, r Recurrence) []models.Appointment {
	dates := r.Occurrences(seed.StartTime)
	if len(dates) == 0 {
		return nil
	}

	duration := seed.EndTime.Sub(seed.StartTime)
	parentID := seed.ID

	out := make([]models.Appointment, 0, len(dates))
	for _, d := range dates {
		cp := *seed

		cp.ID = 0
		cp.StartTime = d
		cp.EndTime = d.Add(duration)
		cp.ParentAppointmentID = &parentID
		cp.CreatedAt = time.Time{}
		cp.UpdatedAt = time.Time{}

		// Associations are referenced by id only so bulk inserts never
		// upsert the related rows.
		cp.Staff = models.User{}
		cp.Service = models.Service{}
		cp.Client = nil

		if seed.ClientID != nil {
			id := *seed.ClientID
			cp.ClientID = &id
		}
		if seed.Price != nil {
			p := *seed.Price
			cp.Price = &p
		}
		if seed.RecurrenceEndDate != nil {
			e := *seed.RecurrenceEndDate
			cp.RecurrenceEndDate = &e
		}
		cp.RecurrenceDays = slices.Clone(seed.RecurrenceDays)

		out = append(out, cp)
	}
	return out
}

func normalizeDays(days []int) []int {
	var out []int
	for _, d := range days {
		if d < 0 || d > 6 || slices.Contains(out, d) {
			continue
		}
		out = append(out, d)
	}
	slices.Sort(out)
	return out
}
