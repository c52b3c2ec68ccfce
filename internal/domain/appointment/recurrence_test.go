package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

var saoPaulo = time.FixedZone("BRT", -3*60*60)

func at(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, saoPaulo)
}

func TestOccurrencesWeeklyInclusiveBound(t *testing.T) {
	start := at(2026, 10, 14, 10, 0)
	r := Recurrence{Type: RecurrenceWeekly, EndDate: at(2026, 11, 4, 10, 0)}

	got := r.Occurrences(start)

	require.Len(t, got, 3)
	assert.True(t, got[0].Equal(at(2026, 10, 21, 10, 0)))
	assert.True(t, got[2].Equal(r.EndDate), "end date is inclusive")
}

func TestOccurrencesBiweekly(t *testing.T) {
	start := at(2026, 10, 14, 9, 0)
	r := Recurrence{Type: RecurrenceBiweekly, EndDate: at(2026, 12, 1, 0, 0)}

	got := r.Occurrences(start)

	require.Len(t, got, 3)
	assert.True(t, got[0].Equal(at(2026, 10, 28, 9, 0)))
	assert.True(t, got[1].Equal(at(2026, 11, 11, 9, 0)))
	assert.True(t, got[2].Equal(at(2026, 11, 25, 9, 0)))
}

func TestOccurrencesMonthlyClampsToMonthEnd(t *testing.T) {
	start := at(2026, 1, 31, 10, 0)
	r := Recurrence{Type: RecurrenceMonthly, EndDate: at(2026, 5, 1, 0, 0)}

	got := r.Occurrences(start)

	require.Len(t, got, 3)
	assert.True(t, got[0].Equal(at(2026, 2, 28, 10, 0)))
	assert.True(t, got[1].Equal(at(2026, 3, 31, 10, 0)))
	assert.True(t, got[2].Equal(at(2026, 4, 30, 10, 0)))
}

func TestOccurrencesTwiceWeeklyFromWednesday(t *testing.T) {
	start := at(2026, 10, 14, 15, 30)
	require.Equal(t, time.Wednesday, start.Weekday())

	r := Recurrence{Type: RecurrenceTwiceWeekly, Days: []int{4, 1}, EndDate: at(2026, 10, 31, 0, 0)}
	got := r.Occurrences(start)

	require.Len(t, got, 5)
	assert.Equal(t, time.Thursday, got[0].Weekday())
	assert.True(t, got[0].Equal(at(2026, 10, 15, 15, 30)))
	assert.Equal(t, time.Monday, got[1].Weekday())
	assert.True(t, got[1].Equal(at(2026, 10, 19, 15, 30)))

	for _, d := range got {
		assert.Contains(t, []time.Weekday{time.Monday, time.Thursday}, d.Weekday())
	}
}

func TestOccurrencesTwiceWeeklySkipsSameWeekday(t *testing.T) {
	// Seed on a Monday with Monday selected: the next occurrence is the
	// following selected weekday, never the seed's own weekday again this week.
	start := at(2026, 10, 12, 8, 0)
	require.Equal(t, time.Monday, start.Weekday())

	r := Recurrence{Type: RecurrenceTwiceWeekly, Days: []int{1, 3}, EndDate: at(2026, 10, 20, 0, 0)}
	got := r.Occurrences(start)

	require.Len(t, got, 2)
	assert.True(t, got[0].Equal(at(2026, 10, 14, 8, 0)))
	assert.True(t, got[1].Equal(at(2026, 10, 19, 8, 0)))
}

func TestOccurrencesStrictlyIncreasingAndBounded(t *testing.T) {
	start := at(2026, 1, 5, 11, 0)
	end := at(2027, 1, 5, 0, 0)

	rules := []Recurrence{
		{Type: RecurrenceWeekly, EndDate: end},
		{Type: RecurrenceBiweekly, EndDate: end},
		{Type: RecurrenceMonthly, EndDate: end},
		{Type: RecurrenceTwiceWeekly, Days: []int{0, 2, 6}, EndDate: end},
	}

	for _, r := range rules {
		t.Run(string(r.Type), func(t *testing.T) {
			got := r.Occurrences(start)
			require.NotEmpty(t, got)

			prev := start
			for _, d := range got {
				assert.True(t, d.After(prev), "%s not after %s", d, prev)
				assert.False(t, d.After(end))
				prev = d
			}

			next, ok := r.step(start, prev, len(got)+1, normalizeDays(r.Days))
			require.True(t, ok)
			assert.True(t, next.After(end), "last occurrence must be the largest one within the bound")
		})
	}
}

func TestOccurrencesEmptyCases(t *testing.T) {
	start := at(2026, 10, 14, 10, 0)

	assert.Empty(t, Recurrence{Type: RecurrenceWeekly, EndDate: at(2026, 10, 1, 0, 0)}.Occurrences(start))
	assert.Empty(t, Recurrence{Type: RecurrenceWeekly, EndDate: start}.Occurrences(start))
	assert.Empty(t, Recurrence{Type: RecurrenceTwiceWeekly, EndDate: at(2026, 12, 1, 0, 0)}.Occurrences(start))
	assert.Empty(t, Recurrence{Type: RecurrenceTwiceWeekly, Days: []int{9, -1}, EndDate: at(2026, 12, 1, 0, 0)}.Occurrences(start))
	assert.Empty(t, Recurrence{Type: RecurrenceNone, EndDate: at(2026, 12, 1, 0, 0)}.Occurrences(start))
}

func TestExpandCopiesSeedFields(t *testing.T) {
	clientID := uint(9)
	price := 80.0
	end := at(2026, 11, 30, 23, 59)

	seed := &models.Appointment{
		ID:            42,
		StaffID:       3,
		ServiceID:     5,
		ClientType:    string(ClientRegistered),
		ClientID:      &clientID,
		StartTime:     at(2026, 10, 14, 10, 0),
		EndTime:       at(2026, 10, 14, 11, 0),
		Price:         &price,
		PaymentStatus: "pending",
		Status:        string(StatusPending),
		Notes:         "coloração",
	}
	rec := Recurrence{Type: RecurrenceWeekly, EndDate: end}
	rec.ApplyTo(seed)

	out := Expand(seed, rec)

	require.Len(t, out, 6)
	for _, ap := range out {
		assert.Zero(t, ap.ID)
		require.NotNil(t, ap.ParentAppointmentID)
		assert.Equal(t, uint(42), *ap.ParentAppointmentID)

		assert.Equal(t, seed.StaffID, ap.StaffID)
		assert.Equal(t, seed.ServiceID, ap.ServiceID)
		assert.Equal(t, *seed.ClientID, *ap.ClientID)
		assert.Equal(t, seed.ClientType, ap.ClientType)
		assert.Equal(t, seed.Notes, ap.Notes)
		assert.Equal(t, *seed.Price, *ap.Price)
		assert.Equal(t, time.Hour, ap.EndTime.Sub(ap.StartTime))
	}

	*out[0].Price = 1
	assert.Equal(t, 80.0, *seed.Price, "copies must not alias the seed's pointers")
}

func TestExpandWithoutOccurrences(t *testing.T) {
	seed := &models.Appointment{ID: 1, StartTime: at(2026, 10, 14, 10, 0), EndTime: at(2026, 10, 14, 11, 0)}

	assert.Nil(t, Expand(seed, Recurrence{Type: RecurrenceTwiceWeekly, EndDate: at(2026, 12, 1, 0, 0)}))
	assert.Nil(t, Expand(seed, Recurrence{Type: RecurrenceMonthly, EndDate: at(2026, 9, 1, 0, 0)}))
}

func TestParseRecurrence(t *testing.T) {
	end := at(2026, 12, 1, 0, 0)

	r, err := ParseRecurrence("", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, RecurrenceNone, r.Type)

	r, err = ParseRecurrence("twice_weekly", []int{4, 1, 4, 8}, &end)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 4}, r.Days)

	r, err = ParseRecurrence("weekly", []int{1}, &end)
	require.NoError(t, err)
	assert.Empty(t, r.Days, "weekday set only applies to twice_weekly")

	_, err = ParseRecurrence("weekly", nil, nil)
	assert.True(t, httperr.IsBusiness(err, "recurrence_end_date_required"))

	_, err = ParseRecurrence("daily", nil, &end)
	assert.True(t, httperr.IsBusiness(err, "invalid_recurrence_type"))
}

func TestRecurrenceRoundTripOnRow(t *testing.T) {
	end := at(2026, 12, 1, 0, 0)
	ap := &models.Appointment{}

	Recurrence{Type: RecurrenceTwiceWeekly, Days: []int{2, 5}, EndDate: end}.ApplyTo(ap)
	got := RecurrenceOf(ap)

	assert.Equal(t, RecurrenceTwiceWeekly, got.Type)
	assert.Equal(t, []int{2, 5}, got.Days)
	assert.True(t, got.EndDate.Equal(end))

	Recurrence{Type: RecurrenceNone}.ApplyTo(ap)
	assert.Equal(t, "none", ap.RecurrenceType)
	assert.Nil(t, ap.RecurrenceEndDate)
}
