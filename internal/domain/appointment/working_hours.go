package appointment

import (
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// ClockOn places an "HH:MM" clock reading on day's calendar date.
func ClockOn(day time.Time, hm string) (time.Time, error) {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(
		day.Year(), day.Month(), day.Day(),
		t.Hour(), t.Minute(), 0, 0,
		day.Location(),
	), nil
}

// IsWithinWorkingHours checks [start, end) against the staff member's
// schedule for that weekday, lunch break included.
func IsWithinWorkingHours(
	wh *models.WorkingHours,
	start time.Time,
	end time.Time,
) bool {

	if wh == nil || !wh.Active || wh.StartTime == "" || wh.EndTime == "" {
		return false
	}
	if int(start.Weekday()) != wh.Weekday {
		return false
	}

	workStart, err1 := ClockOn(start, wh.StartTime)
	workEnd, err2 := ClockOn(start, wh.EndTime)
	if err1 != nil || err2 != nil {
		return false
	}

	if start.Before(workStart) || end.After(workEnd) {
		return false
	}

	if wh.LunchStart != "" && wh.LunchEnd != "" {
		lunchStart, err1 := ClockOn(start, wh.LunchStart)
		lunchEnd, err2 := ClockOn(start, wh.LunchEnd)
		if err1 == nil && err2 == nil && start.Before(lunchEnd) && end.After(lunchStart) {
			return false
		}
	}

	return true
}

// ValidateWorkingDay checks an active day's clock readings: opening before
// closing, and a lunch break (if any) inside that window.
func ValidateWorkingDay(wh *models.WorkingHours) error {
	if wh.Weekday < 0 || wh.Weekday > 6 {
		return httperr.ErrBusiness("invalid_weekday")
	}
	if !wh.Active {
		return nil
	}

	day := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

	start, err1 := ClockOn(day, wh.StartTime)
	end, err2 := ClockOn(day, wh.EndTime)
	if err1 != nil || err2 != nil || !start.Before(end) {
		return httperr.ErrBusiness("invalid_working_hours")
	}

	if wh.LunchStart == "" && wh.LunchEnd == "" {
		return nil
	}
	lunchStart, err1 := ClockOn(day, wh.LunchStart)
	lunchEnd, err2 := ClockOn(day, wh.LunchEnd)
	if err1 != nil || err2 != nil ||
		!lunchStart.Before(lunchEnd) ||
		lunchStart.Before(start) || lunchEnd.After(end) {
		return httperr.ErrBusiness("invalid_lunch_break")
	}

	return nil
}
