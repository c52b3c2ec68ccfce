package appointment

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

func TestIsWithinWorkingHours(t *testing.T) {
	wh := &models.WorkingHours{
		Weekday:    3,
		Active:     true,
		StartTime:  "09:00",
		EndTime:    "18:00",
		LunchStart: "12:00",
		LunchEnd:   "13:00",
	}

	cases := []struct {
		name       string
		start, end [2]int
		want       bool
	}{
		{"morning", [2]int{9, 0}, [2]int{10, 0}, true},
		{"before opening", [2]int{8, 30}, [2]int{9, 30}, false},
		{"overlaps lunch", [2]int{11, 30}, [2]int{12, 30}, false},
		{"after lunch", [2]int{13, 0}, [2]int{14, 0}, true},
		{"past closing", [2]int{17, 30}, [2]int{18, 30}, false},
		{"ends at closing", [2]int{17, 0}, [2]int{18, 0}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			start := at(2026, 10, 14, tc.start[0], tc.start[1])
			end := at(2026, 10, 14, tc.end[0], tc.end[1])
			assert.Equal(t, tc.want, IsWithinWorkingHours(wh, start, end))
		})
	}

	wrongDay := at(2026, 10, 15, 10, 0)
	assert.False(t, IsWithinWorkingHours(wh, wrongDay, at(2026, 10, 15, 10, 30)))

	wh.Active = false
	assert.False(t, IsWithinWorkingHours(wh, at(2026, 10, 14, 10, 0), at(2026, 10, 14, 11, 0)))
	assert.False(t, IsWithinWorkingHours(nil, at(2026, 10, 14, 10, 0), at(2026, 10, 14, 11, 0)))
}

func TestValidateWorkingDay(t *testing.T) {
	ok := &models.WorkingHours{Weekday: 0, Active: true, StartTime: "09:00", EndTime: "13:00"}
	assert.NoError(t, ValidateWorkingDay(ok))

	closed := &models.WorkingHours{Weekday: 6}
	assert.NoError(t, ValidateWorkingDay(closed))

	inverted := &models.WorkingHours{Weekday: 1, Active: true, StartTime: "18:00", EndTime: "09:00"}
	assert.True(t, httperr.IsBusiness(ValidateWorkingDay(inverted), "invalid_working_hours"))

	badLunch := &models.WorkingHours{
		Weekday: 2, Active: true,
		StartTime: "09:00", EndTime: "18:00",
		LunchStart: "08:00", LunchEnd: "09:30",
	}
	assert.True(t, httperr.IsBusiness(ValidateWorkingDay(badLunch), "invalid_lunch_break"))

	halfLunch := &models.WorkingHours{
		Weekday: 2, Active: true,
		StartTime: "09:00", EndTime: "18:00",
		LunchStart: "12:00",
	}
	assert.True(t, httperr.IsBusiness(ValidateWorkingDay(halfLunch), "invalid_lunch_break"))

	assert.True(t, httperr.IsBusiness(ValidateWorkingDay(&models.WorkingHours{Weekday: 7}), "invalid_weekday"))
}
