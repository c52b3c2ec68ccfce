package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

type GetAvailability struct {
	repo domain.Repository
}

func NewGetAvailability(repo domain.Repository) *GetAvailability {
	return &GetAvailability{repo: repo}
}

// Execute lists the free slots of one staff member on a date, sized by the
// service duration. Slots before the minimum advance are left out.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]domain.TimeSlot, error) {

	service, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}
	if service.DurationMin <= 0 {
		return []domain.TimeSlot{}, nil
	}

	settings, err := uc.repo.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	day, err := timezone.ParseDate(settings.Timezone, in.Date)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	wh, err := uc.repo.GetWorkingHours(ctx, in.StaffID, int(day.Weekday()))
	if err != nil || !wh.Active {
		return []domain.TimeSlot{}, nil
	}

	dayStart, err1 := domain.ClockOn(day, wh.StartTime)
	dayEnd, err2 := domain.ClockOn(day, wh.EndTime)
	if err1 != nil || err2 != nil {
		return []domain.TimeSlot{}, nil
	}

	appointments, err := uc.repo.ListAppointmentsForDay(ctx, in.StaffID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	earliest := timezone.NowIn(settings.Timezone).
		Add(time.Duration(settings.MinAdvanceMinutes) * time.Minute)

	slotDuration := time.Duration(service.DurationMin) * time.Minute
	slots := []domain.TimeSlot{}

	apIdx := 0

	for cur := dayStart; !cur.Add(slotDuration).After(dayEnd); cur = cur.Add(slotDuration) {

		slotStart := cur
		slotEnd := cur.Add(slotDuration)

		if slotStart.Before(earliest) {
			continue
		}

		// almoço
		if !domain.IsWithinWorkingHours(wh, slotStart, slotEnd) {
			continue
		}

		// avança agendamentos finalizados
		for apIdx < len(appointments) && !appointments[apIdx].EndTime.After(slotStart) {
			apIdx++
		}

		conflict := false
		for j := apIdx; j < len(appointments) && appointments[j].StartTime.Before(slotEnd); j++ {
			if appointments[j].EndTime.After(slotStart) {
				conflict = true
				break
			}
		}

		if !conflict {
			slots = append(slots, domain.TimeSlot{
				Start: slotStart.Format("15:04"),
				End:   slotEnd.Format("15:04"),
			})
		}
	}

	return slots, nil
}
